package payout

import (
	"errors"
	"strings"
)

var ErrBadPrediction = errors.New("invalid prediction for game mode")

// Satamatka results are always two digits, "00".."99".
func ValidResult(result string) bool {
	if len(result) != 2 {
		return false
	}
	return isDigit(result[0]) && isDigit(result[1])
}

// ValidatePrediction checks a prediction string against its game mode:
// jodi is an exact two-digit number, harf a single digit, crossing two to
// four distinct digits, odd_even the literal "odd" or "even".
func ValidatePrediction(mode GameMode, prediction string) error {
	switch mode {
	case ModeJodi:
		if !ValidResult(prediction) {
			return ErrBadPrediction
		}
	case ModeHarf:
		if len(prediction) != 1 || !isDigit(prediction[0]) {
			return ErrBadPrediction
		}
	case ModeCrossing:
		if len(prediction) < 2 || len(prediction) > 4 {
			return ErrBadPrediction
		}
		seen := [10]bool{}
		for i := 0; i < len(prediction); i++ {
			if !isDigit(prediction[i]) {
				return ErrBadPrediction
			}
			d := prediction[i] - '0'
			if seen[d] {
				return ErrBadPrediction
			}
			seen[d] = true
		}
	case ModeOddEven:
		if prediction != "odd" && prediction != "even" {
			return ErrBadPrediction
		}
	default:
		return ErrBadPrediction
	}

	return nil
}

// IsWinner decides a settled wager against a declared two-digit result.
// jodi wins on an exact match; harf wins when the digit sits in either
// position; crossing wins when both result digits come from the predicted
// set; odd_even wins on the parity of the drawn number. Unknown modes and
// malformed results never win.
func IsWinner(mode GameMode, prediction, result string) bool {
	if !ValidResult(result) {
		return false
	}

	switch mode {
	case ModeJodi:
		return prediction == result
	case ModeHarf:
		if len(prediction) != 1 {
			return false
		}
		return prediction[0] == result[0] || prediction[0] == result[1]
	case ModeCrossing:
		return strings.IndexByte(prediction, result[0]) >= 0 &&
			strings.IndexByte(prediction, result[1]) >= 0
	case ModeOddEven:
		// result[1] is the units digit, parity of the full number
		if result[1]%2 == 0 {
			return prediction == "even"
		}
		return prediction == "odd"
	}

	return false
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
