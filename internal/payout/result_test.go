package payout

import "testing"

func TestIsWinner(t *testing.T) {
	cases := []struct {
		name       string
		mode       GameMode
		prediction string
		result     string
		want       bool
	}{
		{"jodi exact match", ModeJodi, "42", "42", true},
		{"jodi miss", ModeJodi, "42", "24", false},
		{"jodi leading zero", ModeJodi, "07", "07", true},

		{"harf first position", ModeHarf, "4", "42", true},
		{"harf second position", ModeHarf, "2", "42", true},
		{"harf miss", ModeHarf, "7", "42", false},
		{"harf double digit result", ModeHarf, "5", "55", true},

		{"crossing both digits covered", ModeCrossing, "123", "31", true},
		{"crossing same digit pair", ModeCrossing, "12", "11", true},
		{"crossing one digit outside set", ModeCrossing, "12", "13", false},
		{"crossing miss", ModeCrossing, "12", "45", false},

		{"odd result", ModeOddEven, "odd", "37", true},
		{"even result", ModeOddEven, "even", "40", true},
		{"odd prediction even result", ModeOddEven, "odd", "40", false},
		{"zero zero is even", ModeOddEven, "even", "00", true},

		{"unknown mode never wins", "unknown_mode", "42", "42", false},
		{"malformed result never wins", ModeJodi, "42", "4x", false},
	}

	for _, tc := range cases {
		if got := IsWinner(tc.mode, tc.prediction, tc.result); got != tc.want {
			t.Errorf("%s: IsWinner(%s, %q, %q) = %v, want %v",
				tc.name, tc.mode, tc.prediction, tc.result, got, tc.want)
		}
	}
}

func TestValidatePrediction(t *testing.T) {
	valid := []struct {
		mode       GameMode
		prediction string
	}{
		{ModeJodi, "00"},
		{ModeJodi, "99"},
		{ModeHarf, "0"},
		{ModeHarf, "9"},
		{ModeCrossing, "12"},
		{ModeCrossing, "1234"},
		{ModeOddEven, "odd"},
		{ModeOddEven, "even"},
	}
	for _, tc := range valid {
		if err := ValidatePrediction(tc.mode, tc.prediction); err != nil {
			t.Errorf("ValidatePrediction(%s, %q) = %v, want nil", tc.mode, tc.prediction, err)
		}
	}

	invalid := []struct {
		mode       GameMode
		prediction string
	}{
		{ModeJodi, "7"},
		{ModeJodi, "100"},
		{ModeJodi, "4x"},
		{ModeHarf, "42"},
		{ModeHarf, "a"},
		{ModeCrossing, "1"},
		{ModeCrossing, "12345"},
		{ModeCrossing, "112"},
		{ModeCrossing, "1a"},
		{ModeOddEven, "Odd"},
		{ModeOddEven, "parity"},
		{"unknown_mode", "42"},
	}
	for _, tc := range invalid {
		if err := ValidatePrediction(tc.mode, tc.prediction); err == nil {
			t.Errorf("ValidatePrediction(%s, %q) = nil, want error", tc.mode, tc.prediction)
		}
	}
}

func TestValidResult(t *testing.T) {
	for _, good := range []string{"00", "07", "42", "99"} {
		if !ValidResult(good) {
			t.Errorf("ValidResult(%q) = false, want true", good)
		}
	}
	for _, bad := range []string{"", "7", "100", "4x", "ab"} {
		if ValidResult(bad) {
			t.Errorf("ValidResult(%q) = true, want false", bad)
		}
	}
}
