package payout

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrBadMultiplier = errors.New("invalid multiplier")

// FormatMultiplier renders a multiplier in hundredths as a decimal
// string: 450 -> "4.50", 9000 -> "90.00".
func FormatMultiplier(multiplier int64) string {
	if multiplier < 0 {
		multiplier = 0
	}
	return fmt.Sprintf("%d.%02d", multiplier/OddsScale, multiplier%OddsScale)
}

// ParseMultiplier converts an operator-submitted decimal string into
// hundredths: "4.5" -> 450, "90" -> 9000. At most two fractional digits
// are accepted and the value must not be negative. No floats involved,
// so "4.50" round-trips exactly.
func ParseMultiplier(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "-") {
		return 0, ErrBadMultiplier
	}

	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}
	if len(frac) > 2 {
		return 0, ErrBadMultiplier
	}
	for len(frac) < 2 {
		frac += "0"
	}

	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, ErrBadMultiplier
	}
	f, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, ErrBadMultiplier
	}

	return w*OddsScale + f, nil
}
