package payout

import "testing"

func TestParseMultiplier(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"90", 9000},
		{"90.00", 9000},
		{"4.5", 450},
		{"4.50", 450},
		{"1.8", 180},
		{"0.05", 5},
		{"0", 0},
		{" 2.50 ", 250},
		{".5", 50},
	}
	for _, tc := range cases {
		got, err := ParseMultiplier(tc.in)
		if err != nil {
			t.Errorf("ParseMultiplier(%q) error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseMultiplier(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}

	for _, bad := range []string{"", "-1", "4.505", "abc", "4.x", "1,5"} {
		if _, err := ParseMultiplier(bad); err == nil {
			t.Errorf("ParseMultiplier(%q) = nil error, want ErrBadMultiplier", bad)
		}
	}
}

func TestFormatMultiplier(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{9000, "90.00"},
		{450, "4.50"},
		{180, "1.80"},
		{5, "0.05"},
		{0, "0.00"},
		{-7, "0.00"},
	}
	for _, tc := range cases {
		if got := FormatMultiplier(tc.in); got != tc.want {
			t.Errorf("FormatMultiplier(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

// Operator-entered strings must survive a parse/format cycle unchanged,
// otherwise the admin odds screen would drift on every save.
func TestMultiplierRoundTrip(t *testing.T) {
	for _, s := range []string{"90.00", "4.50", "1.80", "85.00", "0.01"} {
		v, err := ParseMultiplier(s)
		if err != nil {
			t.Fatalf("ParseMultiplier(%q): %v", s, err)
		}
		if got := FormatMultiplier(v); got != s {
			t.Errorf("round trip %q -> %d -> %q", s, v, got)
		}
	}
}

func TestCommissionAmount(t *testing.T) {
	cases := []struct {
		amount int64
		rate   int64
		want   int64
	}{
		{10000, 250, 250},  // 2.5% of 100.00
		{10000, 0, 0},
		{999, 250, 24},     // 24.975 -> 24, truncation
		{0, 500, 0},
		{-100, 500, 0},
		{100, -5, 0},
	}
	for _, tc := range cases {
		if got := CommissionAmount(tc.amount, tc.rate); got != tc.want {
			t.Errorf("CommissionAmount(%d, %d) = %d, want %d", tc.amount, tc.rate, got, tc.want)
		}
	}
}
