package payout

import "testing"

// Settlement and the pre-commit preview must agree to the paisa, so the
// default table values are pinned here exactly.
func TestComputePayoutDefaultTable(t *testing.T) {
	cases := []struct {
		mode  GameMode
		stake int64
		want  int64
	}{
		{ModeJodi, 100, 9000},    // 90.00x
		{ModeHarf, 100, 900},     // 9.00x
		{ModeCrossing, 100, 450}, // 4.50x
		{ModeOddEven, 100, 180},  // 1.80x
	}

	for _, tc := range cases {
		got := ComputePayout(tc.mode, tc.stake, nil)
		if got != tc.want {
			t.Errorf("ComputePayout(%s, %d) = %d, want %d", tc.mode, tc.stake, got, tc.want)
		}
	}
}

func TestComputePayoutTruncates(t *testing.T) {
	// 101 * 4.5 = 454.5 -> 454, truncation not rounding
	if got := ComputePayout(ModeCrossing, 101, nil); got != 454 {
		t.Errorf("ComputePayout(crossing, 101) = %d, want 454", got)
	}
	// 100 * 4.5 = 450 exactly
	if got := ComputePayout(ModeCrossing, 100, nil); got != 450 {
		t.Errorf("ComputePayout(crossing, 100) = %d, want 450", got)
	}
	// 99 * 1.8 = 178.2 -> 178
	if got := ComputePayout(ModeOddEven, 99, nil); got != 178 {
		t.Errorf("ComputePayout(odd_even, 99) = %d, want 178", got)
	}
}

func TestComputePayoutZeroStake(t *testing.T) {
	for _, mode := range Modes() {
		if got := ComputePayout(mode, 0, nil); got != 0 {
			t.Errorf("ComputePayout(%s, 0) = %d, want 0", mode, got)
		}
	}
}

func TestComputePayoutNegativeStakeClamps(t *testing.T) {
	if got := ComputePayout(ModeJodi, -500, nil); got != 0 {
		t.Errorf("ComputePayout(jodi, -500) = %d, want 0", got)
	}
}

// A bad mode label must never crash settlement and must never over-pay:
// it falls through to the 1.00x identity multiplier.
func TestComputePayoutUnknownMode(t *testing.T) {
	if got := ComputePayout("unknown_mode", 100, nil); got != 100 {
		t.Errorf("ComputePayout(unknown_mode, 100) = %d, want 100", got)
	}

	table := OddsTable{"unknown_mode": 0}
	if got := ComputePayout("unknown_mode", 100, table); got != 0 {
		t.Errorf("configured zero multiplier should win over fallback, got %d", got)
	}
}

func TestComputePayoutOperatorOverride(t *testing.T) {
	// Operator lowers jodi from 90.00x to 85.00x; max stake 10000.
	table := OddsTable{ModeJodi: 8500}
	if got := ComputePayout(ModeJodi, 10000, table); got != 850000 {
		t.Errorf("ComputePayout(jodi, 10000, 85.00x) = %d, want 850000", got)
	}

	// Modes absent from the override table keep their defaults.
	if got := ComputePayout(ModeHarf, 100, table); got != 900 {
		t.Errorf("ComputePayout(harf, 100) with partial table = %d, want 900", got)
	}
}

func TestComputePayoutIdempotent(t *testing.T) {
	table := OddsTable{ModeCrossing: 475}
	first := ComputePayout(ModeCrossing, 3333, table)
	second := ComputePayout(ModeCrossing, 3333, table)
	if first != second {
		t.Errorf("same inputs gave %d then %d", first, second)
	}
}

func TestPayoutSnapshotMatchesTableLookup(t *testing.T) {
	// Settlement uses the multiplier snapshotted at placement. For every
	// mode and a spread of stakes, Payout(stake, Multiplier(mode)) must
	// equal ComputePayout(mode, stake, table).
	table := OddsTable{ModeJodi: 8500, ModeOddEven: 195}
	for _, mode := range Modes() {
		for _, stake := range []int64{0, 1, 10, 99, 101, 5000, 10000} {
			preview := ComputePayout(mode, stake, table)
			settled := Payout(stake, table.Multiplier(mode))
			if preview != settled {
				t.Errorf("%s stake %d: preview %d != settled %d", mode, stake, preview, settled)
			}
		}
	}
}

func TestNegativeConfiguredMultiplierIgnored(t *testing.T) {
	table := OddsTable{ModeJodi: -100}
	if got := table.Multiplier(ModeJodi); got != 9000 {
		t.Errorf("negative configured multiplier should fall back to default, got %d", got)
	}
}

func TestDefaultOddsIsACopy(t *testing.T) {
	table := DefaultOdds()
	table[ModeJodi] = 1

	if got := OddsTable(nil).Multiplier(ModeJodi); got != 9000 {
		t.Errorf("mutating DefaultOdds() leaked into built-ins: jodi = %d", got)
	}
}
