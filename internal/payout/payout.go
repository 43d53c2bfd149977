package payout

// GameMode is the wager sub-type of a Satamatka market.
type GameMode string

const (
	ModeJodi     GameMode = "jodi"
	ModeHarf     GameMode = "harf"
	ModeCrossing GameMode = "crossing"
	ModeOddEven  GameMode = "odd_even"
)

// Multipliers are stored in hundredths of a unit: 9000 means 90.00x.
// Integer arithmetic keeps preview and settlement bit-exact.
const OddsScale = 100

// Multiplier applied to modes missing from both the configured table and
// the built-in defaults. Identity, so a bad mode label can never over-pay.
const FallbackMultiplier = 100

var defaultOdds = map[GameMode]int64{
	ModeJodi:     9000,
	ModeHarf:     900,
	ModeCrossing: 450,
	ModeOddEven:  180,
}

// OddsTable maps a game mode to its payout multiplier in hundredths.
type OddsTable map[GameMode]int64

// DefaultOdds returns a copy of the built-in multiplier table.
func DefaultOdds() OddsTable {
	table := make(OddsTable, len(defaultOdds))
	for mode, odds := range defaultOdds {
		table[mode] = odds
	}
	return table
}

// Multiplier resolves the effective multiplier for a mode. Order:
// configured table, built-in defaults, identity fallback. Negative
// configured values are treated as absent.
func (t OddsTable) Multiplier(mode GameMode) int64 {
	if t != nil {
		if odds, ok := t[mode]; ok && odds >= 0 {
			return odds
		}
	}
	if odds, ok := defaultOdds[mode]; ok {
		return odds
	}
	return FallbackMultiplier
}

// ComputePayout returns floor(stake * multiplier) in paise for the given
// mode. Pure function: no I/O, no state. A negative stake clamps to 0.
func ComputePayout(mode GameMode, stakePaise int64, odds OddsTable) int64 {
	return Payout(stakePaise, odds.Multiplier(mode))
}

// Payout applies a multiplier in hundredths to a stake in paise,
// truncating toward zero. Settlement calls this with the multiplier
// snapshotted at placement so odds changes never affect open wagers.
func Payout(stakePaise, multiplier int64) int64 {
	if stakePaise < 0 || multiplier < 0 {
		return 0
	}
	return stakePaise * multiplier / OddsScale
}

// KnownMode reports whether mode is one of the four Satamatka wager types.
func KnownMode(mode GameMode) bool {
	_, ok := defaultOdds[mode]
	return ok
}

// Modes lists the supported wager types in display order.
func Modes() []GameMode {
	return []GameMode{ModeJodi, ModeHarf, ModeCrossing, ModeOddEven}
}
