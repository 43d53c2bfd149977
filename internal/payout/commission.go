package payout

// Commission rates are stored in basis points: 10000 means 100%, 250
// means 2.5%. Independent of payout multipliers.
const CommissionScale = 10000

// CommissionAmount returns floor(amount * rate) in paise for a rate in
// basis points. Negative inputs yield 0.
func CommissionAmount(amountPaise, rateBasisPoints int64) int64 {
	if amountPaise < 0 || rateBasisPoints < 0 {
		return 0
	}
	return amountPaise * rateBasisPoints / CommissionScale
}
