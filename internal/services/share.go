package services

// ShareCut computes a percentage share of a profit amount using integer
// floor division. 50% of 51 is 25; fractional units are never booked.
func ShareCut(amount int64, pct int) int64 {
	return amount * int64(pct) / 100
}
