package models

// Progressive discount brackets. The bracket is selected once, on the
// pre-discount sum, never iteratively.
const (
	progressiveUpperThreshold = 7000.0
	progressiveLowerThreshold = 3000.0
	progressiveUpperRate      = 0.20
	progressiveLowerRate      = 0.10
)

// StandardTotal sums the frozen line totals with no discount.
func StandardTotal(items []OrderItem) float64 {
	var total float64
	for _, item := range items {
		total += item.LineTotal
	}
	return total
}

// FixedDiscountTotal applies a fixed percentage discount to the
// standard total. The caller is responsible for keeping percent within
// [0,100]; order construction enforces it.
func FixedDiscountTotal(items []OrderItem, percent float64) float64 {
	sum := StandardTotal(items)
	return sum - sum*percent/100
}

// ProgressiveDiscountTotal applies the bracket discount: 20% above
// 7000, 10% above 3000, otherwise none.
func ProgressiveDiscountTotal(items []OrderItem) float64 {
	sum := StandardTotal(items)
	switch {
	case sum > progressiveUpperThreshold:
		return sum - sum*progressiveUpperRate
	case sum > progressiveLowerThreshold:
		return sum - sum*progressiveLowerRate
	default:
		return sum
	}
}
