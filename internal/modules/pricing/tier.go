// README: Luggage-count surcharge tiers.
package pricing

import "porter/internal/types"

// SurchargeThresholds are the luggage counts at which the multiplier steps
// up. A quantity equal to a threshold already uses the higher multiplier.
var SurchargeThresholds = [...]int{4, 7, 10, 13}

// SurchargeMultiplier is 1 plus the number of thresholds quantity meets or
// exceeds, so 1..5 for quantities 1..15.
func SurchargeMultiplier(quantity int) int64 {
	m := int64(1)
	for _, t := range SurchargeThresholds {
		if quantity >= t {
			m++
		}
	}
	return m
}

func Surcharge(base types.Money, quantity int) types.Money {
	return types.Money{
		Amount:   (SurchargeMultiplier(quantity) - 1) * base.Amount,
		Currency: base.Currency,
	}
}

func PassengerTotal(base types.Money, quantity int) types.Money {
	return base.Add(Surcharge(base, quantity))
}

// BookingTotal sums PassengerTotal over every passenger, all sharing the
// booking's base price.
func BookingTotal(base types.Money, quantities []int) types.Money {
	total := types.Money{Currency: base.Currency}
	for _, q := range quantities {
		total = total.Add(PassengerTotal(base, q))
	}
	return total
}
