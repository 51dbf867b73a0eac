// README: Common money value object used across modules.
package types

// DefaultCurrency is the currency every delivery charge is quoted in.
const DefaultCurrency = "PHP"

type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

func PHP(amount int64) Money {
	return Money{Amount: amount, Currency: DefaultCurrency}
}

func (m Money) Add(o Money) Money {
	cur := m.Currency
	if cur == "" {
		cur = o.Currency
	}
	return Money{Amount: m.Amount + o.Amount, Currency: cur}
}
