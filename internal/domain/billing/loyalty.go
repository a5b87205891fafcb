package billing

import "github.com/shopspring/decimal"

// Points returns the loyalty points a bill of amount earns, truncating toward zero
func (c *RateCard) Points(amount decimal.Decimal) int64 {
	if !amount.IsPositive() {
		return 0
	}
	return amount.Div(c.PointsDivisor).Floor().IntPart()
}
