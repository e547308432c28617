package domain

import "github.com/shopspring/decimal"

type (
	// A CartItem is keyed by the product slug.
	CartItem struct {
		ID    string
		Title string
		Price float64
		Image string
		Qty   int
	}

	Cart struct {
		Items []CartItem
	}

	Totals struct {
		Coupon   string
		Subtotal decimal.Decimal
		Discount decimal.Decimal
		Shipping decimal.Decimal
		Total    decimal.Decimal
	}
)
