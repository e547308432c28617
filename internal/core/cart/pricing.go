package cart

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/pkg/money"
)

var ErrUnknownCoupon = errors.New("unknown coupon")

const (
	DefaultCoupon           = "GUZEL10"
	DefaultCouponPercent    = 10
	DefaultShippingFee      = 59
	DefaultFreeShippingFrom = 1000
)

// Pricing turns a cart into checkout totals.
type Pricing struct {
	coupons          map[string]decimal.Decimal
	shippingFee      decimal.Decimal
	freeShippingFrom decimal.Decimal
}

type PricingOpt func(*Pricing)

// WithCoupon registers a code giving percent off the subtotal.
// Codes are matched case-insensitively.
func WithCoupon(code string, percent int) PricingOpt {
	return func(p *Pricing) {
		p.coupons[normalizeCoupon(code)] = decimal.NewFromInt(int64(percent))
	}
}

func WithShipping(fee, freeFrom float64) PricingOpt {
	return func(p *Pricing) {
		p.shippingFee = money.FromFloat(fee)
		p.freeShippingFrom = money.FromFloat(freeFrom)
	}
}

// NewPricing returns pricing with the storefront defaults: flat ₺59
// shipping, free from ₺1000 after discount. Without a [WithCoupon]
// option the default coupon is registered.
func NewPricing(opts ...PricingOpt) Pricing {
	p := Pricing{
		coupons:          make(map[string]decimal.Decimal),
		shippingFee:      decimal.NewFromInt(DefaultShippingFee),
		freeShippingFrom: decimal.NewFromInt(DefaultFreeShippingFrom),
	}
	for _, opt := range opts {
		opt(&p)
	}
	if len(p.coupons) == 0 {
		WithCoupon(DefaultCoupon, DefaultCouponPercent)(&p)
	}
	return p
}

// Totals prices c. An empty coupon means no discount, an unregistered
// one fails with [ErrUnknownCoupon].
func (p Pricing) Totals(c domain.Cart, coupon string) (domain.Totals, error) {
	code := normalizeCoupon(coupon)

	percent := decimal.Zero
	if code != "" {
		v, ok := p.coupons[code]
		if !ok {
			return domain.Totals{}, ErrUnknownCoupon
		}
		percent = v
	}

	subtotal := Subtotal(c)
	discount := subtotal.Mul(percent).Div(decimal.NewFromInt(100)).Round(money.Kurus)
	discounted := subtotal.Sub(discount)

	shipping := p.shippingFee
	if len(c.Items) == 0 || discounted.GreaterThanOrEqual(p.freeShippingFrom) {
		shipping = decimal.Zero
	}

	return domain.Totals{
		Coupon:   code,
		Subtotal: subtotal,
		Discount: discount,
		Shipping: shipping,
		Total:    discounted.Add(shipping).Round(money.Kurus),
	}, nil
}

func normalizeCoupon(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
