// Package cart holds the cart operations and checkout pricing.
//
// Every operation returns a new cart and leaves its argument untouched,
// so a loaded cart can be shared with readers while it is being changed.
package cart

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/pkg/money"
)

// Add puts qty units of item into c. An existing line with the same id
// grows by qty; quantities below one count as one.
func Add(c domain.Cart, item domain.CartItem, qty int) domain.Cart {
	qty = max(qty, 1)
	items := slices.Clone(c.Items)
	if i := index(items, item.ID); i >= 0 {
		items[i].Qty += qty
		return domain.Cart{Items: items}
	}
	item.Qty = qty
	return domain.Cart{Items: append(items, item)}
}

func Inc(c domain.Cart, id string) domain.Cart {
	return update(c, id, func(it *domain.CartItem) { it.Qty++ })
}

// Dec decrements the quantity but never below one; use [Remove] to drop
// a line.
func Dec(c domain.Cart, id string) domain.Cart {
	return update(c, id, func(it *domain.CartItem) { it.Qty = max(it.Qty-1, 1) })
}

func Remove(c domain.Cart, id string) domain.Cart {
	items := slices.DeleteFunc(slices.Clone(c.Items), func(it domain.CartItem) bool {
		return it.ID == id
	})
	return domain.Cart{Items: items}
}

func Clear() domain.Cart {
	return domain.Cart{}
}

// Count is the number of units in c.
func Count(c domain.Cart) int {
	n := 0
	for _, it := range c.Items {
		n += it.Qty
	}
	return n
}

func Subtotal(c domain.Cart) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range c.Items {
		line := money.FromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Qty)))
		sum = sum.Add(line)
	}
	return sum.Round(money.Kurus)
}

func update(c domain.Cart, id string, fn func(*domain.CartItem)) domain.Cart {
	items := slices.Clone(c.Items)
	if i := index(items, id); i >= 0 {
		fn(&items[i])
	}
	return domain.Cart{Items: items}
}

func index(items []domain.CartItem, id string) int {
	return slices.IndexFunc(items, func(it domain.CartItem) bool {
		return it.ID == id
	})
}
