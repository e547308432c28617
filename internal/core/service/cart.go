package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/niksmo/storefront/internal/core/cart"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/pkg/slug"
)

func (s *Service) Cart(ctx context.Context, sessionID string) (domain.Cart, error) {
	const op = "Service.Cart"

	c, err := s.carts.LoadCart(ctx, sessionID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

// AddToCart adds qty units of the product, taking title, price and image
// from the catalog at the time of the add.
func (s *Service) AddToCart(
	ctx context.Context, sessionID, productSlug string, qty int,
) (domain.Cart, error) {
	const op = "Service.AddToCart"

	p, err := s.products.Get(ctx, slug.Make(productSlug))
	if err != nil {
		return domain.Cart{}, fmt.Errorf("%s: %w", op, err)
	}

	item := domain.CartItem{
		ID:    p.Slug,
		Title: p.Title,
		Price: p.Price,
		Image: p.Cover().Src,
	}

	c, err := s.changeCart(ctx, sessionID, func(c domain.Cart) domain.Cart {
		return cart.Add(c, item, qty)
	})
	if err != nil {
		return domain.Cart{}, fmt.Errorf("%s: %w", op, err)
	}

	s.emitCartEvent(ctx, domain.CartEvent{Slug: p.Slug, Qty: max(qty, 1)})
	return c, nil
}

// IncCartItem, DecCartItem and RemoveCartItem accept the item id in any
// form that slugs to it.
func (s *Service) IncCartItem(
	ctx context.Context, sessionID, id string,
) (domain.Cart, error) {
	const op = "Service.IncCartItem"

	c, err := s.changeCart(ctx, sessionID, func(c domain.Cart) domain.Cart {
		return cart.Inc(c, slug.Make(id))
	})
	if err != nil {
		return domain.Cart{}, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

func (s *Service) DecCartItem(
	ctx context.Context, sessionID, id string,
) (domain.Cart, error) {
	const op = "Service.DecCartItem"

	c, err := s.changeCart(ctx, sessionID, func(c domain.Cart) domain.Cart {
		return cart.Dec(c, slug.Make(id))
	})
	if err != nil {
		return domain.Cart{}, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

func (s *Service) RemoveCartItem(
	ctx context.Context, sessionID, id string,
) (domain.Cart, error) {
	const op = "Service.RemoveCartItem"

	c, err := s.changeCart(ctx, sessionID, func(c domain.Cart) domain.Cart {
		return cart.Remove(c, slug.Make(id))
	})
	if err != nil {
		return domain.Cart{}, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

func (s *Service) ClearCart(ctx context.Context, sessionID string) error {
	const op = "Service.ClearCart"

	if err := s.carts.DeleteCart(ctx, sessionID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// CartTotals prices the session cart. Unknown coupons fail with
// [cart.ErrUnknownCoupon].
func (s *Service) CartTotals(
	ctx context.Context, sessionID, coupon string,
) (domain.Cart, domain.Totals, error) {
	const op = "Service.CartTotals"

	c, err := s.carts.LoadCart(ctx, sessionID)
	if err != nil {
		return domain.Cart{}, domain.Totals{}, fmt.Errorf("%s: %w", op, err)
	}

	totals, err := s.pricing.Totals(c, coupon)
	if err != nil {
		return c, domain.Totals{}, fmt.Errorf("%s: %w", op, err)
	}
	return c, totals, nil
}

func (s *Service) changeCart(
	ctx context.Context, sessionID string, fn func(domain.Cart) domain.Cart,
) (domain.Cart, error) {
	c, err := s.carts.LoadCart(ctx, sessionID)
	if err != nil {
		return domain.Cart{}, err
	}

	c = fn(c)
	if err := s.carts.SaveCart(ctx, sessionID, c); err != nil {
		return domain.Cart{}, err
	}
	return c, nil
}

func (s *Service) emitCartEvent(ctx context.Context, e domain.CartEvent) {
	const op = "Service.emitCartEvent"

	if s.cartEvents == nil {
		return
	}

	if err := s.cartEvents.EmitCartEvent(ctx, e); err != nil {
		slog.With("op", op).Warn(
			"failed to emit cart event", "slug", e.Slug, "err", err,
		)
	}
}
