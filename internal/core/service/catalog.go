package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/niksmo/storefront/internal/core/catalog"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/pkg/slug"
)

func (s *Service) Browse(
	ctx context.Context, q domain.Query,
) (domain.CatalogPage, error) {
	const op = "Service.Browse"

	if err := ctx.Err(); err != nil {
		return domain.CatalogPage{}, fmt.Errorf("%s: %w", op, err)
	}

	ps, err := s.products.List(ctx)
	if err != nil {
		return domain.CatalogPage{}, fmt.Errorf("%s: %w", op, err)
	}

	found := catalog.Filter(ps, q)
	if q.Sort == domain.SortPopular || q.Sort == "" {
		s.sortByPopularity(ctx, found)
	}

	return domain.CatalogPage{
		Products: found,
		Total:    len(found),
		Facets:   catalog.Facets(catalog.Filter(ps, domain.Query{Text: q.Text})),
	}, nil
}

// sortByPopularity keeps catalog order when popularity is unavailable.
func (s *Service) sortByPopularity(ctx context.Context, ps []domain.Product) {
	const op = "Service.sortByPopularity"

	if s.popularity == nil || len(ps) < 2 {
		return
	}

	slugs := make([]string, len(ps))
	for i, p := range ps {
		slugs[i] = p.Slug
	}

	counts, err := s.popularity.Popularity(ctx, slugs)
	if err != nil {
		slog.With("op", op).Warn("popularity unavailable", "err", err)
		return
	}
	catalog.SortByPopularity(ps, counts)
}

func (s *Service) Product(
	ctx context.Context, productSlug string,
) (domain.ProductDetail, error) {
	const op = "Service.Product"

	key := slug.Make(productSlug)
	if key == "" {
		return domain.ProductDetail{}, fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}

	p, err := s.products.Get(ctx, key)
	if err != nil {
		return domain.ProductDetail{}, fmt.Errorf("%s: %w", op, err)
	}

	ps, err := s.products.List(ctx)
	if err != nil {
		return domain.ProductDetail{}, fmt.Errorf("%s: %w", op, err)
	}

	return domain.ProductDetail{
		Product: p,
		Similar: catalog.Similar(ps, p, s.similarLimit),
	}, nil
}

// UpsertProduct stores p under its normalised slug, derived from the title
// when empty, and announces the change on the catalog feed.
func (s *Service) UpsertProduct(
	ctx context.Context, p domain.Product,
) (domain.Product, error) {
	const op = "Service.UpsertProduct"

	p, err := normalizeProduct(p)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	stored, err := s.products.Upsert(ctx, p)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	s.announce(ctx, domain.CatalogEvent{Product: stored})
	return stored, nil
}

func (s *Service) DeleteProduct(ctx context.Context, productSlug string) error {
	const op = "Service.DeleteProduct"

	key := slug.Make(productSlug)
	if key == "" {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}

	if err := s.products.Delete(ctx, key); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.announce(ctx, domain.CatalogEvent{
		Product: domain.Product{Slug: key}, Deleted: true,
	})
	return nil
}

// ApplyCatalogEvents updates the read cache from the catalog feed.
func (s *Service) ApplyCatalogEvents(
	ctx context.Context, events []domain.CatalogEvent,
) error {
	const op = "Service.ApplyCatalogEvents"

	if s.catalogCache == nil || len(events) == 0 {
		return nil
	}

	if err := s.catalogCache.Apply(ctx, events); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// announce publishes a catalog change. The write already succeeded, so a
// failed publish only delays other instances until the next change.
func (s *Service) announce(ctx context.Context, e domain.CatalogEvent) {
	s.announceMany(ctx, []domain.CatalogEvent{e})
}

func (s *Service) announceMany(ctx context.Context, es []domain.CatalogEvent) {
	const op = "Service.announce"

	if s.catalogProducer == nil {
		return
	}

	if err := s.catalogProducer.ProduceCatalogEvents(ctx, es); err != nil {
		slog.With("op", op).Error(
			"failed to publish catalog events",
			"events", len(es), "err", err,
		)
	}
}

func normalizeProduct(p domain.Product) (domain.Product, error) {
	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" {
		return p, errors.Join(domain.ErrInvalidProduct, errors.New("title is required"))
	}

	key := slug.Make(p.Slug)
	if key == "" {
		key = slug.Make(p.Title)
	}
	if key == "" {
		return p, errors.Join(domain.ErrInvalidProduct, errors.New("slug is required"))
	}
	p.Slug = key

	if p.Price < 0 {
		return p, errors.Join(domain.ErrInvalidProduct, errors.New("price must not be negative"))
	}

	if p.CompareAtPrice != nil && *p.CompareAtPrice <= 0 {
		p.CompareAtPrice = nil
	}

	return p, nil
}
