package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.CatalogTransfer = (*Service)(nil)

// ImportProducts validates ps like [Service.UpsertProduct] and stores the
// valid ones keeping their order, ps[0] first. Invalid products are
// reported and do not fail the import. A later duplicate slug wins.
func (s *Service) ImportProducts(
	ctx context.Context, ps []domain.Product,
) (domain.ImportReport, error) {
	const op = "Service.ImportProducts"

	var (
		report domain.ImportReport
		valid  []domain.Product
	)
	seen := make(map[string]int, len(ps))
	for i, p := range ps {
		p, err := normalizeProduct(p)
		if err != nil {
			report.Rejected = append(report.Rejected, domain.ImportRejection{
				Index: i, Title: p.Title, Err: err,
			})
			continue
		}
		if j, ok := seen[p.Slug]; ok {
			valid[j] = p
			continue
		}
		seen[p.Slug] = len(valid)
		valid = append(valid, p)
	}

	if len(valid) == 0 {
		return report, nil
	}

	if err := s.storeMany(ctx, valid); err != nil {
		return report, fmt.Errorf("%s: %w", op, err)
	}

	events := make([]domain.CatalogEvent, len(valid))
	for i, p := range valid {
		report.Stored = append(report.Stored, p.Slug)
		// replayed in order by caches, so the first product goes last
		events[len(valid)-1-i] = domain.CatalogEvent{Product: p}
	}
	s.announceMany(ctx, events)

	return report, nil
}

func (s *Service) storeMany(ctx context.Context, ps []domain.Product) error {
	if bulk, ok := s.products.(port.ProductsBulk); ok {
		return bulk.UpsertMany(ctx, ps)
	}
	for _, p := range slices.Backward(ps) {
		if _, err := s.products.Upsert(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// ExportProducts lists the catalog in storefront order.
func (s *Service) ExportProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "Service.ExportProducts"

	ps, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ps, nil
}
