package catalog

import (
	"cmp"
	"slices"
	"strings"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/pkg/slug"
)

// Filter applies q to ps in a fixed order: free text, category, price
// bounds, tags, then a stable sort. The result is a new slice and applying
// the same query again yields the same list.
func Filter(ps []domain.Product, q domain.Query) []domain.Product {
	text := slug.Fold(strings.TrimSpace(q.Text))

	out := make([]domain.Product, 0, len(ps))
	for _, p := range ps {
		if !matchText(p, text) {
			continue
		}
		if !matchCategory(p, q.Category) {
			continue
		}
		if !matchPrice(p, q.Min, q.Max) {
			continue
		}
		if !matchTags(p, q.Tags, q.TagMatch) {
			continue
		}
		out = append(out, p)
	}

	sortProducts(out, q.Sort)
	return out
}

// matchText compares folded forms, so "KERATIN", "keratın" and "Keratin"
// all match, as do "sampuan" and "Şampuanı".
func matchText(p domain.Product, folded string) bool {
	if folded == "" {
		return true
	}
	haystack := slug.Fold(
		p.Title + " " + p.Brand + " " + strings.Join(p.Tags, " "),
	)
	return strings.Contains(haystack, folded)
}

func matchCategory(p domain.Product, category string) bool {
	return category == "" || p.Category == category
}

func matchPrice(p domain.Product, lo, hi *float64) bool {
	if lo != nil && p.Price < *lo {
		return false
	}
	if hi != nil && p.Price > *hi {
		return false
	}
	return true
}

func matchTags(p domain.Product, tags []string, match domain.TagMatch) bool {
	if len(tags) == 0 {
		return true
	}
	if match == domain.TagMatchAll {
		for _, t := range tags {
			if !p.HasTag(t) {
				return false
			}
		}
		return true
	}
	return slices.ContainsFunc(tags, p.HasTag)
}

// sortProducts keeps catalog order for SortPopular.
func sortProducts(ps []domain.Product, key domain.SortKey) {
	switch key {
	case domain.SortPriceAsc:
		slices.SortStableFunc(ps, func(a, b domain.Product) int {
			return cmp.Compare(a.Price, b.Price)
		})
	case domain.SortPriceDesc:
		slices.SortStableFunc(ps, func(a, b domain.Product) int {
			return cmp.Compare(b.Price, a.Price)
		})
	}
}

// SortByPopularity orders ps by descending count in place.
// Products with equal counts keep their relative order.
func SortByPopularity(ps []domain.Product, counts map[string]int) {
	slices.SortStableFunc(ps, func(a, b domain.Product) int {
		return cmp.Compare(counts[b.Slug], counts[a.Slug])
	})
}
