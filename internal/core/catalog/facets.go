package catalog

import "github.com/niksmo/storefront/internal/core/domain"

// Facets summarises ps for the filter panel. Categories keep the order
// of their first appearance.
func Facets(ps []domain.Product) domain.Facets {
	var f domain.Facets
	if len(ps) == 0 {
		return f
	}

	index := make(map[string]int)
	f.MinPrice, f.MaxPrice = ps[0].Price, ps[0].Price

	for _, p := range ps {
		f.MinPrice = min(f.MinPrice, p.Price)
		f.MaxPrice = max(f.MaxPrice, p.Price)

		i, ok := index[p.Category]
		if !ok {
			i = len(f.Categories)
			index[p.Category] = i
			f.Categories = append(f.Categories, domain.CategoryCount{Category: p.Category})
		}
		f.Categories[i].Count++
	}
	return f
}
