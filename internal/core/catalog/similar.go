package catalog

import (
	"cmp"
	"slices"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/pkg/slug"
)

// Similar returns up to limit products other than p: same category first,
// then by title similarity (Jaro-Winkler on folded titles).
func Similar(ps []domain.Product, p domain.Product, limit int) []domain.Product {
	type candidate struct {
		p          domain.Product
		sameCat    bool
		similarity float64
	}

	metric := metrics.NewJaroWinkler()
	title := slug.Fold(p.Title)

	var cs []candidate
	for _, other := range ps {
		if other.Slug == p.Slug {
			continue
		}
		cs = append(cs, candidate{
			p:          other,
			sameCat:    other.Category == p.Category,
			similarity: strutil.Similarity(title, slug.Fold(other.Title), metric),
		})
	}

	slices.SortStableFunc(cs, func(a, b candidate) int {
		if a.sameCat != b.sameCat {
			if a.sameCat {
				return -1
			}
			return 1
		}
		return cmp.Compare(b.similarity, a.similarity)
	})

	if limit > 0 && limit < len(cs) {
		cs = cs[:limit]
	}

	out := make([]domain.Product, len(cs))
	for i := range cs {
		out[i] = cs[i].p
	}
	return out
}
