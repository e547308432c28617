package catalog

import (
	"cmp"
	"slices"

	"github.com/niksmo/storefront/internal/core/domain"
)

const (
	categoryWeight = 3
	tagWeight      = 2
)

// Score is 3 for a category match plus 2 per concern tag the product carries.
func Score(p domain.Product, tags domain.TagSet, categoryHint string) int {
	s := 0
	if p.Category == categoryHint {
		s += categoryWeight
	}
	return s + tagWeight*tags.Intersect(p.Tags)
}

// ScoreAndRank orders ps by descending [Score] and returns at most limit
// products; limit <= 0 returns all of them. Equal scores keep catalog order.
func ScoreAndRank(
	ps []domain.Product, tags domain.TagSet, categoryHint string, limit int,
) []domain.Product {
	type scored struct {
		p     domain.Product
		score int
	}

	ranked := make([]scored, len(ps))
	for i, p := range ps {
		ranked[i] = scored{p, Score(p, tags, categoryHint)}
	}

	slices.SortStableFunc(ranked, func(a, b scored) int {
		return cmp.Compare(b.score, a.score)
	})

	if limit > 0 && limit < len(ranked) {
		ranked = ranked[:limit]
	}

	out := make([]domain.Product, len(ranked))
	for i := range ranked {
		out[i] = ranked[i].p
	}
	return out
}
