package service

import (
	"context"
	"fmt"

	"github.com/niksmo/storefront/internal/core/catalog"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/survey"
)

// Recommend ranks the catalog for the survey answers. A limit <= 0 uses
// the configured default.
func (s *Service) Recommend(
	ctx context.Context, answers domain.Answers, limit int,
) (domain.Recommendation, error) {
	const op = "Service.Recommend"

	if limit <= 0 {
		limit = s.recommendLimit
	}

	hint, tags := survey.DeriveTags(answers)

	ps, err := s.products.List(ctx)
	if err != nil {
		return domain.Recommendation{}, fmt.Errorf("%s: %w", op, err)
	}

	return domain.Recommendation{
		Category: hint,
		Tags:     tags,
		Products: catalog.ScoreAndRank(ps, tags, hint, limit),
		StoreQuery: domain.Query{
			Category: hint,
			Tags:     tags,
			Sort:     domain.SortPopular,
		},
	}, nil
}
