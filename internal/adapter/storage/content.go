package storage

import (
	"context"
	"slices"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.ContentStorage = (*ContentRepository)(nil)

// ContentRepository serves read-only blog posts and forum threads.
type ContentRepository struct {
	posts   []domain.BlogPost
	threads []domain.ForumThread
}

func NewContentRepository(
	posts []domain.BlogPost, threads []domain.ForumThread,
) ContentRepository {
	return ContentRepository{posts, threads}
}

func (r ContentRepository) BlogPosts(context.Context) ([]domain.BlogPost, error) {
	return slices.Clone(r.posts), nil
}

func (r ContentRepository) ForumThreads(context.Context) ([]domain.ForumThread, error) {
	return slices.Clone(r.threads), nil
}
