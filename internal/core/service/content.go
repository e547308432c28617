package service

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/pkg/slug"
)

func (s *Service) BlogPosts(ctx context.Context, tag string) ([]domain.BlogPost, error) {
	const op = "Service.BlogPosts"

	posts, err := s.content.BlogPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return filterByTag(posts, tag, func(p domain.BlogPost) []string {
		return p.Tags
	}), nil
}

func (s *Service) BlogPost(
	ctx context.Context, postSlug string,
) (domain.BlogPostDetail, error) {
	const op = "Service.BlogPost"

	posts, err := s.content.BlogPosts(ctx)
	if err != nil {
		return domain.BlogPostDetail{}, fmt.Errorf("%s: %w", op, err)
	}

	i := slices.IndexFunc(posts, func(p domain.BlogPost) bool {
		return slug.Equal(p.Slug, postSlug)
	})
	if i < 0 {
		return domain.BlogPostDetail{}, fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}

	products, err := s.resolveProducts(ctx, posts[i].ProductSlugs)
	if err != nil {
		return domain.BlogPostDetail{}, fmt.Errorf("%s: %w", op, err)
	}

	return domain.BlogPostDetail{Post: posts[i], Products: products}, nil
}

func (s *Service) ForumThreads(
	ctx context.Context, tag string,
) ([]domain.ForumThread, error) {
	const op = "Service.ForumThreads"

	threads, err := s.content.ForumThreads(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return filterByTag(threads, tag, func(t domain.ForumThread) []string {
		return t.Tags
	}), nil
}

func (s *Service) ForumThread(
	ctx context.Context, threadSlug string,
) (domain.ForumThreadDetail, error) {
	const op = "Service.ForumThread"

	threads, err := s.content.ForumThreads(ctx)
	if err != nil {
		return domain.ForumThreadDetail{}, fmt.Errorf("%s: %w", op, err)
	}

	i := slices.IndexFunc(threads, func(t domain.ForumThread) bool {
		return slug.Equal(t.Slug, threadSlug)
	})
	if i < 0 {
		return domain.ForumThreadDetail{}, fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}

	products, err := s.resolveProducts(ctx, threads[i].ProductSlugs)
	if err != nil {
		return domain.ForumThreadDetail{}, fmt.Errorf("%s: %w", op, err)
	}

	return domain.ForumThreadDetail{Thread: threads[i], Products: products}, nil
}

// resolveProducts looks up slugs in order and skips unknown ones.
func (s *Service) resolveProducts(
	ctx context.Context, slugs []string,
) ([]domain.Product, error) {
	var out []domain.Product
	for _, ps := range slugs {
		p, err := s.products.Get(ctx, slug.Make(ps))
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func filterByTag[T any](items []T, tag string, tagsOf func(T) []string) []T {
	if slug.Make(tag) == "" {
		return items
	}
	var out []T
	for _, it := range items {
		if slices.ContainsFunc(tagsOf(it), func(t string) bool {
			return slug.Equal(t, tag)
		}) {
			out = append(out, it)
		}
	}
	return out
}
