package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/service"
)

var (
	postsFixture = []domain.BlogPost{
		{
			Slug: "boyali-sac-bakimi", Title: "Boyalı Saç Bakımı",
			Tags:         []string{"Boyalı Saç", "Bakım"},
			ProductSlugs: []string{"keratin-maske", "silinmis-urun"},
		},
		{Slug: "sac-dokulmesi", Title: "Saç Dökülmesi", Tags: []string{"Dökülme"}},
	}
	threadsFixture = []domain.ForumThread{
		{Slug: "kepek-icin-ne-kullaniyorsunuz", Tags: []string{"kepek"}, ProductSlugs: []string{"argan-sampuan"}},
	}
)

func newContentService() *service.Service {
	products := new(MockProductsStorage)
	products.On("Get", mock.Anything, "keratin-maske").Return(catalogFixture[1], nil)
	products.On("Get", mock.Anything, "argan-sampuan").Return(catalogFixture[0], nil)
	products.On("Get", mock.Anything, "silinmis-urun").Return(domain.Product{}, domain.ErrNotFound)

	content := new(MockContentStorage)
	content.On("BlogPosts", mock.Anything).Return(postsFixture, nil)
	content.On("ForumThreads", mock.Anything).Return(threadsFixture, nil)

	return service.New(products, content, nil)
}

func TestBlogPosts(t *testing.T) {
	s := newContentService()

	t.Run("All", func(t *testing.T) {
		posts, err := s.BlogPosts(t.Context(), "")
		require.NoError(t, err)
		assert.Len(t, posts, 2)
	})

	t.Run("ByTagSlug", func(t *testing.T) {
		posts, err := s.BlogPosts(t.Context(), "boyali-sac")
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, "boyali-sac-bakimi", posts[0].Slug)
	})

	t.Run("UnknownTag", func(t *testing.T) {
		posts, err := s.BlogPosts(t.Context(), "makyaj")
		require.NoError(t, err)
		assert.Empty(t, posts)
	})
}

func TestBlogPost(t *testing.T) {
	s := newContentService()

	t.Run("ResolvesKnownProducts", func(t *testing.T) {
		d, err := s.BlogPost(t.Context(), "Boyalı Saç Bakımı")
		require.NoError(t, err)
		assert.Equal(t, "boyali-sac-bakimi", d.Post.Slug)
		require.Len(t, d.Products, 1)
		assert.Equal(t, "keratin-maske", d.Products[0].Slug)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := s.BlogPost(t.Context(), "yok")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestForum(t *testing.T) {
	s := newContentService()

	threads, err := s.ForumThreads(t.Context(), "Kepek")
	require.NoError(t, err)
	assert.Len(t, threads, 1)

	d, err := s.ForumThread(t.Context(), threadsFixture[0].Slug)
	require.NoError(t, err)
	require.Len(t, d.Products, 1)
	assert.Equal(t, "argan-sampuan", d.Products[0].Slug)

	_, err = s.ForumThread(t.Context(), "yok")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
