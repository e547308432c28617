package catalog_test

import (
	"testing"

	"github.com/niksmo/storefront/internal/core/catalog"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestSimilar(t *testing.T) {
	ps := demoCatalog()

	t.Run("SameCategoryFirst", func(t *testing.T) {
		got := catalog.Similar(ps, ps[0], 3)
		if assert.Len(t, got, 3) {
			assert.Equal(t, "arindirici-sampuan", got[0].Slug)
		}
	})

	t.Run("ExcludesItself", func(t *testing.T) {
		for _, p := range ps {
			got := catalog.Similar(ps, p, 0)
			assert.Len(t, got, len(ps)-1)
			assert.NotContains(t, slugs(got), p.Slug)
		}
	})

	t.Run("TitleSimilarity", func(t *testing.T) {
		p := domain.Product{Slug: "keratin-maske", Title: "Keratin Maske", Category: "mask"}
		others := []domain.Product{
			{Slug: "argan-yagi", Title: "Argan Yağı", Category: "serum"},
			{Slug: "keratin-maskesi", Title: "Keratin Maskesi", Category: "serum"},
			p,
		}
		got := catalog.Similar(others, p, 1)
		if assert.Len(t, got, 1) {
			assert.Equal(t, "keratin-maskesi", got[0].Slug)
		}
	})
}

func TestFacets(t *testing.T) {
	t.Run("Catalog", func(t *testing.T) {
		f := catalog.Facets(demoCatalog())
		assert.InDelta(t, 219.9, f.MinPrice, 1e-9)
		assert.InDelta(t, 399.9, f.MaxPrice, 1e-9)
		if assert.Len(t, f.Categories, 7) {
			assert.Equal(t, "shampoo", f.Categories[0].Category)
			assert.Equal(t, 2, f.Categories[0].Count)
			assert.Equal(t, "hair", f.Categories[1].Category)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		f := catalog.Facets(nil)
		assert.Zero(t, f.MinPrice)
		assert.Zero(t, f.MaxPrice)
		assert.Empty(t, f.Categories)
	})
}
