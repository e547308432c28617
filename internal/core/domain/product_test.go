package domain_test

import (
	"testing"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func price(v float64) *float64 { return &v }

func TestProductDiscount(t *testing.T) {
	tests := []struct {
		name    string
		compare *float64
		wantHas bool
		wantPct int
	}{
		{"NoComparePrice", nil, false, 0},
		{"CompareBelowPrice", price(80), false, 0},
		{"CompareEqualsPrice", price(100), false, 0},
		{"Discount", price(125), true, 20},
		{"RoundsPercent", price(149.9), true, 33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := domain.Product{Price: 100, CompareAtPrice: tt.compare}
			assert.Equal(t, tt.wantHas, p.HasDiscount())
			assert.Equal(t, tt.wantPct, p.DiscountPercent())
		})
	}
}

func TestProductCover(t *testing.T) {
	t.Run("FirstImage", func(t *testing.T) {
		p := domain.Product{
			Title: "Argan Yağı",
			Images: []domain.ProductImage{
				{Src: "/img/a.jpg", Alt: "a"}, {Src: "/img/b.jpg"},
			},
		}
		assert.Equal(t, domain.ProductImage{Src: "/img/a.jpg", Alt: "a"}, p.Cover())
	})

	t.Run("Placeholder", func(t *testing.T) {
		p := domain.Product{Title: "Argan Yağı"}
		cover := p.Cover()
		assert.NotEmpty(t, cover.Src)
		assert.Equal(t, "Argan Yağı", cover.Alt)
	})
}

func TestTagSet(t *testing.T) {
	s := domain.NewTagSet("dry", "", "loss", "dry")
	assert.Equal(t, domain.TagSet{"dry", "loss"}, s)
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Has("loss"))
	assert.False(t, s.Has("oily"))
	assert.Equal(t, 1, s.Intersect([]string{"loss", "oily"}))
	assert.Equal(t, 0, domain.TagSet(nil).Intersect([]string{"loss"}))
}
