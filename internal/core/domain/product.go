package domain

import (
	"errors"
	"math"
	"slices"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidProduct = errors.New("invalid product")
)

const placeholderImage = "/demo/urun-1.jpg"

type (
	Product struct {
		Slug           string
		Title          string
		Brand          string
		Description    string
		Price          float64
		CompareAtPrice *float64
		Category       string
		Tags           []string
		Images         []ProductImage
		Badge          string
	}

	ProductImage struct {
		Src string
		Alt string
	}
)

// HasDiscount reports whether the discount badge is shown.
// Nothing enforces CompareAtPrice > Price, it is a display convention.
func (p Product) HasDiscount() bool {
	return p.CompareAtPrice != nil && *p.CompareAtPrice > p.Price
}

// DiscountPercent is the rounded badge percentage, 0 without a discount.
func (p Product) DiscountPercent() int {
	if !p.HasDiscount() {
		return 0
	}
	compare := *p.CompareAtPrice
	return int(math.Round((compare - p.Price) / compare * 100))
}

func (p Product) HasTag(tag string) bool {
	return slices.Contains(p.Tags, tag)
}

// Cover returns the first image, or the storefront placeholder
// titled after the product.
func (p Product) Cover() ProductImage {
	if len(p.Images) != 0 && p.Images[0].Src != "" {
		return p.Images[0]
	}
	return ProductImage{Src: placeholderImage, Alt: p.Title}
}

type ProductDetail struct {
	Product Product
	Similar []Product
}

type (
	CategoryCount struct {
		Category string
		Count    int
	}

	Facets struct {
		Categories []CategoryCount
		MinPrice   float64
		MaxPrice   float64
	}

	CatalogPage struct {
		Products []Product
		Total    int
		Facets   Facets
	}
)

// ImportReport lists the slugs stored by a catalog import and the
// products rejected by validation.
type ImportReport struct {
	Stored   []string
	Rejected []ImportRejection
}

type ImportRejection struct {
	Index int
	Title string
	Err   error
}
