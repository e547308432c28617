package domain

import (
	"net/url"
	"strconv"
)

type SortKey string

const (
	SortPopular   SortKey = "pop"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
)

// TagMatch selects how the requested tags combine.
type TagMatch int

const (
	// TagMatchAny keeps products carrying at least one requested tag.
	TagMatchAny TagMatch = iota
	// TagMatchAll keeps products carrying every requested tag.
	TagMatchAll
)

// Query is the parsed form of the storefront URL parameters.
// Nil bounds mean unbounded.
type Query struct {
	Text     string
	Category string
	Sort     SortKey
	Min      *float64
	Max      *float64
	Tags     []string
	TagMatch TagMatch
}

// Values encodes q back into storefront URL parameters.
func (q Query) Values() url.Values {
	v := make(url.Values)
	if q.Text != "" {
		v.Set("q", q.Text)
	}
	if q.Category != "" {
		v.Set("kat", q.Category)
	}
	for _, t := range q.Tags {
		v.Add("c", t)
	}
	if q.Min != nil {
		v.Set("min", strconv.FormatFloat(*q.Min, 'f', -1, 64))
	}
	if q.Max != nil {
		v.Set("max", strconv.FormatFloat(*q.Max, 'f', -1, 64))
	}
	sort := q.Sort
	if sort == "" {
		sort = SortPopular
	}
	v.Set("sort", string(sort))
	return v
}
