// Package catalog filters, sorts and ranks product lists.
//
// Everything here works on an already loaded slice of products, never
// mutates its input and never fails: malformed parameters degrade to
// "no constraint".
package catalog

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/niksmo/storefront/internal/core/domain"
)

const (
	ParamText     = "q"
	ParamCategory = "kat"
	ParamSort     = "sort"
	ParamMin      = "min"
	ParamMax      = "max"
	ParamTag      = "c"
)

// ParseQuery reads storefront URL parameters. Every parameter is optional.
func ParseQuery(v url.Values, match domain.TagMatch) domain.Query {
	return domain.Query{
		Text:     strings.TrimSpace(v.Get(ParamText)),
		Category: strings.TrimSpace(v.Get(ParamCategory)),
		Sort:     parseSort(v.Get(ParamSort)),
		Min:      parseBound(v.Get(ParamMin)),
		Max:      parseBound(v.Get(ParamMax)),
		Tags:     parseTags(v[ParamTag]),
		TagMatch: match,
	}
}

func parseSort(s string) domain.SortKey {
	switch k := domain.SortKey(strings.TrimSpace(s)); k {
	case domain.SortPriceAsc, domain.SortPriceDesc:
		return k
	default:
		return domain.SortPopular
	}
}

// parseBound returns nil for anything that is not a finite number.
// A comma is accepted as the decimal separator.
func parseBound(s string) *float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func parseTags(vs []string) []string {
	var tags domain.TagSet
	for _, v := range vs {
		tags = tags.Add(strings.TrimSpace(v))
	}
	return tags
}
