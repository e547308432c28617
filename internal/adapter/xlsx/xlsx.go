// Package xlsx reads and writes the catalog spreadsheet used by the
// merchandising team.
package xlsx

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/pkg/slug"
)

const SheetName = "Ürünler"

var ErrNoTitleColumn = errors.New("title column is missing")

// Column headers, Turkish as written by the export. Reading also accepts
// the English names.
var columns = [...]struct {
	header  string
	aliases []string
}{
	{"Slug", nil},
	{"Başlık", []string{"title"}},
	{"Marka", []string{"brand"}},
	{"Açıklama", []string{"description"}},
	{"Fiyat", []string{"price"}},
	{"Eski Fiyat", []string{"compare-at-price"}},
	{"Kategori", []string{"category"}},
	{"Etiketler", []string{"tags"}},
	{"Görsel", []string{"image"}},
	{"Rozet", []string{"badge"}},
}

const (
	colSlug = iota
	colTitle
	colBrand
	colDescription
	colPrice
	colCompareAt
	colCategory
	colTags
	colImage
	colBadge
)

// A RowError reports a skipped spreadsheet row, 1-based like the sheet.
type RowError struct {
	Row int
	Err error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e RowError) Unwrap() error {
	return e.Err
}

// ReadProducts parses the first sheet. The header row may list columns in
// any order; rows without a title or with an unparseable price are
// reported and skipped.
func ReadProducts(r io.Reader) ([]domain.Product, []RowError, error) {
	const op = "xlsx.ReadProducts"

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(rows) == 0 {
		return nil, nil, nil
	}

	index := headerIndex(rows[0])
	if index[colTitle] < 0 {
		return nil, nil, fmt.Errorf("%s: %w", op, ErrNoTitleColumn)
	}

	var (
		ps      []domain.Product
		rowErrs []RowError
	)
	for i, row := range rows[1:] {
		cell := func(col int) string {
			j := index[col]
			if j < 0 || j >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[j])
		}

		if isBlank(row) {
			continue
		}

		p, err := rowProduct(cell)
		if err != nil {
			rowErrs = append(rowErrs, RowError{Row: i + 2, Err: err})
			continue
		}
		ps = append(ps, p)
	}
	return ps, rowErrs, nil
}

func rowProduct(cell func(int) string) (domain.Product, error) {
	p := domain.Product{
		Slug:        cell(colSlug),
		Title:       cell(colTitle),
		Brand:       cell(colBrand),
		Description: cell(colDescription),
		Category:    slug.Make(cell(colCategory)),
		Badge:       cell(colBadge),
	}
	if p.Title == "" {
		return p, errors.New("title is empty")
	}

	price, err := parsePrice(cell(colPrice))
	if err != nil {
		return p, fmt.Errorf("price: %w", err)
	}
	p.Price = price

	if s := cell(colCompareAt); s != "" {
		v, err := parsePrice(s)
		if err != nil {
			return p, fmt.Errorf("compare at price: %w", err)
		}
		p.CompareAtPrice = &v
	}

	var tags domain.TagSet
	for _, t := range strings.Split(cell(colTags), ",") {
		tags = tags.Add(slug.Make(t))
	}
	p.Tags = tags

	if src := cell(colImage); src != "" {
		p.Images = []domain.ProductImage{{Src: src, Alt: p.Title}}
	}
	return p, nil
}

// parsePrice accepts "1.234,50", "1234,5" and "1234.5".
func parsePrice(s string) (float64, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "₺"))
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, errors.New("negative")
	}
	return v, nil
}

func headerIndex(header []string) [len(columns)]int {
	var index [len(columns)]int
	for i := range index {
		index[i] = -1
	}
	for j, h := range header {
		key := slug.Make(h)
		for i, c := range columns {
			if key == slug.Make(c.header) || containsSlug(c.aliases, key) {
				index[i] = j
			}
		}
	}
	return index
}

func containsSlug(aliases []string, key string) bool {
	for _, a := range aliases {
		if a == key {
			return true
		}
	}
	return false
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// WriteProducts exports ps in the layout [ReadProducts] accepts.
func WriteProducts(w io.Writer, ps []domain.Product) error {
	const op = "xlsx.WriteProducts"

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	for i, c := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(SheetName, cell, c.header); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	for i, p := range ps {
		values := []any{
			p.Slug, p.Title, p.Brand, p.Description, p.Price, nil,
			p.Category, strings.Join(p.Tags, ", "), p.Cover().Src, p.Badge,
		}
		if p.CompareAtPrice != nil {
			values[colCompareAt] = *p.CompareAtPrice
		}
		if len(p.Images) == 0 {
			values[colImage] = ""
		}

		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
