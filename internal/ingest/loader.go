package ingest

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/AngelCh415/ADMARGIN_GO/internal/models"
)

// Required columns of the uploaded workbook's first sheet. Presence is
// checked before any row is read.
const (
	ColOptionID    = "Option ID"
	ColProductName = "Product Name"
	ColAdType      = "Ad Type"
	ColAdSpend     = "Ad Spend"
	ColUnitsSold14 = "Units Sold (14d)"
)

var RequiredColumns = []string{ColOptionID, ColProductName, ColAdType, ColAdSpend, ColUnitsSold14}

// SchemaError reports a required column missing from the uploaded table.
type SchemaError struct {
	Missing string
	Present []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("required column %q not found; columns present: %s",
		e.Missing, strings.Join(e.Present, ", "))
}

// RowError reports a cell that could not be coerced, with its 1-based row.
type RowError struct {
	Row    int
	Column string
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d, column %q: %v", e.Row, e.Column, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

var (
	errNegative     = errors.New("value must not be negative")
	errNotInteger   = errors.New("value must be a whole number")
	errReservedByte = errors.New("cell contains a reserved control character")
)

// Load parses an uploaded xlsx into ad rows. The first sheet is read; the
// first row must be the header. Fully empty rows are skipped.
func Load(r io.Reader) ([]models.AdRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, errors.New("workbook has no header row")
	}

	col := make(map[string]int, len(rows[0]))
	var present []string
	for i, h := range rows[0] {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		col[h] = i
		present = append(present, h)
	}
	for _, want := range RequiredColumns {
		if _, ok := col[want]; !ok {
			return nil, &SchemaError{Missing: want, Present: present}
		}
	}

	out := make([]models.AdRow, 0, len(rows)-1)
	for i, rec := range rows[1:] {
		rowNo := i + 2 // 1-based, tras el encabezado
		cell := func(name string) string {
			if j := col[name]; j < len(rec) {
				return strings.TrimSpace(rec[j])
			}
			return ""
		}
		if empty(rec) {
			continue
		}
		for _, name := range []string{ColOptionID, ColProductName, ColAdType} {
			if models.ContainsKeySeparator(cell(name)) {
				return nil, &RowError{Row: rowNo, Column: name, Err: errReservedByte}
			}
		}
		spend, err := parseAmount(cell(ColAdSpend))
		if err != nil {
			return nil, &RowError{Row: rowNo, Column: ColAdSpend, Err: err}
		}
		units, err := parseCount(cell(ColUnitsSold14))
		if err != nil {
			return nil, &RowError{Row: rowNo, Column: ColUnitsSold14, Err: err}
		}
		out = append(out, models.AdRow{
			OptionID:    cell(ColOptionID),
			ProductName: cell(ColProductName),
			AdType:      cell(ColAdType),
			AdSpend:     spend,
			UnitsSold14: units,
		})
	}
	return out, nil
}

func empty(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// parseAmount coerces a money cell. Thousands separators are tolerated; an
// empty cell counts as zero.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if d.IsNegative() {
		return decimal.Decimal{}, errNegative
	}
	return d, nil
}

func parseCount(s string) (int, error) {
	d, err := parseAmount(s)
	if err != nil {
		return 0, err
	}
	if !d.IsInteger() {
		return 0, errNotInteger
	}
	return int(d.IntPart()), nil
}
