package export

import (
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/AngelCh415/ADMARGIN_GO/internal/report"
)

const (
	DetailSheet  = "Ad Type Results"
	SummarySheet = "Profit Summary"

	// Placeholder marks a figure that could not be computed. Never 0, never
	// blank: absence has to be visible.
	Placeholder = "-"

	xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var (
	detailHeader = []string{
		"Ad Type", "Option ID", "Product Name",
		"Units Sold (14d)", "Ad Spend", "Avg Ad Cost", "Ad Profit",
	}
	summaryHeader = []string{
		"Option ID", "Product Name",
		"Total Units Sold", "Total Ad Spend", "Profit Per Unit", "Total Profit",
	}
)

// Workbook builds the two-sheet export: one detail row per ad-type group,
// one summary row per product.
func Workbook(res report.Result) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", DetailSheet)
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return nil, err
	}

	writeHeader(f, DetailSheet, detailHeader)
	for i, d := range res.Detail {
		cells := []any{
			d.AdType, d.OptionID, d.ProductName, d.UnitsSold14,
			d.AdSpend.InexactFloat64(),
			nullCell(d.AvgAdCostPerUnit.Valid, roundedf(d.AvgAdCostPerUnit)),
			nullCell(d.AdProfit.Valid, rawf(d.AdProfit)),
		}
		writeRow(f, DetailSheet, i+2, cells)
	}

	writeHeader(f, SummarySheet, summaryHeader)
	for i, s := range res.Summary {
		cells := []any{
			s.OptionID, s.ProductName, s.TotalUnitsSold,
			s.TotalAdSpend.InexactFloat64(),
			nullCell(s.ProfitPerUnit.Valid, roundedf(s.ProfitPerUnit)),
			nullCell(s.TotalProfit.Valid, rawf(s.TotalProfit)),
		}
		writeRow(f, SummarySheet, i+2, cells)
	}
	return f, nil
}

// WriteHTTP streams the workbook as a download attachment.
func WriteHTTP(w http.ResponseWriter, res report.Result) error {
	f, err := Workbook(res)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", xlsxMIME)
	w.Header().Set("Content-Disposition", `attachment; filename="ad_profit_report.xlsx"`)
	return f.Write(w)
}

func writeHeader(f *excelize.File, sheet string, header []string) {
	col := 'A'
	for _, h := range header {
		f.SetCellValue(sheet, string(col)+"1", h)
		col++
	}
}

func writeRow(f *excelize.File, sheet string, rowNo int, cells []any) {
	col := 'A'
	for _, v := range cells {
		f.SetCellValue(sheet, string(col)+fmt.Sprint(rowNo), v)
		col++
	}
}

func nullCell(valid bool, v any) any {
	if !valid {
		return Placeholder
	}
	return v
}

// rawf and roundedf adapt nullable figures for spreadsheet cells; the average
// figures are exported in whole currency units like the display table.
func rawf(d decimal.NullDecimal) float64 { return d.Decimal.InexactFloat64() }

func roundedf(d decimal.NullDecimal) float64 {
	return float64(d.Decimal.Round(0).IntPart())
}
