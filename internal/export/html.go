package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/AngelCh415/ADMARGIN_GO/internal/report"
)

// profitSpan renders an emphasized profit cell, matching the styled tables of
// the sheet this tool replaces.
const profitSpan = `<span style="color:red;font-weight:bold;">%s</span>`

const tableStyle = `<style>.admargin th, .admargin td {text-align: center; padding: 2px 8px;}</style>`

// RenderHTML produces the display fragment: both result tables, thousands
// separators on every figure, profit columns emphasized, "-" where a figure
// could not be computed.
func RenderHTML(res report.Result) string {
	var b strings.Builder
	b.WriteString(tableStyle)

	b.WriteString(`<h3>Ad Type Results</h3>`)
	openTable(&b, detailHeader)
	for _, d := range res.Detail {
		cells := []string{
			esc(d.AdType), esc(d.OptionID), esc(d.ProductName),
			commaInt(int64(d.UnitsSold14)),
			commaDec(d.AdSpend),
			nullText(d.AvgAdCostPerUnit, commaNull(d.AvgAdCostPerUnit)),
			nullText(d.AdProfit, fmt.Sprintf(profitSpan, commaNull(d.AdProfit))),
		}
		writeTr(&b, cells)
	}
	closeTable(&b)

	b.WriteString(`<h3>Profit Summary</h3>`)
	openTable(&b, summaryHeader)
	for _, s := range res.Summary {
		cells := []string{
			esc(s.OptionID), esc(s.ProductName),
			commaInt(int64(s.TotalUnitsSold)),
			commaDec(s.TotalAdSpend),
			nullText(s.ProfitPerUnit, commaNull(s.ProfitPerUnit)),
			nullText(s.TotalProfit, fmt.Sprintf(profitSpan, commaNull(s.TotalProfit))),
		}
		writeTr(&b, cells)
	}
	closeTable(&b)
	return b.String()
}

func openTable(b *strings.Builder, header []string) {
	b.WriteString(`<table class="admargin"><thead><tr>`)
	for _, h := range header {
		b.WriteString("<th>")
		b.WriteString(esc(h))
		b.WriteString("</th>")
	}
	b.WriteString("</tr></thead><tbody>")
}

func closeTable(b *strings.Builder) { b.WriteString("</tbody></table>") }

func writeTr(b *strings.Builder, cells []string) {
	b.WriteString("<tr>")
	for _, c := range cells {
		b.WriteString("<td>")
		b.WriteString(c)
		b.WriteString("</td>")
	}
	b.WriteString("</tr>")
}

func esc(s string) string { return html.EscapeString(s) }

func nullText(d decimal.NullDecimal, rendered string) string {
	if !d.Valid {
		return Placeholder
	}
	return rendered
}

// commaInt formats n with thousands separators.
func commaInt(n int64) string {
	s := fmt.Sprint(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, ",")
	if neg {
		out = "-" + out
	}
	return out
}

// commaDec rounds to the nearest whole unit and adds separators; the display
// works in whole currency units.
func commaDec(d decimal.Decimal) string {
	return commaInt(d.Round(0).IntPart())
}

func commaNull(d decimal.NullDecimal) string {
	if !d.Valid {
		return Placeholder
	}
	return commaDec(d.Decimal)
}
