package report

import (
	"github.com/shopspring/decimal"

	"github.com/AngelCh415/ADMARGIN_GO/internal/models"
)

// productAcc accumulates one product's figures across all of its ad-type
// groups. Display fields come from the first group seen; numeric sums cover
// every group.
type productAcc struct {
	optionID      string
	productName   string
	totalAdProfit decimal.Decimal
	totalAdSpend  decimal.Decimal
	unitMargin    decimal.Decimal
	totalUnits    int
	organicUnits  int
	configured    bool
}

// Merge folds all ad-type groups of each product into one summary row, in
// first-seen order. totalProfit adds the organic estimate on top of the summed
// ad profit; the organic units of the LAST-processed group are authoritative,
// matching the established calculation this tool replaces.
func Merge(groups []models.GroupResult) []models.ProductSummary {
	accs := make(map[models.ProductKey]*productAcc, len(groups))
	order := make([]models.ProductKey, 0, len(groups))
	for _, g := range groups {
		acc, ok := accs[g.Key]
		if !ok {
			acc = &productAcc{optionID: g.OptionID, productName: g.ProductName}
			accs[g.Key] = acc
			order = append(order, g.Key)
		}
		acc.totalAdSpend = acc.totalAdSpend.Add(g.AdSpend)
		if !g.AdProfit.Valid {
			continue // producto sin economía configurada
		}
		acc.configured = true
		acc.totalAdProfit = acc.totalAdProfit.Add(g.AdProfit.Decimal)
		acc.unitMargin = g.UnitMargin.Decimal
		acc.totalUnits = g.TotalUnits
		acc.organicUnits = g.OrganicUnits
	}

	out := make([]models.ProductSummary, 0, len(order))
	for _, k := range order {
		acc := accs[k]
		s := models.ProductSummary{
			OptionID:       acc.optionID,
			ProductName:    acc.productName,
			TotalUnitsSold: acc.totalUnits,
			TotalAdSpend:   acc.totalAdSpend,
		}
		if acc.configured {
			total := acc.totalAdProfit.
				Add(acc.unitMargin.Mul(decimal.NewFromInt(int64(acc.organicUnits))))
			s.TotalProfit = decimal.NewNullDecimal(total)
			perUnit := decimal.Zero
			if acc.totalUnits > 0 {
				perUnit = total.Div(decimal.NewFromInt(int64(acc.totalUnits)))
			}
			s.ProfitPerUnit = decimal.NewNullDecimal(perUnit)
		}
		out = append(out, s)
	}
	return out
}
