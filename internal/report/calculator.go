package report

import (
	"github.com/shopspring/decimal"

	"github.com/AngelCh415/ADMARGIN_GO/internal/models"
	"github.com/AngelCh415/ADMARGIN_GO/internal/store"
)

var hundred = decimal.NewFromInt(100)

// Calculate derives the per-group profit figures. A product whose economics
// are not configured gets null profit fields; no partial or zero value ever
// stands in for a figure that could not be computed.
func Calculate(aggs []models.AdTypeAggregate, reg *store.Registry) []models.GroupResult {
	out := make([]models.GroupResult, 0, len(aggs))
	for _, a := range aggs {
		res := models.GroupResult{
			Key:         a.Key,
			AdType:      a.AdType,
			OptionID:    a.OptionID,
			ProductName: a.ProductName,
			UnitsSold14: a.UnitsSold14,
			AdSpend:     a.AdSpend,
		}
		econ, ok := reg.Get(a.Key)
		if !ok {
			out = append(out, res)
			continue
		}

		// margen unitario antes de publicidad
		margin := econ.SalePrice.
			Sub(econ.Cost).
			Sub(econ.SalePrice.Mul(econ.CommissionRatePct).Div(hundred)).
			Sub(econ.ShippingCost)

		units14 := decimal.NewFromInt(int64(a.UnitsSold14))
		res.UnitMargin = decimal.NewNullDecimal(margin)
		res.AdProfit = decimal.NewNullDecimal(margin.Mul(units14).Sub(a.AdSpend))

		// cero explícito con 0 unidades: "sin costo por venta", no un error
		avg := decimal.Zero
		if a.UnitsSold14 > 0 {
			avg = a.AdSpend.Div(units14)
		}
		res.AvgAdCostPerUnit = decimal.NewNullDecimal(avg)

		res.TotalUnits = econ.TotalUnitsSold
		if organic := econ.TotalUnitsSold - a.UnitsSold14; organic > 0 {
			res.OrganicUnits = organic
		}
		out = append(out, res)
	}
	return out
}
