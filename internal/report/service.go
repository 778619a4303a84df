package report

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/AngelCh415/ADMARGIN_GO/internal/models"
	"github.com/AngelCh415/ADMARGIN_GO/internal/store"
)

// EconomicsEntry is one submitted set of unit economics. Fields are validated
// non-negative at the HTTP boundary before the pipeline runs.
type EconomicsEntry struct {
	OptionID          string          `json:"option_id" validate:"required"`
	ProductName       string          `json:"product_name" validate:"required"`
	TotalUnitsSold    int             `json:"total_units_sold" validate:"gte=0"`
	SalePrice         decimal.Decimal `json:"sale_price" validate:"gte=0"`
	Cost              decimal.Decimal `json:"cost" validate:"gte=0"`
	CommissionRatePct decimal.Decimal `json:"commission_rate_pct" validate:"gte=0"`
	ShippingCost      decimal.Decimal `json:"shipping_cost" validate:"gte=0"`
}

// Result carries both output tables of one computation run.
type Result struct {
	Detail  []models.GroupResult    `json:"detail"`
	Summary []models.ProductSummary `json:"summary"`
}

type Service struct {
	log *slog.Logger
}

func NewService(log *slog.Logger) *Service {
	return &Service{log: log}
}

// Build runs the whole pipeline for one request: a fresh registry is populated
// from the submitted entries, then rows are grouped, per-group figures
// calculated, and per-product totals merged. Two phases, no state kept between
// runs: identical inputs always yield identical tables.
func (s *Service) Build(rows []models.AdRow, entries []EconomicsEntry) Result {
	reg := store.NewRegistry()
	for _, e := range entries {
		reg.Set(models.MakeProductKey(e.OptionID, e.ProductName), models.UnitEconomics{
			TotalUnitsSold:    e.TotalUnitsSold,
			SalePrice:         e.SalePrice,
			Cost:              e.Cost,
			CommissionRatePct: e.CommissionRatePct,
			ShippingCost:      e.ShippingCost,
		})
	}

	detail := Calculate(GroupRows(rows), reg)
	summary := Merge(detail)

	unconfigured := 0
	for _, p := range summary {
		if !p.TotalProfit.Valid {
			unconfigured++
		}
	}
	s.log.Info("report built",
		slog.Int("rows", len(rows)),
		slog.Int("groups", len(detail)),
		slog.Int("products", len(summary)),
		slog.Int("unconfigured", unconfigured))

	return Result{Detail: detail, Summary: summary}
}
