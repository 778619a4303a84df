package models

import "github.com/shopspring/decimal"

// AdRow is one row of the uploaded ad-performance table. Immutable once loaded.
type AdRow struct {
	OptionID    string
	ProductName string
	AdType      string
	AdSpend     decimal.Decimal
	UnitsSold14 int // units sold attributed to the ad within 14 days
}

// UnitEconomics holds the per-product parameters entered by the user.
type UnitEconomics struct {
	TotalUnitsSold    int
	SalePrice         decimal.Decimal
	Cost              decimal.Decimal
	CommissionRatePct decimal.Decimal
	ShippingCost      decimal.Decimal
}

// AllZero reports whether every field is zero; such an entry counts as never
// having been meaningfully configured.
func (u UnitEconomics) AllZero() bool {
	return u.TotalUnitsSold == 0 &&
		u.SalePrice.IsZero() &&
		u.Cost.IsZero() &&
		u.CommissionRatePct.IsZero() &&
		u.ShippingCost.IsZero()
}

// AdTypeAggregate is one (product, ad type) group with summed spend and units.
type AdTypeAggregate struct {
	Key         ProductKey
	AdType      string
	OptionID    string
	ProductName string
	AdSpend     decimal.Decimal
	UnitsSold14 int
}

// GroupResult is one detail row, derived from an AdTypeAggregate. Profit fields
// are null when the product's economics were not configured, never zero.
type GroupResult struct {
	AdType           string              `json:"ad_type"`
	OptionID         string              `json:"option_id"`
	ProductName      string              `json:"product_name"`
	UnitsSold14      int                 `json:"units_sold_14d"`
	AdSpend          decimal.Decimal     `json:"ad_spend"`
	AvgAdCostPerUnit decimal.NullDecimal `json:"avg_ad_cost_per_unit"`
	AdProfit         decimal.NullDecimal `json:"ad_profit"`

	// carried forward for the per-product rollup, not rendered
	Key          ProductKey          `json:"-"`
	UnitMargin   decimal.NullDecimal `json:"-"`
	TotalUnits   int                 `json:"-"`
	OrganicUnits int                 `json:"-"`
}

// ProductSummary is one summary row per product. TotalProfit and ProfitPerUnit
// are null exactly when the product's economics were not configured.
type ProductSummary struct {
	OptionID       string              `json:"option_id"`
	ProductName    string              `json:"product_name"`
	TotalUnitsSold int                 `json:"total_units_sold"`
	TotalAdSpend   decimal.Decimal     `json:"total_ad_spend"`
	ProfitPerUnit  decimal.NullDecimal `json:"profit_per_unit"`
	TotalProfit    decimal.NullDecimal `json:"total_profit"`
}
