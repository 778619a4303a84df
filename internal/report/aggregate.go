package report

import "github.com/AngelCh415/ADMARGIN_GO/internal/models"

// GroupRows groups ad rows by (product key, ad type) and sums spend and
// 14-day units within each group. Output order is first appearance, so the
// result is deterministic for a given input. Every input row lands in exactly
// one group; sums conserve the raw totals.
func GroupRows(rows []models.AdRow) []models.AdTypeAggregate {
	type groupKey struct {
		key    models.ProductKey
		adType string
	}
	idx := make(map[groupKey]int, len(rows))
	out := make([]models.AdTypeAggregate, 0, len(rows))
	for _, r := range rows {
		gk := groupKey{models.MakeProductKey(r.OptionID, r.ProductName), r.AdType}
		i, ok := idx[gk]
		if !ok {
			i = len(out)
			idx[gk] = i
			out = append(out, models.AdTypeAggregate{
				Key:         gk.key,
				AdType:      r.AdType,
				OptionID:    r.OptionID,
				ProductName: r.ProductName,
			})
		}
		out[i].AdSpend = out[i].AdSpend.Add(r.AdSpend)
		out[i].UnitsSold14 += r.UnitsSold14
	}
	return out
}

// ProductRef identifies one distinct product, in first-seen order; the client
// builds its economics form from this list.
type ProductRef struct {
	OptionID    string `json:"option_id"`
	ProductName string `json:"product_name"`
}

func DistinctProducts(rows []models.AdRow) []ProductRef {
	seen := make(map[models.ProductKey]struct{}, len(rows))
	out := make([]ProductRef, 0, len(rows))
	for _, r := range rows {
		k := models.MakeProductKey(r.OptionID, r.ProductName)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, ProductRef{OptionID: r.OptionID, ProductName: r.ProductName})
	}
	return out
}
