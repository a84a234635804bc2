package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/Simplici0/partquote/internal/catalog"
)

// ItemInput represents the selections of one part that drive its price.
type ItemInput struct {
	Process       catalog.Process
	Material      catalog.Material
	SurfaceFinish catalog.SurfaceFinish
	Coating       catalog.Coating
	LeadTime      catalog.LeadTime
	Quantity      int
}

// Breakdown contains every factor of the pricing calculation.
type Breakdown struct {
	BasePrice          float64 `json:"basePrice"`
	ProcessMultiplier  float64 `json:"processMultiplier"`
	MaterialMultiplier float64 `json:"materialMultiplier"`
	FinishMultiplier   float64 `json:"finishMultiplier"`
	CoatingMultiplier  float64 `json:"coatingMultiplier"`
	LeadTimeMultiplier float64 `json:"leadTimeMultiplier"`
	Quantity           int     `json:"quantity"`
	// Unknown lists fields whose non-empty value was missing from the
	// pricing table and was priced at the neutral multiplier.
	Unknown []string `json:"unknown,omitempty"`
}

// Totals contains roll-up values from the pricing calculation.
type Totals struct {
	UnitPrice float64 `json:"unitPrice"`
	Total     float64 `json:"total"`
}

// Result groups the full pricing output, including detailed breakdown and totals.
type Result struct {
	Breakdown Breakdown `json:"breakdown"`
	Totals    Totals    `json:"totals"`
}

// Calculate computes the price of item. It never fails: unset or unknown
// selections use the neutral multiplier, so callers must check completeness
// before showing the figure.
func Calculate(item ItemInput) Result {
	var unknown []string
	track := func(field string, m float64, res catalog.Resolution) float64 {
		if res == catalog.Unknown {
			unknown = append(unknown, field)
		}
		return m
	}

	m, res := catalog.ProcessMultiplier(item.Process)
	processMult := track("process", m, res)
	m, res = catalog.MaterialMultiplier(item.Material)
	materialMult := track("material", m, res)
	m, res = catalog.SurfaceFinishMultiplier(item.SurfaceFinish)
	finishMult := track("surfaceFinish", m, res)
	m, res = catalog.CoatingMultiplier(item.Coating)
	coatingMult := track("coating", m, res)
	m, res = catalog.LeadTimeMultiplier(item.LeadTime)
	leadTimeMult := track("leadTime", m, res)

	total := catalog.BasePrice *
		processMult *
		materialMult *
		finishMult *
		coatingMult *
		leadTimeMult *
		float64(item.Quantity)

	unit := 0.0
	if item.Quantity > 0 {
		unit = total / float64(item.Quantity)
	}

	return Result{
		Breakdown: Breakdown{
			BasePrice:          catalog.BasePrice,
			ProcessMultiplier:  processMult,
			MaterialMultiplier: materialMult,
			FinishMultiplier:   finishMult,
			CoatingMultiplier:  coatingMult,
			LeadTimeMultiplier: leadTimeMult,
			Quantity:           item.Quantity,
			Unknown:            unknown,
		},
		Totals: Totals{UnitPrice: unit, Total: total},
	}
}

// Round2 rounds v half away from zero to cents.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// FormatMoney renders v with exactly two decimal places.
func FormatMoney(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
