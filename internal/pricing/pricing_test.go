package pricing

import (
	"math"
	"testing"

	"github.com/Simplici0/partquote/internal/catalog"
)

func nearlyEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func configuredItem() ItemInput {
	return ItemInput{
		Process:       catalog.ProcessCNC,
		Material:      catalog.Material6061,
		SurfaceFinish: catalog.FinishBeadBlast,
		Coating:       catalog.CoatingClearAnodize,
		LeadTime:      catalog.LeadTime7Days,
		Quantity:      1,
	}
}

func TestCalculate_StandardLeadTime(t *testing.T) {
	result := Calculate(configuredItem())

	nearlyEqual(t, "finishMultiplier", result.Breakdown.FinishMultiplier, 1.2)
	nearlyEqual(t, "coatingMultiplier", result.Breakdown.CoatingMultiplier, 1.4)
	nearlyEqual(t, "total", result.Totals.Total, 126)
	nearlyEqual(t, "unitPrice", result.Totals.UnitPrice, 126)
	if got := FormatMoney(result.Totals.Total); got != "126.00" {
		t.Fatalf("formatted total = %q, want 126.00", got)
	}
}

func TestCalculate_RushQuantityThree(t *testing.T) {
	item := configuredItem()
	item.Quantity = 3
	item.LeadTime = catalog.LeadTime2Days

	result := Calculate(item)

	nearlyEqual(t, "leadTimeMultiplier", result.Breakdown.LeadTimeMultiplier, 2.1)
	nearlyEqual(t, "total", result.Totals.Total, 793.8)
	nearlyEqual(t, "unitPrice", result.Totals.UnitPrice, 264.6)
}

func TestCalculate_ScalesLinearlyWithQuantity(t *testing.T) {
	one := configuredItem()
	two := configuredItem()
	two.Quantity = 2

	nearlyEqual(t, "double", Calculate(two).Totals.Total, 2*Calculate(one).Totals.Total)

	prev := 0.0
	for q := 1; q <= 50; q++ {
		item := configuredItem()
		item.Quantity = q
		got := Calculate(item).Totals.Total
		if got < prev {
			t.Fatalf("price decreased at quantity %d: %v < %v", q, got, prev)
		}
		prev = got
	}
}

func TestCalculate_UnitPriceRoundTrip(t *testing.T) {
	item := configuredItem()
	item.Material = catalog.MaterialTitanium
	item.LeadTime = catalog.LeadTime3Days
	item.Quantity = 7

	result := Calculate(item)
	nearlyEqual(t, "round trip", result.Totals.UnitPrice*float64(item.Quantity), result.Totals.Total)
}

func TestCalculate_LeadTimeMonotonic(t *testing.T) {
	order := []catalog.LeadTime{
		catalog.LeadTime1Day,
		catalog.LeadTime2Days,
		catalog.LeadTime3Days,
		catalog.LeadTime5Days,
		catalog.LeadTime7Days,
	}
	for i := 1; i < len(order); i++ {
		faster := configuredItem()
		faster.LeadTime = order[i-1]
		slower := configuredItem()
		slower.LeadTime = order[i]
		if Calculate(faster).Totals.Total <= Calculate(slower).Totals.Total {
			t.Fatalf("lead time %s should cost more than %s", order[i-1], order[i])
		}
	}
}

func TestCalculate_UnknownSelectionIsNeutral(t *testing.T) {
	item := configuredItem()
	item.Coating = "unobtainium-plate"

	result := Calculate(item)

	nearlyEqual(t, "coatingMultiplier", result.Breakdown.CoatingMultiplier, 1.0)
	nearlyEqual(t, "total", result.Totals.Total, 90)
	if len(result.Breakdown.Unknown) != 1 || result.Breakdown.Unknown[0] != "coating" {
		t.Fatalf("unknown = %v, want [coating]", result.Breakdown.Unknown)
	}
}

func TestCalculate_UnsetSelectionsStillPrice(t *testing.T) {
	result := Calculate(ItemInput{Process: catalog.ProcessCNC, LeadTime: catalog.LeadTime7Days, Quantity: 1})

	nearlyEqual(t, "total", result.Totals.Total, 75)
	if len(result.Breakdown.Unknown) != 0 {
		t.Fatalf("unset fields must not be reported as unknown: %v", result.Breakdown.Unknown)
	}
}

func TestRound2(t *testing.T) {
	nearlyEqual(t, "round", Round2(11.025), 11.03)
	nearlyEqual(t, "round", Round2(793.8), 793.8)
	if got := FormatMoney(0); got != "0.00" {
		t.Fatalf("FormatMoney(0) = %q", got)
	}
}
