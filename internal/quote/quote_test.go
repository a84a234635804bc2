package quote

import (
	"math"
	"testing"
	"time"

	"github.com/Simplici0/partquote/internal/catalog"
	"github.com/Simplici0/partquote/internal/parts"
)

func nearlyEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

var quotedAt = time.Date(2024, 9, 11, 10, 0, 0, 0, time.UTC)

func bracket(id string, qty int, lt catalog.LeadTime) parts.Part {
	return parts.Part{
		ID:   id,
		Name: "Bracket " + id,
		Selections: parts.Selections{
			Process:       catalog.ProcessCNC,
			Material:      catalog.Material6061,
			SurfaceFinish: catalog.FinishBeadBlast,
			Coating:       catalog.CoatingClearAnodize,
			Quantity:      qty,
			LeadTime:      lt,
		},
	}
}

func TestSummarize_ExcludesIncompleteParts(t *testing.T) {
	onlyProcess := parts.Part{ID: "x", Selections: parts.Selections{Process: catalog.ProcessCNC, Quantity: 4, LeadTime: catalog.LeadTime1Day}}
	list := []parts.Part{bracket("a", 1, catalog.LeadTime7Days), onlyProcess, bracket("b", 3, catalog.LeadTime2Days)}

	s := Summarize(list, "", quotedAt)

	if s.Priced() != 2 || s.PartCount != 3 {
		t.Fatalf("priced=%d partCount=%d", s.Priced(), s.PartCount)
	}
	nearlyEqual(t, "subtotal", s.Subtotal, 126+793.8)
	if s.NoPriceableParts {
		t.Fatalf("did not expect NoPriceableParts")
	}
}

func TestSummarize_TaxUnknownWithoutZIP(t *testing.T) {
	s := Summarize([]parts.Part{bracket("a", 1, catalog.LeadTime7Days)}, "", quotedAt)

	if s.Tax != nil || s.Shipping != nil {
		t.Fatalf("tax and shipping must be absent without a ZIP")
	}
	if s.ZIPState != ZIPMissing {
		t.Fatalf("zip state = %s", s.ZIPState)
	}
	nearlyEqual(t, "total", s.Total, 126)
}

func TestSummarize_TaxUnknownForInvalidZIP(t *testing.T) {
	s := Summarize([]parts.Part{bracket("a", 1, catalog.LeadTime7Days)}, "9410", quotedAt)

	if s.Tax != nil || s.ZIPState != ZIPInvalid {
		t.Fatalf("invalid ZIP must not produce tax: %+v", s)
	}
	nearlyEqual(t, "total", s.Total, 126)
}

func TestSummarize_TaxAndShippingWithValidZIP(t *testing.T) {
	for _, zip := range []string{"94102", "94102-1234"} {
		s := Summarize([]parts.Part{bracket("a", 1, catalog.LeadTime7Days)}, zip, quotedAt)
		if s.Tax == nil || s.Shipping == nil {
			t.Fatalf("zip %s: expected tax and shipping", zip)
		}
		nearlyEqual(t, "tax", *s.Tax, 126*0.0875)
		nearlyEqual(t, "shipping", *s.Shipping, 25)
		nearlyEqual(t, "total", s.Total, 126+126*0.0875+25)
	}
}

func TestSummarize_NoPriceableParts(t *testing.T) {
	s := Summarize([]parts.Part{{ID: "x", Selections: parts.DefaultSelections()}}, "94102", quotedAt)

	if !s.NoPriceableParts {
		t.Fatalf("expected NoPriceableParts")
	}
	nearlyEqual(t, "subtotal", s.Subtotal, 0)
	if len(s.Lines) != 0 {
		t.Fatalf("expected no lines")
	}
}

func TestSummarize_LinesCarryShipDate(t *testing.T) {
	s := Summarize([]parts.Part{bracket("a", 2, catalog.LeadTime3Days)}, "", quotedAt)

	l := s.Lines[0]
	if l.EstimatedShipDate != "2024-09-14" {
		t.Fatalf("ship date = %q, want 2024-09-14", l.EstimatedShipDate)
	}
	nearlyEqual(t, "line total", l.Total, l.UnitPrice*2)
}

func TestCheckZIP(t *testing.T) {
	cases := map[string]ZIPState{
		"":           ZIPMissing,
		"   ":        ZIPMissing,
		"12345":      ZIPValid,
		"12345-6789": ZIPValid,
		"1234":       ZIPInvalid,
		"12345-67":   ZIPInvalid,
		"abcde":      ZIPInvalid,
	}
	for zip, want := range cases {
		if got := CheckZIP(zip); got != want {
			t.Fatalf("CheckZIP(%q) = %s, want %s", zip, got, want)
		}
	}
}

func TestNewSnapshotRoundsAndKeepsCompleteParts(t *testing.T) {
	incomplete := parts.Part{ID: "x", Selections: parts.DefaultSelections()}
	snap := NewSnapshot("QUOTE-1", []parts.Part{bracket("a", 1, catalog.LeadTime7Days), incomplete}, Submission{ZIP: "94102", Notes: "rush"}, quotedAt)

	if snap.ID != "QUOTE-1" || len(snap.Parts) != 1 || snap.Parts[0].ID != "a" {
		t.Fatalf("unexpected snapshot parts: %+v", snap)
	}
	nearlyEqual(t, "subtotal", snap.Subtotal, 126)
	nearlyEqual(t, "tax", *snap.Tax, 11.03)
	nearlyEqual(t, "total", snap.Total, 162.03)
	if snap.AdditionalRequirements == nil {
		t.Fatalf("requirements should be an empty list, not nil")
	}
	if got := snap.LatestShipDate(); got != "2024-09-18" {
		t.Fatalf("latest ship date = %q", got)
	}
	if got := formattedSnapshot(snap); got["total"] != "162.03" {
		t.Fatalf("formatted total = %q", got["total"])
	}
}

func formattedSnapshot(snap Snapshot) map[string]string {
	return Summary{Subtotal: snap.Subtotal, Total: snap.Total, Tax: snap.Tax}.Formatted()
}
