// Package quote rolls priced parts up into quote totals.
package quote

import (
	"regexp"
	"strings"
	"time"

	"github.com/Simplici0/partquote/internal/catalog"
	"github.com/Simplici0/partquote/internal/parts"
	"github.com/Simplici0/partquote/internal/pricing"
)

const (
	// TaxRate is the flat sales tax applied once a valid ZIP is known.
	TaxRate = 0.0875
	// ShippingEstimate is the flat shipping added alongside tax.
	ShippingEstimate = 25.0
)

var zipPattern = regexp.MustCompile(`^\d{5}(-\d{4})?$`)

// ZIPState describes the location signal used to decide whether tax can be
// computed.
type ZIPState string

const (
	ZIPMissing ZIPState = "missing"
	ZIPInvalid ZIPState = "invalid"
	ZIPValid   ZIPState = "valid"
)

// CheckZIP classifies a US ZIP or ZIP+4 code.
func CheckZIP(zip string) ZIPState {
	zip = strings.TrimSpace(zip)
	switch {
	case zip == "":
		return ZIPMissing
	case zipPattern.MatchString(zip):
		return ZIPValid
	default:
		return ZIPInvalid
	}
}

// Line is the priced view of one complete part.
type Line struct {
	PartID            string           `json:"partId"`
	Name              string           `json:"name"`
	Quantity          int              `json:"quantity"`
	LeadTime          catalog.LeadTime `json:"leadTime"`
	UnitPrice         float64          `json:"unitPrice"`
	Total             float64          `json:"total"`
	EstimatedShipDate string           `json:"estimatedShipDate,omitempty"`
}

// Summary is the aggregate of a set of parts.
type Summary struct {
	Lines     []Line   `json:"lines"`
	PartCount int      `json:"partCount"`
	Subtotal  float64  `json:"subtotal"`
	ZIP       string   `json:"zip,omitempty"`
	ZIPState  ZIPState `json:"zipState"`
	// Tax and Shipping are nil until a valid ZIP is known, which is not the
	// same as zero tax.
	Tax      *float64 `json:"tax"`
	Shipping *float64 `json:"shipping"`
	Total    float64  `json:"total"`
	// NoPriceableParts is set when no part is complete; Total is then not a
	// meaningful figure to show.
	NoPriceableParts bool `json:"noPriceableParts"`
}

// Priced returns the number of parts included in the subtotal.
func (s Summary) Priced() int { return len(s.Lines) }

// Summarize prices the complete parts of list and derives tax and total for
// the given ZIP. Incomplete parts are excluded from every figure.
func Summarize(list []parts.Part, zip string, now time.Time) Summary {
	s := Summary{
		Lines:     make([]Line, 0, len(list)),
		PartCount: len(list),
		ZIP:       strings.TrimSpace(zip),
		ZIPState:  CheckZIP(zip),
	}

	for _, p := range list {
		if !parts.IsComplete(p) {
			continue
		}
		r := p.Price()
		s.Lines = append(s.Lines, Line{
			PartID:            p.ID,
			Name:              p.Name,
			Quantity:          p.Selections.Quantity,
			LeadTime:          p.Selections.LeadTime,
			UnitPrice:         r.Totals.UnitPrice,
			Total:             r.Totals.Total,
			EstimatedShipDate: ShipDate(now, p.Selections.LeadTime),
		})
		s.Subtotal += r.Totals.Total
	}

	s.NoPriceableParts = len(s.Lines) == 0
	s.Total = s.Subtotal
	if s.ZIPState == ZIPValid {
		tax := s.Subtotal * TaxRate
		shipping := ShippingEstimate
		s.Tax = &tax
		s.Shipping = &shipping
		s.Total = s.Subtotal + tax + shipping
	}
	return s
}

// ShipDate estimates the ship date of a part started at from with the given
// lead time. Unknown lead times yield an empty string.
func ShipDate(from time.Time, lt catalog.LeadTime) string {
	if from.IsZero() {
		return ""
	}
	days, ok := catalog.LeadTimeDays(lt)
	if !ok {
		return ""
	}
	return from.AddDate(0, 0, days).Format("2006-01-02")
}

// Formatted renders the money figures for display. Tax and shipping are
// omitted until they can be computed.
func (s Summary) Formatted() map[string]string {
	out := map[string]string{
		"subtotal": pricing.FormatMoney(s.Subtotal),
		"total":    pricing.FormatMoney(s.Total),
	}
	if s.Tax != nil {
		out["tax"] = pricing.FormatMoney(*s.Tax)
	}
	if s.Shipping != nil {
		out["shipping"] = pricing.FormatMoney(*s.Shipping)
	}
	return out
}
