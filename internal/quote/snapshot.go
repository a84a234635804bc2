package quote

import (
	"time"

	"github.com/Simplici0/partquote/internal/parts"
	"github.com/Simplici0/partquote/internal/pricing"
)

// Snapshot is the frozen quote handed to checkout. Money values are rounded
// to cents so that the stored figures match what was displayed.
type Snapshot struct {
	ID                     string       `json:"id"`
	Parts                  []parts.Part `json:"parts"`
	Lines                  []Line       `json:"lines"`
	AdditionalRequirements []string     `json:"additionalRequirements"`
	Notes                  string       `json:"notes"`
	ZIP                    string       `json:"zip,omitempty"`
	Subtotal               float64      `json:"subtotal"`
	Tax                    *float64     `json:"tax"`
	Shipping               *float64     `json:"shipping"`
	Total                  float64      `json:"total"`
	CreatedAt              time.Time    `json:"createdAt"`
	UpdatedAt              time.Time    `json:"updatedAt"`
}

// Submission carries the free-form requirements entered alongside a quote.
type Submission struct {
	ZIP                    string   `json:"zip"`
	AdditionalRequirements []string `json:"additionalRequirements"`
	Notes                  string   `json:"notes"`
}

// NewSnapshot freezes the complete parts of list under id.
func NewSnapshot(id string, list []parts.Part, sub Submission, now time.Time) Snapshot {
	sum := Summarize(list, sub.ZIP, now)

	complete := make([]parts.Part, 0, len(sum.Lines))
	for _, p := range list {
		if parts.IsComplete(p) {
			complete = append(complete, p)
		}
	}

	lines := make([]Line, len(sum.Lines))
	for i, l := range sum.Lines {
		l.UnitPrice = pricing.Round2(l.UnitPrice)
		l.Total = pricing.Round2(l.Total)
		lines[i] = l
	}

	reqs := sub.AdditionalRequirements
	if reqs == nil {
		reqs = []string{}
	}

	return Snapshot{
		ID:                     id,
		Parts:                  complete,
		Lines:                  lines,
		AdditionalRequirements: reqs,
		Notes:                  sub.Notes,
		ZIP:                    sum.ZIP,
		Subtotal:               pricing.Round2(sum.Subtotal),
		Tax:                    roundPtr(sum.Tax),
		Shipping:               roundPtr(sum.Shipping),
		Total:                  pricing.Round2(sum.Total),
		CreatedAt:              now,
		UpdatedAt:              now,
	}
}

// LatestShipDate returns the latest estimated ship date among the lines.
func (s Snapshot) LatestShipDate() string {
	latest := ""
	for _, l := range s.Lines {
		if l.EstimatedShipDate > latest {
			latest = l.EstimatedShipDate
		}
	}
	return latest
}

func roundPtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := pricing.Round2(*v)
	return &r
}
