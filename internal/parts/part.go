// Package parts models the parts of a quote, the ordered configuration steps
// each part moves through, and the collection operations that create, copy,
// vary and remove parts.
package parts

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/Simplici0/partquote/internal/catalog"
	"github.com/Simplici0/partquote/internal/pricing"
)

const (
	MinQuantity = 1
	MaxQuantity = 10000
)

var (
	ErrPartNotFound = errors.New("part not found")
	ErrNotVariation = errors.New("part is not a variation")
	// ErrDuplicateVariation is returned when Duplicate is asked to copy a
	// variation; variations are derived from their root instead.
	ErrDuplicateVariation = errors.New("variations cannot be duplicated")
)

// Selections are the manufacturing choices attached to a part.
type Selections struct {
	Process       catalog.Process       `json:"process"`
	Material      catalog.Material      `json:"material"`
	SurfaceFinish catalog.SurfaceFinish `json:"surfaceFinish"`
	Coating       catalog.Coating       `json:"coating"`
	Quantity      int                   `json:"quantity"`
	LeadTime      catalog.LeadTime      `json:"leadTime"`
	Extras        *Extras               `json:"extras,omitempty"`
}

// DefaultSelections returns an unconfigured selection set: one unit at the
// standard lead time.
func DefaultSelections() Selections {
	return Selections{Quantity: MinQuantity, LeadTime: catalog.DefaultLeadTime}
}

// PricingInput converts the selections for the price calculator.
func (s Selections) PricingInput() pricing.ItemInput {
	return pricing.ItemInput{
		Process:       s.Process,
		Material:      s.Material,
		SurfaceFinish: s.SurfaceFinish,
		Coating:       s.Coating,
		LeadTime:      s.LeadTime,
		Quantity:      s.Quantity,
	}
}

func (s Selections) clone() Selections {
	if s.Extras != nil {
		e := s.Extras.Clone()
		s.Extras = &e
	}
	return s
}

// Part is one manufacturable item with its own configuration.
type Part struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	FileName string `json:"fileName,omitempty"`
	FileSize int64  `json:"fileSize,omitempty"`

	DrawingFileName string `json:"drawingFileName,omitempty"`
	DrawingFileSize int64  `json:"drawingFileSize,omitempty"`

	Selections  Selections `json:"selections"`
	CurrentStep Step       `json:"currentStep"`

	ParentID        string `json:"parentId,omitempty"`
	IsVariation     bool   `json:"isVariation,omitempty"`
	VariationNumber int    `json:"variationNumber,omitempty"`
}

// HasFile reports whether the part came from an uploaded 3D file.
func (p Part) HasFile() bool { return p.FileName != "" }

// Price runs the calculator over the part's selections. The result is only
// meaningful when IsComplete(p) holds.
func (p Part) Price() pricing.Result { return pricing.Calculate(p.Selections.PricingInput()) }

// Conflicts reports restricted finish or coating picks that the current
// material no longer allows.
func (p Part) Conflicts() []catalog.Conflict {
	s := p.Selections
	return catalog.Conflicts(s.Material, s.SurfaceFinish, s.Coating)
}

func (p Part) clone() Part {
	p.Selections = p.Selections.clone()
	return p
}

// ClampQuantity forces q into [MinQuantity, MaxQuantity].
func ClampQuantity(q int) int {
	switch {
	case q < MinQuantity:
		return MinQuantity
	case q > MaxQuantity:
		return MaxQuantity
	default:
		return q
	}
}

// ParseQuantity reads user input as a quantity. Anything that is not a
// number becomes MinQuantity; fractional values are truncated and the result
// is clamped.
func ParseQuantity(raw string) int {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) {
		return MinQuantity
	}
	if v < MinQuantity {
		return MinQuantity
	}
	if v >= MaxQuantity {
		return MaxQuantity
	}
	return int(v)
}
