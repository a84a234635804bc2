package catalog

import (
	"fmt"
	"strings"
)

// IsAluminum reports whether m belongs to the aluminum family. The match is
// by substring so that grade variants of a known alloy are recognised too.
func IsAluminum(m Material) bool {
	s := string(m)
	return strings.Contains(s, "6061") || strings.Contains(s, "7075") || strings.Contains(s, "aluminum")
}

// IsStainless reports whether m belongs to the stainless steel family.
func IsStainless(m Material) bool {
	s := string(m)
	return strings.Contains(s, "stainless") || strings.Contains(s, "304") || strings.Contains(s, "316")
}

// Allows reports whether an option restricted to family may be offered for m.
func Allows(family MaterialFamily, m Material) bool {
	switch family {
	case "":
		return true
	case FamilyAluminum:
		return IsAluminum(m)
	case FamilyStainless:
		return IsStainless(m)
	default:
		for _, o := range materials {
			if o.ID == m {
				return o.Family == family
			}
		}
		return false
	}
}

func available[T ~string](opts []Option[T], m Material) []Option[T] {
	out := make([]Option[T], 0, len(opts))
	for _, o := range opts {
		if Allows(o.Restriction, m) {
			out = append(out, o)
		}
	}
	return out
}

// AvailableFinishes lists the surface finishes offered for material m.
func AvailableFinishes(m Material) []Option[SurfaceFinish] { return available(finishes, m) }

// AvailableCoatings lists the coatings offered for material m.
func AvailableCoatings(m Material) []Option[Coating] { return available(coatings, m) }

// FinishAllowed reports whether f is offered for m. Unknown finishes carry
// no restriction.
func FinishAllowed(f SurfaceFinish, m Material) bool {
	for _, o := range finishes {
		if o.ID == f {
			return Allows(o.Restriction, m)
		}
	}
	return true
}

// CoatingAllowed reports whether c is offered for m.
func CoatingAllowed(c Coating, m Material) bool {
	for _, o := range coatings {
		if o.ID == c {
			return Allows(o.Restriction, m)
		}
	}
	return true
}

// CheckFinish returns ErrIncompatibleOption when f is not offered for m.
func CheckFinish(f SurfaceFinish, m Material) error {
	if !FinishAllowed(f, m) {
		return fmt.Errorf("%w: finish %q on %q", ErrIncompatibleOption, f, m)
	}
	return nil
}

// CheckCoating returns ErrIncompatibleOption when c is not offered for m.
func CheckCoating(c Coating, m Material) error {
	if !CoatingAllowed(c, m) {
		return fmt.Errorf("%w: coating %q on %q", ErrIncompatibleOption, c, m)
	}
	return nil
}

// Conflict names a selected finish or coating that is no longer offered for
// the part's current material.
type Conflict struct {
	Field       string         `json:"field"`
	Value       string         `json:"value"`
	Restriction MaterialFamily `json:"materialRestriction"`
}

// Conflicts reports restricted selections that do not match m. Selections
// are never cleared here; callers decide how to surface stale picks.
func Conflicts(m Material, f SurfaceFinish, c Coating) []Conflict {
	var out []Conflict
	if f != "" && !FinishAllowed(f, m) {
		out = append(out, Conflict{Field: "surfaceFinish", Value: string(f), Restriction: restrictionOf(finishes, f)})
	}
	if c != "" && !CoatingAllowed(c, m) {
		out = append(out, Conflict{Field: "coating", Value: string(c), Restriction: restrictionOf(coatings, c)})
	}
	return out
}

func restrictionOf[T ~string](opts []Option[T], id T) MaterialFamily {
	for _, o := range opts {
		if o.ID == id {
			return o.Restriction
		}
	}
	return ""
}
