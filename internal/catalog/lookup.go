package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownOption is returned when an identifier is not in its table.
	ErrUnknownOption = errors.New("unknown option")
	// ErrIncompatibleOption is returned when a finish or coating is picked
	// for a material it is not offered for.
	ErrIncompatibleOption = errors.New("option not offered for material")
)

// Resolution tells how a multiplier lookup was answered.
type Resolution int

const (
	// Unset means the key was empty and the neutral multiplier was used.
	Unset Resolution = iota
	// Known means the key was found in the table.
	Known
	// Unknown means the key was not empty but missing from the table; the
	// neutral multiplier was used.
	Unknown
)

func (r Resolution) String() string {
	switch r {
	case Unset:
		return "unset"
	case Known:
		return "known"
	case Unknown:
		return "unknown"
	default:
		return "invalid"
	}
}

// Neutral is the multiplier used for unset or unrecognised keys.
const Neutral = 1.0

func lookup[T ~string](opts []Option[T], id T) (float64, Resolution) {
	if id == "" {
		return Neutral, Unset
	}
	for _, o := range opts {
		if o.ID == id {
			return o.Multiplier, Known
		}
	}
	return Neutral, Unknown
}

// ProcessMultiplier returns the multiplier for p.
func ProcessMultiplier(p Process) (float64, Resolution) { return lookup(processes, p) }

// MaterialMultiplier returns the multiplier for m.
func MaterialMultiplier(m Material) (float64, Resolution) {
	if m == "" {
		return Neutral, Unset
	}
	for _, o := range materials {
		if o.ID == m {
			return o.Multiplier, Known
		}
	}
	return Neutral, Unknown
}

// SurfaceFinishMultiplier returns the multiplier for f.
func SurfaceFinishMultiplier(f SurfaceFinish) (float64, Resolution) { return lookup(finishes, f) }

// CoatingMultiplier returns the multiplier for c.
func CoatingMultiplier(c Coating) (float64, Resolution) { return lookup(coatings, c) }

// LeadTimeMultiplier returns the rush multiplier for lt. Only the five fixed
// tiers are known; there is no interpolation.
func LeadTimeMultiplier(lt LeadTime) (float64, Resolution) {
	if lt == "" {
		return Neutral, Unset
	}
	for _, o := range leadTimes {
		if o.ID == lt {
			return o.Multiplier, Known
		}
	}
	return Neutral, Unknown
}

func parse[T ~string](field, raw string, opts []Option[T]) (T, error) {
	if raw == "" {
		return "", nil
	}
	for _, o := range opts {
		if string(o.ID) == raw {
			return o.ID, nil
		}
	}
	return "", fmt.Errorf("%w: %s %q", ErrUnknownOption, field, raw)
}

// ParseProcess validates raw against the process table. An empty string
// parses to the unset value.
func ParseProcess(raw string) (Process, error) { return parse("process", raw, processes) }

// ParseMaterial validates raw against the material table.
func ParseMaterial(raw string) (Material, error) {
	if raw == "" {
		return "", nil
	}
	for _, o := range materials {
		if string(o.ID) == raw {
			return o.ID, nil
		}
	}
	return "", fmt.Errorf("%w: material %q", ErrUnknownOption, raw)
}

// ParseSurfaceFinish validates raw against the surface finish table.
func ParseSurfaceFinish(raw string) (SurfaceFinish, error) {
	return parse("surface finish", raw, finishes)
}

// ParseCoating validates raw against the coating table.
func ParseCoating(raw string) (Coating, error) { return parse("coating", raw, coatings) }

// ParseLeadTime validates raw against the lead-time tiers. An empty string
// parses to the default lead time.
func ParseLeadTime(raw string) (LeadTime, error) {
	if raw == "" {
		return DefaultLeadTime, nil
	}
	if _, ok := LeadTimeDays(LeadTime(raw)); ok {
		return LeadTime(raw), nil
	}
	return "", fmt.Errorf("%w: lead time %q", ErrUnknownOption, raw)
}

// ProcessName returns the display name of p, or the raw id when unknown.
func ProcessName(p Process) string { return displayName(processes, p) }

// MaterialName returns the display name of m, or the raw id when unknown.
func MaterialName(m Material) string {
	for _, o := range materials {
		if o.ID == m {
			return o.Name
		}
	}
	return string(m)
}

// SurfaceFinishName returns the display name of f, or the raw id when unknown.
func SurfaceFinishName(f SurfaceFinish) string { return displayName(finishes, f) }

// CoatingName returns the display name of c, or the raw id when unknown.
func CoatingName(c Coating) string { return displayName(coatings, c) }

// LeadTimeLabel returns the display label of lt, or the raw token when unknown.
func LeadTimeLabel(lt LeadTime) string {
	for _, o := range leadTimes {
		if o.ID == lt {
			return o.Label
		}
	}
	return string(lt)
}

func displayName[T ~string](opts []Option[T], id T) string {
	for _, o := range opts {
		if o.ID == id {
			return o.Name
		}
	}
	return string(id)
}
