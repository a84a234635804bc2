package parts

import (
	"encoding/json"
	"fmt"

	"github.com/Simplici0/partquote/internal/catalog"
)

// Step indexes the ordered configuration steps of a part.
type Step int

const (
	StepProcess Step = iota
	StepMaterial
	StepSurfaceFinish
	StepCoating
	StepExtras

	FirstStep = StepProcess
	LastStep  = StepExtras
)

var stepKeys = [...]string{"process", "material", "surfaceFinish", "coating", "extras"}

var stepNames = [...]string{"Process", "Material", "Surface Finish", "Coating", "Extras"}

// String returns the selection field the step edits.
func (s Step) String() string {
	if s < FirstStep || s > LastStep {
		return fmt.Sprintf("step(%d)", int(s))
	}
	return stepKeys[s]
}

// Title returns the label shown on the step indicator.
func (s Step) Title() string {
	if s < FirstStep || s > LastStep {
		return ""
	}
	return stepNames[s]
}

// MarshalJSON keeps the wire format an integer index.
func (s Step) MarshalJSON() ([]byte, error) { return json.Marshal(int(s)) }

// UnmarshalJSON accepts an index or a step key and clamps indexes into range.
func (s *Step) UnmarshalJSON(b []byte) error {
	var i int
	if err := json.Unmarshal(b, &i); err == nil {
		*s = ClampStep(i)
		return nil
	}
	var key string
	if err := json.Unmarshal(b, &key); err != nil {
		return fmt.Errorf("decode step: %w", err)
	}
	parsed, err := ParseStep(key)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseStep resolves a step key such as "surfaceFinish".
func ParseStep(key string) (Step, error) {
	for i, k := range stepKeys {
		if k == key {
			return Step(i), nil
		}
	}
	return 0, fmt.Errorf("unknown step %q", key)
}

// ClampStep forces i into the valid step range.
func ClampStep(i int) Step {
	if i < int(FirstStep) {
		return FirstStep
	}
	if i > int(LastStep) {
		return LastStep
	}
	return Step(i)
}

// Completion is the per-step completion of a part. Every view of a part
// derives its step indicators from this one value.
type Completion struct {
	Process       bool `json:"process"`
	Material      bool `json:"material"`
	SurfaceFinish bool `json:"surfaceFinish"`
	Coating       bool `json:"coating"`
	Extras        bool `json:"extras"`
}

// StepCompletion computes the completion of every step of p.
func StepCompletion(p Part) Completion {
	s := p.Selections
	return Completion{
		Process:       s.Process != "",
		Material:      s.Material != "",
		SurfaceFinish: s.SurfaceFinish != "",
		Coating:       s.Coating != "",
		Extras:        s.Extras.Picked(),
	}
}

// Required reports whether the four required steps are done.
func (c Completion) Required() bool {
	return c.Process && c.Material && c.SurfaceFinish && c.Coating
}

// Done reports the completion of a single step.
func (c Completion) Done(s Step) bool {
	switch s {
	case StepProcess:
		return c.Process
	case StepMaterial:
		return c.Material
	case StepSurfaceFinish:
		return c.SurfaceFinish
	case StepCoating:
		return c.Coating
	case StepExtras:
		return c.Extras
	default:
		return false
	}
}

// IsComplete reports whether p can be priced and quoted.
func IsComplete(p Part) bool { return StepCompletion(p).Required() }

// FirstIncompleteStep returns the first required step that is still unset.
// When all required steps are set the part's current step is kept, since
// extras are optional.
func FirstIncompleteStep(p Part) Step {
	c := StepCompletion(p)
	for _, s := range []Step{StepProcess, StepMaterial, StepSurfaceFinish, StepCoating} {
		if !c.Done(s) {
			return s
		}
	}
	return ClampStep(int(p.CurrentStep))
}

// ReadyToPrice reports whether editing step produced a fully configured part:
// a coating was chosen while process, material and surface finish are set.
func ReadyToPrice(s Selections, edited Step) bool {
	return edited == StepCoating &&
		s.Coating != "" &&
		s.Process != "" &&
		s.Material != "" &&
		s.SurfaceFinish != ""
}

// SelectResult is the outcome of recording a selection.
type SelectResult struct {
	Part Part `json:"part"`
	// Advanced is set when the part moved on to the next step.
	Advanced bool `json:"advanced"`
	// ReadyToPrice is set when the selection finished the required
	// configuration; the next action is choosing quantity and lead time.
	ReadyToPrice bool `json:"readyToPrice"`
}

// Select records value for the field edited by step. Picking a non-empty
// value on the part's current step advances it, except on the coating step,
// which is the last gate before quantity and lead time, and on extras.
// Unknown identifiers are rejected with catalog.ErrUnknownOption, and a finish
// or coating not offered for the current material with
// catalog.ErrIncompatibleOption.
func Select(p Part, step Step, value string) (SelectResult, error) {
	p = p.clone()
	s := &p.Selections

	switch step {
	case StepProcess:
		v, err := catalog.ParseProcess(value)
		if err != nil {
			return SelectResult{}, err
		}
		s.Process = v
	case StepMaterial:
		v, err := catalog.ParseMaterial(value)
		if err != nil {
			return SelectResult{}, err
		}
		s.Material = v
	case StepSurfaceFinish:
		v, err := catalog.ParseSurfaceFinish(value)
		if err != nil {
			return SelectResult{}, err
		}
		if err := catalog.CheckFinish(v, s.Material); err != nil {
			return SelectResult{}, err
		}
		s.SurfaceFinish = v
	case StepCoating:
		v, err := catalog.ParseCoating(value)
		if err != nil {
			return SelectResult{}, err
		}
		if err := catalog.CheckCoating(v, s.Material); err != nil {
			return SelectResult{}, err
		}
		s.Coating = v
	default:
		return SelectResult{}, fmt.Errorf("step %s has no single-value selection", step)
	}

	res := SelectResult{ReadyToPrice: ReadyToPrice(*s, step)}
	if value != "" && step == p.CurrentStep && step < StepCoating {
		p.CurrentStep = step + 1
		res.Advanced = true
	}
	res.Part = p
	return res, nil
}

// SelectExtras replaces the part's extras. The extras step is terminal and
// never advances.
func SelectExtras(p Part, e Extras) SelectResult {
	p = p.clone()
	e = e.Clone()
	p.Selections.Extras = &e
	return SelectResult{Part: p}
}

// GoToStep jumps to any step regardless of completion order.
func GoToStep(p Part, i int) Part {
	p.CurrentStep = ClampStep(i)
	return p
}

// NextStep moves forward one step, stopping at extras.
func NextStep(p Part) Part { return GoToStep(p, int(p.CurrentStep)+1) }

// PrevStep moves back one step, stopping at process.
func PrevStep(p Part) Part { return GoToStep(p, int(p.CurrentStep)-1) }
