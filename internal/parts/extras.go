package parts

import "github.com/google/uuid"

type Tolerance string

const (
	ToleranceStandard Tolerance = "standard"
	ToleranceTight    Tolerance = "tight"
	ToleranceCustom   Tolerance = "custom"
)

type Inspection string

const (
	InspectionNone  Inspection = "none"
	InspectionBasic Inspection = "basic"
	InspectionFAI   Inspection = "FAI"
	InspectionCMM   Inspection = "CMM"
)

// Thread is a tapped hole or insert callout.
type Thread struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Size string `json:"size"`
	Qty  int    `json:"qty,omitempty"`
}

type Certificates struct {
	Material  bool `json:"material,omitempty"`
	Finish    bool `json:"finish,omitempty"`
	HeatTreat bool `json:"heatTreat,omitempty"`
}

type Packaging struct {
	BagPerPart bool   `json:"bagPerPart,omitempty"`
	Label      string `json:"label,omitempty"`
}

// Extras are optional part-specific add-ons. They never affect whether a
// part is complete or how it is priced.
type Extras struct {
	Tolerance           Tolerance    `json:"tolerance,omitempty"`
	CustomToleranceNote string       `json:"customToleranceNote,omitempty"`
	Threads             []Thread     `json:"threads,omitempty"`
	Inspection          Inspection   `json:"inspection,omitempty"`
	Certificates        Certificates `json:"certificates"`
	Serialization       bool         `json:"serialization,omitempty"`
	CustomMarking       string       `json:"customMarking,omitempty"`
	CleanRoom           bool         `json:"cleanRoom,omitempty"`
	Assembly            bool         `json:"assembly,omitempty"`
	Packaging           Packaging    `json:"packaging"`
	Notes               string       `json:"notes,omitempty"`
}

// DefaultExtras is the "nothing selected" state shown by the extras editor.
func DefaultExtras() Extras {
	return Extras{Tolerance: ToleranceStandard, Inspection: InspectionNone}
}

// Picked reports whether any extra that changes the job was chosen. Clean
// room, assembly and free-text notes do not light up the extras step.
func (e *Extras) Picked() bool {
	if e == nil {
		return false
	}
	c := e.Certificates
	return (e.Tolerance != "" && e.Tolerance != ToleranceStandard) ||
		len(e.Threads) > 0 ||
		(e.Inspection != "" && e.Inspection != InspectionNone) ||
		c.Material || c.Finish || c.HeatTreat ||
		e.Serialization ||
		e.CustomMarking != "" ||
		e.Packaging.BagPerPart || e.Packaging.Label != ""
}

// Clone returns a deep copy of e.
func (e Extras) Clone() Extras {
	if e.Threads != nil {
		e.Threads = append([]Thread(nil), e.Threads...)
	}
	return e
}

// AddThread appends a blank thread callout with a fresh id.
func (e Extras) AddThread() Extras {
	e = e.Clone()
	e.Threads = append(e.Threads, Thread{ID: uuid.NewString(), Qty: 1})
	return e
}

// RemoveThread drops the thread with the given id.
func (e Extras) RemoveThread(id string) Extras {
	out := make([]Thread, 0, len(e.Threads))
	for _, t := range e.Threads {
		if t.ID != id {
			out = append(out, t)
		}
	}
	e.Threads = out
	return e
}
