package parts

import (
	"fmt"
	"path"
	"strings"

	"github.com/Simplici0/partquote/internal/catalog"
	"github.com/Simplici0/partquote/internal/ids"
)

// FileDescriptor is an uploaded file as seen by the collection: only its
// name and size are kept.
type FileDescriptor struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// Collection is the ordered list of parts of one quoting session plus the
// part that currently has focus. Every operation returns a new Collection;
// parts that an operation does not touch keep their position and content.
type Collection struct {
	Parts  []Part `json:"parts"`
	Active string `json:"activePart,omitempty"`

	newID func() string
}

// NewCollection returns an empty collection issuing part ids with newID.
// A nil newID uses random part ids.
func NewCollection(newID func() string) Collection {
	if newID == nil {
		newID = ids.NewPartID
	}
	return Collection{newID: newID}
}

func (c Collection) nextID() string {
	if c.newID == nil {
		return ids.NewPartID()
	}
	return c.newID()
}

func (c Collection) index(id string) int {
	for i, p := range c.Parts {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// Find returns the part with the given id.
func (c Collection) Find(id string) (Part, bool) {
	if i := c.index(id); i >= 0 {
		return c.Parts[i], true
	}
	return Part{}, false
}

// Len returns the number of parts.
func (c Collection) Len() int { return len(c.Parts) }

// Complete returns the parts that can be priced, in collection order.
func (c Collection) Complete() []Part {
	out := make([]Part, 0, len(c.Parts))
	for _, p := range c.Parts {
		if IsComplete(p) {
			out = append(out, p)
		}
	}
	return out
}

func (c Collection) withParts(list []Part) Collection {
	c.Parts = list
	return c
}

func (c Collection) update(id string, fn func(Part) Part) (Collection, error) {
	i := c.index(id)
	if i < 0 {
		return c, fmt.Errorf("%w: %s", ErrPartNotFound, id)
	}
	list := append([]Part(nil), c.Parts...)
	list[i] = fn(list[i].clone())
	return c.withParts(list), nil
}

func (c Collection) newPart(name string, file *FileDescriptor) Part {
	p := Part{
		ID:          c.nextID(),
		Name:        name,
		Selections:  DefaultSelections(),
		CurrentStep: StepProcess,
	}
	p.Selections.Extras = &Extras{}
	if file != nil {
		p.FileName = file.Name
		p.FileSize = file.Size
	}
	return p
}

// PartName derives a display name from a file name by dropping its last
// extension.
func PartName(fileName string) string {
	return strings.TrimSuffix(fileName, path.Ext(fileName))
}

// AddFromFiles adds one unconfigured part per file. The first new part
// becomes active.
func (c Collection) AddFromFiles(files []FileDescriptor) Collection {
	if len(files) == 0 {
		return c
	}
	list := append([]Part(nil), c.Parts...)
	for i := range files {
		list = append(list, c.newPart(PartName(files[i].Name), &files[i]))
	}
	out := c.withParts(list)
	out.Active = list[len(c.Parts)].ID
	return out
}

// AddEmpty adds a manual part named "Part N", N being the new length of the
// collection. The name is not guaranteed unique after removals.
func (c Collection) AddEmpty() Collection {
	p := c.newPart(fmt.Sprintf("Part %d", len(c.Parts)+1), nil)
	out := c.withParts(append(append([]Part(nil), c.Parts...), p))
	out.Active = p.ID
	return out
}

// Duplicate appends a copy of the part with a new id, the " Copy" suffix
// and no file provenance. The copy becomes active. Only root parts can be
// duplicated.
func (c Collection) Duplicate(id string) (Collection, error) {
	src, ok := c.Find(id)
	if !ok {
		return c, fmt.Errorf("%w: %s", ErrPartNotFound, id)
	}
	if src.IsVariation {
		return c, fmt.Errorf("%w: %s", ErrDuplicateVariation, id)
	}
	dup := src.clone()
	dup.ID = c.nextID()
	dup.Name = src.Name + " Copy"
	dup.FileName = ""
	dup.FileSize = 0

	out := c.withParts(append(append([]Part(nil), c.Parts...), dup))
	out.Active = dup.ID
	return out, nil
}

func variationName(n int) string { return fmt.Sprintf("Variant #%d", n) }

// CreateVariation derives a new part from id. The variation is linked to the
// root part (a variation of a variation joins the root's group), copies the
// selections of the part it was made from, and is placed after the group's
// last member. It becomes active.
func (c Collection) CreateVariation(id string) (Collection, error) {
	src, ok := c.Find(id)
	if !ok {
		return c, fmt.Errorf("%w: %s", ErrPartNotFound, id)
	}
	root := src
	if src.IsVariation {
		if parent, ok := c.Find(src.ParentID); ok {
			root = parent
		}
	}

	insertAt := c.index(root.ID) + 1
	siblings := 0
	for i, p := range c.Parts {
		if p.IsVariation && p.ParentID == root.ID {
			siblings++
			insertAt = i + 1
		}
	}

	v := src.clone()
	v.ID = c.nextID()
	v.ParentID = root.ID
	v.IsVariation = true
	v.VariationNumber = siblings + 1
	v.Name = variationName(v.VariationNumber)
	v.FileName = root.FileName
	v.FileSize = root.FileSize
	v.CurrentStep = FirstIncompleteStep(v)

	list := make([]Part, 0, len(c.Parts)+1)
	list = append(list, c.Parts[:insertAt]...)
	list = append(list, v)
	list = append(list, c.Parts[insertAt:]...)

	out := c.withParts(list)
	out.Active = v.ID
	return out, nil
}

// renumber gives the variations of parentID contiguous numbers from 1 in
// collection order and relabels them.
func renumber(list []Part, parentID string) {
	n := 0
	for i := range list {
		if list[i].IsVariation && list[i].ParentID == parentID {
			n++
			list[i].VariationNumber = n
			list[i].Name = variationName(n)
		}
	}
}

func (c Collection) fallbackActive(removed map[string]bool) string {
	if !removed[c.Active] {
		return c.Active
	}
	if len(c.Parts) > 0 {
		return c.Parts[0].ID
	}
	return ""
}

// Remove deletes a part. Removing a variation renumbers its siblings;
// removing a root part also removes its variations. When the active part is
// removed, focus falls back to the first remaining part or to none.
func (c Collection) Remove(id string) (Collection, error) {
	target, ok := c.Find(id)
	if !ok {
		return c, fmt.Errorf("%w: %s", ErrPartNotFound, id)
	}
	if target.IsVariation {
		return c.RemoveVariation(id)
	}

	removed := map[string]bool{id: true}
	list := make([]Part, 0, len(c.Parts))
	for _, p := range c.Parts {
		if p.ID == id || (p.IsVariation && p.ParentID == id) {
			removed[p.ID] = true
			continue
		}
		list = append(list, p)
	}
	out := c.withParts(list)
	out.Active = out.fallbackActive(removed)
	return out, nil
}

// RemoveVariation deletes a variation and renumbers the remaining siblings
// 1..N.
func (c Collection) RemoveVariation(id string) (Collection, error) {
	target, ok := c.Find(id)
	if !ok {
		return c, fmt.Errorf("%w: %s", ErrPartNotFound, id)
	}
	if !target.IsVariation {
		return c, fmt.Errorf("%w: %s", ErrNotVariation, id)
	}

	list := make([]Part, 0, len(c.Parts)-1)
	for _, p := range c.Parts {
		if p.ID != id {
			list = append(list, p)
		}
	}
	renumber(list, target.ParentID)

	out := c.withParts(list)
	out.Active = out.fallbackActive(map[string]bool{id: true})
	return out, nil
}

// Rename sets the display name of a part.
func (c Collection) Rename(id, name string) (Collection, error) {
	return c.update(id, func(p Part) Part {
		p.Name = name
		return p
	})
}

// SelectionPatch carries the selection fields to overwrite; nil fields are
// left alone.
type SelectionPatch struct {
	Process       *catalog.Process       `json:"process,omitempty"`
	Material      *catalog.Material      `json:"material,omitempty"`
	SurfaceFinish *catalog.SurfaceFinish `json:"surfaceFinish,omitempty"`
	Coating       *catalog.Coating       `json:"coating,omitempty"`
	Quantity      *int                   `json:"quantity,omitempty"`
	LeadTime      *catalog.LeadTime      `json:"leadTime,omitempty"`
	Extras        *Extras                `json:"extras,omitempty"`
}

// Validate rejects option identifiers missing from the catalog.
func (sp SelectionPatch) Validate() error {
	if sp.Process != nil {
		if _, err := catalog.ParseProcess(string(*sp.Process)); err != nil {
			return err
		}
	}
	if sp.Material != nil {
		if _, err := catalog.ParseMaterial(string(*sp.Material)); err != nil {
			return err
		}
	}
	if sp.SurfaceFinish != nil {
		if _, err := catalog.ParseSurfaceFinish(string(*sp.SurfaceFinish)); err != nil {
			return err
		}
	}
	if sp.Coating != nil {
		if _, err := catalog.ParseCoating(string(*sp.Coating)); err != nil {
			return err
		}
	}
	if sp.LeadTime != nil {
		if _, err := catalog.ParseLeadTime(string(*sp.LeadTime)); err != nil {
			return err
		}
	}
	return nil
}

// Apply returns s with the patch applied. Quantities are clamped.
func (sp SelectionPatch) Apply(s Selections) Selections {
	if sp.Process != nil {
		s.Process = *sp.Process
	}
	if sp.Material != nil {
		s.Material = *sp.Material
	}
	if sp.SurfaceFinish != nil {
		s.SurfaceFinish = *sp.SurfaceFinish
	}
	if sp.Coating != nil {
		s.Coating = *sp.Coating
	}
	if sp.Quantity != nil {
		s.Quantity = ClampQuantity(*sp.Quantity)
	}
	if sp.LeadTime != nil {
		s.LeadTime = *sp.LeadTime
		if s.LeadTime == "" {
			s.LeadTime = catalog.DefaultLeadTime
		}
	}
	if sp.Extras != nil {
		e := sp.Extras.Clone()
		s.Extras = &e
	}
	return s
}

// compatible checks the finish and coating named by the patch against the
// material of s. Picks the patch leaves alone are not checked, so a material
// change keeps stale choices visible as conflicts.
func (sp SelectionPatch) compatible(s Selections) error {
	if sp.SurfaceFinish != nil {
		if err := catalog.CheckFinish(s.SurfaceFinish, s.Material); err != nil {
			return err
		}
	}
	if sp.Coating != nil {
		if err := catalog.CheckCoating(s.Coating, s.Material); err != nil {
			return err
		}
	}
	return nil
}

// UpdateSelections applies a patch to the selections of a part without
// moving its current step. A patch naming an unknown option, or picking a
// finish or coating not offered for the resulting material, is rejected.
func (c Collection) UpdateSelections(id string, patch SelectionPatch) (Collection, error) {
	if err := patch.Validate(); err != nil {
		return c, err
	}
	p, ok := c.Find(id)
	if !ok {
		return c, fmt.Errorf("%w: %s", ErrPartNotFound, id)
	}
	if err := patch.compatible(patch.Apply(p.Selections)); err != nil {
		return c, err
	}
	return c.update(id, func(p Part) Part {
		p.Selections = patch.Apply(p.Selections)
		return p
	})
}

// UpdateQuantity sets the quantity of a part, clamped to the valid range.
func (c Collection) UpdateQuantity(id string, quantity int) (Collection, error) {
	return c.UpdateSelections(id, SelectionPatch{Quantity: &quantity})
}

// UpdateLeadTime sets the lead time of a part.
func (c Collection) UpdateLeadTime(id string, lt catalog.LeadTime) (Collection, error) {
	return c.UpdateSelections(id, SelectionPatch{LeadTime: &lt})
}

// Select records a step selection on a part; see Select.
func (c Collection) Select(id string, step Step, value string) (Collection, SelectResult, error) {
	var res SelectResult
	var selErr error
	out, err := c.update(id, func(p Part) Part {
		res, selErr = Select(p, step, value)
		if selErr != nil {
			return p
		}
		return res.Part
	})
	if err != nil {
		return c, SelectResult{}, err
	}
	if selErr != nil {
		return c, SelectResult{}, selErr
	}
	return out, res, nil
}

// SetExtras replaces the extras of a part.
func (c Collection) SetExtras(id string, e Extras) (Collection, error) {
	return c.update(id, func(p Part) Part { return SelectExtras(p, e).Part })
}

// SetStep jumps a part to step i.
func (c Collection) SetStep(id string, i int) (Collection, error) {
	return c.update(id, func(p Part) Part { return GoToStep(p, i) })
}

// Focus makes a part active and resumes it at its first incomplete step.
func (c Collection) Focus(id string) (Collection, error) {
	out, err := c.update(id, func(p Part) Part {
		p.CurrentStep = FirstIncompleteStep(p)
		return p
	})
	if err != nil {
		return c, err
	}
	out.Active = id
	return out, nil
}

// AttachDrawing records a 2D drawing on a part.
func (c Collection) AttachDrawing(id string, f FileDescriptor) (Collection, error) {
	return c.update(id, func(p Part) Part {
		p.DrawingFileName = f.Name
		p.DrawingFileSize = f.Size
		return p
	})
}

// RemoveDrawing clears the 2D drawing of a part.
func (c Collection) RemoveDrawing(id string) (Collection, error) {
	return c.update(id, func(p Part) Part {
		p.DrawingFileName = ""
		p.DrawingFileSize = 0
		return p
	})
}
