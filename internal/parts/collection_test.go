package parts

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Simplici0/partquote/internal/catalog"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("part-%d", n)
	}
}

func names(c Collection) []string {
	out := make([]string, 0, c.Len())
	for _, p := range c.Parts {
		out = append(out, p.Name)
	}
	return out
}

func TestAddFromFiles(t *testing.T) {
	c := NewCollection(sequentialIDs()).AddFromFiles([]FileDescriptor{
		{Name: "bracket.step", Size: 27460},
		{Name: "housing.v2.stl", Size: 100},
	})

	if c.Len() != 2 {
		t.Fatalf("expected 2 parts, got %d", c.Len())
	}
	p := c.Parts[0]
	if p.Name != "bracket" || p.FileName != "bracket.step" || p.FileSize != 27460 {
		t.Fatalf("unexpected first part: %+v", p)
	}
	if c.Parts[1].Name != "housing.v2" {
		t.Fatalf("name = %q, want housing.v2", c.Parts[1].Name)
	}
	if p.CurrentStep != StepProcess || p.Selections.Quantity != 1 || p.Selections.LeadTime != catalog.LeadTime7Days {
		t.Fatalf("unexpected defaults: %+v", p)
	}
	if IsComplete(p) {
		t.Fatalf("new part must be incomplete")
	}
	if c.Active != "part-1" {
		t.Fatalf("active = %q, want first new part", c.Active)
	}
}

func TestAddEmptyNamesByCount(t *testing.T) {
	c := NewCollection(sequentialIDs()).AddEmpty().AddEmpty()
	if got := names(c); got[0] != "Part 1" || got[1] != "Part 2" {
		t.Fatalf("names = %v", got)
	}
	if c.Parts[0].HasFile() {
		t.Fatalf("manual part must have no file provenance")
	}

	c, err := c.Remove("part-1")
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	c = c.AddEmpty()
	if got := names(c); got[0] != "Part 2" || got[1] != "Part 2" {
		t.Fatalf("count-based naming should repeat after removal, got %v", got)
	}
}

func TestOperationsDoNotMutateInput(t *testing.T) {
	base := NewCollection(sequentialIDs()).AddEmpty()
	renamed, err := base.Rename("part-1", "Shaft")
	if err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if base.Parts[0].Name != "Part 1" || renamed.Parts[0].Name != "Shaft" {
		t.Fatalf("rename leaked into the source collection")
	}
}

func TestDuplicate(t *testing.T) {
	c := NewCollection(sequentialIDs()).AddFromFiles([]FileDescriptor{{Name: "plate.step", Size: 10}})
	c, _, err := c.Select("part-1", StepProcess, "cnc")
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	c, err = c.SetExtras("part-1", Extras{Serialization: true})
	if err != nil {
		t.Fatalf("SetExtras: %v", err)
	}

	c, err = c.Duplicate("part-1")
	if err != nil {
		t.Fatalf("Duplicate: %v", err)
	}
	dup := c.Parts[1]
	if dup.ID == "part-1" || dup.Name != "plate Copy" || dup.HasFile() || dup.FileSize != 0 {
		t.Fatalf("unexpected duplicate: %+v", dup)
	}
	if dup.Selections.Process != catalog.ProcessCNC || !dup.Selections.Extras.Serialization {
		t.Fatalf("selections not copied: %+v", dup.Selections)
	}
	if dup.Selections.Extras == c.Parts[0].Selections.Extras {
		t.Fatalf("extras must be copied, not shared")
	}
	if c.Active != dup.ID {
		t.Fatalf("duplicate should become active")
	}

	if _, err := c.Duplicate("missing"); !errors.Is(err, ErrPartNotFound) {
		t.Fatalf("err = %v, want ErrPartNotFound", err)
	}
}

func TestDuplicateRejectsVariation(t *testing.T) {
	c := NewCollection(sequentialIDs()).AddEmpty()
	c, err := c.CreateVariation("part-1")
	if err != nil {
		t.Fatalf("CreateVariation: %v", err)
	}
	c, err = c.CreateVariation("part-1")
	if err != nil {
		t.Fatalf("CreateVariation: %v", err)
	}

	out, err := c.Duplicate("part-3")
	if !errors.Is(err, ErrDuplicateVariation) {
		t.Fatalf("err = %v, want ErrDuplicateVariation", err)
	}
	if out.Len() != 3 {
		t.Fatalf("collection changed: %d parts", out.Len())
	}
	seen := map[int]bool{}
	for _, p := range out.Parts {
		if !p.IsVariation {
			continue
		}
		if seen[p.VariationNumber] {
			t.Fatalf("variation number %d used twice", p.VariationNumber)
		}
		seen[p.VariationNumber] = true
	}
}

func TestCreateVariationGroupsAfterParent(t *testing.T) {
	c := NewCollection(sequentialIDs()).AddEmpty().AddEmpty()

	c, err := c.CreateVariation("part-1")
	if err != nil {
		t.Fatalf("CreateVariation: %v", err)
	}
	c, err = c.CreateVariation("part-1")
	if err != nil {
		t.Fatalf("CreateVariation: %v", err)
	}
	c, err = c.CreateVariation("part-3")
	if err != nil {
		t.Fatalf("CreateVariation of a variation: %v", err)
	}

	want := []string{"Part 1", "Variant #1", "Variant #2", "Variant #3", "Part 2"}
	got := names(c)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("names = %v, want %v", got, want)
		}
	}
	for _, p := range c.Parts[1:4] {
		if !p.IsVariation || p.ParentID != "part-1" {
			t.Fatalf("variation not linked to root: %+v", p)
		}
	}
	if c.Active != "part-5" {
		t.Fatalf("active = %q, want newest variation", c.Active)
	}
}

func TestRemoveVariationRenumbersContiguously(t *testing.T) {
	c := NewCollection(sequentialIDs()).AddEmpty()
	for i := 0; i < 4; i++ {
		var err error
		c, err = c.CreateVariation("part-1")
		if err != nil {
			t.Fatalf("CreateVariation: %v", err)
		}
	}

	c, err := c.RemoveVariation("part-3")
	if err != nil {
		t.Fatalf("RemoveVariation: %v", err)
	}

	n := 0
	for _, p := range c.Parts {
		if !p.IsVariation {
			continue
		}
		n++
		if p.VariationNumber != n || p.Name != fmt.Sprintf("Variant #%d", n) {
			t.Fatalf("variation %s numbered %d (%s), want %d", p.ID, p.VariationNumber, p.Name, n)
		}
	}
	if n != 3 {
		t.Fatalf("expected 3 variations left, got %d", n)
	}

	if _, err := c.RemoveVariation("part-1"); !errors.Is(err, ErrNotVariation) {
		t.Fatalf("err = %v, want ErrNotVariation", err)
	}
}

func TestRemoveRootDropsItsVariations(t *testing.T) {
	c := NewCollection(sequentialIDs()).AddEmpty().AddEmpty()
	c, _ = c.CreateVariation("part-1")

	c, err := c.Remove("part-1")
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if c.Len() != 1 || c.Parts[0].ID != "part-2" {
		t.Fatalf("unexpected parts after removing root: %v", names(c))
	}
}

func TestRemoveActiveFallsBack(t *testing.T) {
	c := NewCollection(sequentialIDs()).AddEmpty().AddEmpty().AddEmpty()
	if c.Active != "part-3" {
		t.Fatalf("active = %q", c.Active)
	}

	c, _ = c.Remove("part-3")
	if c.Active != "part-1" {
		t.Fatalf("active after removal = %q, want part-1", c.Active)
	}

	c, _ = c.Focus("part-2")
	c, _ = c.Remove("part-1")
	if c.Active != "part-2" {
		t.Fatalf("removing an inactive part must keep focus, got %q", c.Active)
	}

	c, _ = c.Remove("part-2")
	if c.Active != "" || c.Len() != 0 {
		t.Fatalf("expected empty collection with no focus, got %+v", c)
	}
}

func TestUpdateQuantityAndLeadTime(t *testing.T) {
	c := NewCollection(sequentialIDs()).AddEmpty()

	c, err := c.UpdateQuantity("part-1", 0)
	if err != nil {
		t.Fatalf("UpdateQuantity: %v", err)
	}
	if q := c.Parts[0].Selections.Quantity; q != 1 {
		t.Fatalf("quantity = %d, want clamped to 1", q)
	}
	c, _ = c.UpdateQuantity("part-1", 50000)
	if q := c.Parts[0].Selections.Quantity; q != MaxQuantity {
		t.Fatalf("quantity = %d, want %d", q, MaxQuantity)
	}

	c, err = c.UpdateLeadTime("part-1", catalog.LeadTime2Days)
	if err != nil {
		t.Fatalf("UpdateLeadTime: %v", err)
	}
	if lt := c.Parts[0].Selections.LeadTime; lt != catalog.LeadTime2Days {
		t.Fatalf("lead time = %q", lt)
	}
	if c.Parts[0].Name != "Part 1" || c.Parts[0].CurrentStep != StepProcess {
		t.Fatalf("unrelated fields changed: %+v", c.Parts[0])
	}
}

func TestUpdateSelectionsKeepsStep(t *testing.T) {
	c := NewCollection(sequentialIDs()).AddEmpty()
	aluminum := catalog.Material6061
	coating := catalog.CoatingClearAnodize
	brass := catalog.MaterialBrass

	c, err := c.UpdateSelections("part-1", SelectionPatch{Material: &aluminum, Coating: &coating})
	if err != nil {
		t.Fatalf("UpdateSelections: %v", err)
	}
	c, err = c.UpdateSelections("part-1", SelectionPatch{Material: &brass})
	if err != nil {
		t.Fatalf("UpdateSelections(material): %v", err)
	}
	p := c.Parts[0]
	if p.CurrentStep != StepProcess {
		t.Fatalf("patch must not move the step")
	}
	if conflicts := p.Conflicts(); len(conflicts) != 1 || conflicts[0].Field != "coating" {
		t.Fatalf("expected stale coating conflict, got %+v", conflicts)
	}
	if p.Selections.Coating != catalog.CoatingClearAnodize {
		t.Fatalf("incompatible coating must not be cleared")
	}
}

func TestUpdateSelectionsRejectsIncompatibleOption(t *testing.T) {
	c := NewCollection(sequentialIDs()).AddEmpty()
	stainless := catalog.Material304Stainless
	brass := catalog.MaterialBrass
	coating := catalog.CoatingClearAnodize
	finish := catalog.FinishAnodized

	c, err := c.UpdateSelections("part-1", SelectionPatch{Material: &stainless})
	if err != nil {
		t.Fatalf("UpdateSelections(material): %v", err)
	}
	out, err := c.UpdateSelections("part-1", SelectionPatch{Coating: &coating})
	if !errors.Is(err, catalog.ErrIncompatibleOption) {
		t.Fatalf("err = %v, want ErrIncompatibleOption", err)
	}
	if out.Parts[0].Selections.Coating != "" {
		t.Fatalf("rejected patch must not be applied")
	}
	if _, err := c.UpdateSelections("part-1", SelectionPatch{Material: &brass, SurfaceFinish: &finish}); !errors.Is(err, catalog.ErrIncompatibleOption) {
		t.Fatalf("finish checked against patched material: err = %v", err)
	}
	if _, err := c.UpdateSelections("missing", SelectionPatch{Coating: &coating}); !errors.Is(err, ErrPartNotFound) {
		t.Fatalf("err = %v, want ErrPartNotFound", err)
	}
}

func TestUpdateSelectionsRejectsUnknownOption(t *testing.T) {
	c := NewCollection(sequentialIDs()).AddEmpty()
	material := catalog.Material("606l")

	out, err := c.UpdateSelections("part-1", SelectionPatch{Material: &material})
	if !errors.Is(err, catalog.ErrUnknownOption) {
		t.Fatalf("err = %v, want ErrUnknownOption", err)
	}
	if out.Parts[0].Selections.Material != "" {
		t.Fatalf("collection must be unchanged")
	}

	blank := catalog.LeadTime("")
	out, err = c.UpdateSelections("part-1", SelectionPatch{LeadTime: &blank})
	if err != nil || out.Parts[0].Selections.LeadTime != catalog.DefaultLeadTime {
		t.Fatalf("blank lead time = %q, %v; want default", out.Parts[0].Selections.LeadTime, err)
	}
}

func TestFocusResumesAtFirstIncompleteStep(t *testing.T) {
	c := NewCollection(sequentialIDs()).AddEmpty().AddEmpty()
	c, _, _ = c.Select("part-1", StepProcess, "3d-printing")
	c, _ = c.SetStep("part-1", 4)

	c, err := c.Focus("part-1")
	if err != nil {
		t.Fatalf("Focus: %v", err)
	}
	p, _ := c.Find("part-1")
	if p.CurrentStep != StepMaterial || c.Active != "part-1" {
		t.Fatalf("focus resumed at %s active=%s", p.CurrentStep, c.Active)
	}
}

func TestDrawingAttachment(t *testing.T) {
	c := NewCollection(sequentialIDs()).AddEmpty()
	c, err := c.AttachDrawing("part-1", FileDescriptor{Name: "plate.pdf", Size: 2048})
	if err != nil {
		t.Fatalf("AttachDrawing: %v", err)
	}
	if p := c.Parts[0]; p.DrawingFileName != "plate.pdf" || p.DrawingFileSize != 2048 {
		t.Fatalf("drawing not recorded: %+v", p)
	}
	c, _ = c.RemoveDrawing("part-1")
	if c.Parts[0].DrawingFileName != "" {
		t.Fatalf("drawing not cleared")
	}
}

func TestCompleteFiltersIncompleteParts(t *testing.T) {
	c := NewCollection(sequentialIDs()).AddEmpty().AddEmpty()
	for _, sel := range []struct {
		step  Step
		value string
	}{{StepProcess, "cnc"}, {StepMaterial, "6061"}, {StepSurfaceFinish, "as-machined"}, {StepCoating, "none"}} {
		var err error
		c, _, err = c.Select("part-2", sel.step, sel.value)
		if err != nil {
			t.Fatalf("Select: %v", err)
		}
	}
	c, _, _ = c.Select("part-1", StepProcess, "cnc")

	done := c.Complete()
	if len(done) != 1 || done[0].ID != "part-2" {
		t.Fatalf("complete = %+v", done)
	}
}
