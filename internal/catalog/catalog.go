// Package catalog holds the manufacturing option tables: the identifiers a
// part can select for each configuration field, their display names and the
// price multiplier each one contributes.
package catalog

// Process is a manufacturing process identifier. The zero value means unset.
type Process string

const (
	ProcessCNC        Process = "cnc"
	Process3DPrinting Process = "3d-printing"
	ProcessSheetMetal Process = "sheet-metal"
)

// Material is a stock material identifier. The zero value means unset.
type Material string

const (
	Material6061         Material = "6061"
	Material7075         Material = "7075"
	Material304Stainless Material = "304-stainless"
	Material316Stainless Material = "316-stainless"
	MaterialABS          Material = "abs"
	MaterialPLA          Material = "pla"
	MaterialDelrin       Material = "delrin"
	MaterialNylon        Material = "nylon"
	MaterialPEEK         Material = "peek"
	MaterialBrass        Material = "brass"
	MaterialCopper       Material = "copper"
	MaterialTitanium     Material = "titanium"
)

// SurfaceFinish is a surface finish identifier. The zero value means unset.
type SurfaceFinish string

const (
	FinishAsMachined  SurfaceFinish = "as-machined"
	FinishBeadBlast   SurfaceFinish = "bead-blast"
	FinishBrushed     SurfaceFinish = "brushed"
	FinishAnodized    SurfaceFinish = "anodized"
	FinishPolished    SurfaceFinish = "polished"
	FinishSandblasted SurfaceFinish = "sandblasted"
	FinishTumbled     SurfaceFinish = "tumbled"
	FinishPassivated  SurfaceFinish = "passivated"
)

// Coating is a coating identifier. The zero value means unset.
type Coating string

const (
	CoatingNone         Coating = "none"
	CoatingClearAnodize Coating = "clear-anodize"
	CoatingBlackAnodize Coating = "black-anodize"
	CoatingPowderCoat   Coating = "powder-coat"
	CoatingZincPlate    Coating = "zinc-plate"
	CoatingNickelPlate  Coating = "nickel-plate"
	CoatingChromePlate  Coating = "chrome-plate"
	CoatingGoldPlate    Coating = "gold-plate"
	CoatingTeflonCoat   Coating = "teflon-coat"
)

// LeadTime is a turnaround token measured in days.
type LeadTime string

const (
	LeadTime1Day  LeadTime = "1"
	LeadTime2Days LeadTime = "2"
	LeadTime3Days LeadTime = "3"
	LeadTime5Days LeadTime = "5"
	LeadTime7Days LeadTime = "7"

	DefaultLeadTime = LeadTime7Days
)

// MaterialFamily groups materials for browsing and for finish/coating
// restrictions.
type MaterialFamily string

const (
	FamilyAluminum  MaterialFamily = "aluminum"
	FamilyStainless MaterialFamily = "stainless-steel"
	FamilyPlastics  MaterialFamily = "plastics"
	FamilyMetals    MaterialFamily = "metals"
)

// BasePrice is the manufacturing cost of a single unit before multipliers.
const BasePrice = 75.0

// Option describes one selectable value of a configuration field.
type Option[T ~string] struct {
	ID         T       `json:"id"`
	Name       string  `json:"name"`
	Multiplier float64 `json:"multiplier"`
	Popular    bool    `json:"popular"`
	// Restriction limits the option to materials of one family. Empty means
	// the option is offered for every material.
	Restriction MaterialFamily `json:"materialRestriction,omitempty"`
}

// MaterialOption is a material entry with its browsing family.
type MaterialOption struct {
	Option[Material]
	Family      MaterialFamily `json:"category"`
	Description string         `json:"description"`
}

// LeadTimeKind separates rush tiers from the standard turnaround.
type LeadTimeKind string

const (
	LeadTimeExpedited LeadTimeKind = "expedited"
	LeadTimeStandard  LeadTimeKind = "standard"
)

// LeadTimeOption is a lead-time tier.
type LeadTimeOption struct {
	ID          LeadTime     `json:"value"`
	Label       string       `json:"label"`
	Kind        LeadTimeKind `json:"type"`
	Multiplier  float64      `json:"multiplier"`
	Description string       `json:"description"`
	Days        int          `json:"days"`
}

var processes = []Option[Process]{
	{ID: ProcessCNC, Name: "CNC Machining", Multiplier: 1.0, Popular: true},
	{ID: Process3DPrinting, Name: "3D Printing", Multiplier: 0.7, Popular: true},
	{ID: ProcessSheetMetal, Name: "Sheet Metal", Multiplier: 0.6, Popular: true},
}

var materials = []MaterialOption{
	{Option: Option[Material]{ID: Material6061, Name: "Aluminum 6061", Multiplier: 1.0, Popular: true}, Family: FamilyAluminum, Description: "Excellent workability and corrosion resistance"},
	{Option: Option[Material]{ID: Material7075, Name: "Aluminum 7075", Multiplier: 1.2, Popular: true}, Family: FamilyAluminum, Description: "High strength aerospace grade aluminum"},
	{Option: Option[Material]{ID: Material304Stainless, Name: "304 Stainless Steel", Multiplier: 1.3, Popular: true}, Family: FamilyStainless, Description: "Standard corrosion resistant steel"},
	{Option: Option[Material]{ID: Material316Stainless, Name: "316 Stainless Steel", Multiplier: 1.5, Popular: true}, Family: FamilyStainless, Description: "Superior corrosion resistance"},
	{Option: Option[Material]{ID: MaterialABS, Name: "ABS Plastic", Multiplier: 0.4, Popular: true}, Family: FamilyPlastics, Description: "Durable thermoplastic with good impact resistance"},
	{Option: Option[Material]{ID: MaterialPLA, Name: "PLA Plastic", Multiplier: 0.3, Popular: true}, Family: FamilyPlastics, Description: "Easy to machine, biodegradable option"},
	{Option: Option[Material]{ID: MaterialDelrin, Name: "Delrin (POM)", Multiplier: 0.8}, Family: FamilyPlastics, Description: "High precision plastic with low friction"},
	{Option: Option[Material]{ID: MaterialNylon, Name: "Nylon PA6", Multiplier: 0.6}, Family: FamilyPlastics, Description: "Strong, flexible engineering plastic"},
	{Option: Option[Material]{ID: MaterialPEEK, Name: "PEEK", Multiplier: 8.0}, Family: FamilyPlastics, Description: "High-performance engineering thermoplastic"},
	{Option: Option[Material]{ID: MaterialBrass, Name: "Brass", Multiplier: 1.6}, Family: FamilyMetals, Description: "Corrosion resistant with antimicrobial properties"},
	{Option: Option[Material]{ID: MaterialCopper, Name: "Copper", Multiplier: 1.8}, Family: FamilyMetals, Description: "Excellent electrical and thermal conductivity"},
	{Option: Option[Material]{ID: MaterialTitanium, Name: "Titanium Grade 2", Multiplier: 4.5}, Family: FamilyMetals, Description: "Lightweight with exceptional strength-to-weight ratio"},
}

var finishes = []Option[SurfaceFinish]{
	{ID: FinishAsMachined, Name: "As Machined", Multiplier: 1.0, Popular: true},
	{ID: FinishBeadBlast, Name: "Bead Blasted", Multiplier: 1.2, Popular: true},
	{ID: FinishBrushed, Name: "Brushed", Multiplier: 1.4, Popular: true},
	{ID: FinishAnodized, Name: "Anodized", Multiplier: 1.8, Popular: true, Restriction: FamilyAluminum},
	{ID: FinishPolished, Name: "Polished", Multiplier: 2.5},
	{ID: FinishSandblasted, Name: "Sandblasted", Multiplier: 1.3},
	{ID: FinishTumbled, Name: "Tumbled", Multiplier: 1.1},
	{ID: FinishPassivated, Name: "Passivated", Multiplier: 1.6, Restriction: FamilyStainless},
}

var coatings = []Option[Coating]{
	{ID: CoatingNone, Name: "No Coating", Multiplier: 1.0, Popular: true},
	{ID: CoatingClearAnodize, Name: "Clear Anodize", Multiplier: 1.4, Popular: true, Restriction: FamilyAluminum},
	{ID: CoatingBlackAnodize, Name: "Black Anodize", Multiplier: 1.6, Popular: true, Restriction: FamilyAluminum},
	{ID: CoatingPowderCoat, Name: "Powder Coating", Multiplier: 1.8, Popular: true},
	{ID: CoatingZincPlate, Name: "Zinc Plating", Multiplier: 1.5, Popular: true},
	{ID: CoatingNickelPlate, Name: "Nickel Plating", Multiplier: 2.2},
	{ID: CoatingChromePlate, Name: "Chrome Plating", Multiplier: 2.8},
	{ID: CoatingGoldPlate, Name: "Gold Plating", Multiplier: 5.0},
	{ID: CoatingTeflonCoat, Name: "Teflon Coating", Multiplier: 3.2},
}

var leadTimes = []LeadTimeOption{
	{ID: LeadTime1Day, Label: "1 Day", Kind: LeadTimeExpedited, Multiplier: 2.5, Description: "Express", Days: 1},
	{ID: LeadTime2Days, Label: "2 Days", Kind: LeadTimeExpedited, Multiplier: 2.1, Description: "Rush", Days: 2},
	{ID: LeadTime3Days, Label: "3 Days", Kind: LeadTimeExpedited, Multiplier: 1.7, Description: "Fast", Days: 3},
	{ID: LeadTime5Days, Label: "5 Days", Kind: LeadTimeExpedited, Multiplier: 1.3, Description: "Quick", Days: 5},
	{ID: LeadTime7Days, Label: "7 Days (Standard)", Kind: LeadTimeStandard, Multiplier: 1.0, Description: "Standard", Days: 7},
}

// Processes returns the process options in display order.
func Processes() []Option[Process] { return append([]Option[Process](nil), processes...) }

// Materials returns the material options in display order.
func Materials() []MaterialOption { return append([]MaterialOption(nil), materials...) }

// SurfaceFinishes returns every surface finish, restricted ones included.
func SurfaceFinishes() []Option[SurfaceFinish] {
	return append([]Option[SurfaceFinish](nil), finishes...)
}

// Coatings returns every coating, restricted ones included.
func Coatings() []Option[Coating] { return append([]Option[Coating](nil), coatings...) }

// LeadTimes returns the lead-time tiers from fastest to standard.
func LeadTimes() []LeadTimeOption { return append([]LeadTimeOption(nil), leadTimes...) }

// MaterialsInFamily lists the materials of one family. An empty family
// returns all materials.
func MaterialsInFamily(family MaterialFamily) []MaterialOption {
	if family == "" {
		return Materials()
	}
	out := make([]MaterialOption, 0, len(materials))
	for _, m := range materials {
		if m.Family == family {
			out = append(out, m)
		}
	}
	return out
}

// LeadTimeDays returns the turnaround of a lead-time token. Unknown tokens
// report false.
func LeadTimeDays(lt LeadTime) (int, bool) {
	for _, o := range leadTimes {
		if o.ID == lt {
			return o.Days, true
		}
	}
	return 0, false
}
