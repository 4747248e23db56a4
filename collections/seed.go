package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// ── Definition structs ───────────────────────────────────────────────────

type rateDef struct {
	resourceType string
	name         string
	unit         string
	rate         float64
	applyVAT     bool
}

type resourceDef struct {
	sortOrder      int
	resourceType   string
	name           string
	unit           string
	quantity       float64
	isPercentage   bool
	percentageBase string
}

type normDef struct {
	normType      string
	code          string
	description   string
	unit          string
	basisQuantity float64
	refSS         string
	resources     []resourceDef
}

// districtRates is a starter district rate list. Labour and equipment are
// quoted VAT-exclusive without the flag; supplied materials carry apply_vat.
var districtRates = []rateDef{
	{"Labour", "Skilled Labour", "Day", 1100, false},
	{"Labour", "Unskilled Labour", "Day", 800, false},
	{"Labour", "Mason", "Day", 1050, false},
	{"Labour", "Carpenter", "Day", 1000, false},
	{"Labour", "Steel Fixer", "Day", 1000, false},
	{"Material", "Cement", "Bag", 790, true},
	{"Material", "Sand", "Cum", 1650, true},
	{"Material", "Aggregate 20mm", "Cum", 2100, true},
	{"Material", "Aggregate 40mm", "Cum", 1950, true},
	{"Material", "Stone Boulder", "Cum", 1500, true},
	{"Material", "Tor Steel", "Kg", 112, true},
	{"Material", "Binding Wire", "Kg", 160, true},
	{"Material", "Timber Planks", "Cum", 42000, true},
	{"Equipment", "Concrete Mixer", "Hour", 650, false},
	{"Equipment", "Vibrator", "Hour", 280, false},
	{"Equipment", "Water Tanker", "Trip", 2400, false},
}

// starterNorms gives new installs something to price immediately: one DOR
// concrete norm and one DUDBC masonry norm, each with percentage resources.
var starterNorms = []normDef{
	{
		normType: "DOR", code: "7.4",
		description:   "Cement concrete 1:2:4 with screened gravel, including curing",
		unit:          "Cum",
		basisQuantity: 1,
		refSS:         "SS-204",
		resources: []resourceDef{
			{1, "Labour", "Mason", "Day", 0.80, false, ""},
			{2, "Labour", "Unskilled Labour", "Day", 3.00, false, ""},
			{3, "Material", "Cement", "Bag", 6.65, false, ""},
			{4, "Material", "Sand", "Cum", 0.47, false, ""},
			{5, "Material", "Aggregate 20mm", "Cum", 0.89, false, ""},
			{6, "Equipment", "Concrete Mixer", "Hour", 1.20, false, ""},
			{7, "Labour", "Water charges", "", 1.5, true, "TOTAL"},
			{8, "Equipment", "T&P", "", 1.0, true, "LABOUR"},
		},
	},
	{
		normType: "DUDBC", code: "4.2",
		description:   "Stone masonry in 1:4 cement sand mortar for wall",
		unit:          "Cum",
		basisQuantity: 10,
		refSS:         "",
		resources: []resourceDef{
			{1, "Labour", "Mason", "Day", 8.00, false, ""},
			{2, "Labour", "Unskilled Labour", "Day", 16.00, false, ""},
			{3, "Material", "Stone Boulder", "Cum", 11.00, false, ""},
			{4, "Material", "Cement", "Bag", 13.60, false, ""},
			{5, "Material", "Sand", "Cum", 4.25, false, ""},
			{6, "Labour", "Water charges", "", 1.0, true, "Mason"},
			{7, "Labour", "Scaffolding charges", "", 1.5, true, "TOTAL"},
		},
	},
}

// Seed populates the global catalog with a district rate list and two
// starter norms. It is safe to call on every startup because it returns
// early if any norm records already exist.
func Seed(app *pocketbase.PocketBase) error {
	// ── idempotency: skip if norms already exist ─────────────────────
	normsCol, err := app.FindCollectionByNameOrId("norms")
	if err != nil {
		return fmt.Errorf("seed: could not find norms collection: %w", err)
	}
	existing, err := app.FindAllRecords(normsCol)
	if err != nil {
		return fmt.Errorf("seed: could not query norms: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Println("seed: norms collection is empty – inserting starter catalog …")

	resourcesCol, err := app.FindCollectionByNameOrId("norm_resources")
	if err != nil {
		return fmt.Errorf("seed: could not find norm_resources collection: %w", err)
	}
	ratesCol, err := app.FindCollectionByNameOrId("rates")
	if err != nil {
		return fmt.Errorf("seed: could not find rates collection: %w", err)
	}

	for _, def := range districtRates {
		record := core.NewRecord(ratesCol)
		record.Set("resource_type", def.resourceType)
		record.Set("name", def.name)
		record.Set("unit", def.unit)
		record.Set("rate", def.rate)
		record.Set("apply_vat", def.applyVAT)
		if err := app.Save(record); err != nil {
			return fmt.Errorf("seed: could not save rate %q: %w", def.name, err)
		}
	}

	for _, def := range starterNorms {
		normRecord := core.NewRecord(normsCol)
		normRecord.Set("type", def.normType)
		normRecord.Set("code", def.code)
		normRecord.Set("description", def.description)
		normRecord.Set("unit", def.unit)
		normRecord.Set("basis_quantity", def.basisQuantity)
		normRecord.Set("ref_ss", def.refSS)
		if err := app.Save(normRecord); err != nil {
			return fmt.Errorf("seed: could not save norm %q: %w", def.code, err)
		}

		for _, res := range def.resources {
			resRecord := core.NewRecord(resourcesCol)
			resRecord.Set("norm", normRecord.Id)
			resRecord.Set("sort_order", res.sortOrder)
			resRecord.Set("resource_type", res.resourceType)
			resRecord.Set("name", res.name)
			resRecord.Set("unit", res.unit)
			resRecord.Set("quantity", res.quantity)
			resRecord.Set("is_percentage", res.isPercentage)
			resRecord.Set("percentage_base", res.percentageBase)
			if err := app.Save(resRecord); err != nil {
				return fmt.Errorf("seed: could not save resource %q of norm %q: %w", res.name, def.code, err)
			}
		}
	}

	log.Printf("seed: inserted %d rates and %d norms\n", len(districtRates), len(starterNorms))
	return nil
}
