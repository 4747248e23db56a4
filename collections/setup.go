package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Setup programmatically creates/ensures every collection the app needs:
// the global catalog (norms, norm_resources, rates) and the per-project
// data (projects, rate_overrides, transport_settings, material_transport,
// boq_items).
func Setup(app *pocketbase.PocketBase) {
	projects := ensureCollection(app, "projects", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "district", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "mode",
			Required:  true,
			Values:    []string{"CONTRACTOR", "USERS"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    []string{"active", "completed", "on_hold"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	norms := ensureCollection(app, "norms", func(c *core.Collection) {
		c.Fields.Add(&core.SelectField{
			Name:      "type",
			Required:  true,
			Values:    []string{"DOR", "DUDBC"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "code", Required: false})
		c.Fields.Add(&core.TextField{Name: "description", Required: true})
		c.Fields.Add(&core.TextField{Name: "unit", Required: true})
		c.Fields.Add(&core.NumberField{Name: "basis_quantity", Required: true})
		c.Fields.Add(&core.TextField{Name: "ref_ss", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "norm_resources", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "norm",
			Required:      true,
			CollectionId:  norms.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.SelectField{
			Name:      "resource_type",
			Required:  true,
			Values:    []string{"Labour", "Material", "Equipment"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "unit", Required: false})
		c.Fields.Add(&core.NumberField{Name: "quantity", Required: true})
		c.Fields.Add(&core.BoolField{Name: "is_percentage"})
		c.Fields.Add(&core.TextField{Name: "percentage_base", Required: false})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: false})
	})

	ensureCollection(app, "rates", func(c *core.Collection) {
		c.Fields.Add(&core.SelectField{
			Name:      "resource_type",
			Required:  true,
			Values:    []string{"Labour", "Material", "Equipment"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "unit", Required: false})
		c.Fields.Add(&core.NumberField{Name: "rate", Required: false})
		c.Fields.Add(&core.BoolField{Name: "apply_vat"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "rate_overrides", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "project",
			Required:      true,
			CollectionId:  projects.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.RelationField{
			Name:          "norm",
			Required:      true,
			CollectionId:  norms.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "resource_name", Required: true})
		// Stored as text so that "no override" (empty) stays distinct
		// from an explicit override of 0.
		c.Fields.Add(&core.TextField{Name: "override_rate", Required: false})
		c.Fields.Add(&core.TextField{Name: "override_quantity", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "transport_settings", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "project",
			Required:      true,
			CollectionId:  projects.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.SelectField{
			Name:      "transport_mode",
			Required:  true,
			Values:    []string{"TRUCK", "TRACTOR"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.NumberField{Name: "metalled_km"})
		c.Fields.Add(&core.NumberField{Name: "gravelled_km"})
		c.Fields.Add(&core.NumberField{Name: "porter_km"})
		c.Fields.Add(&core.NumberField{Name: "porter_easy"})
		c.Fields.Add(&core.NumberField{Name: "porter_difficult"})
		c.Fields.Add(&core.NumberField{Name: "porter_vdifficult"})
		c.Fields.Add(&core.NumberField{Name: "porter_high_volume"})
		c.Fields.Add(&core.NumberField{Name: "truck_metalled_easy"})
		c.Fields.Add(&core.NumberField{Name: "truck_metalled_difficult"})
		c.Fields.Add(&core.NumberField{Name: "truck_metalled_vdifficult"})
		c.Fields.Add(&core.NumberField{Name: "truck_metalled_high_volume"})
		c.Fields.Add(&core.NumberField{Name: "truck_gravelled_easy"})
		c.Fields.Add(&core.NumberField{Name: "truck_gravelled_difficult"})
		c.Fields.Add(&core.NumberField{Name: "truck_gravelled_vdifficult"})
		c.Fields.Add(&core.NumberField{Name: "truck_gravelled_high_volume"})
		c.Fields.Add(&core.NumberField{Name: "tractor_metalled"})
		c.Fields.Add(&core.NumberField{Name: "tractor_gravelled"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "material_transport", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "project",
			Required:      true,
			CollectionId:  projects.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "material_name", Required: true})
		c.Fields.Add(&core.NumberField{Name: "unit_weight_kg", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "load_category",
			Required:  true,
			Values:    []string{"EASY", "DIFFICULT", "VDIFFICULT", "HIGH_VOLUME"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "boq_items", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "project",
			Required:      true,
			CollectionId:  projects.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		// Deliberately no cascade: deleting a norm leaves the BOQ item
		// behind as a stale row that aggregation skips.
		c.Fields.Add(&core.RelationField{
			Name:         "norm",
			Required:     true,
			CollectionId: norms.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.NumberField{Name: "quantity", Required: true})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
