package handlers

import (
	"fmt"
	"strconv"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/niteshrisal-coder/Norms-Master/services"
)

// parseNullableFloat interprets an override text field: empty means "no
// override" and anything unparsable is treated the same way.
func parseNullableFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func resourceFromRecord(rec *core.Record) services.Resource {
	return services.Resource{
		Type:           services.ResourceType(rec.GetString("resource_type")),
		Name:           rec.GetString("name"),
		Unit:           rec.GetString("unit"),
		Quantity:       rec.GetFloat("quantity"),
		IsPercentage:   rec.GetBool("is_percentage"),
		PercentageBase: rec.GetString("percentage_base"),
	}
}

func normFromRecord(rec *core.Record, resources []services.Resource) services.Norm {
	return services.Norm{
		ID:            rec.Id,
		Type:          services.NormType(rec.GetString("type")),
		Code:          rec.GetString("code"),
		Description:   rec.GetString("description"),
		Unit:          rec.GetString("unit"),
		BasisQuantity: rec.GetFloat("basis_quantity"),
		RefSS:         rec.GetString("ref_ss"),
		Resources:     resources,
	}
}

func rateFromRecord(rec *core.Record) services.Rate {
	return services.Rate{
		Type:     services.ResourceType(rec.GetString("resource_type")),
		Name:     rec.GetString("name"),
		Unit:     rec.GetString("unit"),
		Rate:     rec.GetFloat("rate"),
		ApplyVAT: rec.GetBool("apply_vat"),
	}
}

func overrideFromRecord(rec *core.Record) services.RateOverride {
	return services.RateOverride{
		ProjectID:    rec.GetString("project"),
		NormID:       rec.GetString("norm"),
		ResourceName: rec.GetString("resource_name"),
		Rate:         parseNullableFloat(rec.GetString("override_rate")),
		Quantity:     parseNullableFloat(rec.GetString("override_quantity")),
	}
}

func transportFromRecord(rec *core.Record) services.TransportSettings {
	return services.TransportSettings{
		Mode:        services.TransportMode(rec.GetString("transport_mode")),
		MetalledKM:  rec.GetFloat("metalled_km"),
		GravelledKM: rec.GetFloat("gravelled_km"),
		PorterKM:    rec.GetFloat("porter_km"),
		Porter: services.CategoryCoefficients{
			Easy:       rec.GetFloat("porter_easy"),
			Difficult:  rec.GetFloat("porter_difficult"),
			VDifficult: rec.GetFloat("porter_vdifficult"),
			HighVolume: rec.GetFloat("porter_high_volume"),
		},
		TruckMetalled: services.CategoryCoefficients{
			Easy:       rec.GetFloat("truck_metalled_easy"),
			Difficult:  rec.GetFloat("truck_metalled_difficult"),
			VDifficult: rec.GetFloat("truck_metalled_vdifficult"),
			HighVolume: rec.GetFloat("truck_metalled_high_volume"),
		},
		TruckGravelled: services.CategoryCoefficients{
			Easy:       rec.GetFloat("truck_gravelled_easy"),
			Difficult:  rec.GetFloat("truck_gravelled_difficult"),
			VDifficult: rec.GetFloat("truck_gravelled_vdifficult"),
			HighVolume: rec.GetFloat("truck_gravelled_high_volume"),
		},
		TractorMetalled:  rec.GetFloat("tractor_metalled"),
		TractorGravelled: rec.GetFloat("tractor_gravelled"),
	}
}

func materialFromRecord(rec *core.Record) services.MaterialTransport {
	return services.MaterialTransport{
		MaterialName: rec.GetString("material_name"),
		UnitWeightKG: rec.GetFloat("unit_weight_kg"),
		LoadCategory: services.LoadCategory(rec.GetString("load_category")),
	}
}

// loadNorm fetches one norm with its resources in sort order.
func loadNorm(app *pocketbase.PocketBase, normID string) (services.Norm, error) {
	rec, err := app.FindRecordById("norms", normID)
	if err != nil {
		return services.Norm{}, fmt.Errorf("norm %s not found: %w", normID, err)
	}

	resourceRecords, err := app.FindRecordsByFilter(
		"norm_resources",
		"norm = {:normId}",
		"sort_order", 0, 0,
		map[string]any{"normId": normID},
	)
	if err != nil {
		return services.Norm{}, fmt.Errorf("resources of norm %s: %w", normID, err)
	}

	resources := make([]services.Resource, 0, len(resourceRecords))
	for _, r := range resourceRecords {
		resources = append(resources, resourceFromRecord(r))
	}
	return normFromRecord(rec, resources), nil
}

// loadNorms fetches the full norms catalog with resources.
func loadNorms(app *pocketbase.PocketBase) ([]services.Norm, error) {
	normsCol, err := app.FindCollectionByNameOrId("norms")
	if err != nil {
		return nil, fmt.Errorf("norms collection: %w", err)
	}
	normRecords, err := app.FindAllRecords(normsCol)
	if err != nil {
		return nil, fmt.Errorf("query norms: %w", err)
	}

	resourceRecords, err := app.FindRecordsByFilter(
		"norm_resources", "id != ''", "sort_order", 0, 0, nil,
	)
	if err != nil {
		return nil, fmt.Errorf("query norm resources: %w", err)
	}
	byNorm := make(map[string][]services.Resource)
	for _, r := range resourceRecords {
		normID := r.GetString("norm")
		byNorm[normID] = append(byNorm[normID], resourceFromRecord(r))
	}

	norms := make([]services.Norm, 0, len(normRecords))
	for _, rec := range normRecords {
		norms = append(norms, normFromRecord(rec, byNorm[rec.Id]))
	}
	return norms, nil
}

// loadRates fetches the global rate table.
func loadRates(app *pocketbase.PocketBase) ([]services.Rate, error) {
	ratesCol, err := app.FindCollectionByNameOrId("rates")
	if err != nil {
		return nil, fmt.Errorf("rates collection: %w", err)
	}
	records, err := app.FindAllRecords(ratesCol)
	if err != nil {
		return nil, fmt.Errorf("query rates: %w", err)
	}
	rates := make([]services.Rate, 0, len(records))
	for _, rec := range records {
		rates = append(rates, rateFromRecord(rec))
	}
	return rates, nil
}

// loadOverrides fetches a project's rate overrides.
func loadOverrides(app *pocketbase.PocketBase, projectID string) ([]services.RateOverride, error) {
	records, err := app.FindRecordsByFilter(
		"rate_overrides",
		"project = {:projectId}",
		"", 0, 0,
		map[string]any{"projectId": projectID},
	)
	if err != nil {
		return nil, fmt.Errorf("query overrides: %w", err)
	}
	overrides := make([]services.RateOverride, 0, len(records))
	for _, rec := range records {
		overrides = append(overrides, overrideFromRecord(rec))
	}
	return overrides, nil
}

// loadTransport fetches a project's transport settings. A project without
// a settings record gets the zero value, which prices no transport.
func loadTransport(app *pocketbase.PocketBase, projectID string) (services.TransportSettings, error) {
	records, err := app.FindRecordsByFilter(
		"transport_settings",
		"project = {:projectId}",
		"", 1, 0,
		map[string]any{"projectId": projectID},
	)
	if err != nil {
		return services.TransportSettings{}, fmt.Errorf("query transport settings: %w", err)
	}
	if len(records) == 0 {
		return services.TransportSettings{}, nil
	}
	return transportFromRecord(records[0]), nil
}

// loadMaterials fetches a project's material haul profiles.
func loadMaterials(app *pocketbase.PocketBase, projectID string) ([]services.MaterialTransport, error) {
	records, err := app.FindRecordsByFilter(
		"material_transport",
		"project = {:projectId}",
		"material_name", 0, 0,
		map[string]any{"projectId": projectID},
	)
	if err != nil {
		return nil, fmt.Errorf("query material transport: %w", err)
	}
	materials := make([]services.MaterialTransport, 0, len(records))
	for _, rec := range records {
		materials = append(materials, materialFromRecord(rec))
	}
	return materials, nil
}

// loadBOQItems fetches a project's bill of quantities in sort order.
func loadBOQItems(app *pocketbase.PocketBase, projectID string) ([]services.BOQItem, error) {
	records, err := app.FindRecordsByFilter(
		"boq_items",
		"project = {:projectId}",
		"sort_order", 0, 0,
		map[string]any{"projectId": projectID},
	)
	if err != nil {
		return nil, fmt.Errorf("query boq items: %w", err)
	}
	items := make([]services.BOQItem, 0, len(records))
	for _, rec := range records {
		items = append(items, services.BOQItem{
			ID:        rec.Id,
			ProjectID: rec.GetString("project"),
			NormID:    rec.GetString("norm"),
			Quantity:  rec.GetFloat("quantity"),
		})
	}
	return items, nil
}

// loadSnapshot fetches everything one aggregation pass needs in a single
// sweep so the computation runs against a consistent view of the data.
func loadSnapshot(app *pocketbase.PocketBase, project *core.Record) (services.Snapshot, error) {
	norms, err := loadNorms(app)
	if err != nil {
		return services.Snapshot{}, err
	}
	rates, err := loadRates(app)
	if err != nil {
		return services.Snapshot{}, err
	}
	overrides, err := loadOverrides(app, project.Id)
	if err != nil {
		return services.Snapshot{}, err
	}
	transport, err := loadTransport(app, project.Id)
	if err != nil {
		return services.Snapshot{}, err
	}
	materials, err := loadMaterials(app, project.Id)
	if err != nil {
		return services.Snapshot{}, err
	}
	items, err := loadBOQItems(app, project.Id)
	if err != nil {
		return services.Snapshot{}, err
	}

	return services.Snapshot{
		Mode:      services.ProjectMode(project.GetString("mode")),
		Norms:     norms,
		Rates:     rates,
		Overrides: overrides,
		Transport: transport,
		Materials: materials,
		Items:     items,
	}, nil
}
