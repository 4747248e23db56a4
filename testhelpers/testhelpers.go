// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"strconv"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/niteshrisal-coder/Norms-Master/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestProject creates a project record with the given name and pricing
// mode ("CONTRACTOR" or "USERS") and returns it.
func CreateTestProject(t *testing.T, app *pocketbase.PocketBase, name, mode string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		t.Fatalf("failed to find projects collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("district", "Kaski")
	record.Set("mode", mode)
	record.Set("status", "active")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test project: %v", err)
	}

	return record
}

// CreateTestNorm creates a norm record and returns it.
func CreateTestNorm(t *testing.T, app *pocketbase.PocketBase, description, unit string, basisQuantity float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("norms")
	if err != nil {
		t.Fatalf("failed to find norms collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("type", "DOR")
	record.Set("code", "7.4")
	record.Set("description", description)
	record.Set("unit", unit)
	record.Set("basis_quantity", basisQuantity)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test norm: %v", err)
	}

	return record
}

// CreateTestResource creates a fixed norm_resources record and returns it.
func CreateTestResource(t *testing.T, app *pocketbase.PocketBase, normID, resourceType, name string, quantity float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("norm_resources")
	if err != nil {
		t.Fatalf("failed to find norm_resources collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("norm", normID)
	record.Set("resource_type", resourceType)
	record.Set("name", name)
	record.Set("unit", "Unit")
	record.Set("quantity", quantity)
	record.Set("is_percentage", false)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test resource: %v", err)
	}

	return record
}

// CreateTestPercentageResource creates a percentage norm_resources record.
func CreateTestPercentageResource(t *testing.T, app *pocketbase.PocketBase, normID, resourceType, name string, percent float64, base string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("norm_resources")
	if err != nil {
		t.Fatalf("failed to find norm_resources collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("norm", normID)
	record.Set("resource_type", resourceType)
	record.Set("name", name)
	record.Set("quantity", percent)
	record.Set("is_percentage", true)
	record.Set("percentage_base", base)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test percentage resource: %v", err)
	}

	return record
}

// CreateTestRate creates a global rate record and returns it.
func CreateTestRate(t *testing.T, app *pocketbase.PocketBase, resourceType, name string, rate float64, applyVAT bool) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("rates")
	if err != nil {
		t.Fatalf("failed to find rates collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("resource_type", resourceType)
	record.Set("name", name)
	record.Set("unit", "Unit")
	record.Set("rate", rate)
	record.Set("apply_vat", applyVAT)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test rate: %v", err)
	}

	return record
}

// CreateTestBOQItem adds a norm to a project's bill of quantities.
func CreateTestBOQItem(t *testing.T, app *pocketbase.PocketBase, projectID, normID string, quantity float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("boq_items")
	if err != nil {
		t.Fatalf("failed to find boq_items collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("project", projectID)
	record.Set("norm", normID)
	record.Set("quantity", quantity)
	record.Set("sort_order", 1)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test BOQ item: %v", err)
	}

	return record
}

// CreateTestOverride creates a rate_overrides record. Pass nil for either
// pointer to leave that side of the override unset.
func CreateTestOverride(t *testing.T, app *pocketbase.PocketBase, projectID, normID, resourceName string, rate, quantity *float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("rate_overrides")
	if err != nil {
		t.Fatalf("failed to find rate_overrides collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("project", projectID)
	record.Set("norm", normID)
	record.Set("resource_name", resourceName)
	if rate != nil {
		record.Set("override_rate", strconv.FormatFloat(*rate, 'f', -1, 64))
	}
	if quantity != nil {
		record.Set("override_quantity", strconv.FormatFloat(*quantity, 'f', -1, 64))
	}

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test override: %v", err)
	}

	return record
}

// CreateTestTransportSettings creates a transport_settings record for a
// project with the default coefficients and the given distances.
func CreateTestTransportSettings(t *testing.T, app *pocketbase.PocketBase, projectID, mode string, metalledKM, gravelledKM, porterKM float64) *core.Record {
	t.Helper()

	record, err := collections.EnsureTransportSettings(app, projectID)
	if err != nil {
		t.Fatalf("failed to ensure transport settings: %v", err)
	}

	record.Set("transport_mode", mode)
	record.Set("metalled_km", metalledKM)
	record.Set("gravelled_km", gravelledKM)
	record.Set("porter_km", porterKM)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test transport settings: %v", err)
	}

	return record
}

// CreateTestMaterialTransport declares a material's haul profile for a project.
func CreateTestMaterialTransport(t *testing.T, app *pocketbase.PocketBase, projectID, materialName string, unitWeightKG float64, loadCategory string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("material_transport")
	if err != nil {
		t.Fatalf("failed to find material_transport collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("project", projectID)
	record.Set("material_name", materialName)
	record.Set("unit_weight_kg", unitWeightKG)
	record.Set("load_category", loadCategory)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test material transport: %v", err)
	}

	return record
}

// FloatPtr returns a pointer to v, for optional override arguments.
func FloatPtr(v float64) *float64 {
	return &v
}
