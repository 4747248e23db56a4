package collections_test

import (
	"testing"

	"github.com/niteshrisal-coder/Norms-Master/collections"
	"github.com/niteshrisal-coder/Norms-Master/testhelpers"
)

func TestSeed_CreatesCatalog(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	// Verify the district rate list was inserted
	ratesCol, _ := app.FindCollectionByNameOrId("rates")
	rates, err := app.FindAllRecords(ratesCol)
	if err != nil {
		t.Fatalf("query rates error: %v", err)
	}
	if len(rates) == 0 {
		t.Fatal("expected seeded rates, got none")
	}

	// At least one material rate must carry the VAT flag and no labour
	// rate may carry it.
	sawVATMaterial := false
	for _, r := range rates {
		if r.GetString("resource_type") == "Material" && r.GetBool("apply_vat") {
			sawVATMaterial = true
		}
		if r.GetString("resource_type") == "Labour" && r.GetBool("apply_vat") {
			t.Errorf("labour rate %q should not have apply_vat", r.GetString("name"))
		}
	}
	if !sawVATMaterial {
		t.Error("expected at least one material rate with apply_vat")
	}

	// Verify the two starter norms
	normsCol, _ := app.FindCollectionByNameOrId("norms")
	norms, _ := app.FindAllRecords(normsCol)
	if len(norms) != 2 {
		t.Fatalf("expected 2 norms, got %d", len(norms))
	}

	// Each norm must have resources, including at least one percentage
	// resource, and every fixed resource must price against a seeded rate.
	rateNames := make(map[string]bool)
	for _, r := range rates {
		rateNames[r.GetString("name")] = true
	}

	resourcesCol, _ := app.FindCollectionByNameOrId("norm_resources")
	for _, norm := range norms {
		resources, err := app.FindRecordsByFilter(
			resourcesCol,
			"norm = {:normId}",
			"sort_order", 0, 0,
			map[string]any{"normId": norm.Id},
		)
		if err != nil || len(resources) == 0 {
			t.Errorf("norm %q has no resources", norm.GetString("code"))
			continue
		}

		sawPercentage := false
		for _, res := range resources {
			if res.GetBool("is_percentage") {
				sawPercentage = true
				if res.GetString("percentage_base") == "" {
					t.Errorf("percentage resource %q has empty base", res.GetString("name"))
				}
				continue
			}
			if !rateNames[res.GetString("name")] {
				t.Errorf("fixed resource %q of norm %q has no seeded rate",
					res.GetString("name"), norm.GetString("code"))
			}
		}
		if !sawPercentage {
			t.Errorf("norm %q should include a percentage resource", norm.GetString("code"))
		}
	}
}

func TestSeed_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("first Seed() error: %v", err)
	}

	normsCol, _ := app.FindCollectionByNameOrId("norms")
	first, _ := app.FindAllRecords(normsCol)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("second Seed() error: %v", err)
	}

	second, _ := app.FindAllRecords(normsCol)
	if len(first) != len(second) {
		t.Errorf("second Seed() changed norm count: %d -> %d", len(first), len(second))
	}

	ratesCol, _ := app.FindCollectionByNameOrId("rates")
	rates, _ := app.FindAllRecords(ratesCol)
	// Rates must not double up either
	seen := make(map[string]bool)
	for _, r := range rates {
		key := r.GetString("resource_type") + "/" + r.GetString("name")
		if seen[key] {
			t.Errorf("duplicate seeded rate: %s", key)
		}
		seen[key] = true
	}
}
