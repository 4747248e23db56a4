package services

import "testing"

func TestUnitRate_ContractorOverheadEndToEnd(t *testing.T) {
	// rawTotal=1000 over basis 10 gives perBasisRate=100; contractor mode
	// marks it up to 115.
	norm := Norm{
		ID:            "n1",
		BasisQuantity: 10,
		Resources:     []Resource{{Type: ResourceLabour, Name: "Mason", Quantity: 2}},
	}
	rates := BuildRateIndex([]Rate{{Type: ResourceLabour, Name: "Mason", Rate: 500}})
	overrides := BuildOverrideIndex(nil)

	if got := UnitRate(norm, ModeContractor, rates, overrides); !almostEqual(got, 115) {
		t.Errorf("UnitRate(CONTRACTOR) = %v, want 115", got)
	}
	if got := UnitRate(norm, ModeUsers, rates, overrides); !almostEqual(got, 100) {
		t.Errorf("UnitRate(USERS) = %v, want 100", got)
	}
}

func TestUnitRate_DegenerateBasisQuantity(t *testing.T) {
	rates := BuildRateIndex([]Rate{{Type: ResourceLabour, Name: "Mason", Rate: 500}})
	overrides := BuildOverrideIndex(nil)

	tests := []struct {
		name  string
		basis float64
	}{
		{"zero basis", 0},
		{"negative basis", -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			norm := Norm{
				ID:            "n1",
				BasisQuantity: tt.basis,
				Resources:     []Resource{{Type: ResourceLabour, Name: "Mason", Quantity: 2}},
			}
			got := UnitRate(norm, ModeUsers, rates, overrides)
			if !almostEqual(got, 1000) {
				t.Errorf("UnitRate = %v, want 1000 (basis treated as 1)", got)
			}
		})
	}
}

func TestUnitRate_Idempotent(t *testing.T) {
	norm := Norm{
		ID:            "n1",
		BasisQuantity: 2.5,
		Resources: []Resource{
			{Type: ResourceLabour, Name: "Mason", Quantity: 2},
			{Type: ResourceMaterial, Name: "Cement", Quantity: 6.65},
			{Type: ResourceLabour, Name: "Water charges", Quantity: 1.5, IsPercentage: true, PercentageBase: "TOTAL"},
		},
	}
	rates := BuildRateIndex([]Rate{
		{Type: ResourceLabour, Name: "Mason", Rate: 900},
		{Type: ResourceMaterial, Name: "Cement", Rate: 800, ApplyVAT: true},
	})
	overrides := BuildOverrideIndex([]RateOverride{
		{NormID: "n1", ResourceName: "Cement", Quantity: floatPtr(7)},
	})

	first := UnitRate(norm, ModeUsers, rates, overrides)
	second := UnitRate(norm, ModeUsers, rates, overrides)
	if first != second {
		t.Errorf("UnitRate is not idempotent: %v then %v", first, second)
	}
}
