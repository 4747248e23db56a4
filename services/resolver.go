package services

// ResolvedResource is the priced form of one norm resource, per basis
// quantity of norm output.
//
// For fixed resources Amount is BaseRate × Quantity before VAT, VATAmount
// is the 13% share when it applies, and GrossAmount is their sum — the
// value category totals and percentage bases are built from. For
// percentage resources Quantity is the percent value and Amount,
// GrossAmount both hold the computed share of the base.
type ResolvedResource struct {
	Resource    Resource
	Quantity    float64
	BaseRate    float64
	Rate        float64
	Amount      float64
	VATAmount   float64
	GrossAmount float64
	ApplyVAT    bool
	RateMissing bool
}

// Resolution is the per-norm cost breakdown produced by ResolveResources.
// Category totals cover fixed resources only; percentage amounts are kept
// in PercentageTotal and only join the fixed totals in RawTotal.
type Resolution struct {
	Rows            []ResolvedResource
	LabourTotal     float64
	MaterialTotal   float64
	EquipmentTotal  float64
	FixedTotal      float64
	PercentageTotal float64
	RawTotal        float64
}

// ResolveResources prices every resource of a norm in two phases: fixed
// resources first (override-shadowed rate × quantity, VAT folded in for
// USERS mode), then percentage resources against the already-computed
// fixed amounts. Percentage bases can only reference fixed resources or
// symbolic aggregates, so no fixed point is needed.
//
// Malformed data degrades numerically and never errors: a resource missing
// from the rate table prices at 0, an unknown percentage base resolves to
// a base of 0.
func ResolveResources(norm Norm, mode ProjectMode, rates RateIndex, overrides OverrideIndex) Resolution {
	var res Resolution
	amounts := make(map[string]float64, len(norm.Resources))

	// Phase 1: fixed resources.
	for _, r := range norm.Resources {
		if r.IsPercentage {
			continue
		}

		baseRate := EffectiveRate(rates, overrides, norm.ID, r.Name)
		qty := EffectiveQuantity(r.Quantity, overrides, norm.ID, r.Name)

		global, hasRate := rates.Lookup(r.Name)
		applyVAT := hasRate && global.ApplyVAT

		rate := baseRate
		if mode == ModeUsers && applyVAT {
			rate = baseRate * VATMultiplier
		}

		amount := baseRate * qty
		gross := rate * qty

		row := ResolvedResource{
			Resource:    r,
			Quantity:    qty,
			BaseRate:    baseRate,
			Rate:        rate,
			Amount:      amount,
			VATAmount:   gross - amount,
			GrossAmount: gross,
			ApplyVAT:    applyVAT,
			RateMissing: !hasRate,
		}
		res.Rows = append(res.Rows, row)
		amounts[NameKey(r.Name)] = gross

		switch r.Type {
		case ResourceLabour:
			res.LabourTotal += gross
		case ResourceMaterial:
			res.MaterialTotal += gross
		case ResourceEquipment:
			res.EquipmentTotal += gross
		}
	}
	res.FixedTotal = res.LabourTotal + res.MaterialTotal + res.EquipmentTotal

	// Phase 2: percentage resources.
	for _, r := range norm.Resources {
		if !r.IsPercentage {
			continue
		}

		var base float64
		switch pb := ParsePercentageBase(r.PercentageBase); pb.Kind {
		case BaseTotal:
			base = res.FixedTotal
		case BaseLabour:
			base = res.LabourTotal
		case BaseMaterial:
			base = res.MaterialTotal
		case BaseEquipment:
			base = res.EquipmentTotal
		case BaseNamedResource:
			base = amounts[NameKey(pb.Name)]
		}

		amount := (r.Quantity / 100) * base
		res.Rows = append(res.Rows, ResolvedResource{
			Resource:    r,
			Quantity:    r.Quantity,
			Amount:      amount,
			GrossAmount: amount,
		})
		res.PercentageTotal += amount
	}

	res.RawTotal = res.FixedTotal + res.PercentageTotal
	return res
}
