package services

// BreakdownRow is one line of the project-wide resource cost breakdown.
// Amount is the pre-VAT cost, VATAmount the 13% share where it applies,
// TransportCost the haul surcharge for configured materials, and
// TotalAmount their sum. Rate 0 with RateMissing set marks a resource
// absent from the rate table so callers can render "Rate missing".
type BreakdownRow struct {
	Name           string
	Type           ResourceType
	Unit           string
	Quantity       float64
	Rate           float64
	ApplyVAT       bool
	Amount         float64
	VATAmount      float64
	TransportCost  float64
	TotalAmount    float64
	IsPercentage   bool
	PercentageBase string
	RateMissing    bool
}

// BOQSummary is the result of one aggregation pass: the flattened
// by-resource breakdown and the reconciled project total.
type BOQSummary struct {
	Rows           []BreakdownRow
	TotalBOQAmount float64
}

type rowKey struct {
	resType ResourceType
	name    string
}

// AggregateBOQ prices every BOQ item of a project against an immutable
// snapshot and flattens the per-norm breakdowns into project-wide resource
// rows.
//
// Fixed resources are scaled by item quantity over norm basis and merged
// across items by (type, name). Percentage resources stay as separate rows
// per item since their base differs per norm. Transport surcharges are
// added to material rows with a configured haul profile.
//
// The grand total always equals the sum of the row totals, times the 15%
// contractor markup in CONTRACTOR mode. Items referencing a norm that no
// longer exists are skipped.
func AggregateBOQ(snap Snapshot) BOQSummary {
	rates := BuildRateIndex(snap.Rates)
	overrides := BuildOverrideIndex(snap.Overrides)
	materials := BuildMaterialIndex(snap.Materials)
	norms := BuildNormIndex(snap.Norms)

	var fixedRows []BreakdownRow
	var percentRows []BreakdownRow
	fixedPos := make(map[rowKey]int)

	for _, item := range snap.Items {
		norm, ok := norms[item.NormID]
		if !ok {
			continue
		}
		scale := item.Quantity / norm.Basis()
		res := ResolveResources(norm, snap.Mode, rates, overrides)

		for _, row := range res.Rows {
			if row.Resource.IsPercentage {
				percentRows = append(percentRows, BreakdownRow{
					Name:           row.Resource.Name,
					Type:           row.Resource.Type,
					Unit:           row.Resource.Unit,
					Quantity:       row.Quantity,
					Amount:         row.Amount * scale,
					IsPercentage:   true,
					PercentageBase: row.Resource.PercentageBase,
				})
				continue
			}

			key := rowKey{row.Resource.Type, NameKey(row.Resource.Name)}
			pos, seen := fixedPos[key]
			if !seen {
				pos = len(fixedRows)
				fixedPos[key] = pos
				fixedRows = append(fixedRows, BreakdownRow{
					Name:     row.Resource.Name,
					Type:     row.Resource.Type,
					Unit:     row.Resource.Unit,
					Rate:     row.BaseRate,
					ApplyVAT: row.ApplyVAT,
				})
			}

			agg := &fixedRows[pos]
			agg.Quantity += row.Quantity * scale
			agg.Amount += row.Amount * scale
			agg.VATAmount += row.VATAmount * scale
			agg.RateMissing = agg.RateMissing || row.RateMissing

			// Per-norm overrides can price the same resource differently;
			// keep the displayed rate consistent with the merged amounts.
			if agg.Quantity != 0 {
				agg.Rate = agg.Amount / agg.Quantity
			}
		}
	}

	var summary BOQSummary
	for i := range fixedRows {
		row := &fixedRows[i]
		if row.Type == ResourceMaterial {
			if mat, ok := materials.Lookup(row.Name); ok {
				row.TransportCost = TransportCostPerUnit(mat, snap.Transport).Total * row.Quantity
			}
		}
		row.TotalAmount = row.Amount + row.VATAmount + row.TransportCost
		summary.TotalBOQAmount += row.TotalAmount
	}
	for i := range percentRows {
		row := &percentRows[i]
		row.TotalAmount = row.Amount
		summary.TotalBOQAmount += row.TotalAmount
	}

	summary.Rows = append(fixedRows, percentRows...)
	if snap.Mode == ModeContractor {
		summary.TotalBOQAmount *= ContractorMultiplier
	}
	return summary
}
