package services

// UnitRate computes the rate for one unit of a norm's output under the
// given pricing mode: the resolved raw total per basis quantity, marked up
// by 15% contractor profit & overhead in CONTRACTOR mode. USERS mode
// returns the per-basis rate unchanged since VAT is already folded into
// the phase-1 rates. A basis quantity of zero or less is treated as 1.
//
// The computation is a pure function of its arguments: repeated calls with
// the same snapshot yield identical output and never touch the inputs.
func UnitRate(norm Norm, mode ProjectMode, rates RateIndex, overrides OverrideIndex) float64 {
	perBasis := ResolveResources(norm, mode, rates, overrides).RawTotal / norm.Basis()
	if mode == ModeContractor {
		return perBasis * ContractorMultiplier
	}
	return perBasis
}
