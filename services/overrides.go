package services

// EffectiveRate returns the rate to price one fixed resource of a norm:
// the project override when present, otherwise the global rate table entry,
// otherwise 0. A missing rate is a zero cost, never an error; callers flag
// it for display instead.
func EffectiveRate(rates RateIndex, overrides OverrideIndex, normID, resourceName string) float64 {
	if ov, ok := overrides.Lookup(normID, resourceName); ok && ov.Rate != nil {
		return *ov.Rate
	}
	if r, ok := rates.Lookup(resourceName); ok {
		return r.Rate
	}
	return 0
}

// EffectiveQuantity returns the quantity to price one fixed resource of a
// norm: the project override when present, otherwise the norm's own
// quantity unchanged.
func EffectiveQuantity(normQuantity float64, overrides OverrideIndex, normID, resourceName string) float64 {
	if ov, ok := overrides.Lookup(normID, resourceName); ok && ov.Quantity != nil {
		return *ov.Quantity
	}
	return normQuantity
}
