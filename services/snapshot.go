package services

import "strings"

// NameKey normalizes a resource name for joining against the rate table
// and override layer. All name joins in the engine go through this.
func NameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// RateIndex maps normalized resource names to rate entries. Built once per
// snapshot so resolution stays O(resources) per norm.
type RateIndex map[string]Rate

// BuildRateIndex indexes the rate table by normalized name. On duplicate
// names the first entry wins.
func BuildRateIndex(rates []Rate) RateIndex {
	idx := make(RateIndex, len(rates))
	for _, r := range rates {
		key := NameKey(r.Name)
		if _, ok := idx[key]; !ok {
			idx[key] = r
		}
	}
	return idx
}

// Lookup returns the rate entry for a resource name, if any.
func (idx RateIndex) Lookup(name string) (Rate, bool) {
	r, ok := idx[NameKey(name)]
	return r, ok
}

type overrideKey struct {
	normID   string
	resource string
}

// OverrideIndex maps (norm, normalized resource name) to the project's
// override for that pair.
type OverrideIndex map[overrideKey]RateOverride

// BuildOverrideIndex indexes a project's overrides. Rows with both fields
// nil carry no information and are skipped.
func BuildOverrideIndex(overrides []RateOverride) OverrideIndex {
	idx := make(OverrideIndex, len(overrides))
	for _, ov := range overrides {
		if ov.Rate == nil && ov.Quantity == nil {
			continue
		}
		idx[overrideKey{ov.NormID, NameKey(ov.ResourceName)}] = ov
	}
	return idx
}

// Lookup returns the override for a (norm, resource name) pair, if any.
func (idx OverrideIndex) Lookup(normID, resourceName string) (RateOverride, bool) {
	ov, ok := idx[overrideKey{normID, NameKey(resourceName)}]
	return ov, ok
}

// MaterialIndex maps normalized material names to their transport profile.
type MaterialIndex map[string]MaterialTransport

// BuildMaterialIndex indexes a project's material transport entries.
func BuildMaterialIndex(materials []MaterialTransport) MaterialIndex {
	idx := make(MaterialIndex, len(materials))
	for _, m := range materials {
		idx[NameKey(m.MaterialName)] = m
	}
	return idx
}

// Lookup returns the transport profile for a material name, if configured.
func (idx MaterialIndex) Lookup(name string) (MaterialTransport, bool) {
	m, ok := idx[NameKey(name)]
	return m, ok
}

// NormIndex maps norm IDs to norms.
type NormIndex map[string]Norm

// BuildNormIndex indexes norms by ID.
func BuildNormIndex(norms []Norm) NormIndex {
	idx := make(NormIndex, len(norms))
	for _, n := range norms {
		idx[n.ID] = n
	}
	return idx
}
