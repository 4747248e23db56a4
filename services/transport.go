package services

// TransportCost is the per-unit haul surcharge for one material, split by
// leg. All values are Rs per unit of the material's declared unit.
type TransportCost struct {
	Metalled  float64
	Gravelled float64
	Porter    float64
	Total     float64
}

// TransportCostPerUnit allocates weight × distance × coefficient haul cost
// for one material.
//
// The porter leg always converts distance to kosh and selects its
// coefficient by load category. Road legs depend on the transport mode:
// TRUCK converts to kosh and selects per-category coefficients, TRACTOR
// applies its two flat per-km coefficients with no kosh conversion.
func TransportCostPerUnit(mat MaterialTransport, settings TransportSettings) TransportCost {
	var c TransportCost
	c.Porter = (settings.PorterKM / KoshKM) * settings.Porter.For(mat.LoadCategory) * mat.UnitWeightKG

	switch settings.Mode {
	case TransportTractor:
		c.Metalled = settings.MetalledKM * settings.TractorMetalled * mat.UnitWeightKG
		c.Gravelled = settings.GravelledKM * settings.TractorGravelled * mat.UnitWeightKG
	default:
		c.Metalled = (settings.MetalledKM / KoshKM) * settings.TruckMetalled.For(mat.LoadCategory) * mat.UnitWeightKG
		c.Gravelled = (settings.GravelledKM / KoshKM) * settings.TruckGravelled.For(mat.LoadCategory) * mat.UnitWeightKG
	}

	c.Total = c.Metalled + c.Gravelled + c.Porter
	return c
}
