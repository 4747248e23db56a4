// Package services implements the rate and cost resolution engine for
// norm-based construction estimates, along with currency formatting and
// Excel/PDF export generation. Every function here is a pure computation
// over snapshot values; nothing in this package reads or writes records.
package services

import "strings"

// NormType identifies the published norm book a norm was taken from.
type NormType string

const (
	NormTypeDOR   NormType = "DOR"
	NormTypeDUDBC NormType = "DUDBC"
)

// ResourceType categorizes a norm resource.
type ResourceType string

const (
	ResourceLabour    ResourceType = "Labour"
	ResourceMaterial  ResourceType = "Material"
	ResourceEquipment ResourceType = "Equipment"
)

// ProjectMode selects the pricing regime: USERS folds 13% VAT into rates
// flagged apply_vat, CONTRACTOR adds a flat 15% profit & overhead instead.
type ProjectMode string

const (
	ModeContractor ProjectMode = "CONTRACTOR"
	ModeUsers      ProjectMode = "USERS"
)

// TransportMode selects the road-leg coefficient table.
type TransportMode string

const (
	TransportTruck   TransportMode = "TRUCK"
	TransportTractor TransportMode = "TRACTOR"
)

// LoadCategory classifies how hard a material is to haul.
type LoadCategory string

const (
	LoadEasy       LoadCategory = "EASY"
	LoadDifficult  LoadCategory = "DIFFICULT"
	LoadVDifficult LoadCategory = "VDIFFICULT"
	LoadHighVolume LoadCategory = "HIGH_VOLUME"
)

const (
	// VATMultiplier is applied to apply_vat rates in USERS mode (13% VAT).
	VATMultiplier = 1.13

	// ContractorMultiplier is the flat contractor profit & overhead markup.
	ContractorMultiplier = 1.15

	// KoshKM converts kosh to kilometres. Porter and truck coefficients
	// are quoted per kosh; tractor coefficients are quoted per km.
	KoshKM = 3.218
)

// Resource is one line of a norm's recipe. A fixed resource consumes
// Quantity physical units per basis quantity of norm output. A percentage
// resource prices Quantity percent of the base named by PercentageBase.
type Resource struct {
	Type           ResourceType
	Name           string
	Unit           string
	Quantity       float64
	IsPercentage   bool
	PercentageBase string
}

// Norm is a standardized recipe: the resources required to produce
// BasisQuantity units of Unit of a work item.
type Norm struct {
	ID            string
	Type          NormType
	Code          string
	Description   string
	Unit          string
	BasisQuantity float64
	RefSS         string
	Resources     []Resource
}

// Basis returns the norm's basis quantity, substituting 1 for degenerate
// values so it is always safe as a divisor.
func (n Norm) Basis() float64 {
	if n.BasisQuantity <= 0 {
		return 1
	}
	return n.BasisQuantity
}

// Rate is a global price-list entry. Name is the join key to resources and
// is matched case-insensitively.
type Rate struct {
	Type     ResourceType
	Name     string
	Unit     string
	Rate     float64
	ApplyVAT bool
}

// RateOverride shadows the global rate and/or the norm quantity for one
// (project, norm, resource name) combination. A nil field means "use the
// global value"; both nil is equivalent to no override.
type RateOverride struct {
	ProjectID    string
	NormID       string
	ResourceName string
	Rate         *float64
	Quantity     *float64
}

// CategoryCoefficients holds one transport coefficient per load category.
type CategoryCoefficients struct {
	Easy       float64
	Difficult  float64
	VDifficult float64
	HighVolume float64
}

// For returns the coefficient for the given load category. Unknown
// categories fall back to Easy.
func (c CategoryCoefficients) For(cat LoadCategory) float64 {
	switch cat {
	case LoadDifficult:
		return c.Difficult
	case LoadVDifficult:
		return c.VDifficult
	case LoadHighVolume:
		return c.HighVolume
	default:
		return c.Easy
	}
}

// TransportSettings holds a project's haul distances and coefficient
// tables. Distances are in km; coefficients are Rs per kg per kosh, except
// the tractor pair which is Rs per kg per km.
type TransportSettings struct {
	Mode             TransportMode
	MetalledKM       float64
	GravelledKM      float64
	PorterKM         float64
	Porter           CategoryCoefficients
	TruckMetalled    CategoryCoefficients
	TruckGravelled   CategoryCoefficients
	TractorMetalled  float64
	TractorGravelled float64
}

// MaterialTransport declares the haul profile of one material:
// UnitWeightKG is kg per unit of the material's own unit.
type MaterialTransport struct {
	MaterialName string
	UnitWeightKG float64
	LoadCategory LoadCategory
}

// BOQItem requests Quantity copies of a norm's basis unit for a project.
type BOQItem struct {
	ID        string
	ProjectID string
	NormID    string
	Quantity  float64
}

// Snapshot is the immutable input to one aggregation pass. The caller
// fetches all of it once before computing so that concurrent edits cannot
// break the reconciliation between row totals and the grand total.
type Snapshot struct {
	Mode      ProjectMode
	Norms     []Norm
	Rates     []Rate
	Overrides []RateOverride
	Transport TransportSettings
	Materials []MaterialTransport
	Items     []BOQItem
}

// BaseKind enumerates what a percentage resource's base can refer to.
type BaseKind int

const (
	BaseNamedResource BaseKind = iota
	BaseTotal
	BaseLabour
	BaseMaterial
	BaseEquipment
)

// PercentageBase is the parsed form of Resource.PercentageBase: either one
// of the four symbolic aggregates or the name of a fixed resource in the
// same norm.
type PercentageBase struct {
	Kind BaseKind
	Name string
}

// ParsePercentageBase resolves the raw base token. The symbolic tokens are
// matched case-insensitively; anything else is a named-resource reference.
func ParsePercentageBase(raw string) PercentageBase {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "TOTAL":
		return PercentageBase{Kind: BaseTotal}
	case "LABOUR":
		return PercentageBase{Kind: BaseLabour}
	case "MATERIAL":
		return PercentageBase{Kind: BaseMaterial}
	case "EQUIPMENT":
		return PercentageBase{Kind: BaseEquipment}
	default:
		return PercentageBase{Kind: BaseNamedResource, Name: raw}
	}
}
