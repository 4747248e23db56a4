package services

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// NormPayload carries the catalog-maintainer input for creating or
// updating a norm.
type NormPayload struct {
	Type          string  `json:"type"`
	Code          string  `json:"code"`
	Description   string  `json:"description"`
	Unit          string  `json:"unit"`
	BasisQuantity float64 `json:"basis_quantity"`
	RefSS         string  `json:"ref_ss"`
}

// Validate checks a norm payload. The basis quantity must be strictly
// positive here even though the engine tolerates degenerate values: bad
// data is rejected at the edge, not inside the pure computation.
func (p NormPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Type, validation.Required, validation.In(string(NormTypeDOR), string(NormTypeDUDBC))),
		validation.Field(&p.Description, validation.Required, validation.Length(1, 500)),
		validation.Field(&p.Unit, validation.Required),
		validation.Field(&p.BasisQuantity, validation.Required, validation.Min(0.0).Exclusive()),
	)
}

// ResourcePayload carries the input for adding or updating a norm resource.
type ResourcePayload struct {
	Type           string  `json:"resource_type"`
	Name           string  `json:"name"`
	Unit           string  `json:"unit"`
	Quantity       float64 `json:"quantity"`
	IsPercentage   bool    `json:"is_percentage"`
	PercentageBase string  `json:"percentage_base"`
}

// ValidateResourcePayload checks a resource payload against the names of
// the fixed resources already present in the same norm. A percentage
// resource's base must be one of the symbolic aggregates or the name of a
// fixed resource — never another percentage resource and never itself, so
// base chains and cycles are rejected at data entry and the engine can
// stay total.
func ValidateResourcePayload(p ResourcePayload, fixedNames []string) error {
	rules := []*validation.FieldRules{
		validation.Field(&p.Type, validation.Required,
			validation.In(string(ResourceLabour), string(ResourceMaterial), string(ResourceEquipment))),
		validation.Field(&p.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&p.Quantity, validation.Min(0.0)),
	}

	if p.IsPercentage {
		rules = append(rules,
			validation.Field(&p.Quantity, validation.Max(100.0)),
			validation.Field(&p.PercentageBase, validation.Required,
				validation.By(percentageBaseRule(p.Name, fixedNames))),
		)
	}

	return validation.ValidateStruct(&p, rules...)
}

func percentageBaseRule(ownName string, fixedNames []string) validation.RuleFunc {
	return func(value interface{}) error {
		base, _ := value.(string)
		if ParsePercentageBase(base).Kind != BaseNamedResource {
			return nil
		}
		if NameKey(base) == NameKey(ownName) {
			return errors.New("cannot reference itself")
		}
		for _, name := range fixedNames {
			if NameKey(name) == NameKey(base) {
				return nil
			}
		}
		return errors.New("must be " + strings.Join(SymbolicBases, ", ") + " or the name of a fixed resource in the same norm")
	}
}

// RatePayload carries the input for creating or updating a rate entry.
type RatePayload struct {
	Type     string  `json:"resource_type"`
	Name     string  `json:"name"`
	Unit     string  `json:"unit"`
	Rate     float64 `json:"rate"`
	ApplyVAT bool    `json:"apply_vat"`
}

// Validate checks a rate payload.
func (p RatePayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Type, validation.Required,
			validation.In(string(ResourceLabour), string(ResourceMaterial), string(ResourceEquipment))),
		validation.Field(&p.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&p.Rate, validation.Min(0.0)),
	)
}

// MaterialTransportPayload carries the input for configuring a material's
// haul profile.
type MaterialTransportPayload struct {
	MaterialName string  `json:"material_name"`
	UnitWeightKG float64 `json:"unit_weight"`
	LoadCategory string  `json:"load_category"`
}

// Validate checks a material transport payload.
func (p MaterialTransportPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.MaterialName, validation.Required),
		validation.Field(&p.UnitWeightKG, validation.Required, validation.Min(0.0).Exclusive()),
		validation.Field(&p.LoadCategory, validation.Required,
			validation.In(string(LoadEasy), string(LoadDifficult), string(LoadVDifficult), string(LoadHighVolume))),
	)
}
