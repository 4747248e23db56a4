package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/niteshrisal-coder/Norms-Master/services"
)

// HandleOptions serves the static option lists clients need to build
// entry forms (units, districts, enum values). One call at startup is
// enough; the lists never change at runtime.
func HandleOptions(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return e.JSON(http.StatusOK, map[string]any{
			"units":           services.UnitOptions,
			"districts":       services.DistrictOptions,
			"norm_types":      services.NormTypeOptions,
			"resource_types":  services.ResourceTypeOptions,
			"modes":           services.ModeOptions,
			"transport_modes": services.TransportModeOptions,
			"load_categories": services.LoadCategoryOptions,
			"symbolic_bases":  services.SymbolicBases,
		})
	}
}
