package services

// UnitOptions is the list of measurement units offered for norms, resources
// and rates.
var UnitOptions = []string{
	"Cum",
	"Sqm",
	"Rmt",
	"Kg",
	"MT",
	"Quintal",
	"Nos",
	"Ltr",
	"Bag",
	"Day",
	"Hour",
	"Trip",
	"Lumpsum",
	"Set",
}

// DistrictOptions is the list of districts offered when creating a
// project. Rates vary by district so the name is carried on the project.
var DistrictOptions = []string{
	"Kathmandu",
	"Lalitpur",
	"Bhaktapur",
	"Kaski",
	"Chitwan",
	"Morang",
	"Sunsari",
	"Rupandehi",
	"Banke",
	"Kailali",
	"Dhading",
	"Sindhupalchok",
	"Solukhumbu",
	"Mustang",
	"Humla",
}

// NormTypeOptions lists the supported norm books.
var NormTypeOptions = []NormType{NormTypeDOR, NormTypeDUDBC}

// ResourceTypeOptions lists the resource categories.
var ResourceTypeOptions = []ResourceType{ResourceLabour, ResourceMaterial, ResourceEquipment}

// ModeOptions lists the project pricing modes.
var ModeOptions = []ProjectMode{ModeContractor, ModeUsers}

// TransportModeOptions lists the road-leg transport modes.
var TransportModeOptions = []TransportMode{TransportTruck, TransportTractor}

// LoadCategoryOptions lists the haul load categories.
var LoadCategoryOptions = []LoadCategory{LoadEasy, LoadDifficult, LoadVDifficult, LoadHighVolume}

// SymbolicBases lists the aggregate tokens a percentage resource may use
// as its base, in addition to the name of a fixed resource in the same norm.
var SymbolicBases = []string{"TOTAL", "LABOUR", "MATERIAL", "EQUIPMENT"}
