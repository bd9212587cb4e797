package models

// ReferenceList identifies one of the server-provided option sets
type ReferenceList string

const (
	// ReferenceListBrands is the list of car brand names
	ReferenceListBrands ReferenceList = "brands"

	// ReferenceListFuelTypes is the list of fuel types
	ReferenceListFuelTypes ReferenceList = "fuel_types"

	// ReferenceListTransmissions is the list of transmission types
	ReferenceListTransmissions ReferenceList = "transmission_types"
)

// AllReferenceLists returns the three reference lists in display order
func AllReferenceLists() []ReferenceList {
	return []ReferenceList{
		ReferenceListBrands,
		ReferenceListFuelTypes,
		ReferenceListTransmissions,
	}
}

// IsValid checks if the list is one of the known reference lists
func (l ReferenceList) IsValid() bool {
	switch l {
	case ReferenceListBrands, ReferenceListFuelTypes, ReferenceListTransmissions:
		return true
	default:
		return false
	}
}

// Path returns the backend endpoint serving the list
func (l ReferenceList) Path() string {
	switch l {
	case ReferenceListBrands:
		return "/get_brand_names"
	case ReferenceListFuelTypes:
		return "/get_fuel_types"
	case ReferenceListTransmissions:
		return "/get_transmission_types"
	default:
		return ""
	}
}

// JSONKey returns the response body key holding the list values
func (l ReferenceList) JSONKey() string {
	return string(l)
}

// String returns the string representation of the reference list
func (l ReferenceList) String() string {
	return string(l)
}

// OptionSnapshot is the settled result of loading all reference lists.
// It is created once per view activation and replaced wholesale, never mutated.
type OptionSnapshot struct {
	brands        []string
	fuelTypes     []string
	transmissions []string
	loadFailed    bool
}

// NewOptionSnapshot creates a snapshot from already-reduced list values.
// The slices are copied so later changes by the caller are not observed.
func NewOptionSnapshot(brands, fuelTypes, transmissions []string, loadFailed bool) OptionSnapshot {
	return OptionSnapshot{
		brands:        cloneStrings(brands),
		fuelTypes:     cloneStrings(fuelTypes),
		transmissions: cloneStrings(transmissions),
		loadFailed:    loadFailed,
	}
}

// Brands returns a copy of the brand names
func (s OptionSnapshot) Brands() []string {
	return cloneStrings(s.brands)
}

// FuelTypes returns a copy of the fuel types
func (s OptionSnapshot) FuelTypes() []string {
	return cloneStrings(s.fuelTypes)
}

// Transmissions returns a copy of the transmission types
func (s OptionSnapshot) Transmissions() []string {
	return cloneStrings(s.transmissions)
}

// LoadFailed reports whether at least one list failed to load
func (s OptionSnapshot) LoadFailed() bool {
	return s.loadFailed
}

// Choices returns a copy of the values offered for the given list
func (s OptionSnapshot) Choices(list ReferenceList) []string {
	switch list {
	case ReferenceListBrands:
		return s.Brands()
	case ReferenceListFuelTypes:
		return s.FuelTypes()
	case ReferenceListTransmissions:
		return s.Transmissions()
	default:
		return []string{}
	}
}

func cloneStrings(values []string) []string {
	out := make([]string, len(values))
	copy(out, values)
	return out
}
