package models

import "fmt"

// Field identifies one of the six estimation form inputs
type Field string

const (
	FieldBrand        Field = "brand"
	FieldYear         Field = "year"
	FieldFuelType     Field = "fuel_type"
	FieldTransmission Field = "transmission"
	FieldKmDriven     Field = "km_driven"
	FieldOwner        Field = "owner"
)

// AllFields returns the form fields in the order they are presented and submitted
func AllFields() []Field {
	return []Field{
		FieldBrand,
		FieldYear,
		FieldFuelType,
		FieldTransmission,
		FieldKmDriven,
		FieldOwner,
	}
}

// ParseField resolves a form key into a Field
func ParseField(key string) (Field, error) {
	f := Field(key)
	if !f.IsValid() {
		return "", fmt.Errorf("unknown form field: %q", key)
	}
	return f, nil
}

// IsValid checks if the field is one of the six form fields
func (f Field) IsValid() bool {
	switch f {
	case FieldBrand, FieldYear, FieldFuelType, FieldTransmission, FieldKmDriven, FieldOwner:
		return true
	default:
		return false
	}
}

// FormKey returns the multipart form key the backend expects for the field
func (f Field) FormKey() string {
	return string(f)
}

// Label returns the human readable name of the field
func (f Field) Label() string {
	switch f {
	case FieldBrand:
		return "Brand"
	case FieldYear:
		return "Year of Manufacture"
	case FieldFuelType:
		return "Fuel Type"
	case FieldTransmission:
		return "Transmission"
	case FieldKmDriven:
		return "Kilometers Driven"
	case FieldOwner:
		return "Number of Previous Owners"
	default:
		return string(f)
	}
}

// Hint returns the short help text shown under the field
func (f Field) Hint() string {
	switch f {
	case FieldBrand:
		return "Choose the manufacturer."
	case FieldYear:
		return "Enter a 4-digit year."
	case FieldFuelType:
		return "Petrol, Diesel, CNG, Electric, etc."
	case FieldTransmission:
		return "Manual or Automatic."
	case FieldKmDriven:
		return "Total distance the car has run."
	case FieldOwner:
		return "0 for first owner, 1 for second, etc."
	default:
		return ""
	}
}

// ReferenceList returns the list offering choices for the field, if any
func (f Field) ReferenceList() (ReferenceList, bool) {
	switch f {
	case FieldBrand:
		return ReferenceListBrands, true
	case FieldFuelType:
		return ReferenceListFuelTypes, true
	case FieldTransmission:
		return ReferenceListTransmissions, true
	default:
		return "", false
	}
}

// FormDraft holds the in-progress form values. Numeric inputs stay text and
// are sent exactly as typed.
type FormDraft struct {
	Brand        string `form:"brand" validate:"required"`
	Year         string `form:"year" validate:"required"`
	FuelType     string `form:"fuel_type" validate:"required"`
	Transmission string `form:"transmission" validate:"required"`
	KmDriven     string `form:"km_driven" validate:"required"`
	Owner        string `form:"owner" validate:"required"`
}

// Get returns the current value of a field
func (d FormDraft) Get(f Field) string {
	switch f {
	case FieldBrand:
		return d.Brand
	case FieldYear:
		return d.Year
	case FieldFuelType:
		return d.FuelType
	case FieldTransmission:
		return d.Transmission
	case FieldKmDriven:
		return d.KmDriven
	case FieldOwner:
		return d.Owner
	default:
		return ""
	}
}

// Set replaces the value of a single field
func (d *FormDraft) Set(f Field, value string) error {
	switch f {
	case FieldBrand:
		d.Brand = value
	case FieldYear:
		d.Year = value
	case FieldFuelType:
		d.FuelType = value
	case FieldTransmission:
		d.Transmission = value
	case FieldKmDriven:
		d.KmDriven = value
	case FieldOwner:
		d.Owner = value
	default:
		return fmt.Errorf("unknown form field: %q", string(f))
	}
	return nil
}

// EmptyFields returns the fields that have no value, in form order
func (d FormDraft) EmptyFields() []Field {
	var empty []Field
	for _, f := range AllFields() {
		if d.Get(f) == "" {
			empty = append(empty, f)
		}
	}
	return empty
}
