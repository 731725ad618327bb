package validator

import "github.com/go-playground/validator/v10"

func RegisterCustomValidations(validate *validator.Validate) {
	validate.RegisterValidation("lat", validateLat)
	validate.RegisterValidation("lng", validateLng)
	validate.RegisterValidation("bloodtype", validateBloodType)
	validate.RegisterValidation("severity", validateSeverity)
	validate.RegisterValidation("urgency", validateUrgency)
}

func validateLat(fl validator.FieldLevel) bool {
	lat := fl.Field().Float()
	return lat >= -90.0 && lat <= 90.0
}

func validateLng(fl validator.FieldLevel) bool {
	lng := fl.Field().Float()
	return lng >= -180.0 && lng <= 180.0
}

// the 8 standard ABO/Rh types
var bloodTypes = map[string]struct{}{
	"A+": {}, "A-": {}, "B+": {}, "B-": {},
	"AB+": {}, "AB-": {}, "O+": {}, "O-": {},
}

func validateBloodType(fl validator.FieldLevel) bool {
	_, ok := bloodTypes[fl.Field().String()]
	return ok
}

func validateSeverity(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "mild", "moderate", "severe", "critical":
		return true
	}
	return false
}

func validateUrgency(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "normal", "urgent", "critical":
		return true
	}
	return false
}
