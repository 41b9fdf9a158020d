package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/navigatorlink/navigatorlink/internal/api/models"
	"github.com/navigatorlink/navigatorlink/pkg/navigator"
)

// newValidator returns a validator that reports JSON field names and knows Navigator travel modes.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("travelmode", func(fl validator.FieldLevel) bool {
		return navigator.TravelMode(fl.Field().String()).Valid()
	})

	return v
}

// fieldErrors converts validator errors into API field errors.
func fieldErrors(err error) []models.FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []models.FieldError{{Field: "body", Message: err.Error(), Code: "INVALID"}}
	}

	out := make([]models.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, models.FieldError{
			Field:   fieldPath(fe.Namespace()),
			Message: fieldMessage(fe),
			Code:    "INVALID",
		})
	}
	return out
}

// fieldPath strips the root struct name, e.g. "LinkBuildRequest.stops[0].latitude" -> "stops[0].latitude".
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "travelmode":
		return "unknown travel mode"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// locationErrors enforces that a location is either a coordinate pair or an address.
func locationErrors(field string, loc models.Location) []models.FieldError {
	hasCoord := loc.Latitude != nil || loc.Longitude != nil
	hasAddr := loc.Address != nil

	switch {
	case hasCoord && hasAddr:
		return []models.FieldError{{Field: field, Message: "set either latitude and longitude or address, not both", Code: "AMBIGUOUS"}}
	case !hasCoord && !hasAddr:
		return []models.FieldError{{Field: field, Message: "latitude and longitude or address is required", Code: "REQUIRED"}}
	case hasCoord && loc.Latitude == nil:
		return []models.FieldError{{Field: field + ".latitude", Message: "required with longitude", Code: "REQUIRED"}}
	case hasCoord && loc.Longitude == nil:
		return []models.FieldError{{Field: field + ".longitude", Message: "required with latitude", Code: "REQUIRED"}}
	}
	return nil
}

// toLocation maps a validated API location onto a navigator location.
func toLocation(loc models.Location) navigator.Location {
	if loc.Address != nil {
		return navigator.Address{Name: loc.Name, Address: *loc.Address}
	}
	return navigator.Coordinate{Name: loc.Name, Latitude: *loc.Latitude, Longitude: *loc.Longitude}
}
