package api

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"society-backend-go/internal/validate"
)

// RegisterCustomValidators adds the domain format checks to Gin's binding
// engine so request DTOs can carry `flatnumber` and `vehiclenumber` tags.
// The vehiclenumber check normalizes before matching, so raw user input
// like "mh12 ab 1234" passes binding and is canonicalized by the service.
func RegisterCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterValidation("flatnumber", func(fl validator.FieldLevel) bool {
		return validate.FlatNumber(fl.Field().String()) == nil
	})
	v.RegisterValidation("vehiclenumber", func(fl validator.FieldLevel) bool {
		_, err := validate.VehicleNumber(fl.Field().String())
		return err == nil
	})
}
