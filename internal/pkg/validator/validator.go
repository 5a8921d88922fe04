package validator

import (
	"github.com/go-playground/validator/v10"
	"github.com/scooter-map/internal/domain"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	// layer - одно из zip, ward, community (без учета регистра)
	_ = validate.RegisterValidation("layer", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseLayerKind(fl.Field().String())
		return err == nil
	})
}

// Validate - валидация структуры
func Validate(s interface{}) error {
	return validate.Struct(s)
}
