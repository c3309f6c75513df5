package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/hendrawijaya/pembukuan_app/internal/utils/formula"
)

// RegisterCustomValidators adds domain-specific binding rules to gin's
// validator engine. The "formula" tag rejects syntactically broken amount
// formulas at the request boundary, before any service logic runs.
func RegisterCustomValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("formula", func(fl validator.FieldLevel) bool {
		return formula.Validate(fl.Field().String()) == nil
	})
}
