package apperror

import (
	"reflect"
	"strings"

	"go-cabinet/internal/week"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Init wires gin's validator: errors carry json field names and the
// "weekkey" tag accepts ISO week keys such as "2025-W01".
func Init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	Register(v)
}

// Register installs the tag name func and custom tags on v.
func Register(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		tag := fld.Tag.Get("json")
		if tag == "" {
			tag = fld.Tag.Get("form")
		}
		name := strings.SplitN(tag, ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("weekkey", func(fl validator.FieldLevel) bool {
		_, _, err := week.Parse(fl.Field().String())
		return err == nil
	})
}
