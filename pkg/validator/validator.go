package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/dentalops/dental-admin-api/internal/chart"
)

// Validator wraps go-playground validation with the dental vocabulary
// tags used by request models.
type Validator struct {
	validate *validator.Validate
}

func New() (*Validator, error) {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return fld.Name
		}
		return name
	})

	if err := registerTags(v); err != nil {
		return nil, err
	}

	return &Validator{validate: v}, nil
}

// Register installs the custom tags on gin's binding engine so request
// structs can use them in binding tags.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected gin binding validator engine %T", binding.Validator.Engine())
	}
	return registerTags(v)
}

func registerTags(v *validator.Validate) error {
	custom := map[string]validator.Func{
		"fdi_tooth":      validFDITooth,
		"fdi_teeth":      validFDIToothList,
		"condition_type": validConditionType,
		"tooth_surface":  validToothSurface,
		"severity":       validSeverity,
	}
	for tag, fn := range custom {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("failed to register %q validation: %w", tag, err)
		}
	}
	return nil
}

func (v *Validator) Validate(obj interface{}) error {
	if err := v.validate.Struct(obj); err != nil {
		var errs validator.ValidationErrors
		if ok := castValidationErrors(err, &errs); ok && len(errs) > 0 {
			first := errs[0]
			return fmt.Errorf("field %s failed %q validation", first.Field(), first.Tag())
		}
		return err
	}
	return nil
}

// Engine exposes the underlying validate instance so gin's binding
// validator can share the custom tags.
func (v *Validator) Engine() *validator.Validate {
	return v.validate
}

func castValidationErrors(err error, target *validator.ValidationErrors) bool {
	errs, ok := err.(validator.ValidationErrors)
	if ok {
		*target = errs
	}
	return ok
}

func validFDITooth(fl validator.FieldLevel) bool {
	return chart.IsValidToothNumber(fl.Field().String())
}

// validFDIToothList accepts the transport form of multi-tooth fields,
// a comma-separated list of FDI numbers.
func validFDIToothList(fl validator.FieldLevel) bool {
	raw := fl.Field().String()
	if strings.TrimSpace(raw) == "" {
		return false
	}
	for _, tok := range strings.Split(raw, ",") {
		if !chart.IsValidToothNumber(strings.TrimSpace(tok)) {
			return false
		}
	}
	return true
}

func validConditionType(fl validator.FieldLevel) bool {
	return chart.IsValidConditionType(fl.Field().String())
}

func validToothSurface(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || chart.IsValidSurface(value)
}

func validSeverity(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || chart.IsValidSeverity(value)
}
