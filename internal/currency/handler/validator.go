package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"currencyconv/internal/money"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/shopspring/decimal"
)

// outOfRangeDecimal stands in for decimals whose exponent or precision
// exceeds money.InRange; rendering those as text can take unbounded time.
const outOfRangeDecimal = "out-of-range"

// requestValidator checks decoded request bodies and renders the first
// failing field as a client message.
type requestValidator struct {
	validate *validator.Validate
}

func newRequestValidator() *requestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// decimals are validated through their string form
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		d, ok := field.Interface().(decimal.Decimal)
		if !ok {
			return nil
		}
		if !money.InRange(&d) {
			return outOfRangeDecimal
		}
		return d.String()
	}, decimal.Decimal{})

	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("decimal_range", func(fl validator.FieldLevel) bool {
		return fl.Field().String() != outOfRangeDecimal
	})
	_ = v.RegisterValidation("positive_decimal", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		return err == nil && d.IsPositive()
	})

	return &requestValidator{validate: v}
}

func (rv *requestValidator) Struct(s any) error {
	err := rv.validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Errorf("%s must not be blank", fe.Field())
	case "positive_decimal":
		return fmt.Errorf("%s must be greater than 0", fe.Field())
	case "decimal_range":
		return fmt.Errorf("%s is out of range", fe.Field())
	default:
		return fmt.Errorf("%s is invalid", fe.Field())
	}
}
