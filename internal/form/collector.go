// internal/form/collector.go
package form

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	appErrors "github.com/unclebandit/churn-predictor/internal/errors"
	"github.com/unclebandit/churn-predictor/internal/model"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		return name
	})
	// domain=<column> checks membership in the column's option list.
	if err := v.RegisterValidation("domain", func(fl validator.FieldLevel) bool {
		field, ok := model.FieldByColumn(fl.Param())
		return ok && field.Allows(fl.Field().String())
	}); err != nil {
		panic("form: registering domain validation: " + err.Error())
	}
	return v
}

// Default returns the values of a freshly opened form: first option of every
// enumerated field, tenure 0 and both charges unset.
func Default() model.CustomerRecord {
	var rec model.CustomerRecord
	for _, f := range model.Fields {
		if f.Enumerated() {
			rec.SetString(f.Column, f.Options[0])
		}
	}
	return rec
}

// Collect reads the submitted form into a record. Missing enumerated values
// keep their default, numeric values are clamped to their bounds, and a
// charge that is empty or not a number stays unset.
func Collect(values url.Values) (model.CustomerRecord, error) {
	rec := Default()

	for _, f := range model.Fields {
		raw := strings.TrimSpace(values.Get(f.Column))
		if raw == "" {
			continue
		}

		switch f.Control {
		case model.ControlSelect, model.ControlRadio:
			rec.SetString(f.Column, raw)
		case model.ControlSlider:
			n, ok := parseNumber(raw)
			if !ok {
				continue
			}
			rec.Tenure = int(f.Clamp(n))
		case model.ControlNumber:
			n, ok := parseNumber(raw)
			if !ok {
				continue
			}
			setCharge(&rec, f.Column, f.Clamp(n))
		}
	}

	if err := Validate(rec); err != nil {
		return rec, err
	}
	return rec, nil
}

// Validate checks every field of rec against its declared domain.
func Validate(rec model.CustomerRecord) error {
	err := validate.Struct(rec)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return appErrors.NewInvalidField(fe.Field(), valueString(fe.Value()))
	}
	return err
}

// parseNumber accepts values too large for a float64; they come back as
// ±Inf and are clamped by the caller.
func parseNumber(raw string) (float64, bool) {
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	if math.IsNaN(n) {
		return 0, false
	}
	return n, true
}

func setCharge(rec *model.CustomerRecord, column string, v float64) {
	switch column {
	case "MonthlyCharges":
		rec.MonthlyCharges = &v
	case "TotalCharges":
		rec.TotalCharges = &v
	}
}

func valueString(v interface{}) string {
	if p, ok := v.(*float64); ok && p != nil {
		return strconv.FormatFloat(*p, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}
