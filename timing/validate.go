package timing

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return f.Name
		}
		return tag
	})
	return v
}

// validateOptions checks caller options before anything is sent.
// A nil pointer is valid: it means the caller passed no options.
func validateOptions(opts any) error {
	if opts == nil {
		return nil
	}
	rv := reflect.ValueOf(opts)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil
	}

	if err := validate.Struct(opts); err != nil {
		return formatValidationErrors(err)
	}

	if ranged, ok := opts.(dateRanged); ok {
		if from, to, valid := ranged.dateRange(); !valid {
			return fmt.Errorf("%w: %s must not be before %s", ErrInvalidOptions, to, from)
		}
	}
	return nil
}

func formatValidationErrors(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}

	msgs := make([]string, 0, len(errs))
	for _, fieldErr := range errs {
		msgs = append(msgs, fieldPath(fieldErr)+" "+validationMessage(fieldErr))
	}
	sort.Strings(msgs)
	return fmt.Errorf("%w: %s", ErrInvalidOptions, strings.Join(msgs, "; "))
}

// fieldPath drops the struct name from the namespace, e.g.
// "ReportQuery.filters[0].fieldName" becomes "filters[0].fieldName".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "hexcolor":
		return "must be a hex color"
	}
	return "is invalid"
}

// dateRanged is implemented by options carrying a from/to pair.
type dateRanged interface {
	dateRange() (from, to string, valid bool)
}

func endsBefore(start, end *time.Time) bool {
	return start != nil && end != nil && end.Before(*start)
}

func (o CreateTimeEntryOptions) dateRange() (string, string, bool) {
	return "startDate", "endDate", !endsBefore(o.StartDate, o.EndDate)
}

func (o UpdateTimeEntryOptions) dateRange() (string, string, bool) {
	return "startDate", "endDate", !endsBefore(o.StartDate, o.EndDate)
}

func (q TimeEntryListQuery) dateRange() (string, string, bool) {
	return "startDateMin", "startDateMax", !endsBefore(q.StartDateMin, q.StartDateMax)
}

func (q ReportQuery) dateRange() (string, string, bool) {
	return "startDateMin", "startDateMax", !endsBefore(q.StartDateMin, q.StartDateMax)
}
