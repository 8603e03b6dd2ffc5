package brand

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// ValidationResult lists problems found in a brand configuration. Errors
// make the config unusable; warnings do not.
type ValidationResult struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// Valid reports whether no errors were found.
func (r ValidationResult) Valid() bool { return len(r.Errors) == 0 }

// Validate checks the configuration. It never fails; problems are returned
// as messages for the caller to act on.
func (c *Config) Validate() ValidationResult {
	res := ValidationResult{Errors: []string{}, Warnings: []string{}}
	if c == nil {
		res.Errors = append(res.Errors, "brand configuration is empty")
		return res
	}

	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				res.Errors = append(res.Errors, formatFieldError(fe))
			}
		} else {
			res.Errors = append(res.Errors, err.Error())
		}
	}

	if c.Colors == nil {
		res.Errors = append(res.Errors, "colors is required")
	} else {
		for _, key := range RequiredColors {
			v, ok := c.Colors[key]
			if !ok || strings.TrimSpace(v) == "" {
				res.Errors = append(res.Errors, fmt.Sprintf("colors.%s is required", key))
				continue
			}
			if _, err := ParseColor(v); err != nil {
				res.Errors = append(res.Errors, fmt.Sprintf("colors.%s: %v", key, err))
			}
		}
	}

	if c.Logo == nil {
		res.Warnings = append(res.Warnings, "logo is not configured; assets will be generated without a logo")
	}
	return res
}

func formatFieldError(e validator.FieldError) string {
	field := strings.TrimPrefix(e.Namespace(), "Config.")
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, e.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
