package core

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError describes a single invalid field in a deploy config.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report errors against the wire names, not the Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateConfig checks a deploy config and returns one FieldError per
// invalid field. A nil slice means the config is acceptable. Duplicate
// names and tickers are deliberately not checked.
func ValidateConfig(cfg AgentConfig) []FieldError {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "config", Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Message: messageFor(fe)})
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Field() {
	case "name":
		if fe.Tag() == "min" {
			return "Name must be at least 3 characters"
		}
		return "Name is required"
	case "ticker":
		return "Ticker is required"
	case "behavior":
		if fe.Tag() == "min" {
			return "Behavior description must be at least 10 characters"
		}
		return "Behavior description is required"
	case "chain":
		return "Unsupported chain"
	}
	if fe.Tag() == "oneof" {
		return fmt.Sprintf("Unsupported value %q", fe.Value())
	}
	return fmt.Sprintf("Invalid value for %s", fe.Field())
}
