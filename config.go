package apiproxy

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ClientConfig configures one named client of an HTTPClientFactory.
type ClientConfig struct {
	// Name is the client name used in //apiproxy:client directives.
	Name string `validate:"required"`

	// BaseURL is the absolute URL request URIs are resolved against,
	// e.g. "https://api.example.com/v1/".
	BaseURL string `validate:"required,url"`

	// Timeout bounds each request. Zero means no timeout beyond the
	// caller's context.
	Timeout time.Duration `validate:"gte=0"`

	// UserAgent, if set, is sent with every request.
	UserAgent string `validate:"omitempty,max=256"`
}

// ConfigError reports invalid ClientConfig fields.
type ConfigError struct {
	Name   string
	Fields map[string]string // field name -> message
}

func (e *ConfigError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, field := range []string{"Name", "BaseURL", "Timeout", "UserAgent"} {
		if msg, ok := e.Fields[field]; ok {
			msgs = append(msgs, field+": "+msg)
		}
	}
	return fmt.Sprintf("invalid client config %q: %s", e.Name, strings.Join(msgs, "; "))
}

// Validate checks the config against its struct tags.
func (c ClientConfig) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return err
	}
	cfgErr := &ConfigError{Name: c.Name, Fields: make(map[string]string, len(valErrs))}
	for _, ve := range valErrs {
		cfgErr.Fields[ve.Field()] = formatValidationError(ve)
	}
	return cfgErr
}

// formatValidationError converts a validator.FieldError to a human-readable message.
func formatValidationError(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "required"
	case "url":
		return "must be a valid URL"
	case "max":
		return fmt.Sprintf("must be at most %s characters", ve.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", ve.Param())
	default:
		if ve.Param() != "" {
			return fmt.Sprintf("failed %s=%s validation", ve.Tag(), ve.Param())
		}
		return fmt.Sprintf("failed %s validation", ve.Tag())
	}
}
