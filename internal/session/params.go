package session

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/usestring/splunk-mcp/pkg/splunk"
)

// Search result bounds.
const (
	DefaultMaxCount = 100
	MinMaxCount     = 1
	MaxMaxCount     = 10000
)

// ConnectionParams are the inputs of Configure.
type ConnectionParams struct {
	Host     string `json:"host" validate:"required,hostname_rfc1123|ip"`
	Port     int    `json:"port" validate:"min=1,max=65535"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Scheme   string `json:"scheme" validate:"oneof=http https"`
}

// WithDefaults fills in the default port and scheme.
func (p ConnectionParams) WithDefaults() ConnectionParams {
	if p.Port == 0 {
		p.Port = splunk.DefaultPort
	}
	if p.Scheme == "" {
		p.Scheme = splunk.DefaultScheme
	}
	return p
}

// BaseURL returns the management URL the params point at.
func (p ConnectionParams) BaseURL() string {
	return splunk.BaseURL(p.Scheme, p.Host, p.Port)
}

// SearchParams are the inputs of Search.
type SearchParams struct {
	Query        string `json:"query" validate:"required"`
	EarliestTime string `json:"earliest_time"`
	LatestTime   string `json:"latest_time"`
	MaxCount     int    `json:"max_count" validate:"min=1,max=10000"`
	OutputMode   string `json:"output_mode" validate:"oneof=json csv xml"`
}

// RunSavedSearchParams are the inputs of RunSavedSearch.
type RunSavedSearchParams struct {
	Name         string `json:"name" validate:"required"`
	EarliestTime string `json:"earliest_time"`
	LatestTime   string `json:"latest_time"`
	MaxCount     int    `json:"max_count" validate:"min=1,max=10000"`
}

// ValidationError reports parameters rejected before any Splunk call.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid parameters: " + strings.Join(e.Problems, "; ")
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func validateParams(v *validator.Validate, params any) error {
	err := v.Struct(params)
	if err == nil {
		return nil
	}
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return err
	}
	problems := make([]string, 0, len(vErrs))
	for _, fe := range vErrs {
		problems = append(problems, describe(fe))
	}
	return &ValidationError{Problems: problems}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "hostname_rfc1123|ip":
		return fmt.Sprintf("%s must be a hostname or IP address", fe.Field())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}
