package validator

import (
	"database/sql"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the go-playground validator
type Validator struct {
	validate *validator.Validate
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Tag     string `json:"tag"`
	Value   string `json:"value,omitempty"`
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface
func (v ValidationErrors) Error() string {
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Message)
	}
	return strings.Join(messages, "; ")
}

// New creates a new validator instance
func New() *Validator {
	v := validator.New()

	// Report fields by their JSON names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterValidation("sqldriver", validateSQLDriver)
	v.RegisterValidation("money", validateMoney)
	v.RegisterValidation("sqlname", validateSQLName)

	return &Validator{validate: v}
}

// Validate validates a struct and returns validation errors
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	var validationErrs ValidationErrors
	for _, fe := range fieldErrs {
		validationErrs = append(validationErrs, ValidationError{
			Field:   fe.Field(),
			Message: msgForTag(fe),
			Tag:     fe.Tag(),
			Value:   fmt.Sprintf("%v", fe.Value()),
		})
	}

	return validationErrs
}

// msgForTag returns a human-readable error message for a validation tag
func msgForTag(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required", "required_if":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "sqldriver":
		return fmt.Sprintf("%s must be a registered SQL driver (one of: %s)", field, strings.Join(sql.Drivers(), ", "))
	case "sqlname":
		return fmt.Sprintf("%s may only contain letters, digits and underscores", field)
	case "money":
		return fmt.Sprintf("%s must be a non-negative amount with at most two decimals", field)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

// Custom validators

// validateSQLDriver accepts names registered with database/sql
func validateSQLDriver(fl validator.FieldLevel) bool {
	return slices.Contains(sql.Drivers(), fl.Field().String())
}

var sqlName = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// validateSQLName accepts bare names such as charsets and collations
func validateSQLName(fl validator.FieldLevel) bool {
	return sqlName.MatchString(fl.Field().String())
}

// validateMoney accepts non-negative amounts with at most two decimals
func validateMoney(fl validator.FieldLevel) bool {
	var amount float64
	switch fl.Field().Kind() {
	case reflect.Float32, reflect.Float64:
		amount = fl.Field().Float()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		amount = float64(fl.Field().Int())
	default:
		return false
	}
	if amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return false
	}
	cents := amount * 100
	return math.Abs(cents-math.Round(cents)) < 1e-6
}
