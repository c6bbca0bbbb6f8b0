package ingest

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ProductInput is the multipart form of a product creation request.
// Numbers arrive as strings and are parsed after validation.
type ProductInput struct {
	Title       string `schema:"title" validate:"required"`
	Description string `schema:"description" validate:"required"`
	Price       string `schema:"price" validate:"required,numeric"`
	SalePrice   string `schema:"salePrice" validate:"omitempty,numeric"`
	Category    string `schema:"category" validate:"required"`
	StockCount  string `schema:"stockCount" validate:"omitempty,number"`
	CargoWeight string `schema:"cargoWeight" validate:"required,numeric"`
}

type TrialProductInput struct {
	Title          string `schema:"title" validate:"required"`
	Description    string `schema:"description" validate:"required"`
	TrialPeriod    string `schema:"trialPeriod" validate:"required,number"`
	AvailableCount string `schema:"availableCount" validate:"required,number"`
	Category       string `schema:"category" validate:"required"`
}

// ValidationError is a user-correctable input problem.
type ValidationError struct {
	Fields  []string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "invalid fields: " + strings.Join(e.Fields, ", ")
}

// NewValidator returns a validator that reports fields by their form names.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("schema"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

func trimInput[T any](in *T) {
	rv := reflect.ValueOf(in).Elem()
	for i := 0; i < rv.NumField(); i++ {
		if f := rv.Field(i); f.Kind() == reflect.String && f.CanSet() {
			f.SetString(strings.TrimSpace(f.String()))
		}
	}
}

// validate reports missing fields before malformed ones.
func validate(v *validator.Validate, in any) error {
	err := v.Struct(in)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	var missing, invalid []string
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
		} else {
			invalid = append(invalid, fe.Field())
		}
	}
	if len(missing) > 0 {
		return &ValidationError{
			Fields:  missing,
			Message: fmt.Sprintf("%s are required", strings.Join(missing, ", ")),
		}
	}
	return &ValidationError{
		Fields:  invalid,
		Message: fmt.Sprintf("%s must be valid numbers", strings.Join(invalid, ", ")),
	}
}

// Decimal places kept for stored amounts, matching the NUMERIC columns.
const (
	priceScale  = 2
	weightScale = 3
)

// parseAmount parses raw and rounds it to scale decimal places, so comparisons
// see the value the database will store.
func parseAmount(field, raw string, scale int) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 || math.IsInf(v, 0) {
		return 0, &ValidationError{Fields: []string{field}, Message: field + " must be a non-negative number"}
	}
	p := math.Pow10(scale)
	return math.Round(v*p) / p, nil
}

func parseCount(field, raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, &ValidationError{Fields: []string{field}, Message: field + " must be a non-negative integer"}
	}
	return v, nil
}
