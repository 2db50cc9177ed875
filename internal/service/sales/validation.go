package sales

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/mamadbah2/salestracker/internal/domain/models"
)

// ValidationError describes rejected user input. No state is touched when it is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var fieldMessages = map[string]string{
	"ProductName":  "Product name is required",
	"InitialQty":   "Initial quantity must be a valid positive number",
	"QtySold":      "Quantity sold must be a valid positive number",
	"PricePerUnit": "Price per unit must be a valid positive number",
}

var jsonFieldNames = map[string]string{
	"ProductName":  "productName",
	"InitialQty":   "initialQty",
	"QtySold":      "qtySold",
	"PricePerUnit": "pricePerUnit",
}

// ValidateDate checks that date is an ISO calendar date.
func ValidateDate(date string) error {
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return &ValidationError{Field: "date", Message: "Date must be formatted as YYYY-MM-DD"}
	}
	return nil
}

// buildRecord validates input and derives the stored record.
func buildRecord(validate *validator.Validate, input models.RecordInput, id string) (models.ProductSaleRecord, error) {
	input.ProductName = strings.TrimSpace(input.ProductName)

	if err := validate.Struct(input); err != nil {
		return models.ProductSaleRecord{}, translate(err)
	}

	initial, sold, price := *input.InitialQty, *input.QtySold, *input.PricePerUnit
	if sold > initial {
		return models.ProductSaleRecord{}, &ValidationError{
			Field:   "qtySold",
			Message: "Quantity sold cannot exceed initial quantity",
		}
	}

	return models.ProductSaleRecord{
		ID:           id,
		ProductName:  input.ProductName,
		InitialQty:   initial,
		QtySold:      sold,
		PricePerUnit: price,
		TotalSales:   totalSales(sold, price),
		RemainingQty: initial - sold,
	}, nil
}

func translate(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validate record: %w", err)
	}

	first := fieldErrs[0]
	message, ok := fieldMessages[first.StructField()]
	if !ok {
		message = fmt.Sprintf("%s is invalid", first.Field())
	}
	return &ValidationError{Field: jsonFieldNames[first.StructField()], Message: message}
}
