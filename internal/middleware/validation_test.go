package middleware

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Mirrors the contact-form payload shape used by the messages handler.
type contactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required"`
}

// Mirrors the product price constraint: non-negative, bounded.
type priceRequest struct {
	Name  string  `json:"name" validate:"required"`
	Price float64 `json:"price" validate:"gte=0,lte=1000000"`
}

// Feature: catalog-backend, Property 9: Required field validation works
// Validates: Requirements 6.1
func TestProperty_RequiredFieldValidationWorks(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("missing required fields are rejected", prop.ForAll(
		func(includeName bool, includeEmail bool, includeMessage bool) bool {
			reqMap := make(map[string]interface{})

			if includeName {
				reqMap["name"] = "Maria Santos"
			}
			if includeEmail {
				reqMap["email"] = "maria@example.com"
			}
			if includeMessage {
				reqMap["message"] = "Do you ship internationally?"
			}

			allFieldsPresent := includeName && includeEmail && includeMessage

			reqBody, _ := json.Marshal(reqMap)
			req := httptest.NewRequest("POST", "/api/messages", bytes.NewReader(reqBody))
			req.Header.Set("Content-Type", "application/json")

			var contact contactRequest
			err := DecodeAndValidate(req, &contact)

			if allFieldsPresent {
				return err == nil
			}
			return err != nil
		},
		gen.Bool(),
		gen.Bool(),
		gen.Bool(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Test that validation errors are properly formatted
func TestProperty_ValidationErrorsAreFormatted(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("validation errors include field information", prop.ForAll(
		func() bool {
			reqMap := map[string]interface{}{
				"name":    "Maria Santos",
				"email":   "not-an-email",
				"message": "Hello",
			}

			reqBody, _ := json.Marshal(reqMap)
			req := httptest.NewRequest("POST", "/api/messages", bytes.NewReader(reqBody))
			req.Header.Set("Content-Type", "application/json")

			var contact contactRequest
			err := DecodeAndValidate(req, &contact)
			if err == nil {
				return false
			}

			validationErrors := FormatValidationErrors(err)
			if len(validationErrors) == 0 {
				return false
			}

			for _, ve := range validationErrors {
				if ve.Field == "" || ve.Message == "" {
					return false
				}
			}

			return true
		},
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Test that valid requests pass validation
func TestProperty_ValidRequestsPassValidation(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("valid contact submissions pass validation", prop.ForAll(
		func(seed int) bool {
			names := []string{"Maria Santos", "Ana Reyes", "Liza Cruz", "Joy Mendoza"}
			messages := []string{
				"Is the pearl bag still available?",
				"How long does shipping take?",
				"Can I order a custom color?",
			}

			if seed < 0 {
				seed = -seed
			}

			reqMap := map[string]interface{}{
				"name":    names[seed%len(names)],
				"email":   "customer@example.com",
				"message": messages[seed%len(messages)],
			}

			reqBody, _ := json.Marshal(reqMap)
			req := httptest.NewRequest("POST", "/api/messages", bytes.NewReader(reqBody))
			req.Header.Set("Content-Type", "application/json")

			var contact contactRequest
			return DecodeAndValidate(req, &contact) == nil
		},
		gen.Int(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Test price range validation
func TestProperty_PriceRangeValidation(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("negative prices are rejected", prop.ForAll(
		func(price float64) bool {
			reqMap := map[string]interface{}{
				"name":  "Pearl Bag",
				"price": price,
			}

			reqBody, _ := json.Marshal(reqMap)
			req := httptest.NewRequest("POST", "/api/products", bytes.NewReader(reqBody))
			req.Header.Set("Content-Type", "application/json")

			var product priceRequest
			err := DecodeAndValidate(req, &product)

			if price >= 0 && price <= 1000000 {
				return err == nil
			}
			return err != nil
		},
		gen.Float64Range(-10000, 2000000),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
