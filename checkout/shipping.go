// Package checkout turns a cart and shipping details into a placed order.
package checkout

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"storefront/apperrors"
	"storefront/models"

	"github.com/go-playground/validator/v10"
)

// Country is the only delivery destination.
const Country = "Pakistan"

// PhonePrefix is prepended to the local number on the stored order.
const PhonePrefix = "+92"

var (
	emailPattern = regexp.MustCompile(`^[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}$`)
	phonePattern = regexp.MustCompile(`^\d{10}$`)
)

var shippingRules = map[string]validator.Func{
	"storeemail": func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	},
	"localphone": func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	},
}

var validate = mustValidator(shippingRules)

func newValidator(rules map[string]validator.Func) (*validator.Validate, error) {
	v := validator.New()
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return nil, fmt.Errorf("register %q validation: %w", tag, err)
		}
	}
	return v, nil
}

func mustValidator(rules map[string]validator.Func) *validator.Validate {
	v, err := newValidator(rules)
	if err != nil {
		panic(err)
	}
	return v
}

// ShippingInfo is what the customer enters at checkout.
type ShippingInfo struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,storeemail"`
	Phone     string `json:"phone" validate:"required,localphone"`
	Address   string `json:"address" validate:"required"`
	City      string `json:"city" validate:"required"`
	State     string `json:"state" validate:"required"`
	Zip       string `json:"zip"`
}

// Normalize trims every field, lowercases the email and strips spaces
// from the phone number.
func (s ShippingInfo) Normalize() ShippingInfo {
	s.FirstName = strings.TrimSpace(s.FirstName)
	s.LastName = strings.TrimSpace(s.LastName)
	s.Email = strings.ToLower(strings.TrimSpace(s.Email))
	s.Phone = strings.ReplaceAll(strings.TrimSpace(s.Phone), " ", "")
	s.Address = strings.TrimSpace(s.Address)
	s.City = strings.TrimSpace(s.City)
	s.State = strings.TrimSpace(s.State)
	s.Zip = strings.TrimSpace(s.Zip)
	return s
}

// Validate checks a normalized ShippingInfo.
func (s ShippingInfo) Validate() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperrors.Validation("Invalid shipping information")
	}
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			return apperrors.Validation("Please fill in all required fields")
		}
	}
	switch fieldErrs[0].Tag() {
	case "storeemail":
		return apperrors.Validation("Please enter a valid email address in lowercase format (e.g., john@example.com)")
	case "localphone":
		return apperrors.Validation("Please enter a valid 10-digit phone number (e.g., 3001234567)")
	}
	return apperrors.Validationf("Invalid %s", fieldErrs[0].Field())
}

// FullName joins first and last name.
func (s ShippingInfo) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// Customer returns the order customer for s.
func (s ShippingInfo) Customer() *models.Customer {
	return &models.Customer{
		FullName: s.FullName(),
		Email:    s.Email,
		Phone:    PhonePrefix + s.Phone,
	}
}

// ShippingAddress returns the delivery address for s.
func (s ShippingInfo) ShippingAddress() models.Address {
	return models.Address{
		Address: s.Address,
		City:    s.City,
		State:   s.State,
		Zip:     s.Zip,
		Country: Country,
	}
}
