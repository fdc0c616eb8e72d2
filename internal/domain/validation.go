package domain

import (
	"encoding/json"
	"fmt"
	"net/mail"
	"strings"

	"github.com/shopspring/decimal"
)

// ValidationError is the 400 body shared by the storefront API and its clients.
// Field is empty when the failure is not tied to a single input.
type ValidationError struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func fieldError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fieldError(field, "%s is required", field)
	}
	return nil
}

func ValidateEmail(field, value string) error {
	if err := required(field, value); err != nil {
		return err
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != strings.TrimSpace(value) {
		return fieldError(field, "Invalid email")
	}
	return nil
}

// ValidatePhone accepts 7 to 15 digits, ignoring a leading plus sign, spaces,
// dashes and parentheses.
func ValidatePhone(field, value string) error {
	if err := required(field, value); err != nil {
		return err
	}
	digits := 0
	for i, r := range strings.TrimSpace(value) {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '+' && i == 0:
		case r == ' ' || r == '-' || r == '(' || r == ')':
		default:
			return fieldError(field, "Invalid phone")
		}
	}
	if digits < 7 || digits > 15 {
		return fieldError(field, "Invalid phone")
	}
	return nil
}

func (r *CreateOrderRequest) Validate() error {
	if err := required("customerName", r.CustomerName); err != nil {
		return err
	}
	if err := ValidateEmail("customerEmail", r.CustomerEmail); err != nil {
		return err
	}
	if err := ValidatePhone("customerPhone", r.CustomerPhone); err != nil {
		return err
	}
	if !r.OrderType.Valid() {
		return fieldError("orderType", "Invalid order type %q", r.OrderType)
	}
	if err := required("items", r.Items); err != nil {
		return err
	}
	var lines []OrderLine
	if err := json.Unmarshal([]byte(r.Items), &lines); err != nil {
		return fieldError("items", "Invalid items")
	}
	if len(lines) == 0 {
		return fieldError("items", "Order must contain at least one item")
	}
	for _, l := range lines {
		if l.Quantity < 1 {
			return fieldError("items", "Invalid quantity for product %d", l.ProductID)
		}
	}
	if err := required("totalAmount", r.TotalAmount); err != nil {
		return err
	}
	total, err := decimal.NewFromString(r.TotalAmount)
	if err != nil || total.IsNegative() {
		return fieldError("totalAmount", "Invalid total amount")
	}
	return nil
}

func (r *CreateContactRequest) Validate() error {
	if err := required("name", r.Name); err != nil {
		return err
	}
	if err := ValidateEmail("email", r.Email); err != nil {
		return err
	}
	if r.Phone != nil && strings.TrimSpace(*r.Phone) != "" {
		if err := ValidatePhone("phone", *r.Phone); err != nil {
			return err
		}
	}
	return required("message", r.Message)
}

func (r *CreateBlogRequest) Validate() error {
	for _, f := range []struct{ name, value string }{
		{"title", r.Title},
		{"content", r.Content},
		{"author", r.Author},
		{"imageUrl", r.ImageURL},
		{"excerpt", r.Excerpt},
		{"category", r.Category},
	} {
		if err := required(f.name, f.value); err != nil {
			return err
		}
	}
	return nil
}

func (r *CreateFaqRequest) Validate() error {
	if err := required("question", r.Question); err != nil {
		return err
	}
	if err := required("answer", r.Answer); err != nil {
		return err
	}
	return required("category", r.Category)
}

func (r *CreateFestRequest) Validate() error {
	for _, f := range []struct{ name, value string }{
		{"name", r.Name},
		{"college", r.College},
		{"description", r.Description},
		{"date", r.Date},
		{"imageUrl", r.ImageURL},
	} {
		if err := required(f.name, f.value); err != nil {
			return err
		}
	}
	return nil
}
