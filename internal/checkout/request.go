package checkout

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fjod/frocone/internal/cart"
	"github.com/fjod/frocone/internal/domain"
)

// Details are the delivery-form values.
type Details struct {
	Name         string
	Email        string
	Phone        string
	Type         domain.OrderType
	Instructions string
}

func NewDetails() Details {
	return Details{Type: domain.OrderTypeTakeaway}
}

// Validate checks that every required field is filled in. Format checks are
// left to the order collaborator.
func (d Details) Validate() error {
	for _, f := range []struct{ field, value string }{
		{"customerName", d.Name},
		{"customerPhone", d.Phone},
		{"customerEmail", d.Email},
	} {
		if strings.TrimSpace(f.value) == "" {
			return &domain.ValidationError{Field: f.field, Message: f.field + " is required"}
		}
	}
	if !d.Type.Valid() {
		return &domain.ValidationError{Field: "orderType", Message: fmt.Sprintf("unknown order type %q", d.Type)}
	}
	return nil
}

// BuildOrderRequest snapshots items into the order-creation payload.
func BuildOrderRequest(d Details, items []cart.LineItem) (domain.CreateOrderRequest, error) {
	encoded, err := json.Marshal(items)
	if err != nil {
		return domain.CreateOrderRequest{}, fmt.Errorf("failed to marshal cart snapshot: %w", err)
	}

	req := domain.CreateOrderRequest{
		CustomerName:  strings.TrimSpace(d.Name),
		CustomerEmail: strings.TrimSpace(d.Email),
		CustomerPhone: strings.TrimSpace(d.Phone),
		OrderType:     d.Type,
		Items:         string(encoded),
		TotalAmount:   cart.Total(items).StringFixed(2),
	}
	if instructions := strings.TrimSpace(d.Instructions); instructions != "" {
		req.SpecialInstructions = &instructions
	}
	return req, nil
}
