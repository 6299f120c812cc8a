package payment

import (
	"context"
	"errors"

	"github.com/medidesk/hospital-api/internal/models"
)

// ErrDisabled is returned when no gateway credentials are configured.
var ErrDisabled = errors.New("payment gateway not configured")

// Checkout is a hosted payment page created for an invoice. The receptionist
// hands InitPoint to the patient; Reference ties the provider's callback back
// to our invoice.
type Checkout struct {
	Reference string `json:"reference"`
	InitPoint string `json:"init_point"`
}

type Gateway interface {
	CreateCheckout(ctx context.Context, inv *models.Invoice, payerEmail string) (*Checkout, error)
}

// Disabled is the Gateway used when MP_ACCESS_TOKEN is unset.
type Disabled struct{}

func (Disabled) CreateCheckout(context.Context, *models.Invoice, string) (*Checkout, error) {
	return nil, ErrDisabled
}
