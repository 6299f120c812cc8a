package payment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"

	"github.com/medidesk/hospital-api/internal/models"
)

type MercadoPago struct {
	prefs preference.Client
}

func NewMercadoPago(accessToken string) (*MercadoPago, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}
	return &MercadoPago{prefs: preference.NewClient(cfg)}, nil
}

func (g *MercadoPago) CreateCheckout(
	ctx context.Context,
	inv *models.Invoice,
	payerEmail string,
) (*Checkout, error) {

	items := make([]preference.ItemRequest, 0, len(inv.Items))
	for _, it := range inv.Items {
		items = append(items, preference.ItemRequest{
			Title:     it.Description,
			Quantity:  1,
			UnitPrice: it.Amount,
		})
	}

	reference := fmt.Sprintf("%s-%s", inv.AptID, uuid.NewString()[:8])

	req := preference.Request{
		ExternalReference: reference,
		Items:             items,
	}
	if payerEmail != "" {
		req.Payer = &preference.PayerRequest{Email: payerEmail}
	}

	pref, err := g.prefs.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create preference: %w", err)
	}

	return &Checkout{
		Reference: reference,
		InitPoint: pref.InitPoint,
	}, nil
}

var _ Gateway = (*MercadoPago)(nil)
