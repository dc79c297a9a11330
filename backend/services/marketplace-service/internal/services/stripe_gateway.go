package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/staynest/mono-repo/backend/services/marketplace-service/internal/constants"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
)

// CheckoutRequest describes the single line item a guest pays for.
type CheckoutRequest struct {
	BookingID     uuid.UUID
	Title         string
	Nights        int
	AmountMinor   int64
	Currency      string
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
}

// PaymentGateway starts a hosted checkout and returns the URL the guest
// is redirected to.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (url string, sessionID string, err error)
}

type StripeGateway struct{}

// NewStripeGateway sets the package-level Stripe key used by every call.
func NewStripeGateway(secretKey string) *StripeGateway {
	stripe.Key = secretKey
	return &StripeGateway{}
}

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (string, string, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		CustomerEmail: stripe.String(req.CustomerEmail),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(req.Currency),
					UnitAmount: stripe.Int64(req.AmountMinor),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(req.Title),
						Description: stripe.String(fmt.Sprintf("%d night stay", req.Nights)),
					},
				},
			},
		},
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
	}
	params.Context = ctx
	params.AddMetadata(constants.StripeMetadataBookingID, req.BookingID.String())

	s, err := session.New(params)
	if err != nil {
		return "", "", err
	}
	if s.URL == "" {
		return "", s.ID, fmt.Errorf("checkout session %s has no url", s.ID)
	}
	return s.URL, s.ID, nil
}
