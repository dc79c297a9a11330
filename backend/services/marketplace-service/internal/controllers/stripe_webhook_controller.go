package controllers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/staynest/mono-repo/backend/services/marketplace-service/internal/constants"
	"github.com/staynest/mono-repo/backend/services/marketplace-service/internal/dtos"
	"github.com/staynest/mono-repo/backend/services/marketplace-service/internal/services"
	"github.com/staynest/mono-repo/backend/shared/go-utils"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

// StripeWebhookController verifies Stripe deliveries and hands paid
// checkout sessions to the fulfilment service.
type StripeWebhookController struct {
	secret         string
	webhookService *services.PaymentWebhookService
}

func NewStripeWebhookController(secret string, webhookService *services.PaymentWebhookService) *StripeWebhookController {
	return &StripeWebhookController{secret: secret, webhookService: webhookService}
}

// WebhookHandler => POST /api/v1/stripe/webhook
func (c *StripeWebhookController) WebhookHandler(w http.ResponseWriter, r *http.Request) {
	if c.secret == "" {
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, constants.MsgWebhookNotConfigured, nil)
		return
	}
	sigHeader := r.Header.Get(constants.StripeSignatureHeader)
	if sigHeader == "" {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Missing Stripe-Signature header", nil)
		return
	}

	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, constants.MaxWebhookBodyBytes))
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Failed to read webhook body", nil, err)
		return
	}

	event, err := webhook.ConstructEventWithOptions(payload, sigHeader, c.secret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, constants.MsgWebhookSignature, nil, err)
		return
	}

	switch string(event.Type) {
	case constants.CheckoutSessionEvent:
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Could not parse checkout session", nil, err)
			return
		}
		if err := c.webhookService.HandleCheckoutCompleted(r.Context(), &sess); err != nil {
			utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, constants.MsgWebhookFulfilment, nil, err)
			return
		}
	default:
		utils.Logger.Infof("Unhandled Stripe event type: %s", event.Type)
	}

	utils.RespondWithJSON(w, http.StatusOK, dtos.WebhookAck{Received: true})
}
