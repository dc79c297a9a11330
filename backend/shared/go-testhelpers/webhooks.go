package testhelpers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/staynest/mono-repo/backend/shared/go-utils"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82"
)

// PostStripeWebhook signs and posts a mock Stripe event to the webhook endpoint.
func (h *TestHelper) PostStripeWebhook(webhookURL, payload string) {
	require.NotEmpty(h.T, h.StripeWebhookSecret, "StripeWebhookSecret is not configured in TestHelper")
	headerVal := SignStripePayload(h.StripeWebhookSecret, []byte(payload))
	req, err := http.NewRequest(http.MethodPost, webhookURL, strings.NewReader(payload))
	require.NoError(h.T, err, "failed to create webhook POST request")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Stripe-Signature", headerVal)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(h.T, err, "failed to POST webhook payload")
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body := h.ReadBody(resp)
		h.T.Fatalf("Webhook POST failed, status=%d, body=%s", resp.StatusCode, body)
	}
}

// SignStripePayload constructs the "Stripe-Signature" header value.
func SignStripePayload(secret string, payload []byte) string {
	timestamp := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write([]byte(fmt.Sprintf("%d.", timestamp)))
	_, _ = mac.Write(payload)
	return fmt.Sprintf("t=%d,v1=%s", timestamp, hex.EncodeToString(mac.Sum(nil)))
}

// MockStripeWebhookPayload creates a JSON byte slice for a Stripe webhook event.
func MockStripeWebhookPayload(t *testing.T, eventType string, data map[string]any) []byte {
	t.Helper()

	payload := map[string]any{
		"id":          "evt_test_" + utils.RandomString(10),
		"object":      "event",
		"api_version": stripe.APIVersion,
		"created":     time.Now().Unix(),
		"type":        eventType,
		"data": map[string]any{
			"object": data,
		},
	}

	jsonBytes, err := json.Marshal(payload)
	require.NoError(t, err, "Failed to marshal mock Stripe webhook payload")
	return jsonBytes
}

// CheckoutCompletedPayload is the event a paid Checkout Session produces.
func CheckoutCompletedPayload(t *testing.T, sessionID, bookingID, paymentIntentID string, amountTotal int64) []byte {
	obj := map[string]any{
		"id":             sessionID,
		"object":         "checkout.session",
		"payment_status": "paid",
		"amount_total":   amountTotal,
		"currency":       "usd",
		"metadata": map[string]string{
			"bookingId": bookingID,
		},
	}
	if paymentIntentID != "" {
		obj["payment_intent"] = paymentIntentID
	}
	return MockStripeWebhookPayload(t, "checkout.session.completed", obj)
}
