package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/staynest/mono-repo/backend/services/marketplace-service/internal/config"
	"github.com/staynest/mono-repo/backend/shared/go-models"
	"github.com/staynest/mono-repo/backend/shared/go-testhelpers"
	"github.com/stretchr/testify/require"
)

func TestBookingConfirmationText(t *testing.T) {
	b := &models.Booking{
		CheckIn:     time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:    time.Date(2025, 7, 4, 0, 0, 0, 0, time.UTC),
		TotalAmount: 38000,
	}
	subject, body := BookingConfirmationText("Harbour cottage", b)
	require.Equal(t, "Booking confirmed: Harbour cottage", subject)
	require.Equal(t, "Booking confirmed for Harbour cottage. Check-in: 2025-07-01, Check-out: 2025-07-04. Total: $380.00.", body)
}

func newTestNotifier(store *testhelpers.MemStore, sandbox bool) (*NotificationService, *[]*mail.SGMailV3) {
	svc := NewNotificationService(&config.Config{
		OrganizationName:           "Staynest",
		LDFlag_SendgridFromEmail:   "no-reply@staynest.dev",
		LDFlag_SendgridSandboxMode: sandbox,
	}, store)
	var sent []*mail.SGMailV3
	svc.send = func(ctx context.Context, msg *mail.SGMailV3) error {
		sent = append(sent, msg)
		return nil
	}
	return svc, &sent
}

func TestSendBookingConfirmationOnlyForConfirmed(t *testing.T) {
	ctx := context.Background()
	store := testhelpers.NewMemStore()
	id := pendingBooking(t, store)
	svc, sent := newTestNotifier(store, true)

	svc.SendBookingConfirmation(ctx, id)
	require.Empty(t, *sent)

	require.NoError(t, store.Bookings().MarkConfirmed(ctx, id, "cs_1", nil))
	svc.SendBookingConfirmation(ctx, id)
	require.Len(t, *sent, 1)

	msg := (*sent)[0]
	require.Equal(t, "Booking confirmed: Harbour cottage", msg.Subject)
	require.Equal(t, "guest@example.com", msg.Personalizations[0].To[0].Address)
	require.Equal(t, "no-reply@staynest.dev", msg.From.Address)
	require.NotNil(t, msg.MailSettings)
	require.True(t, *msg.MailSettings.SandboxMode.Enable)

	svc.SendBookingConfirmation(ctx, uuid.New())
	require.Len(t, *sent, 1)
}

func TestSendBookingConfirmationSwallowsErrors(t *testing.T) {
	ctx := context.Background()
	store := testhelpers.NewMemStore()
	id := pendingBooking(t, store)
	require.NoError(t, store.Bookings().MarkConfirmed(ctx, id, "cs_1", nil))

	svc, _ := newTestNotifier(store, false)
	calls := 0
	svc.send = func(ctx context.Context, msg *mail.SGMailV3) error {
		calls++
		return errors.New("sendgrid unavailable")
	}
	require.NotPanics(t, func() { svc.SendBookingConfirmation(ctx, id) })
	require.Equal(t, 1, calls)
}

func TestSendBookingConfirmationWithoutKeyOnlyLogs(t *testing.T) {
	ctx := context.Background()
	store := testhelpers.NewMemStore()
	id := pendingBooking(t, store)
	require.NoError(t, store.Bookings().MarkConfirmed(ctx, id, "cs_1", nil))

	svc := NewNotificationService(&config.Config{}, store)
	require.Nil(t, svc.send)
	require.NotPanics(t, func() { svc.SendBookingConfirmation(ctx, id) })
}
