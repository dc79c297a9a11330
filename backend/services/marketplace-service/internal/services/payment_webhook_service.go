package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/staynest/mono-repo/backend/services/marketplace-service/internal/constants"
	"github.com/staynest/mono-repo/backend/shared/go-models"
	"github.com/staynest/mono-repo/backend/shared/go-repositories"
	"github.com/staynest/mono-repo/backend/shared/go-utils"
	"github.com/stripe/stripe-go/v82"
)

var errBookingGone = errors.New("booking_not_found")

// PaymentWebhookService fulfils verified Stripe checkout events.
type PaymentWebhookService struct {
	store    repositories.Store
	notifier BookingNotifier
}

func NewPaymentWebhookService(store repositories.Store, notifier BookingNotifier) *PaymentWebhookService {
	return &PaymentWebhookService{store: store, notifier: notifier}
}

// HandleCheckoutCompleted confirms the booking named in the session
// metadata and records the confirmation in the event log, both in one
// transaction, then notifies the guest. Sessions that are unpaid or carry
// no usable booking id are acknowledged without changes. A returned error
// means the event should be retried by Stripe.
//
// Re-delivered events confirm again and append another event row.
func (s *PaymentWebhookService) HandleCheckoutCompleted(ctx context.Context, sess *stripe.CheckoutSession) error {
	log := utils.Logger.WithField("sessionID", sess.ID)

	if string(sess.PaymentStatus) != constants.PaymentStatusPaid {
		log.WithField("paymentStatus", sess.PaymentStatus).Info("Checkout completed without payment; ignoring")
		return nil
	}
	rawID := sess.Metadata[constants.StripeMetadataBookingID]
	if rawID == "" {
		log.Error("checkout.session.completed missing metadata.bookingId")
		return nil
	}
	bookingID, err := uuid.Parse(rawID)
	if err != nil {
		log.WithField("bookingId", rawID).Error("checkout.session.completed carries a malformed bookingId")
		return nil
	}

	var paymentIntentID *string
	if sess.PaymentIntent != nil && sess.PaymentIntent.ID != "" {
		paymentIntentID = utils.Ptr(sess.PaymentIntent.ID)
	}

	err = s.store.RunInTx(ctx, func(tx repositories.Store) error {
		booking, err := tx.Bookings().LockByID(ctx, bookingID)
		if err != nil {
			return err
		}
		if booking == nil {
			return errBookingGone
		}
		if err := tx.Bookings().MarkConfirmed(ctx, booking.ID, sess.ID, paymentIntentID); err != nil {
			return err
		}
		return appendEvent(ctx, tx, models.EntityBooking, booking.ID, models.EventBookingConfirmed, "",
			map[string]any{
				"stripeSessionId": sess.ID,
				"amountTotal":     sess.AmountTotal,
				"currency":        sess.Currency,
			})
	})
	if errors.Is(err, errBookingGone) {
		log.WithField("bookingID", bookingID).Error("Paid checkout references an unknown booking")
		return nil
	}
	if err != nil {
		log.WithError(err).Error("Failed to confirm booking")
		return storageFailure(constants.MsgWebhookFulfilment, err)
	}

	log.WithFields(logrus.Fields{"bookingID": bookingID, "amountTotal": sess.AmountTotal}).Info("Booking confirmed")
	if s.notifier != nil {
		s.notifier.SendBookingConfirmation(ctx, bookingID)
	}
	return nil
}
