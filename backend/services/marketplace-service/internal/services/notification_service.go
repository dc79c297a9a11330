package services

import (
	"context"
	"fmt"
	"html"

	"github.com/google/uuid"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"
	"github.com/staynest/mono-repo/backend/services/marketplace-service/internal/config"
	"github.com/staynest/mono-repo/backend/services/marketplace-service/internal/constants"
	internal_utils "github.com/staynest/mono-repo/backend/services/marketplace-service/internal/utils"
	"github.com/staynest/mono-repo/backend/shared/go-models"
	"github.com/staynest/mono-repo/backend/shared/go-repositories"
	"github.com/staynest/mono-repo/backend/shared/go-utils"
)

const bookingConfirmedHTML = `<!DOCTYPE html>
<html>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif; color: #333;">
  <h2>Your stay is confirmed</h2>
  <p>%s</p>
  <p>Instructions and access details will be sent before check-in.</p>
</body>
</html>`

// BookingNotifier is told about every booking the payment webhook confirms.
type BookingNotifier interface {
	SendBookingConfirmation(ctx context.Context, bookingID uuid.UUID)
}

// SendFunc delivers one message. Tests swap it for a recorder.
type SendFunc func(ctx context.Context, msg *mail.SGMailV3) error

type NotificationService struct {
	store    repositories.Store
	fromName string
	from     string
	sandbox  bool
	send     SendFunc
}

// NewNotificationService sends through SendGrid when an API key is
// configured and only logs the message otherwise.
func NewNotificationService(cfg *config.Config, store repositories.Store) *NotificationService {
	svc := &NotificationService{
		store:    store,
		fromName: cfg.OrganizationName,
		from:     cfg.LDFlag_SendgridFromEmail,
		sandbox:  cfg.LDFlag_SendgridSandboxMode,
	}
	if cfg.SendgridAPIKey != "" {
		client := sendgrid.NewSendClient(cfg.SendgridAPIKey)
		svc.send = func(ctx context.Context, msg *mail.SGMailV3) error {
			resp, err := client.SendWithContext(ctx, msg)
			if err != nil {
				return err
			}
			if resp.StatusCode >= 300 {
				return fmt.Errorf("%w: sendgrid status %d: %s", utils.ErrExternalServiceFailure, resp.StatusCode, resp.Body)
			}
			return nil
		}
	}
	return svc
}

// SendBookingConfirmation emails the guest of a CONFIRMED booking.
// Failures are logged and never returned.
func (s *NotificationService) SendBookingConfirmation(ctx context.Context, bookingID uuid.UUID) {
	log := utils.Logger.WithField("bookingID", bookingID)

	booking, err := s.store.Bookings().GetByID(ctx, bookingID)
	if err != nil {
		log.WithError(err).Error("Failed to load booking for confirmation email")
		return
	}
	if booking == nil || booking.Status != models.BookingStatusConfirmed {
		log.Warn("Skipping confirmation email for missing or unconfirmed booking")
		return
	}
	listing, err := s.store.Listings().GetByID(ctx, booking.ListingID)
	if err != nil || listing == nil {
		log.WithError(err).Error("Failed to load listing for confirmation email")
		return
	}

	subject, body := BookingConfirmationText(listing.Title, booking)
	log.WithFields(logrus.Fields{"to": booking.GuestEmail, "subject": subject}).Info(body)

	if s.send == nil {
		return
	}

	msg := mail.NewSingleEmail(
		mail.NewEmail(s.fromName, s.from),
		subject,
		mail.NewEmail("", booking.GuestEmail),
		body,
		fmt.Sprintf(bookingConfirmedHTML, html.EscapeString(body)),
	)
	if s.sandbox {
		ms := mail.NewMailSettings()
		ms.SetSandboxMode(mail.NewSetting(true))
		msg.MailSettings = ms
	}

	sendCtx, cancel := context.WithTimeout(ctx, constants.EmailSendTimeout)
	defer cancel()
	if err := s.send(sendCtx, msg); err != nil {
		log.WithError(err).Error("Failed to send booking confirmation email")
	}
}

// BookingConfirmationText renders the subject and plain-text body.
func BookingConfirmationText(listingTitle string, b *models.Booking) (subject, body string) {
	subject = fmt.Sprintf(constants.BookingConfirmedSubject, listingTitle)
	body = fmt.Sprintf(constants.BookingConfirmedBody,
		listingTitle,
		b.CheckIn.UTC().Format(constants.DateLayout),
		b.CheckOut.UTC().Format(constants.DateLayout),
		internal_utils.FormatMinorUnits(b.TotalAmount),
	)
	return subject, body
}
