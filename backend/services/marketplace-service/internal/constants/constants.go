package constants

import "time"

// Checkout
const (
	Currency                = "usd"
	StripeMetadataBookingID = "bookingId"
	CheckoutSessionEvent    = "checkout.session.completed"
	PaymentStatusPaid       = "paid"
	BookingSuccessPath      = "/booking/success"
	BookingCancelPath       = "/booking/canceled"
	StripeSignatureHeader   = "Stripe-Signature"
	MaxWebhookBodyBytes     = 65536
	DateLayout              = "2006-01-02"
)

// Intake & listing builder
const (
	OwnerPhotoField    = "photos"
	GuestPhotoField    = "guestPhotos"
	MaxMultipartMemory = 8 << 20
	// Photos plus form fields; the photo ceiling itself is enforced per batch.
	MaxMultipartBodyBytes  = 5 << 20
	DefaultListingMaxGuest = 1
)

// Email
const (
	BookingConfirmedSubject = "Booking confirmed: %s"
	BookingConfirmedBody    = "Booking confirmed for %s. Check-in: %s, Check-out: %s. Total: $%s."
	EmailSendTimeout        = 10 * time.Second
)

// Photo storage
const (
	PhotoURLPrefix    = "/api/v1/photos/"
	GridFSBucketName  = "photos"
	PhotoContentType  = "application/octet-stream"
	PhotoCacheControl = "public, max-age=31536000, immutable"
)

// User-facing messages
const (
	MsgDatabaseUnavailable  = "Database is unavailable. Please try again later."
	MsgSubmitFailed         = "Failed to submit. Please try again."
	MsgPhotoRequired        = "Please upload at least one photo."
	MsgPhotosTooLarge       = "Total photo size must be under 4MB. Please use fewer or smaller images."
	MsgProjectNotOpen       = "Project is not open for applications."
	MsgAlreadyApplied       = "You have already applied to this project."
	MsgCheckoutOrder        = "Check-out must be after check-in."
	MsgNotFound             = "Not found"
	MsgInvalidCredentials   = "Invalid email or password"
	MsgEmailTaken           = "An account with this email already exists"
	MsgSlugTaken            = "A listing with this slug already exists"
	MsgListingNotBookable   = "Listing is not available for booking"
	MsgTooManyGuests        = "Guest count exceeds the listing maximum"
	MsgListingRequired      = "Save a listing for this property before publishing"
	MsgInvalidStatus        = "Unknown project status"
	MsgCheckoutFailed       = "Failed to start checkout. Please try again."
	MsgWebhookNotConfigured = "Webhook secret not configured"
	MsgWebhookSignature     = "Invalid signature"
	MsgWebhookFulfilment    = "Failed to process event"
	MsgPhotoStorageFailed   = "Failed to store photos. Please try again."
)
