package utils

const (
	OrganizationName                      = "Staynest"
	CORSLowSecurityAllowedOriginLocalhost = "http://localhost:*"
	DefaultSenderEmail                    = "no-reply@staynest.dev"

	// MaxPhotoUploadBytes is the aggregate ceiling for one batch of uploaded photos.
	MaxPhotoUploadBytes = 4 * 1024 * 1024
)
