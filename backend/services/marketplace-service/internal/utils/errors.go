package utils

import "errors"

/*
Sentinel errors for marketplace domain logic. Services translate them
into utils.AppError before they reach a controller.
*/
var (
	ErrProjectNotOpen      = errors.New("project_not_open")
	ErrAlreadyApplied      = errors.New("already_applied")
	ErrApplicationMismatch = errors.New("application_not_in_project")
	ErrListingMissing      = errors.New("listing_missing")
	ErrListingNotBookable  = errors.New("listing_not_bookable")
	ErrInvalidDateRange    = errors.New("invalid_date_range")
	ErrPhotosTooLarge      = errors.New("photos_too_large")
	ErrNoPhotos            = errors.New("no_photos")
	ErrSlugTaken           = errors.New("slug_taken")
	ErrPhotoNotFound       = errors.New("photo_not_found")
	ErrInvalidPhotoName    = errors.New("invalid_photo_name")
)

// Error codes specific to marketplace-service only.
const (
	ErrCodeProjectNotOpen     = "project_not_open"
	ErrCodeAlreadyApplied     = "already_applied"
	ErrCodeSlugTaken          = "slug_taken"
	ErrCodeEmailTaken         = "email_taken"
	ErrCodeListingNotBookable = "listing_not_bookable"
	ErrCodeListingMissing     = "listing_missing"
)
