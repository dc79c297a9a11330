package utils

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	shared_utils "github.com/staynest/mono-repo/backend/shared/go-utils"
)

const defaultPhotoExt = ".jpg"

// PhotoExt keeps the upload's extension, falling back to .jpg.
func PhotoExt(originalName string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(originalName)))
	if ext == "" || ext == "." {
		return defaultPhotoExt
	}
	return ext
}

// IntakePhotoPrefix is shared by every photo of one owner submission.
func IntakePhotoPrefix(now time.Time) string {
	return fmt.Sprintf("p-%d-%s", now.UnixMilli(), shared_utils.RandomString(7))
}

// IntakePhotoName is p-<unixms>-<rand>-<i><ext>.
func IntakePhotoName(prefix string, i int, originalName string) string {
	return fmt.Sprintf("%s-%d%s", prefix, i, PhotoExt(originalName))
}

// GuestPhotoName is listing-<listingId>-guest-<i><ext>.
func GuestPhotoName(listingID uuid.UUID, i int, originalName string) string {
	return fmt.Sprintf("listing-%s-guest-%d%s", listingID, i, PhotoExt(originalName))
}
