package utils

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/staynest/mono-repo/backend/services/marketplace-service/internal/constants"
)

// ParseStayDate reads a YYYY-MM-DD date as midnight UTC.
func ParseStayDate(s string) (time.Time, error) {
	return time.ParseInLocation(constants.DateLayout, strings.TrimSpace(s), time.UTC)
}

// Nights counts started days between check-in and check-out. The range
// must be strictly positive.
func Nights(checkIn, checkOut time.Time) (int, error) {
	if !checkOut.After(checkIn) {
		return 0, ErrInvalidDateRange
	}
	days := checkOut.Sub(checkIn).Hours() / 24
	return int(math.Ceil(days)), nil
}

// TotalMinorUnits is (nights*nightlyRate + cleaningFee) in cents. Rates are
// whole currency units.
func TotalMinorUnits(nights, nightlyRate, cleaningFee int) int64 {
	return (int64(nights)*int64(nightlyRate) + int64(cleaningFee)) * 100
}

// FormatMinorUnits renders cents as "123.45".
func FormatMinorUnits(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
