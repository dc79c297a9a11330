package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestNightsAndTotal(t *testing.T) {
	in, err := ParseStayDate("2025-07-01")
	require.NoError(t, err)
	out, err := ParseStayDate("2025-07-04")
	require.NoError(t, err)

	n, err := Nights(in, out)
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.Equal(t, int64(38000), TotalMinorUnits(n, 120, 20))
}

func TestNightsRoundsPartialDaysUp(t *testing.T) {
	in := time.Date(2025, 7, 1, 15, 0, 0, 0, time.UTC)
	out := time.Date(2025, 7, 3, 11, 0, 0, 0, time.UTC)
	n, err := Nights(in, out)
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestNightsRejectsEmptyOrReversedRange(t *testing.T) {
	d := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	_, err := Nights(d, d)
	require.ErrorIs(t, err, ErrInvalidDateRange)
	_, err = Nights(d, d.Add(-24*time.Hour))
	require.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestParseStayDateRejectsGarbage(t *testing.T) {
	_, err := ParseStayDate("07/01/2025")
	require.Error(t, err)
}

func TestTotalMinorUnitsTable(t *testing.T) {
	cases := []struct {
		nights, rate, fee int
		want              int64
	}{
		{1, 0, 0, 0},
		{1, 100, 0, 10000},
		{7, 95, 45, 71000},
		{30, 250, 150, 765000},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, TotalMinorUnits(tc.nights, tc.rate, tc.fee))
	}
}

func TestFormatMinorUnits(t *testing.T) {
	require.Equal(t, "380.00", FormatMinorUnits(38000))
	require.Equal(t, "0.05", FormatMinorUnits(5))
	require.Equal(t, "12.34", FormatMinorUnits(1234))
}

func TestNormalizeSlug(t *testing.T) {
	require.Equal(t, "seaside-loft", NormalizeSlug("Seaside Loft"))
	require.Equal(t, "a-b-c-1", NormalizeSlug("a_b.c-1"))
	require.Equal(t, "caf--", NormalizeSlug("Café!"))
	require.Equal(t, "", NormalizeSlug("   "))
}

func TestPhotoNames(t *testing.T) {
	require.Equal(t, ".png", PhotoExt("IMG.PNG"))
	require.Equal(t, ".jpg", PhotoExt("noext"))

	prefix := IntakePhotoPrefix(time.UnixMilli(1700000000000))
	require.True(t, strings.HasPrefix(prefix, "p-1700000000000-"))
	require.Equal(t, prefix+"-2.webp", IntakePhotoName(prefix, 2, "x.webp"))

	id := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	require.Equal(t, "listing-11111111-1111-1111-1111-111111111111-guest-0.jpg", GuestPhotoName(id, 0, "a"))
}
