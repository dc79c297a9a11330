package repositories

import (
	"errors"
	"net"
	"strings"

	"github.com/jackc/pgconn"
)

const pgUniqueViolation = "23505"

// IsConnectivityError matches failures that mean the database could not be
// reached at all, as opposed to a query that ran and failed.
func IsConnectivityError(err error) bool {
	if err == nil {
		return false
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	if pgconn.Timeout(err) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// Class 08: connection exception; 57P01..57P03: admin shutdown / cannot connect now.
		return strings.HasPrefix(pgErr.Code, "08") || strings.HasPrefix(pgErr.Code, "57P0")
	}
	return false
}

// IsUniqueViolation reports a unique-constraint failure and the constraint name.
func IsUniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return pgErr.ConstraintName, true
	}
	return "", false
}

// Constraint names from the schema migrations.
const (
	ConstraintUsersEmail             = "users_email_key"
	ConstraintListingsSlug           = "listings_slug_key"
	ConstraintListingsProperty       = "listings_property_id_key"
	ConstraintApplicationsFreelancer = "freelancer_applications_project_freelancer_key"
	ConstraintProfilesUser           = "freelancer_profiles_user_id_key"
)
