package utils

import (
	"fmt"
	"net/url"
	"strings"
)

// IsolatedRoleName is the per-run Postgres role CI provisions, e.g.
// "gh-runner-7-42".
func IsolatedRoleName(runnerID, runNumber string) string {
	return strings.ToLower(runnerID + "-" + runNumber)
}

// WithIsolatedRole rewrites a postgres:// URL to log in as the per-run
// role, keeping host, password and query intact. The role's search_path
// points at its own schema, so parallel runs never share tables.
func WithIsolatedRole(baseURL, runnerID, runNumber string) (string, error) {
	if runnerID == "" || runNumber == "" {
		return "", fmt.Errorf("isolated schema needs both runner id and run number (got %q, %q)", runnerID, runNumber)
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid DB URL: %w", err)
	}
	if u.Scheme != "postgres" && u.Scheme != "postgresql" {
		return "", fmt.Errorf("invalid DB URL scheme %q", u.Scheme)
	}

	password, _ := u.User.Password()
	u.User = url.UserPassword(IsolatedRoleName(runnerID, runNumber), password)
	return u.String(), nil
}
