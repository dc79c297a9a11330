package testhelpers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"testing"

	"github.com/staynest/mono-repo/backend/shared/go-middleware"
	"github.com/stretchr/testify/require"
)

// TestClientIP is the forwarded address every test request claims, so
// tokens minted during a test bind to a stable IP.
const TestClientIP = "203.0.113.7"

// BuildRequest prepares a request against the service. A non-empty token
// is sent as the session cookie.
func (h *TestHelper) BuildRequest(method, reqURL, token string, body []byte) *http.Request {
	return BuildRequest(h.T, method, reqURL, token, body)
}

// BuildRequest is the package-level form used by handler tests that run
// against httptest servers.
func BuildRequest(t *testing.T, method, reqURL, token string, body []byte) *http.Request {
	req, err := http.NewRequest(method, reqURL, bytes.NewReader(body))
	require.NoError(t, err)

	req.Header.Set("X-Forwarded-For", TestClientIP)
	if token != "" {
		req.AddCookie(&http.Cookie{
			Name:  middleware.AccessTokenCookieName,
			Value: token,
			Path:  "/",
		})
	}

	if (method == http.MethodPost || method == http.MethodPut || method == http.MethodPatch) &&
		!strings.Contains(req.Header.Get("Content-Type"), "multipart/form-data") &&
		len(body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

// NewHTTPClient creates an HTTP client with a cookie jar for session management.
func (h *TestHelper) NewHTTPClient() *http.Client {
	jar, err := cookiejar.New(nil)
	require.NoError(h.T, err)
	return &http.Client{Jar: jar}
}

// DoRequest performs an HTTP request and asserts that no network-level error occurred.
func (h *TestHelper) DoRequest(req *http.Request, client *http.Client) *http.Response {
	if client.Jar != nil {
		client.Jar.SetCookies(req.URL, req.Cookies())
	}
	resp, err := client.Do(req)
	require.NoError(h.T, err, "HTTP request failed")
	return resp
}

// ReadBody reads the response body and restores it so it can be read again.
func (h *TestHelper) ReadBody(resp *http.Response) string {
	if resp == nil || resp.Body == nil {
		return "<nil response or body>"
	}
	bodyBytes, err := io.ReadAll(resp.Body)
	resp.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
	require.NoError(h.T, err, "Failed to read response body")
	return string(bodyBytes)
}

// DecodeJSON unmarshals a response body into T.
func DecodeJSON[T any](t *testing.T, r io.Reader) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(r).Decode(&out))
	return out
}

// LoginOperator signs in with the seeded operator account and returns
// the session token.
func (h *TestHelper) LoginOperator(client *http.Client) string {
	require.NotEmpty(h.T, h.OperatorEmail, "OPERATOR_EMAIL is not configured")
	body, _ := json.Marshal(map[string]string{
		"email":    h.OperatorEmail,
		"password": h.OperatorPassword,
	})
	req := h.BuildRequest(http.MethodPost, h.BaseURL+"/api/v1/auth/login", "", body)
	resp := h.DoRequest(req, client)
	defer resp.Body.Close()
	require.Equal(h.T, http.StatusOK, resp.StatusCode, h.ReadBody(resp))

	for _, c := range resp.Cookies() {
		if c.Name == middleware.AccessTokenCookieName {
			return c.Value
		}
	}
	h.T.Fatalf("login response carried no %s cookie", middleware.AccessTokenCookieName)
	return ""
}
