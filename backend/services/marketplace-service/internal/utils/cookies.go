package utils

import (
	"fmt"
	"net/http"
	"time"

	"github.com/staynest/mono-repo/backend/shared/go-middleware"
	shared_utils "github.com/staynest/mono-repo/backend/shared/go-utils"
)

// SetAccessCookie writes the session cookie plus the security headers every
// token-bearing response carries. With sameSiteHighSecurity off the cookie
// is SameSite=None and partitioned so cross-site frontends keep working.
func SetAccessCookie(w http.ResponseWriter, token string, ttl time.Duration, sameSiteHighSecurity bool) {
	if token == "" {
		return
	}
	sameSite, partitioned := cookiePolicy(sameSiteHighSecurity)
	maxAge := int(ttl.Seconds())
	expires := time.Now().Add(ttl).UTC().Format(http.TimeFormat)

	shared_utils.Logger.Debugf("[cookies] SetAccessCookie: sameSite=%s, partitioned=%t", sameSite, partitioned)
	w.Header().Add("Set-Cookie",
		fmt.Sprintf("%s=%s; Path=/; Max-Age=%d; Expires=%s; SameSite=%s; Secure; HttpOnly; Priority=High%s",
			middleware.AccessTokenCookieName, token, maxAge, expires, sameSite, partitionAttr(partitioned)))

	addSecurityHeaders(w)
}

// ClearAccessCookie expires the session cookie.
func ClearAccessCookie(w http.ResponseWriter, sameSiteHighSecurity bool) {
	sameSite, partitioned := cookiePolicy(sameSiteHighSecurity)
	expired := time.Now().Add(-1 * time.Hour).UTC().Format(http.TimeFormat)

	w.Header().Add("Set-Cookie",
		fmt.Sprintf("%s=; Path=/; Expires=%s; Max-Age=0; SameSite=%s; Secure; HttpOnly; Priority=High%s",
			middleware.AccessTokenCookieName, expired, sameSite, partitionAttr(partitioned)))

	addSecurityHeaders(w)
}

func cookiePolicy(highSecurity bool) (sameSite string, partitioned bool) {
	if highSecurity {
		return "Lax", false
	}
	return "None", true
}

func partitionAttr(on bool) string {
	if on {
		return "; Partitioned"
	}
	return ""
}

func addSecurityHeaders(w http.ResponseWriter) {
	w.Header().Set("Strict-Transport-Security", "max-age=63072000; includeSubDomains; preload")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")

	w.Header().Set("Content-Security-Policy", "default-src 'self'; object-src 'none'; base-uri 'none'; frame-ancestors 'none'")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("X-Frame-Options", "DENY")

	w.Header().Set("Cross-Origin-Opener-Policy", "same-origin")
	w.Header().Set("Cross-Origin-Resource-Policy", "same-site")

	w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
	w.Header().Set("Permissions-Policy", "geolocation=(), camera=(), microphone=(), interest-cohort=()")
}
