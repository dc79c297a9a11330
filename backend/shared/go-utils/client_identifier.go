package utils

import (
	"net"
	"net/http"
	"strings"
)

// ClientIP extracts the best client IP address from proxy headers or RemoteAddr.
// Session tokens are bound to this value.
func ClientIP(r *http.Request) string {
	forwardedFor := r.Header.Get("X-Forwarded-For")
	if forwardedFor != "" {
		for _, ip := range strings.Split(forwardedFor, ",") {
			cleanIP := strings.TrimSpace(ip)
			if isValidIP(cleanIP) {
				return cleanIP
			}
		}
	}

	cfConnectingIP := r.Header.Get("CF-Connecting-IP")
	if cfConnectingIP != "" && isValidIP(cfConnectingIP) {
		return cfConnectingIP
	}

	realIP := r.Header.Get("X-Real-IP")
	if realIP != "" && isValidIP(realIP) {
		return realIP
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && isValidIP(ip) {
		return ip
	}
	return ""
}

func isValidIP(ip string) bool {
	return net.ParseIP(ip) != nil
}
