package security

import (
	"net"
	"net/http"
	"strings"
	"time"
)

// SessionCookieName is the fixed name of the login session cookie.
const SessionCookieName = "session_id"

// SessionCookie builds the cookie set on a successful login. The Expires
// attribute is a client-side hint only; server-side expiry is enforced
// independently against the session record.
func SessionCookie(r *http.Request, sessionID string, ttl time.Duration) *http.Cookie {
	host := r.Host
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}

	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		Secure:   isHTTPS(r),
		// Leading dot enables subdomain sharing.
		Domain:  "." + host,
		Expires: time.Now().UTC().Add(ttl),
	}
}

// SessionIDFromRequest extracts the session cookie value, or "" if the
// cookie is absent.
func SessionIDFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func isHTTPS(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	return strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}
