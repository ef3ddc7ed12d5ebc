package security

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSessionCookieAttributes(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "http://example.com:8080/login", nil)

	before := time.Now().UTC()
	cookie := SessionCookie(r, "abc-123", 90*24*time.Hour)

	require.Equal(t, "session_id", cookie.Name)
	require.Equal(t, "abc-123", cookie.Value)
	require.Equal(t, "/", cookie.Path)
	require.True(t, cookie.HttpOnly)
	require.False(t, cookie.Secure, "plain http must not set Secure")
	require.Equal(t, ".example.com", cookie.Domain, "port must be stripped, leading dot kept")
	require.WithinDuration(t, before.Add(90*24*time.Hour), cookie.Expires, 2*time.Second)
}

func TestSessionCookieSecureOverTLS(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "https://example.com/login", nil)
	require.True(t, SessionCookie(r, "x", time.Hour).Secure)
}

func TestSessionCookieSecureBehindProxy(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "http://example.com/login", nil)
	r.Header.Set("X-Forwarded-Proto", "https")
	require.True(t, SessionCookie(r, "x", time.Hour).Secure)
}

func TestSessionIDFromRequest(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "http://example.com/users", nil)
	require.Equal(t, "", SessionIDFromRequest(r))

	r.AddCookie(&http.Cookie{Name: "unrelated", Value: "nope"})
	require.Equal(t, "", SessionIDFromRequest(r))

	r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "abc-123"})
	require.Equal(t, "abc-123", SessionIDFromRequest(r))
}
