package http

import (
	"net/http"
	"time"
)

// Cookie names for the two halves of a session. The browser never reads
// either; both are httpOnly and scoped to the whole site.
const (
	// SessionCookieName carries the short-lived access token.
	SessionCookieName = "at"

	// RefreshCookieName carries the rotating refresh token that renews the
	// access token when it expires, keeping the session alive for the full
	// cookie lifetime.
	RefreshCookieName = "rt"
)

type cookiePolicy struct {
	maxAge time.Duration
	secure bool
}

func (p cookiePolicy) set(w http.ResponseWriter, accessToken, refreshToken string) {
	http.SetCookie(w, p.cookie(SessionCookieName, accessToken, int(p.maxAge/time.Second)))
	http.SetCookie(w, p.cookie(RefreshCookieName, refreshToken, int(p.maxAge/time.Second)))
}

// clear drops both cookies. MaxAge -1 serializes as Max-Age=0, the
// immediate-removal form.
func (p cookiePolicy) clear(w http.ResponseWriter) {
	http.SetCookie(w, p.cookie(SessionCookieName, "", -1))
	http.SetCookie(w, p.cookie(RefreshCookieName, "", -1))
}

func (p cookiePolicy) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   p.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// sessionToken extracts the access token from the request cookie, if any.
func sessionToken(r *http.Request) string {
	return cookieValue(r, SessionCookieName)
}

// refreshToken extracts the refresh token from the request cookie, if any.
func refreshToken(r *http.Request) string {
	return cookieValue(r, RefreshCookieName)
}

func cookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}
