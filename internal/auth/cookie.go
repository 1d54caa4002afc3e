package auth

import "net/http"

// CookieName is the session cookie carrying the signed token.
const CookieName = "access_token"

// CookieManager translates session tokens into browser cookies. The cookie is
// delivered cross-site, so SameSite is None; Secure follows the deployment
// environment.
type CookieManager struct {
	secure bool
}

func NewCookieManager(secure bool) *CookieManager {
	return &CookieManager{secure: secure}
}

func (m *CookieManager) Issue(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(TokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteNoneMode,
	})
}

// Clear issues an expired cookie with attributes matching Issue so browsers
// delete it unambiguously. Clearing is idempotent.
func (m *CookieManager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteNoneMode,
	})
}
