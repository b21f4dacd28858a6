package handlers

import (
	"net/http"

	"github.com/google/uuid"
)

// VisitorCookie names the cookie that scopes favorites to one browser.
const VisitorCookie = "visitor_id"

const visitorMaxAge = 365 * 24 * 60 * 60

// VisitorID returns the visitor id carried by r, issuing a new cookie when
// the request has none or carries a malformed one.
func VisitorID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(VisitorCookie); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			return id.String()
		}
	}

	id := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     VisitorCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   visitorMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
