package middleware

import (
	"context"
	"net/http"

	"warungku/globals"
	"warungku/session"
	"warungku/utils"

	"github.com/julienschmidt/httprouter"
)

// Auth wraps handles with gateway session resolution. The backend stays the
// authority on whether a credential is still good; this layer only checks
// that a session cookie exists and is validly signed.
type Auth struct {
	Sessions *session.Manager
}

func NewAuth(m *session.Manager) *Auth {
	return &Auth{Sessions: m}
}

// RequireSession rejects callers without a session, answering with the login
// URL that carries them back to their original target afterwards.
func (a *Auth) RequireSession(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		s, ok := a.Sessions.FromRequest(r)
		if !ok || !s.HasCredential(r.Context()) {
			utils.RespondWithJSON(w, http.StatusUnauthorized, utils.M{
				"error":    "login required",
				"redirect": utils.LoginRedirect(r.URL.RequestURI()),
			})
			return
		}
		ctx := context.WithValue(r.Context(), globals.SessionKey, s)
		next(w, r.WithContext(ctx), ps)
	}
}

// OptionalSession attaches the session when one exists and proceeds either
// way. Public catalog browsing uses this.
func (a *Auth) OptionalSession(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if s, ok := a.Sessions.FromRequest(r); ok {
			r = r.WithContext(context.WithValue(r.Context(), globals.SessionKey, s))
		}
		next(w, r, ps)
	}
}

// RequireAdmin gates the admin panel. Role comes from the session cookie; the
// backend re-checks it on every proxied call anyway.
func (a *Auth) RequireAdmin(next httprouter.Handle) httprouter.Handle {
	return a.RequireSession(func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		s, _ := SessionFrom(r.Context())
		if !s.IsAdmin() {
			utils.RespondWithError(w, http.StatusForbidden, "admin only")
			return
		}
		next(w, r, ps)
	})
}

// SessionFrom pulls the resolved session out of the request context.
func SessionFrom(ctx context.Context) (*session.Session, bool) {
	s, ok := ctx.Value(globals.SessionKey).(*session.Session)
	return s, ok
}

// ForceLogout handles an upstream 401/403: the stale credential and any
// guest-cart remnants are cleared before the caller is pointed at login.
func ForceLogout(w http.ResponseWriter, r *http.Request, s *session.Session) {
	if s != nil {
		s.ClearCredential(r.Context())
	}
	utils.RespondWithJSON(w, http.StatusUnauthorized, utils.M{
		"error":    "session expired",
		"redirect": utils.LoginRedirect(r.URL.RequestURI()),
	})
}
