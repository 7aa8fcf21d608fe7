package session

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"warungku/kv"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const CookieName = "wk_session"

// Claims bind a browser to its server-side session bucket.
type Claims struct {
	SessionID string `json:"sid"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// Manager issues and resolves gateway sessions. The signed cookie carries
// only the session id; the backend bearer credential, acknowledged flags and
// the guest-cart bucket live in the injected store under that id.
type Manager struct {
	Store  kv.Store
	Secret []byte
}

func NewManager(store kv.Store, secret []byte) *Manager {
	return &Manager{Store: store, Secret: secret}
}

// Issue creates a fresh session holding the backend token and sets the
// signed cookie on the response.
func (m *Manager) Issue(ctx context.Context, w http.ResponseWriter, username, role, token string) (*Session, error) {
	s := &Session{
		ID:       uuid.NewString(),
		Username: username,
		Role:     role,
		store:    m.Store,
	}
	if err := s.SetCredential(ctx, token); err != nil {
		return nil, err
	}

	claims := Claims{
		SessionID: s.ID,
		Username:  username,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(7 * 24 * time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.Secret)
	if err != nil {
		return nil, fmt.Errorf("sign session cookie: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return s, nil
}

// FromRequest resolves the session cookie. A missing or invalid cookie means
// no session; expiry is otherwise only discovered when a backend call fails.
func (m *Manager) FromRequest(r *http.Request) (*Session, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return nil, false
	}
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(c.Value, claims, func(t *jwt.Token) (any, error) {
		return m.Secret, nil
	})
	if err != nil || !tok.Valid || claims.SessionID == "" {
		return nil, false
	}
	return &Session{
		ID:       claims.SessionID,
		Username: claims.Username,
		Role:     claims.Role,
		store:    m.Store,
	}, true
}

// Destroy drops the credential and guest cart and expires the cookie.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, s *Session) {
	if s != nil {
		s.ClearCredential(ctx)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// Session is one browser's durable client-local bucket.
type Session struct {
	ID       string
	Username string
	Role     string
	store    kv.Store
}

// NewForTest builds a session over the given store without cookie plumbing.
func NewForTest(store kv.Store, id, username, role string) *Session {
	return &Session{ID: id, Username: username, Role: role, store: store}
}

func (s *Session) key(suffix string) string {
	return "sess:" + s.ID + ":" + suffix
}

func (s *Session) Credential(ctx context.Context) (string, bool) {
	return s.store.Get(ctx, s.key("token"))
}

func (s *Session) HasCredential(ctx context.Context) bool {
	_, ok := s.Credential(ctx)
	return ok
}

func (s *Session) SetCredential(ctx context.Context, token string) error {
	return s.store.Set(ctx, s.key("token"), token)
}

// ClearCredential removes the bearer token together with any guest-cart
// remnants, per the forced-logout policy.
func (s *Session) ClearCredential(ctx context.Context) {
	s.store.Del(ctx, s.key("token"))
	s.ClearGuestCart(ctx)
}

func (s *Session) ClearGuestCart(ctx context.Context) {
	s.store.Del(ctx, s.key("guestCart"))
}

func (s *Session) IsAdmin() bool {
	return s.Role == "ADMIN"
}

// Acknowledged reports whether the customer has dismissed the delivered
// notice for this order. The flag is cosmetic and never synced upstream.
func (s *Session) Acknowledged(ctx context.Context, orderID int) bool {
	v, ok := s.store.Get(ctx, s.ackKey(orderID))
	return ok && v == "true"
}

func (s *Session) Acknowledge(ctx context.Context, orderID int) error {
	return s.store.Set(ctx, s.ackKey(orderID), "true")
}

func (s *Session) ClearAcknowledged(ctx context.Context, orderID int) {
	s.store.Del(ctx, s.ackKey(orderID))
}

func (s *Session) ackKey(orderID int) string {
	return s.key(fmt.Sprintf("order_%d_acknowledged", orderID))
}
