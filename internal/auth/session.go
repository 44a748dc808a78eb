package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the session cookie carrying the signed token.
const CookieName = "session"

var ErrInvalidToken = errors.New("invalid session token")

type contextKey struct{}

// Claims carries the authenticated user's email alongside the registered
// claims.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// Sessions issues and validates HS256-signed session tokens. The store has
// no knowledge of sessions; the token is the only session state.
type Sessions struct {
	secret []byte
	ttl    time.Duration
}

func NewSessions(secret []byte, ttl time.Duration) *Sessions {
	return &Sessions{secret: secret, ttl: ttl}
}

// IssueToken signs a token identifying the given email.
func (s *Sessions) IssueToken(email string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		Email: email,
	})
	return token.SignedString(s.secret)
}

// EmailFromToken validates the token and returns the email it identifies.
func (s *Sessions) EmailFromToken(tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.Email == "" {
		return "", ErrInvalidToken
	}
	return claims.Email, nil
}

// SetCookie attaches a session cookie for email to the response.
func (s *Sessions) SetCookie(w http.ResponseWriter, email string) error {
	token, err := s.IssueToken(email)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(s.ttl),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// ClearCookie expires the session cookie.
func (s *Sessions) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Middleware rejects requests without a valid session cookie and stores the
// authenticated email in the request context.
func (s *Sessions) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(CookieName)
		if err != nil {
			http.Error(w, "authentication required", http.StatusUnauthorized)
			return
		}
		email, err := s.EmailFromToken(cookie.Value)
		if err != nil {
			http.Error(w, "authentication required", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithEmail(r.Context(), email)))
	})
}

// WithEmail returns a context carrying the authenticated email.
func WithEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, contextKey{}, email)
}

// EmailFromContext returns the authenticated email, or "" when the request
// is anonymous.
func EmailFromContext(ctx context.Context) string {
	email, _ := ctx.Value(contextKey{}).(string)
	return email
}
