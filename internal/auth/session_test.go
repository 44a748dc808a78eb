package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	s := NewSessions([]byte("test-secret"), time.Hour)

	token, err := s.IssueToken("a@x.com")
	require.NoError(t, err)

	email, err := s.EmailFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", email)
}

func TestTokenExpired(t *testing.T) {
	s := NewSessions([]byte("test-secret"), -time.Minute)

	token, err := s.IssueToken("a@x.com")
	require.NoError(t, err)

	_, err = s.EmailFromToken(token)
	assert.Error(t, err)
}

func TestTokenWrongSecret(t *testing.T) {
	s := NewSessions([]byte("test-secret"), time.Hour)
	other := NewSessions([]byte("other-secret"), time.Hour)

	token, err := s.IssueToken("a@x.com")
	require.NoError(t, err)

	_, err = other.EmailFromToken(token)
	assert.Error(t, err)
}

func TestMiddleware(t *testing.T) {
	s := NewSessions([]byte("test-secret"), time.Hour)

	var gotEmail string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotEmail = EmailFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	protected := s.Middleware(next)

	t.Run("no cookie", func(t *testing.T) {
		w := httptest.NewRecorder()
		protected.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: "garbage"})
		w := httptest.NewRecorder()
		protected.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid cookie", func(t *testing.T) {
		token, err := s.IssueToken("a@x.com")
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
		w := httptest.NewRecorder()
		protected.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "a@x.com", gotEmail)
	})
}

func TestCookieLifecycle(t *testing.T) {
	s := NewSessions([]byte("test-secret"), time.Hour)

	w := httptest.NewRecorder()
	require.NoError(t, s.SetCookie(w, "a@x.com"))
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.NotEmpty(t, cookies[0].Value)

	w = httptest.NewRecorder()
	s.ClearCookie(w)
	cookies = w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "", cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}
