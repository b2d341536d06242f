package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const (
	testKey    = "0123456789abcdef-test-key"
	testCookie = "mcq_session"
)

func newSessionRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SessionMiddleware(testKey, testCookie, time.Hour, zap.NewNop()))
	r.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, SessionID(c))
	})
	return r
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range w.Result().Cookies() {
		if ck.Name == testCookie {
			return ck
		}
	}
	t.Fatalf("cookie %s not set", testCookie)
	return nil
}

func TestSessionMiddleware_IssuesAndReusesCookie(t *testing.T) {
	t.Parallel()
	r := newSessionRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	require.Equal(t, http.StatusOK, w.Code)
	id := w.Body.String()
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	ck := sessionCookie(t, w)
	assert.True(t, ck.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, ck.SameSite)
	assert.Equal(t, 3600, ck.MaxAge)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(ck)
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)
	assert.Equal(t, id, w2.Body.String())
	assert.NotEmpty(t, sessionCookie(t, w2).Value)
}

func TestSessionMiddleware_RejectsBadCookies(t *testing.T) {
	t.Parallel()

	id := uuid.NewString()
	now := time.Now()
	expired, err := issueSessionToken(id, []byte(testKey), time.Hour, now.Add(-2*time.Hour))
	require.NoError(t, err)
	foreign, err := issueSessionToken(id, []byte("another-signing-key-entirely"), time.Hour, now)
	require.NoError(t, err)
	notUUID, err := issueSessionToken("admin", []byte(testKey), time.Hour, now)
	require.NoError(t, err)
	wrongIssuer, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   id,
		Issuer:    "someone-else",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}).SignedString([]byte(testKey))
	require.NoError(t, err)

	tests := map[string]string{
		"expired":      expired,
		"foreign key":  foreign,
		"not a uuid":   notUUID,
		"wrong issuer": wrongIssuer,
		"garbage":      "not-a-jwt",
	}
	for name, value := range tests {
		name, value := name, value
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			r := newSessionRouter(t)
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			req.AddCookie(&http.Cookie{Name: testCookie, Value: value})
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			assert.NotEqual(t, id, w.Body.String())
			_, err := uuid.Parse(w.Body.String())
			assert.NoError(t, err)
		})
	}
}

func TestParseSessionToken(t *testing.T) {
	t.Parallel()

	id := uuid.NewString()
	token, err := issueSessionToken(id, []byte(testKey), time.Minute, time.Now())
	require.NoError(t, err)

	got, err := parseSessionToken(token, []byte(testKey))
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = parseSessionToken(token, []byte("wrong-key-wrong-key"))
	require.ErrorIs(t, err, jwt.ErrSignatureInvalid)
	assert.Equal(t, "invalid signature", tokenErrorReason(err))
}

func TestLogger(t *testing.T) {
	t.Parallel()
	gin.SetMode(gin.TestMode)

	core, logs := observer.New(zap.DebugLevel)
	r := gin.New()
	r.Use(Logger(zap.New(core)))
	r.Use(SessionMiddleware(testKey, testCookie, time.Hour, zap.NewNop()))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	entries := logs.All()
	require.Len(t, entries, 2)

	first := entries[0].ContextMap()
	assert.Equal(t, "/ok", first["path"])
	assert.EqualValues(t, http.StatusNoContent, first["status"])
	assert.NotEmpty(t, first["session_id"])
	assert.Equal(t, zap.InfoLevel, entries[0].Level)

	assert.Equal(t, zap.WarnLevel, entries[1].Level)
	assert.EqualValues(t, http.StatusNotFound, entries[1].ContextMap()["status"])
}
