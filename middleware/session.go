package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionIDKey is the gin context key holding the browser session id.
const SessionIDKey = "session_id"

const sessionIssuer = "mcq-server"

// sessionClaims carries the session id in the standard subject claim.
type sessionClaims struct {
	jwt.RegisteredClaims
}

// SessionMiddleware binds each browser to an exam session through a signed cookie.
// A missing, expired or tampered cookie starts a new session id. The cookie is
// re-issued on every request so its expiry slides with activity.
func SessionMiddleware(signingKey, cookieName string, ttl time.Duration, log *zap.Logger) gin.HandlerFunc {
	key := []byte(signingKey)
	return func(c *gin.Context) {
		id := ""
		if raw, err := c.Cookie(cookieName); err == nil && raw != "" {
			parsed, err := parseSessionToken(raw, key)
			if err != nil {
				log.Debug("discarding session cookie", zap.String("reason", tokenErrorReason(err)), zap.Error(err))
			} else {
				id = parsed
			}
		}
		if id == "" {
			id = uuid.NewString()
		}

		token, err := issueSessionToken(id, key, ttl, time.Now())
		if err != nil {
			log.Error("failed to sign session cookie", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to start session"})
			return
		}
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cookieName, token, int(ttl.Seconds()), "/", "", false, true)

		c.Set(SessionIDKey, id)
		c.Next()
	}
}

// SessionID returns the id set by SessionMiddleware.
func SessionID(c *gin.Context) string {
	return c.GetString(SessionIDKey)
}

func issueSessionToken(id string, key []byte, ttl time.Duration, now time.Time) (string, error) {
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id,
			Issuer:    sessionIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
}

func parseSessionToken(raw string, key []byte) (string, error) {
	token, err := jwt.ParseWithClaims(raw, &sessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return key, nil
	}, jwt.WithIssuer(sessionIssuer), jwt.WithExpirationRequired())
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid session claims")
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return "", fmt.Errorf("invalid session subject: %w", err)
	}
	return claims.Subject, nil
}

func tokenErrorReason(err error) string {
	switch {
	case errors.Is(err, jwt.ErrSignatureInvalid):
		return "invalid signature"
	case errors.Is(err, jwt.ErrTokenExpired):
		return "expired"
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return "not active yet"
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return "invalid issuer"
	default:
		return "malformed"
	}
}
