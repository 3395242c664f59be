package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/JimJafar/pension-tracker/internal/errors"
	"github.com/JimJafar/pension-tracker/internal/models"
)

const (
	// SessionCookieName is the cookie carrying the signed session token.
	SessionCookieName = "pension_session"

	// UserIDKey and UsernameKey are the gin context keys set for
	// authenticated requests.
	UserIDKey   = "userID"
	UsernameKey = "username"

	tokenIssuer = "pension-tracker"
)

// SessionClaims represents the claims in the session JWT
type SessionClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Sessions issues and verifies session tokens. Tokens are accepted from the
// session cookie or from an "Authorization: Bearer" header.
type Sessions struct {
	secret []byte
	ttl    time.Duration
	secure bool
}

// NewSessions creates a session manager. secure marks cookies Secure and
// SameSite=Strict, as required in production.
func NewSessions(secret string, ttl time.Duration, secure bool) *Sessions {
	return &Sessions{secret: []byte(secret), ttl: ttl, secure: secure}
}

// Issue generates a signed session token for a user.
func (s *Sessions) Issue(user *models.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.ttl)
	claims := &SessionClaims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   user.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Parse validates a session token and returns its claims.
func (s *Sessions) Parse(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.UserID == "" {
		return nil, errors.New("invalid session token")
	}
	return claims, nil
}

// SetCookie stores the token in an HTTP-only session cookie.
func (s *Sessions) SetCookie(c *gin.Context, token string, expiresAt time.Time) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int(time.Until(expiresAt).Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: s.sameSite(),
	})
}

// ClearCookie expires the session cookie.
func (s *Sessions) ClearCookie(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: s.sameSite(),
	})
}

func (s *Sessions) sameSite() http.SameSite {
	if s.secure {
		return http.SameSiteStrictMode
	}
	return http.SameSiteLaxMode
}

// RequireAuth rejects requests without a valid session and sets the user in
// the context otherwise.
func (s *Sessions) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := s.authenticate(c)
		if !ok {
			abortWithError(c, apperrors.ErrUnauthorized)
			return
		}
		setUser(c, claims)
		c.Next()
	}
}

// OptionalAuth sets the user in the context when a valid session is present
// and lets the request through either way.
func (s *Sessions) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := s.authenticate(c); ok {
			setUser(c, claims)
		}
		c.Next()
	}
}

func (s *Sessions) authenticate(c *gin.Context) (*SessionClaims, bool) {
	tokenString := bearerToken(c)
	if tokenString == "" {
		if cookie, err := c.Cookie(SessionCookieName); err == nil {
			tokenString = cookie
		}
	}
	if tokenString == "" {
		return nil, false
	}

	claims, err := s.Parse(tokenString)
	if err != nil {
		return nil, false
	}
	return claims, true
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func setUser(c *gin.Context, claims *SessionClaims) {
	c.Set(UserIDKey, claims.UserID)
	c.Set(UsernameKey, claims.Username)
}

func abortWithError(c *gin.Context, appErr *apperrors.AppError) {
	c.AbortWithStatusJSON(appErr.StatusCode, errorBody(appErr))
}
