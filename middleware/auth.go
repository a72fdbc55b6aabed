package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"boomiis-api/config"
)

// SessionCookie is the name of the admin session cookie
const SessionCookie = "boom_admin"

const adminEmailKey = "adminEmail"

var (
	// ErrNotAuthenticated is returned when no session cookie is present.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrInvalidSession is returned for malformed, tampered or foreign sessions.
	ErrInvalidSession = errors.New("invalid session")
)

// Authenticator issues and verifies the single administrator's session.
// The cookie value is "email:hex(HMAC-SHA256(secret, email))"; it carries no
// expiry, the cookie Max-Age bounds its lifetime and rotating the secret
// revokes every issued session.
type Authenticator struct {
	email        string
	passwordHash string
	secret       []byte
	secure       bool
	maxAge       time.Duration
}

// NewAuthenticator builds an Authenticator from the validated admin config
func NewAuthenticator(cfg config.Admin) *Authenticator {
	hash := cfg.PasswordHash
	if !config.IsBcrypt(hash) {
		hash = strings.ToLower(hash)
	}

	return &Authenticator{
		email:        cfg.Email,
		passwordHash: hash,
		secret:       []byte(cfg.SessionSecret),
		secure:       cfg.CookieSecure,
		maxAge:       config.SessionLifetime,
	}
}

// HashPassword returns the hex SHA-256 digest stored in ADMIN_PASSWORD_HASH
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// CheckCredentials reports whether email and password belong to the administrator
func (a *Authenticator) CheckCredentials(email, password string) bool {
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(a.email)) == 1
	return a.checkPassword(password) && emailOK
}

func (a *Authenticator) checkPassword(password string) bool {
	if config.IsBcrypt(a.passwordHash) {
		return bcrypt.CompareHashAndPassword([]byte(a.passwordHash), []byte(password)) == nil
	}
	return hmac.Equal([]byte(HashPassword(password)), []byte(a.passwordHash))
}

func (a *Authenticator) sign(email string) string {
	mac := hmac.New(sha256.New, a.secret)
	mac.Write([]byte(email))
	return hex.EncodeToString(mac.Sum(nil))
}

// SessionValue returns the signed cookie value for the administrator
func (a *Authenticator) SessionValue() string {
	return a.email + ":" + a.sign(a.email)
}

// Verify checks a cookie value and returns the administrator email it identifies
func (a *Authenticator) Verify(value string) (string, error) {
	if value == "" {
		return "", ErrNotAuthenticated
	}

	i := strings.LastIndex(value, ":")
	if i <= 0 {
		return "", ErrInvalidSession
	}
	email, sig := value[:i], value[i+1:]

	if !hmac.Equal([]byte(sig), []byte(a.sign(email))) {
		return "", ErrInvalidSession
	}
	if subtle.ConstantTimeCompare([]byte(email), []byte(a.email)) != 1 {
		return "", ErrInvalidSession
	}

	return email, nil
}

// SetSessionCookie writes the admin session cookie
func (a *Authenticator) SetSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, a.SessionValue(), int(a.maxAge.Seconds()), "/", "", a.secure, true)
}

// ClearSessionCookie expires the admin session cookie
func (a *Authenticator) ClearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", a.secure, true)
}

// RequireAdmin rejects requests without a valid admin session
func (a *Authenticator) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		value, _ := c.Cookie(SessionCookie)
		email, err := a.Verify(value)
		if err != nil {
			msg := "Invalid session"
			if errors.Is(err, ErrNotAuthenticated) {
				msg = "Not authenticated"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}
		c.Set(adminEmailKey, email)
		c.Next()
	}
}

// GetAdminEmail extracts the authenticated administrator from context
func GetAdminEmail(c *gin.Context) string {
	return c.GetString(adminEmailKey)
}
