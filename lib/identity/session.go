package identity

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/getAlby/invoicehub.go/common"
	"github.com/getAlby/invoicehub.go/db/models"
	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
)

type Session struct {
	Token     string
	UserID    string
	Email     string
	ExpiresAt time.Time
}

type sessionClaims struct {
	Email string `json:"email"`

	jwt.StandardClaims
}

// IssueSession signs an HS256 session token for the user.
func IssueSession(secret []byte, expiry time.Duration, u *models.User) (*Session, error) {
	expiresAt := time.Now().Add(expiry)
	claims := &sessionClaims{
		u.Email,
		jwt.StandardClaims{
			Subject:   u.ID,
			ExpiresAt: expiresAt.Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	t, err := token.SignedString(secret)
	if err != nil {
		return nil, err
	}

	return &Session{Token: t, UserID: u.ID, Email: u.Email, ExpiresAt: expiresAt}, nil
}

// ParseSession verifies a session token and returns its contents.
func ParseSession(secret []byte, token string) (*Session, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid || claims.Subject == "" {
		return nil, errors.New("invalid session token")
	}
	return &Session{
		Token:     token,
		UserID:    claims.Subject,
		Email:     claims.Email,
		ExpiresAt: time.Unix(claims.ExpiresAt, 0),
	}, nil
}

// SessionCookie wraps a session in the cookie the middleware reads back.
func SessionCookie(session *Session) *http.Cookie {
	return &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// ExpiredSessionCookie clears the session cookie.
func ExpiredSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// Middleware redirects requests without a valid session to the login page.
func Middleware(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(common.SessionCookieName)
			if err == nil {
				session, err := ParseSession(secret, cookie.Value)
				if err == nil {
					c.Set("UserID", session.UserID)
					c.Set("UserEmail", session.Email)
					return next(c)
				}
				c.Logger().Debugf("rejected session cookie: %v", err)
			}
			target := common.LoginPath + "?callbackUrl=" + url.QueryEscape(c.Request().URL.RequestURI())
			return c.Redirect(http.StatusSeeOther, target)
		}
	}
}
