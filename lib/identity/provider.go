package identity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/getAlby/invoicehub.go/common"
	"github.com/getAlby/invoicehub.go/db/models"
	"github.com/getAlby/invoicehub.go/lib/security"
	"github.com/go-playground/validator/v10"
)

// Classified sign-in failure types.
const (
	CredentialsSignin  = "CredentialsSignin"
	InvalidProvider    = "InvalidProvider"
	CallbackRouteError = "CallbackRouteError"
)

// AuthError is a classified authentication failure. Anything that is not an
// *AuthError coming out of a Provider is an unclassified fault.
type AuthError struct {
	Type string
	Err  error
}

func (e *AuthError) Error() string {
	if e.Err == nil {
		return e.Type
	}
	return fmt.Sprintf("%s: %v", e.Type, e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// Provider verifies credentials submitted with a sign-in form.
type Provider interface {
	SignIn(ctx context.Context, provider string, form url.Values) (*Session, error)
}

type UserFinder interface {
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
}

type Credentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

// CredentialsProvider checks email and password against the users table and
// issues a signed session on success.
type CredentialsProvider struct {
	Users     UserFinder
	Secret    []byte
	Expiry    time.Duration
	Validator *validator.Validate
}

func NewCredentialsProvider(users UserFinder, secret []byte, expiry time.Duration) *CredentialsProvider {
	return &CredentialsProvider{
		Users:     users,
		Secret:    secret,
		Expiry:    expiry,
		Validator: validator.New(),
	}
}

func (p *CredentialsProvider) SignIn(ctx context.Context, provider string, form url.Values) (*Session, error) {
	if provider != common.CredentialsProvider {
		return nil, &AuthError{Type: InvalidProvider, Err: fmt.Errorf("unknown provider %q", provider)}
	}
	creds := Credentials{
		Email:    strings.ToLower(strings.TrimSpace(form.Get("email"))),
		Password: form.Get("password"),
	}
	if err := p.Validator.Struct(&creds); err != nil {
		return nil, &AuthError{Type: CredentialsSignin, Err: err}
	}

	user, err := p.Users.FindUserByEmail(ctx, creds.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &AuthError{Type: CredentialsSignin, Err: errors.New("unknown user")}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if !security.CheckPassword(user.Password, creds.Password) {
		return nil, &AuthError{Type: CredentialsSignin, Err: errors.New("password mismatch")}
	}

	session, err := IssueSession(p.Secret, p.Expiry, user)
	if err != nil {
		return nil, &AuthError{Type: CallbackRouteError, Err: err}
	}
	return session, nil
}
