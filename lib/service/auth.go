package service

import (
	"context"
	"errors"
	"net/url"

	"github.com/getAlby/invoicehub.go/common"
	"github.com/getAlby/invoicehub.go/lib/identity"
)

const (
	InvalidCredentialsMessage = "Invalid credentials."
	AuthFallbackMessage       = "Something went wrong."
)

// Authenticate signs in with the credentials provider. Classified failures
// become a message for the login form. Any other error is returned as is.
func (svc *InvoiceService) Authenticate(ctx context.Context, prev string, form url.Values) (string, *identity.Session, error) {
	session, err := svc.Identity.SignIn(ctx, common.CredentialsProvider, form)
	if err == nil {
		return "", session, nil
	}

	var authErr *identity.AuthError
	if !errors.As(err, &authErr) {
		return "", nil, err
	}
	svc.Logger.Debugf("sign in rejected: %v", authErr)
	switch authErr.Type {
	case identity.CredentialsSignin:
		return InvalidCredentialsMessage, nil, nil
	default:
		return AuthFallbackMessage, nil, nil
	}
}
