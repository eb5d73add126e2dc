package service

import (
	"context"
	"errors"
	"io"
	"net/url"
	"testing"

	"github.com/getAlby/invoicehub.go/common"
	"github.com/getAlby/invoicehub.go/lib/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ziflex/lecho/v3"
)

type stubProvider struct {
	session  *identity.Session
	err      error
	provider string
}

func (p *stubProvider) SignIn(ctx context.Context, provider string, form url.Values) (*identity.Session, error) {
	p.provider = provider
	return p.session, p.err
}

func authService(p identity.Provider) *InvoiceService {
	return &InvoiceService{Identity: p, Logger: lecho.New(io.Discard)}
}

func TestAuthenticateSuccess(t *testing.T) {
	p := &stubProvider{session: &identity.Session{UserID: "u1"}}
	msg, session, err := authService(p).Authenticate(context.Background(), "", url.Values{})
	require.NoError(t, err)
	assert.Empty(t, msg)
	assert.Equal(t, "u1", session.UserID)
	assert.Equal(t, common.CredentialsProvider, p.provider)
}

func TestAuthenticateClassifiedFailures(t *testing.T) {
	tests := []struct {
		errType  string
		expected string
	}{
		{identity.CredentialsSignin, "Invalid credentials."},
		{identity.CallbackRouteError, "Something went wrong."},
		{identity.InvalidProvider, "Something went wrong."},
	}
	for _, tt := range tests {
		t.Run(tt.errType, func(t *testing.T) {
			p := &stubProvider{err: &identity.AuthError{Type: tt.errType}}
			msg, session, err := authService(p).Authenticate(context.Background(), "previous", url.Values{})
			require.NoError(t, err)
			assert.Nil(t, session)
			assert.Equal(t, tt.expected, msg)
		})
	}
}

func TestAuthenticatePropagatesUnclassifiedFailures(t *testing.T) {
	cause := errors.New("identity store unreachable")
	_, _, err := authService(&stubProvider{err: cause}).Authenticate(context.Background(), "", url.Values{})
	assert.ErrorIs(t, err, cause)
}
