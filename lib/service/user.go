package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/getAlby/invoicehub.go/db/models"
	"github.com/getAlby/invoicehub.go/lib/security"
	"github.com/labstack/gommon/random"
)

const generatedPasswordLength = 20

// CreateUser stores a dashboard user. When password is empty a random one is
// generated; the returned user carries the plain text password, never the hash.
func (svc *InvoiceService) CreateUser(ctx context.Context, name, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if password == "" {
		password = random.String(generatedPasswordLength, random.Alphanumeric)
	}

	hashedPassword, err := security.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Name:     name,
		Email:    email,
		Password: hashedPassword,
	}
	if err := svc.Store.InsertUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user %s: %w", email, err)
	}

	user.Password = password
	return user, nil
}
