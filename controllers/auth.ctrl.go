package controllers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/getAlby/invoicehub.go/common"
	"github.com/getAlby/invoicehub.go/lib"
	"github.com/getAlby/invoicehub.go/lib/identity"
	"github.com/getAlby/invoicehub.go/lib/responses"
	"github.com/getAlby/invoicehub.go/lib/service"
	"github.com/labstack/echo/v4"
)

// AuthController : AuthController struct
type AuthController struct {
	svc *service.InvoiceService
}

func NewAuthController(svc *service.InvoiceService) *AuthController {
	return &AuthController{
		svc: svc,
	}
}

type LoginPage struct {
	CallbackURL string
	Email       string
	Message     string
}

// LoginForm : LoginForm Controller
func (controller *AuthController) LoginForm(c echo.Context) error {
	return c.Render(http.StatusOK, "login", LoginPage{CallbackURL: callbackURL(c.QueryParam("callbackUrl"))})
}

type LoginRequestBody struct {
	Email       string `form:"email" validate:"required,email"`
	Password    string `form:"password" validate:"required,min=6"`
	CallbackURL string `form:"callbackUrl"`
}

// Login : Login Controller
func (controller *AuthController) Login(c echo.Context) error {
	var body LoginRequestBody

	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load login request body: %v", err)
		return echo.NewHTTPError(http.StatusBadRequest, responses.BadArgumentsError)
	}
	body.Email = strings.ToLower(strings.TrimSpace(body.Email))
	target := callbackURL(body.CallbackURL)
	if err := c.Validate(&body); err != nil {
		c.Logger().Debugf("login form rejected: %v", lib.InvalidFields(err))
		return c.Render(http.StatusUnauthorized, "login", LoginPage{
			CallbackURL: target,
			Email:       body.Email,
			Message:     service.InvalidCredentialsMessage,
		})
	}

	form := url.Values{}
	form.Set("email", body.Email)
	form.Set("password", body.Password)
	message, session, err := controller.svc.Authenticate(c.Request().Context(), "", form)
	if err != nil {
		return err
	}
	if session == nil {
		return c.Render(http.StatusUnauthorized, "login", LoginPage{
			CallbackURL: target,
			Email:       body.Email,
			Message:     message,
		})
	}

	c.SetCookie(identity.SessionCookie(session))
	return c.Redirect(http.StatusSeeOther, target)
}

// Logout : Logout Controller
func (controller *AuthController) Logout(c echo.Context) error {
	c.SetCookie(identity.ExpiredSessionCookie())
	return c.Redirect(http.StatusSeeOther, common.LoginPath)
}

// callbackURL only lets sign in return to a local path.
func callbackURL(raw string) string {
	if !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, "/\\") {
		return common.InvoicesPath
	}
	return raw
}
