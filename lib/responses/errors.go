package responses

import (
	"net/http"
	"strings"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error          bool   `json:"error"`
	Code           int    `json:"code"`
	Message        string `json:"message"`
	HttpStatusCode int    `json:"-"`
}

var GeneralServerError = ErrorResponse{
	Error:          true,
	Code:           6,
	Message:        "Something went wrong. Please try again later",
	HttpStatusCode: 500,
}

var BadArgumentsError = ErrorResponse{
	Error:          true,
	Code:           8,
	Message:        "Bad arguments",
	HttpStatusCode: 400,
}

var BadAuthError = ErrorResponse{
	Error:          true,
	Code:           1,
	Message:        "bad auth",
	HttpStatusCode: 401,
}

var NotFoundError = ErrorResponse{
	Error:          true,
	Code:           4,
	Message:        "Could not find the requested invoice.",
	HttpStatusCode: 404,
}

// ErrorPage is the data the "error" template renders.
type ErrorPage struct {
	Code    int
	Message string
}

func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	c.Logger().Error(err)
	if hub := sentryecho.GetHubFromContext(c); hub != nil && isErrAllowedForSentry(err) {
		hub.WithScope(func(scope *sentry.Scope) {
			scope.SetExtra("UserID", c.Get("UserID"))
			hub.CaptureException(err)
		})
	}

	response := GeneralServerError
	if he, ok := err.(*echo.HTTPError); ok {
		response = ErrorResponse{Error: true, Code: he.Code, Message: http.StatusText(he.Code), HttpStatusCode: he.Code}
		switch msg := he.Message.(type) {
		case string:
			response.Message = msg
		case ErrorResponse:
			response = msg
		}
	}

	if wantsJSON(c) || c.Echo().Renderer == nil {
		c.JSON(response.HttpStatusCode, response)
		return
	}
	if err := c.Render(response.HttpStatusCode, "error", ErrorPage{Code: response.HttpStatusCode, Message: response.Message}); err != nil {
		c.Logger().Errorf("failed to render error page: %v", err)
		c.String(response.HttpStatusCode, response.Message)
	}
}

func wantsJSON(c echo.Context) bool {
	accept := c.Request().Header.Get(echo.HeaderAccept)
	return strings.Contains(accept, echo.MIMEApplicationJSON) && !strings.Contains(accept, echo.MIMETextHTML)
}

// isErrAllowedForSentry filters out expected client errors: bad auth and
// unknown pages.
func isErrAllowedForSentry(err error) bool {
	he, ok := err.(*echo.HTTPError)
	if !ok {
		return true
	}
	if he.Code == http.StatusNotFound {
		return false
	}
	switch msg := he.Message.(type) {
	case echo.Map:
		if code, ok := msg["code"].(int); ok && code == BadAuthError.Code {
			return false
		}
	case ErrorResponse:
		if msg.Code == BadAuthError.Code || msg.Code == NotFoundError.Code {
			return false
		}
	}
	return true
}
