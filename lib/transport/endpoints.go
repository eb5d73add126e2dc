package transport

import (
	"net/http"

	"github.com/getAlby/invoicehub.go/common"
	"github.com/getAlby/invoicehub.go/controllers"
	"github.com/getAlby/invoicehub.go/lib/cache"
	"github.com/getAlby/invoicehub.go/lib/identity"
	"github.com/getAlby/invoicehub.go/lib/service"
	"github.com/getAlby/invoicehub.go/templates"
	"github.com/labstack/echo/v4"
)

// Pages maps the render names used by the controllers to template files.
var Pages = map[string]string{
	"error":        "error.html",
	"login":        "login.html",
	"invoices":     "invoices.html",
	"invoice_form": "invoice_form.html",
}

func NewTemplateRenderer() (*Renderer, error) {
	return NewRenderer(templates.FS, Pages)
}

func RegisterEndpoints(svc *service.InvoiceService, e *echo.Echo, pages *cache.PageCache, db controllers.Pinger, strictRateLimitMiddleware echo.MiddlewareFunc, logMw echo.MiddlewareFunc) error {
	authCtrl := controllers.NewAuthController(svc)
	invoicesCtrl := controllers.NewInvoicesController(svc)

	// Public endpoints
	e.GET("/health", controllers.NewHealthController(db).Health)
	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusSeeOther, common.InvoicesPath)
	})
	e.GET(common.LoginPath, authCtrl.LoginForm, logMw)
	e.POST(common.LoginPath, authCtrl.Login, strictRateLimitMiddleware, logMw)
	e.POST("/logout", authCtrl.Logout, logMw)

	// Dashboard endpoints require a session cookie
	dashboard := e.Group("/dashboard", identity.Middleware(svc.Config.JWTSecret), logMw)

	listCache, err := pages.Middleware(common.InvoicesPath)
	if err != nil {
		return err
	}
	dashboard.GET("/invoices", invoicesCtrl.List, listCache)
	dashboard.GET("/invoices/create", invoicesCtrl.CreateForm)
	dashboard.POST("/invoices/create", invoicesCtrl.Create)
	dashboard.GET("/invoices/:id/edit", invoicesCtrl.EditForm)
	dashboard.POST("/invoices/:id/edit", invoicesCtrl.Update)
	dashboard.POST("/invoices/:id/delete", invoicesCtrl.Delete)
	return nil
}
