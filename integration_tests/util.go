package integration_tests

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"time"

	"github.com/getAlby/invoicehub.go/db"
	"github.com/getAlby/invoicehub.go/db/models"
	"github.com/getAlby/invoicehub.go/lib/cache"
	"github.com/getAlby/invoicehub.go/lib/identity"
	"github.com/getAlby/invoicehub.go/lib/service"
	"github.com/getAlby/invoicehub.go/lib/transport"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/uptrace/bun"
	"github.com/ziflex/lecho/v3"
)

const (
	testUserEmail    = "user@nextmail.com"
	testUserPassword = "123456"
)

type TestEnv struct {
	svc   *service.InvoiceService
	db    *bun.DB
	pages *cache.PageCache
	echo  *echo.Echo
}

// InvoiceHubTestServiceInit wires a complete instance against its own
// in-memory sqlite database.
func InvoiceHubTestServiceInit(events service.EventPublisher) (env *TestEnv, err error) {
	c := &service.Config{
		DatabaseUri:             "sqlite://:memory:",
		DatabaseMaxConns:        1,
		DatabaseMaxIdleConns:    1,
		DatabaseConnMaxLifetime: 10,
		DatabaseTimeout:         5,
		JWTSecret:               []byte("SECRET"),
		JWTAccessTokenExpiry:    3600,
		DefaultRateLimit:        1000,
		StrictRateLimit:         1000,
		BurstRateLimit:          1000,
		CacheTTL:                600,
		CacheCapacity:           100,
		ItemsPerPage:            6,
	}
	dbConn, err := db.Open(c)
	if err != nil {
		return nil, err
	}
	ctx := context.Background()
	if _, err = db.Migrate(ctx, dbConn); err != nil {
		return nil, err
	}

	logger := lecho.New(io.Discard)
	store := service.NewBunStore(dbConn, c.StatementTimeout())
	pages := cache.NewMemory(c.CacheCapacity, c.CacheExpiry())
	svc := &service.InvoiceService{
		Config:   c,
		Store:    store,
		Cache:    pages,
		Events:   events,
		Identity: identity.NewCredentialsProvider(store, c.JWTSecret, c.SessionExpiry()),
		Logger:   logger,
	}

	renderer, err := transport.NewTemplateRenderer()
	if err != nil {
		return nil, err
	}
	e := transport.InitEcho(c, logger, renderer)
	strictRateLimitMiddleware := transport.CreateRateLimitMiddleware(c.StrictRateLimit, c.BurstRateLimit)
	if err = transport.RegisterEndpoints(svc, e, pages, dbConn, strictRateLimitMiddleware, transport.CreateLoggingMiddleware(logger)); err != nil {
		return nil, err
	}

	return &TestEnv{svc: svc, db: dbConn, pages: pages, echo: e}, nil
}

func createCustomers(svc *service.InvoiceService, names ...string) ([]*models.Customer, error) {
	customers := make([]*models.Customer, 0, len(names))
	for _, name := range names {
		email := strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com"
		customer := &models.Customer{Name: name, Email: email}
		if err := svc.Store.InsertCustomer(context.Background(), customer); err != nil {
			return nil, err
		}
		customers = append(customers, customer)
	}
	return customers, nil
}

type TestSuite struct {
	suite.Suite
	env *TestEnv
}

func (suite *TestSuite) TearDownSuite() {
	if suite.env != nil {
		suite.env.db.Close()
	}
}

func (env *TestEnv) serve(req *http.Request, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	env.echo.ServeHTTP(rec, req)
	return rec
}

func (env *TestEnv) get(target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	return env.serve(httptest.NewRequest(http.MethodGet, target, nil), cookies...)
}

func (env *TestEnv) postForm(target string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return env.serve(req, cookies...)
}

func (suite *TestSuite) get(target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	return suite.env.get(target, cookies...)
}

func (suite *TestSuite) postForm(target string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	return suite.env.postForm(target, form, cookies...)
}

func (suite *TestSuite) login(email, password string) *http.Cookie {
	return suite.loginTo(suite.env, email, password)
}

// loginTo signs in through the login form of env and returns the session
// cookie it was given.
func (suite *TestSuite) loginTo(env *TestEnv, email, password string) *http.Cookie {
	form := url.Values{}
	form.Set("email", email)
	form.Set("password", password)
	rec := env.postForm("/login", form)
	assert.Equal(suite.T(), http.StatusSeeOther, rec.Code)
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "session" {
			return cookie
		}
	}
	suite.T().Fatalf("no session cookie in login response")
	return nil
}

func invoiceForm(customerID, amount, status string) url.Values {
	form := url.Values{}
	form.Set("customerId", customerID)
	form.Set("amount", amount)
	form.Set("status", status)
	return form
}

func waitFor(timeout time.Duration, cond func() bool) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(20 * time.Millisecond)
	}
	return cond()
}
