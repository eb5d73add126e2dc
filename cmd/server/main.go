package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/getAlby/invoicehub.go/db"
	"github.com/getAlby/invoicehub.go/lib/cache"
	"github.com/getAlby/invoicehub.go/lib/identity"
	"github.com/getAlby/invoicehub.go/lib/logging"
	"github.com/getAlby/invoicehub.go/lib/service"
	"github.com/getAlby/invoicehub.go/lib/transport"
	"github.com/getAlby/invoicehub.go/rabbitmq"
	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	ddEcho "gopkg.in/DataDog/dd-trace-go.v1/contrib/labstack/echo.v4"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
)

func main() {

	c := &service.Config{}

	// Load configruation from environment variables
	err := godotenv.Load(".env")
	if err != nil {
		fmt.Println("Failed to load .env file")
	}
	err = envconfig.Process("", c)
	if err != nil {
		log.Fatalf("Error loading environment variables: %v", err)
	}

	// Setup logging to STDOUT or a configured log file
	logger := logging.Logger(c.LogFilePath)

	// Open a DB connection based on the configured DATABASE_URI
	dbConn, err := db.Open(c)
	if err != nil {
		logger.Fatalf("Error initializing db connection: %v", err)
	}
	defer dbConn.Close()

	// Migrate the DB
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), c.StatementTimeout())
	defer cancelStartup()
	group, err := db.Migrate(startupCtx, dbConn)
	if err != nil {
		logger.Fatalf("Error migrating database: %v", err)
	}
	if !group.IsZero() {
		logger.Infof("Migrated database to %s", group)
	}

	// Setup exception tracking with Sentry if configured
	// sentry init needs to happen before the echo middlewares are added
	if c.SentryDSN != "" {
		if err = sentry.Init(sentry.ClientOptions{
			Dsn:              c.SentryDSN,
			IgnoreErrors:     []string{"401", "404"},
			EnableTracing:    c.SentryTracesSampleRate > 0,
			TracesSampleRate: c.SentryTracesSampleRate,
		}); err != nil {
			logger.Errorf("sentry init error: %v", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	// The list page cache lives in redis when several instances share it,
	// otherwise in process memory.
	var pages *cache.PageCache
	if c.RedisUrl != "" {
		opts, err := redis.ParseURL(c.RedisUrl)
		if err != nil {
			logger.Fatalf("Error parsing REDIS_URL: %v", err)
		}
		redisClient := redis.NewClient(opts)
		defer redisClient.Close()
		if err := redisClient.Ping(startupCtx).Err(); err != nil {
			logger.Fatalf("Error connecting to redis: %v", err)
		}
		pages = cache.NewRedis(redisClient, c.CacheExpiry())
	} else {
		pages = cache.NewMemory(c.CacheCapacity, c.CacheExpiry())
	}

	// If no RABBITMQ_URI was provided we will not attempt to create a client
	// Mutations then only revalidate the cache of this instance.
	var rabbitmqClient *rabbitmq.DefaultClient
	if c.RabbitMQUri != "" {
		rabbitmqClient, err = rabbitmq.Dial(c.RabbitMQUri,
			rabbitmq.WithLogger(logger),
			rabbitmq.WithInvoiceExchange(c.RabbitMQInvoiceExchange),
		)
		if err != nil {
			logger.Fatal(err)
		}

		// close the connection gently at the end of the runtime
		defer rabbitmqClient.Close()
	}

	store := service.NewBunStore(dbConn, c.StatementTimeout())
	svc := &service.InvoiceService{
		Config:   c,
		Store:    store,
		Cache:    pages,
		Identity: identity.NewCredentialsProvider(store, c.JWTSecret, c.SessionExpiry()),
		Logger:   logger,
	}
	if rabbitmqClient != nil {
		svc.Events = rabbitmqClient
	}

	renderer, err := transport.NewTemplateRenderer()
	if err != nil {
		logger.Fatalf("Error parsing templates: %v", err)
	}

	//init echo server
	e := transport.InitEcho(c, logger, renderer)
	//if Datadog is configured, add datadog middleware
	if c.DatadogAgentUrl != "" {
		tracer.Start(tracer.WithAgentAddr(c.DatadogAgentUrl))
		defer tracer.Stop()
		e.Use(ddEcho.Middleware(ddEcho.WithServiceName("invoicehub.go")))
	}

	//Start Prometheus server if necessary
	var echoPrometheus *echo.Echo
	if c.EnablePrometheus {
		echoPrometheus = transport.NewPrometheusEcho(logger, e)
		go func() {
			if err := transport.ServePrometheus(echoPrometheus, c.PrometheusPort); err != nil && err != http.ErrServerClosed {
				logger.Errorf("prometheus server stopped: %v", err)
			}
		}()
	}

	logMw := transport.CreateLoggingMiddleware(logger)
	// strict rate limit for sign in attempts
	strictRateLimitMiddleware := transport.CreateRateLimitMiddleware(c.StrictRateLimit, c.BurstRateLimit)
	if err = transport.RegisterEndpoints(svc, e, pages, dbConn, strictRateLimitMiddleware, logMw); err != nil {
		logger.Fatalf("Error registering endpoints: %v", err)
	}

	var backgroundWg sync.WaitGroup
	backGroundCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	// Revalidate the local cache when other instances mutate invoices
	if rabbitmqClient != nil {
		backgroundWg.Add(1)
		go func() {
			defer backgroundWg.Done()
			err := rabbitmqClient.ListenForRevalidation(backGroundCtx, pages)
			if err != nil && err != context.Canceled {
				logger.Error(err)
				sentry.CaptureException(err)
			}
			logger.Info("Revalidation listener done")
		}()
	}

	// Start server
	go func() {
		if err := e.Start(fmt.Sprintf(":%v", c.Port)); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal("shutting down the server")
		}
	}()

	<-backGroundCtx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Fatal(err)
	}
	if echoPrometheus != nil {
		if err := echoPrometheus.Shutdown(ctx); err != nil {
			e.Logger.Fatal(err)
		}
	}
	//Wait for graceful shutdown of background routines
	backgroundWg.Wait()
	logger.Info("Invoicehub exiting gracefully. Goodbye.")
}
