package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/getAlby/invoicehub.go/db"
	"github.com/getAlby/invoicehub.go/lib/logging"
	"github.com/getAlby/invoicehub.go/lib/service"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	EnvFile     string
	DatabaseUri string
}

// config is the part of the server configuration the admin commands need.
type config struct {
	DatabaseUri     string `envconfig:"DATABASE_URI"`
	DatabaseTimeout int    `envconfig:"DATABASE_TIMEOUT" default:"60"`
	LogFilePath     string `envconfig:"LOG_FILE_PATH"`
}

// NewRootCommand creates the root command for the invoicehub admin CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "invoicectl",
		Short:         "Administer an invoicehub database",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", ".env", "file to load environment variables from")
	cmd.PersistentFlags().StringVar(&opts.DatabaseUri, "database", "", "database connection string, overrides DATABASE_URI")

	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewCreateUserCommand(opts))

	return cmd
}

func loadConfig(opts *RootOptions) (*service.Config, error) {
	if err := godotenv.Load(opts.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", opts.EnvFile, err)
	}
	c := &config{}
	if err := envconfig.Process("", c); err != nil {
		return nil, fmt.Errorf("error loading environment variables: %w", err)
	}
	if opts.DatabaseUri != "" {
		c.DatabaseUri = opts.DatabaseUri
	}
	if c.DatabaseUri == "" {
		return nil, errors.New("no database configured: set DATABASE_URI or --database")
	}
	return &service.Config{
		DatabaseUri:             c.DatabaseUri,
		DatabaseMaxConns:        1,
		DatabaseMaxIdleConns:    1,
		DatabaseConnMaxLifetime: 60,
		DatabaseTimeout:         c.DatabaseTimeout,
		LogFilePath:             c.LogFilePath,
	}, nil
}

// openService connects to the configured database, brings its schema up to
// date and returns a service over it. The caller closes the returned db.
func openService(ctx context.Context, opts *RootOptions) (*service.InvoiceService, *bun.DB, error) {
	c, err := loadConfig(opts)
	if err != nil {
		return nil, nil, err
	}
	dbConn, err := db.Open(c)
	if err != nil {
		return nil, nil, fmt.Errorf("error initializing db connection: %w", err)
	}
	if _, err := db.Migrate(ctx, dbConn); err != nil {
		dbConn.Close()
		return nil, nil, fmt.Errorf("error migrating database: %w", err)
	}
	svc := &service.InvoiceService{
		Config: c,
		Store:  service.NewBunStore(dbConn, c.StatementTimeout()),
		Logger: logging.Logger(c.LogFilePath),
		Now:    time.Now,
	}
	return svc, dbConn, nil
}
