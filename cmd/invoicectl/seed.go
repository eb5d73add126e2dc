package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/getAlby/invoicehub.go/common"
	"github.com/getAlby/invoicehub.go/db/models"
	"github.com/getAlby/invoicehub.go/lib"
	"github.com/getAlby/invoicehub.go/lib/service"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// SeedData is the layout of a seed file. Invoices refer to their customer by
// email.
type SeedData struct {
	Customers []models.Customer `yaml:"customers"`
	Users     []SeedUser        `yaml:"users"`
	Invoices  []SeedInvoice     `yaml:"invoices"`
}

type SeedUser struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

type SeedInvoice struct {
	Customer string `yaml:"customer"`
	Amount   string `yaml:"amount"`
	Status   string `yaml:"status"`
	Date     string `yaml:"date"`
}

type seedResult struct {
	Customers int
	Users     int
	Invoices  int
}

// LoadSeedData reads a seed file, rejecting unknown fields.
func LoadSeedData(path string) (*SeedData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	seed := &SeedData{}
	if err := decoder.Decode(seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}
	return seed, nil
}

func (s SeedInvoice) toModel(customers map[string]string) (*models.Invoice, error) {
	customerID, ok := customers[s.Customer]
	if !ok {
		return nil, fmt.Errorf("unknown customer %q", s.Customer)
	}
	amount, err := decimal.NewFromString(s.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q", s.Amount)
	}
	cents, err := lib.ToMinorUnits(amount)
	if err != nil || cents < 1 {
		return nil, fmt.Errorf("invalid amount %q", s.Amount)
	}
	if !isInvoiceStatus(s.Status) {
		return nil, fmt.Errorf("invalid status %q", s.Status)
	}
	date, err := time.Parse(common.DateLayout, s.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", s.Date, err)
	}
	return &models.Invoice{
		CustomerID: customerID,
		Amount:     cents,
		Status:     s.Status,
		Date:       date,
	}, nil
}

func isInvoiceStatus(status string) bool {
	for _, s := range common.InvoiceStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// seed inserts customers first so invoices can resolve them, then users and
// invoices. It is meant for an empty database and stops at the first error.
func seed(ctx context.Context, svc *service.InvoiceService, data *SeedData) (seedResult, error) {
	result := seedResult{}
	customers := map[string]string{}
	for i := range data.Customers {
		customer := &data.Customers[i]
		if err := svc.Store.InsertCustomer(ctx, customer); err != nil {
			return result, fmt.Errorf("failed to insert customer %s: %w", customer.Email, err)
		}
		customers[customer.Email] = customer.ID
		result.Customers++
	}
	for _, u := range data.Users {
		if _, err := svc.CreateUser(ctx, u.Name, u.Email, u.Password); err != nil {
			return result, err
		}
		result.Users++
	}
	for i, s := range data.Invoices {
		invoice, err := s.toModel(customers)
		if err != nil {
			return result, fmt.Errorf("invoice %d: %w", i, err)
		}
		if err := svc.Store.InsertInvoice(ctx, invoice); err != nil {
			return result, fmt.Errorf("failed to insert invoice %d: %w", i, err)
		}
		result.Invoices++
	}
	return result, nil
}

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load customers, users and invoices from a YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := LoadSeedData(file)
			if err != nil {
				return err
			}
			svc, dbConn, err := openService(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer dbConn.Close()

			result, err := seed(cmd.Context(), svc, data)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d customers, %d users, %d invoices\n", result.Customers, result.Users, result.Invoices)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "seed.yaml", "seed file")

	return cmd
}
