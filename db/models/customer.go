package models

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Customer : Customer Model
type Customer struct {
	bun.BaseModel `bun:"table:customers,alias:customer"`

	ID       string `json:"id" yaml:"id" bun:",pk,type:uuid"`
	Name     string `json:"name" yaml:"name" bun:",notnull"`
	Email    string `json:"email" yaml:"email" bun:",notnull"`
	ImageUrl string `json:"image_url" yaml:"image_url" bun:",nullzero"`
}

func (c *Customer) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.InsertQuery:
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
	}
	return nil
}

var _ bun.BeforeAppendModelHook = (*Customer)(nil)
