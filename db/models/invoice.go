package models

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Invoice : Invoice Model
type Invoice struct {
	bun.BaseModel `bun:"table:invoices,alias:invoice"`

	ID         string    `json:"id" bun:",pk,type:uuid"`
	CustomerID string    `json:"customer_id" bun:",type:uuid,notnull"`
	Customer   *Customer `json:"customer,omitempty" bun:"rel:belongs-to,join:customer_id=id"`
	// Amount is stored in cents
	Amount int64     `json:"amount" bun:",notnull"`
	Status string    `json:"status" bun:",notnull"`
	Date   time.Time `json:"date" bun:",type:date,notnull"`
}

func (i *Invoice) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.InsertQuery:
		if i.ID == "" {
			i.ID = uuid.NewString()
		}
	}
	return nil
}

var _ bun.BeforeAppendModelHook = (*Invoice)(nil)
