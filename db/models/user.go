package models

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User : User Model
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID        string    `bun:",pk,type:uuid"`
	Name      string    `bun:",notnull"`
	Email     string    `bun:",unique,notnull"`
	Password  string    `bun:",notnull"`
	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}

func (u *User) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.InsertQuery:
		if u.ID == "" {
			u.ID = uuid.NewString()
		}
	}
	return nil
}

var _ bun.BeforeAppendModelHook = (*User)(nil)
