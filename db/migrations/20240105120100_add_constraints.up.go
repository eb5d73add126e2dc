package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {

		if db.Dialect().Name().String() != "pg" {
			fmt.Printf("\033[1;31m%s\033[0m", "You are not using PostgreSQL. DB level checks can not be enabled!\n")
			return nil
		}
		sql := `
			-- invoices always carry a positive amount in cents
				alter table invoices
				ADD CONSTRAINT check_amount_positive
				CHECK (amount > 0);

			-- keep the status column inside the closed set the forms accept
				alter table invoices
				ADD CONSTRAINT check_status
				CHECK (status IN ('pending', 'paid'));
		`
		if _, err := db.Exec(sql); err != nil {
			return err
		}
		return nil
	}, nil)
}
