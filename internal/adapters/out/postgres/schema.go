package postgres

import (
	"checkout/internal/adapters/out/postgres/orderrepo"
	"checkout/internal/adapters/out/postgres/sessionrepo"

	"gorm.io/gorm"
)

// Tables lists every table owned by the checkout schema, children first.
var Tables = []string{"session_lines", "sessions", "order_lines", "orders"}

// Migrate creates or updates the checkout schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&sessionrepo.SessionDTO{},
		&sessionrepo.LineDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.LineDTO{},
	)
}
