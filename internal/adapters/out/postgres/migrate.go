package postgres

import (
	"fmt"

	"fulfillment/internal/adapters/out/postgres/ledgerrepo"
	"fulfillment/internal/adapters/out/postgres/otprepo"

	"gorm.io/gorm"
)

// Migrate creates or updates the tables owned by this service.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&ledgerrepo.LedgerEntryDTO{}, &otprepo.OTPAttemptDTO{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
