package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jask/jumptap/internal/database"
)

// MaintenanceService houses destructive actions surfaced through the CLI.
type MaintenanceService struct {
	DB *sql.DB
}

// Reset zeroes every click total and drops the landing history. Jumper rows
// and the schema stay so the app can keep running.
func (s *MaintenanceService) Reset(ctx context.Context) error {
	if s.DB == nil {
		return fmt.Errorf("maintenance: db not configured")
	}
	if err := database.WithTx(s.DB, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM landings"); err != nil {
			return fmt.Errorf("reset landings: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "UPDATE jumpers SET clicks = 0, updated_at = CURRENT_TIMESTAMP"); err != nil {
			return fmt.Errorf("reset jumpers: %w", err)
		}
		return nil
	}); err != nil {
		return err
	}
	_, _ = s.DB.ExecContext(ctx, "VACUUM")
	return nil
}
