package database

import (
	"context"
	"database/sql"

	"github.com/jask/jumptap/internal/database/repository"
)

// SeedJumpers makes sure every configured label has a row, in display order.
// It is idempotent and safe to run on every startup.
func SeedJumpers(ctx context.Context, db *sql.DB, labels []string) ([]repository.Jumper, error) {
	repo := repository.NewJumperRepo(db)
	out := make([]repository.Jumper, 0, len(labels))
	for idx, label := range labels {
		j := repository.Jumper{
			ID:       repository.JumperID(label),
			Label:    label,
			Position: idx,
		}
		if err := repo.Upsert(ctx, j); err != nil {
			return nil, err
		}
		got, err := repo.Get(ctx, j.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, *got)
	}
	return out, nil
}
