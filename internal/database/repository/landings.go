package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// LandingRepo records ground contacts.
type LandingRepo struct {
	db *sql.DB
}

func NewLandingRepo(db *sql.DB) *LandingRepo { return &LandingRepo{db: db} }

func (r *LandingRepo) Insert(ctx context.Context, l Landing) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.LandedAt.IsZero() {
		l.LandedAt = time.Now().UTC().Truncate(time.Second)
	}
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO landings(id, jumper_id, airtime_ms, landed_at) VALUES (?, ?, ?, ?)`,
		l.ID, l.JumperID, l.Airtime.Milliseconds(), l.LandedAt)
	return err
}

// Recent lists the newest landings, optionally for one jumper.
func (r *LandingRepo) Recent(ctx context.Context, jumperID string, limit int) ([]Landing, error) {
	if limit <= 0 {
		limit = 10
	}
	query := `SELECT id, jumper_id, airtime_ms, landed_at FROM landings`
	var args []any
	if jumperID != "" {
		query += ` WHERE jumper_id = ?`
		args = append(args, jumperID)
	}
	query += ` ORDER BY landed_at DESC, rowid DESC LIMIT ?`
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Landing
	for rows.Next() {
		var l Landing
		var ms int64
		if err := rows.Scan(&l.ID, &l.JumperID, &ms, &l.LandedAt); err != nil {
			return nil, err
		}
		l.Airtime = time.Duration(ms) * time.Millisecond
		out = append(out, l)
	}
	return out, rows.Err()
}

// AverageAirtime returns the mean airtime for a jumper, zero when none.
func (r *LandingRepo) AverageAirtime(ctx context.Context, jumperID string) (time.Duration, error) {
	var avg sql.NullFloat64
	if err := r.db.QueryRowContext(ctx,
		`SELECT AVG(airtime_ms) FROM landings WHERE jumper_id = ?`, jumperID).Scan(&avg); err != nil {
		return 0, err
	}
	if !avg.Valid {
		return 0, nil
	}
	return time.Duration(avg.Float64 * float64(time.Millisecond)), nil
}
