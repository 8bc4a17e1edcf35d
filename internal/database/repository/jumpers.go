package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/google/uuid"
)

// JumperID derives a stable id from a label.
func JumperID(label string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("jumper:"+label)).String()
}

// JumperRepo handles jumpers and their click totals.
type JumperRepo struct {
	db *sql.DB
}

func NewJumperRepo(db *sql.DB) *JumperRepo { return &JumperRepo{db: db} }

// Upsert inserts a jumper or updates its position, keeping the click count.
func (r *JumperRepo) Upsert(ctx context.Context, j Jumper) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO jumpers(id, label, position) VALUES (?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET position=excluded.position, updated_at=CURRENT_TIMESTAMP;
	`, j.ID, j.Label, j.Position)
	return err
}

func (r *JumperRepo) Get(ctx context.Context, id string) (*Jumper, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT id, label, position, clicks, created_at, updated_at FROM jumpers WHERE id = ?`, id)
	var j Jumper
	if err := row.Scan(&j.ID, &j.Label, &j.Position, &j.Clicks, &j.CreatedAt, &j.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("jumper %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &j, nil
}

func (r *JumperRepo) List(ctx context.Context) ([]Jumper, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, label, position, clicks, created_at, updated_at FROM jumpers ORDER BY position, label`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Jumper
	for rows.Next() {
		var j Jumper
		if err := rows.Scan(&j.ID, &j.Label, &j.Position, &j.Clicks, &j.CreatedAt, &j.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

// Increment bumps the click total and returns the new value.
func (r *JumperRepo) Increment(ctx context.Context, id string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
	UPDATE jumpers SET clicks = clicks + 1, updated_at=CURRENT_TIMESTAMP WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return 0, fmt.Errorf("jumper %s: %w", id, ErrNotFound)
	}
	var clicks int64
	if err := r.db.QueryRowContext(ctx, `SELECT clicks FROM jumpers WHERE id = ?`, id).Scan(&clicks); err != nil {
		return 0, err
	}
	return clicks, nil
}

// Reset zeroes every click total.
func (r *JumperRepo) Reset(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `UPDATE jumpers SET clicks = 0, updated_at=CURRENT_TIMESTAMP`)
	return err
}

// Resolve finds the jumper whose label best matches name. An exact
// case-insensitive match wins; otherwise the closest label by edit distance
// is accepted when it is within maxDistance.
func (r *JumperRepo) Resolve(ctx context.Context, name string, maxDistance int) (*Jumper, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(strings.TrimSpace(name))
	var best *Jumper
	bestDist := maxDistance + 1
	for i := range all {
		label := strings.ToLower(all[i].Label)
		if label == needle {
			return &all[i], nil
		}
		if d := levenshtein.ComputeDistance(label, needle); d < bestDist {
			best, bestDist = &all[i], d
		}
	}
	if best == nil {
		return nil, fmt.Errorf("jumper %q: %w", name, ErrNotFound)
	}
	return best, nil
}
