package repository

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// Jumper represents a jumper row.
type Jumper struct {
	ID        string
	Label     string
	Position  int
	Clicks    int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Landing represents one recorded ground contact.
type Landing struct {
	ID       string
	JumperID string
	Airtime  time.Duration
	LandedAt time.Time
}
