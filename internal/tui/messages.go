package tui

import (
	"time"

	"github.com/jask/jumptap/internal/database/repository"
)

type (
	frameMsg   time.Time
	countsMsg  []repository.Jumper
	statusMsg  string
	errMsg     struct{ error }
	clickSaved struct {
		id     string
		clicks int64
	}
)
