package tui

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/jumptap/internal/config"
	"github.com/jask/jumptap/internal/database/repository"
	"github.com/jask/jumptap/internal/jump"
	"github.com/jask/jumptap/internal/logger"
)

// App is the jumper row. Every coordinator is ticked from Update, so gesture
// events, animation steps and landing callbacks share one goroutine.
type App struct {
	ctx     context.Context
	cfg     config.Config
	repos   Repos
	log     logger.Logger
	keys    keyMap
	help    help.Model
	jumpers []*jumper
	cursor  int
	status  string
	width   int

	frameInterval time.Duration
	lastFrame     time.Time

	// commands queued by landing callbacks during the current Update
	pending []tea.Cmd
}

// Repos is optional; a nil repo keeps counts in memory only.
type Repos struct {
	Jumpers  *repository.JumperRepo
	Landings *repository.LandingRepo
}

type jumper struct {
	id       string
	label    string
	clicks   int64
	held     bool
	released time.Duration
	coord    *jump.Coordinator
}

// New builds one coordinator per jumper. opts apply to every coordinator.
func New(ctx context.Context, cfg config.Config, repos Repos, rows []repository.Jumper, log logger.Logger, opts ...jump.Option) (*App, error) {
	if log == nil {
		log = logger.Nop()
	}
	springs, err := cfg.Springs()
	if err != nil {
		return nil, fmt.Errorf("springs: %w", err)
	}
	fps := cfg.Animation.FPS
	if fps <= 0 {
		fps = 60
	}

	a := &App{
		ctx:           ctx,
		cfg:           cfg,
		repos:         repos,
		log:           log,
		keys:          newKeyMap(),
		help:          help.New(),
		frameInterval: time.Second / time.Duration(fps),
	}

	base := []jump.Option{
		jump.WithContext(ctx),
		jump.WithSprings(springs),
		jump.WithFPS(fps),
		jump.WithLogger(log.Named("jump")),
	}
	for _, row := range rows {
		coord, err := jump.New(append(append([]jump.Option{}, base...), opts...)...)
		if err != nil {
			return nil, err
		}
		a.jumpers = append(a.jumpers, &jumper{
			id:     row.ID,
			label:  row.Label,
			clicks: row.Clicks,
			coord:  coord,
		})
	}
	if len(a.jumpers) == 0 {
		return nil, fmt.Errorf("no jumpers configured")
	}
	return a, nil
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loadCounts(), a.nextFrame())
}

func (a *App) nextFrame() tea.Cmd {
	return tea.Tick(a.frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (a *App) loadCounts() tea.Cmd {
	return func() tea.Msg {
		if a.repos.Jumpers == nil {
			return nil
		}
		list, err := a.repos.Jumpers.List(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return countsMsg(list)
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(m)
	case tea.WindowSizeMsg:
		a.width = m.Width
		a.help.Width = m.Width
	case frameMsg:
		a.advance(time.Time(m))
		return a, tea.Batch(append(a.flush(), a.nextFrame())...)
	case countsMsg:
		byID := make(map[string]int64, len(m))
		for _, row := range m {
			byID[row.ID] = row.Clicks
		}
		for _, j := range a.jumpers {
			if n, ok := byID[j.id]; ok {
				j.clicks = n
			}
		}
	case clickSaved:
		for _, j := range a.jumpers {
			if j.id == m.id && m.clicks > j.clicks {
				j.clicks = m.clicks
			}
		}
	case statusMsg:
		a.status = string(m)
	case errMsg:
		a.status = "error: " + m.Error()
		a.log.Error(a.ctx, "tui command failed", logger.Err(m.error))
	}
	return a, nil
}

func (a *App) advance(now time.Time) {
	dt := time.Duration(0)
	if !a.lastFrame.IsZero() {
		dt = now.Sub(a.lastFrame)
	}
	a.lastFrame = now
	for _, j := range a.jumpers {
		j.coord.Tick(dt)
	}
}

func (a *App) flush() []tea.Cmd {
	cmds := a.pending
	a.pending = nil
	return cmds
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(m, a.keys.Left):
		a.move(-1)
	case key.Matches(m, a.keys.Right):
		a.move(1)
	case key.Matches(m, a.keys.Toggle):
		a.toggle(a.jumpers[a.cursor])
	case key.Matches(m, a.keys.Cancel):
		j := a.jumpers[a.cursor]
		j.held = false
		j.coord.Cancel()
	case key.Matches(m, a.keys.Tap):
		idx, err := strconv.Atoi(m.String())
		if err != nil || idx < 1 || idx > len(a.jumpers) {
			return a, nil
		}
		if prev := a.jumpers[a.cursor]; prev.held && a.cursor != idx-1 {
			prev.held = false
			prev.coord.Cancel()
		}
		a.cursor = idx - 1
		j := a.jumpers[a.cursor]
		if !j.held {
			j.coord.Press()
		}
		j.held = false
		a.release(j)
	case key.Matches(m, a.keys.Reset):
		for _, j := range a.jumpers {
			j.clicks = 0
		}
		return a, a.resetCmd()
	}
	return a, tea.Batch(a.flush()...)
}

// move changes the selection; leaving a held jumper counts as dragging away.
func (a *App) move(delta int) {
	next := a.cursor + delta
	if next < 0 || next >= len(a.jumpers) {
		return
	}
	if j := a.jumpers[a.cursor]; j.held {
		j.held = false
		j.coord.Cancel()
	}
	a.cursor = next
}

func (a *App) toggle(j *jumper) {
	if !j.held {
		j.held = true
		j.coord.Press()
		return
	}
	j.held = false
	a.release(j)
}

func (a *App) release(j *jumper) {
	j.released = j.coord.Elapsed()
	j.coord.Release(func() { a.landed(j) })
}

// landed runs inside Coordinator.Tick when the jumper touches the ground.
func (a *App) landed(j *jumper) {
	j.clicks++
	airtime := j.coord.Elapsed() - j.released
	a.status = fmt.Sprintf("%s landed after %s", j.label, airtime.Round(time.Millisecond))
	a.pending = append(a.pending, a.saveClickCmd(j.id, airtime))
}

func (a *App) saveClickCmd(id string, airtime time.Duration) tea.Cmd {
	if a.repos.Jumpers == nil {
		return nil
	}
	return func() tea.Msg {
		clicks, err := a.repos.Jumpers.Increment(a.ctx, id)
		if err != nil {
			return errMsg{err}
		}
		if a.repos.Landings != nil {
			if err := a.repos.Landings.Insert(a.ctx, repository.Landing{JumperID: id, Airtime: airtime}); err != nil {
				return errMsg{err}
			}
		}
		return clickSaved{id: id, clicks: clicks}
	}
}

func (a *App) resetCmd() tea.Cmd {
	if a.repos.Jumpers == nil {
		return func() tea.Msg { return statusMsg("counts reset") }
	}
	return func() tea.Msg {
		if err := a.repos.Jumpers.Reset(a.ctx); err != nil {
			return errMsg{err}
		}
		return statusMsg("counts reset")
	}
}

func (a *App) View() string {
	return a.render()
}
