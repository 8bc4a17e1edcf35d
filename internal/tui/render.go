package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	spriteWidth     = 8
	minSpriteHeight = 3
	maxLift         = 0.8
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#89b4fa")).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#7f849c"))
	countStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#cdd6f4"))
	groundStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#585b70"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1"))

	spriteStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#585b70")).
			Width(spriteWidth).
			Align(lipgloss.Center, lipgloss.Center)
	selectedBorder = lipgloss.Color("#89b4fa")
	heldBorder     = lipgloss.Color("#fab387")
)

// spriteHeight is the sprite's row count, border included, for a scale
// anchored at the bottom edge.
func spriteHeight(height int, scale float64) int {
	h := int(math.Round(float64(height) * scale))
	if h < minSpriteHeight {
		h = minSpriteHeight
	}
	return h
}

// liftRows converts a translation (negative is up) into rows above the ground.
func liftRows(height int, translation float64) int {
	rows := int(math.Round(-translation * float64(height)))
	if rows < 0 {
		return 0
	}
	return rows
}

func stageHeight(height int) int {
	return height + int(math.Ceil(maxLift*float64(height))) + 1
}

func (a *App) spriteRows() int {
	if a.cfg.UI.Height > 0 {
		return a.cfg.UI.Height
	}
	return 5
}

func (a *App) renderJumper(idx int, j *jumper) string {
	height := a.spriteRows()
	stage := stageHeight(height)

	h := spriteHeight(height, j.coord.Scale())
	lift := liftRows(height, j.coord.Translation())
	if h > stage {
		h = stage
	}
	if h+lift > stage {
		lift = stage - h
	}

	style := spriteStyle.Height(h - 2)
	switch {
	case j.held:
		style = style.BorderForeground(heldBorder)
	case idx == a.cursor:
		style = style.BorderForeground(selectedBorder)
	}
	sprite := style.Render(j.label)

	column := sprite
	if lift > 0 {
		column += strings.Repeat("\n", lift)
	}
	column = lipgloss.PlaceVertical(stage, lipgloss.Bottom, column)

	width := lipgloss.Width(sprite)
	ground := groundStyle.Render(strings.Repeat("─", width))
	caption := fmt.Sprintf("%d", idx+1)
	if a.cfg.UI.ShowCounts {
		caption = fmt.Sprintf("%d · %d", idx+1, j.clicks)
	}
	caption = countStyle.Width(width).Align(lipgloss.Center).Render(caption)

	return lipgloss.JoinVertical(lipgloss.Center, column, ground, caption)
}

func (a *App) render() string {
	cols := make([]string, 0, len(a.jumpers)*2)
	for i, j := range a.jumpers {
		if i > 0 {
			cols = append(cols, "  ")
		}
		cols = append(cols, a.renderJumper(i, j))
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("jumptap"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Bottom, cols...))
	b.WriteString("\n\n")
	if a.status != "" {
		b.WriteString(statusStyle.Render(a.status))
	} else {
		b.WriteString(mutedStyle.Render("press space to jump"))
	}
	b.WriteString("\n")
	b.WriteString(a.help.View(a.keys))
	return b.String()
}
