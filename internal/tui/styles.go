package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/aretw0/memo/pkg/core"
)

type palette struct {
	fg     lipgloss.Color
	bg     lipgloss.Color
	muted  lipgloss.Color
	accent lipgloss.Color
	border lipgloss.Color
	danger lipgloss.Color
}

var (
	lightPalette = palette{
		fg:     lipgloss.Color("#333333"),
		bg:     lipgloss.Color("#f5f5f5"),
		muted:  lipgloss.Color("#888888"),
		accent: lipgloss.Color("#4a90e2"),
		border: lipgloss.Color("#dddddd"),
		danger: lipgloss.Color("#e74c3c"),
	}
	darkPalette = palette{
		fg:     lipgloss.Color("#f5f5f5"),
		bg:     lipgloss.Color("#1a1a1a"),
		muted:  lipgloss.Color("#aaaaaa"),
		accent: lipgloss.Color("#4a90e2"),
		border: lipgloss.Color("#444444"),
		danger: lipgloss.Color("#e74c3c"),
	}
)

type styles struct {
	app         lipgloss.Style
	heading     lipgloss.Style
	toggle      lipgloss.Style
	note        lipgloss.Style
	selected    lipgloss.Style
	title       lipgloss.Style
	content     lipgloss.Style
	date        lipgloss.Style
	placeholder lipgloss.Style
	button      lipgloss.Style
	dialog      lipgloss.Style
	alert       lipgloss.Style
	help        lipgloss.Style
}

func newStyles(t core.Theme) styles {
	p := lightPalette
	if t.IsDark() {
		p = darkPalette
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.border).
		Padding(0, 1)

	return styles{
		app:         lipgloss.NewStyle().Foreground(p.fg).Background(p.bg).Padding(1, 2),
		heading:     lipgloss.NewStyle().Bold(true).Foreground(p.fg),
		toggle:      lipgloss.NewStyle().Foreground(p.muted),
		note:        box,
		selected:    box.BorderForeground(p.accent),
		title:       lipgloss.NewStyle().Bold(true).Foreground(p.fg),
		content:     lipgloss.NewStyle().Foreground(p.fg),
		date:        lipgloss.NewStyle().Foreground(p.muted).Italic(true),
		placeholder: lipgloss.NewStyle().Foreground(p.muted).Italic(true).Padding(1, 0),
		button:      lipgloss.NewStyle().Foreground(p.accent),
		dialog:      box.BorderForeground(p.danger),
		alert:       box.BorderForeground(p.accent).Bold(true),
		help:        lipgloss.NewStyle().Foreground(p.muted),
	}
}
