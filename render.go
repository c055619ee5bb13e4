package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Name        string
	BorderColor lipgloss.Color
	TextColor   lipgloss.Color
	AccentColor lipgloss.Color
	ActiveColor lipgloss.Color
	LockedColor lipgloss.Color
}

var themes = []Theme{
	{
		Name:        "Classic Terminal",
		BorderColor: lipgloss.Color("15"),
		TextColor:   lipgloss.Color("250"),
		AccentColor: lipgloss.Color("226"),
		ActiveColor: lipgloss.Color("51"),
		LockedColor: lipgloss.Color("245"),
	},
	{
		Name:        "Amber CRT",
		BorderColor: lipgloss.Color("214"),
		TextColor:   lipgloss.Color("223"),
		AccentColor: lipgloss.Color("208"),
		ActiveColor: lipgloss.Color("220"),
		LockedColor: lipgloss.Color("130"),
	},
	{
		Name:        "Ocean Neon",
		BorderColor: lipgloss.Color("33"),
		TextColor:   lipgloss.Color("159"),
		AccentColor: lipgloss.Color("39"),
		ActiveColor: lipgloss.Color("45"),
		LockedColor: lipgloss.Color("24"),
	},
	{
		Name:        "Forest LCD",
		BorderColor: lipgloss.Color("22"),
		TextColor:   lipgloss.Color("120"),
		AccentColor: lipgloss.Color("34"),
		ActiveColor: lipgloss.Color("47"),
		LockedColor: lipgloss.Color("64"),
	},
}

func themeIndexByName(name string) int {
	for i, theme := range themes {
		if theme.Name == name {
			return i
		}
	}
	return -1
}

const cellText = "  "

func viewMenu(m Model) string {
	theme := themes[m.themeIndex]
	content := renderMenu("CLI-TETRIS", menuItems, m.menuIndex, "Enter to select, Q to quit", theme)
	return center(m.width, m.height, content)
}

func viewThemes(m Model) string {
	theme := themes[m.themeIndex]
	items := make([]string, 0, len(themes))
	for _, t := range themes {
		items = append(items, t.Name)
	}
	menu := renderMenu("Themes", items, m.themeIndex, "Enter to apply, Esc to back", theme)
	return center(m.width, m.height, menu)
}

func viewConfig(m Model) string {
	theme := themes[m.themeIndex]
	items := []string{
		fmt.Sprintf("%s: %d", configItems[0], m.config.Width),
		fmt.Sprintf("%s: %d", configItems[1], m.config.Height),
		fmt.Sprintf("%s: %.0fms", configItems[2], m.config.Speed*1000),
	}
	content := renderMenu("Config", items, m.configIndex, "Left/Right to adjust, Esc to back", theme)
	return center(m.width, m.height, content)
}

func viewGame(m Model) string {
	theme := themes[m.themeIndex]
	if m.grid == nil {
		return center(m.width, m.height, "No game in progress.")
	}
	snapshot := m.grid.Snapshot()
	minWidth := snapshot.Width*len(cellText) + 4
	minHeight := snapshot.Height + 4
	if m.width > 0 && m.height > 0 && (m.width < minWidth || m.height < minHeight) {
		message := fmt.Sprintf("Terminal too small. Need at least %dx%d. Current %dx%d.", minWidth, minHeight, m.width, m.height)
		return center(m.width, m.height, message)
	}
	board := renderBoard(snapshot, theme)
	info := renderInfo(snapshot, theme, m.paused)
	content := lipgloss.JoinHorizontal(lipgloss.Top, board, info)
	if m.width > 0 && m.width < minWidth+24 {
		content = lipgloss.JoinVertical(lipgloss.Left, board, info)
	}
	return center(m.width, m.height, content)
}

func renderBoard(s Snapshot, theme Theme) string {
	border := lipgloss.NewStyle().Foreground(theme.BorderColor)
	active := lipgloss.NewStyle().Background(theme.ActiveColor)
	locked := lipgloss.NewStyle().Background(theme.LockedColor)
	var b strings.Builder
	b.WriteString(border.Render("+" + strings.Repeat("-", s.Width*len(cellText)) + "+"))
	b.WriteString("\n")
	for row := 0; row < s.Height; row++ {
		b.WriteString(border.Render("|"))
		for col := 0; col < s.Width; col++ {
			switch s.Cells[row][col] {
			case CellActive:
				b.WriteString(active.Render(cellText))
			case CellLocked:
				b.WriteString(locked.Render(cellText))
			default:
				b.WriteString(cellText)
			}
		}
		b.WriteString(border.Render("|"))
		b.WriteString("\n")
	}
	b.WriteString(border.Render("+" + strings.Repeat("-", s.Width*len(cellText)) + "+"))
	return b.String()
}

func renderInfo(s Snapshot, theme Theme, paused bool) string {
	pad := lipgloss.NewStyle().PaddingLeft(2)
	var b strings.Builder
	b.WriteString(pad.Render(titleStyle(theme).Render("Next")))
	b.WriteString("\n")
	b.WriteString(pad.Render(renderNextPiece(s.Next, theme)))
	b.WriteString("\n\n")
	b.WriteString(pad.Render(fmt.Sprintf("Score: %d", s.Score)))
	b.WriteString("\n")
	b.WriteString(pad.Render(fmt.Sprintf("Pace:  %.0fms", s.Speed*1000)))
	b.WriteString("\n\n")
	keys := []string{
		"Arrows/HJKL: move",
		"Up/K: rotate",
		"Down/J: soft drop",
		"P: pause",
		"Q: menu",
	}
	for _, line := range keys {
		b.WriteString(pad.Render(helpStyle(theme).Render(line)))
		b.WriteString("\n")
	}
	if s.GameOver {
		b.WriteString("\n")
		b.WriteString(pad.Render(highlightStyle(theme).Render("GAME OVER")))
		b.WriteString("\n")
		b.WriteString(pad.Render(helpStyle(theme).Render("Enter to restart, Q for menu")))
	} else if paused {
		b.WriteString("\n")
		b.WriteString(pad.Render(highlightStyle(theme).Render("Paused")))
	}
	return b.String()
}

func renderNextPiece(mask Mask, theme Theme) string {
	if mask == nil {
		return "(none)"
	}
	block := lipgloss.NewStyle().Background(theme.ActiveColor)
	var b strings.Builder
	for i, row := range mask {
		if i > 0 {
			b.WriteString("\n")
		}
		for _, occupied := range row {
			if occupied {
				b.WriteString(block.Render(cellText))
			} else {
				b.WriteString(cellText)
			}
		}
	}
	return b.String()
}

func renderMenu(title string, items []string, selected int, footer string, theme Theme) string {
	maxWidth := lipgloss.Width(title)
	for _, item := range items {
		if width := lipgloss.Width(item); width > maxWidth {
			maxWidth = width
		}
	}
	if width := lipgloss.Width(footer); width > maxWidth {
		maxWidth = width
	}
	lineStyle := lipgloss.NewStyle().Width(maxWidth).Align(lipgloss.Center)
	var b strings.Builder
	b.WriteString(lineStyle.Render(titleStyle(theme).Render(title)))
	b.WriteString("\n\n")
	for i, item := range items {
		if i == selected {
			b.WriteString(lineStyle.Render(highlightStyle(theme).Render(item)))
		} else {
			b.WriteString(lineStyle.Render(item))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(lineStyle.Render(helpStyle(theme).Render(footer)))
	return b.String()
}

func titleStyle(theme Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.AccentColor).Bold(true)
}

func highlightStyle(theme Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.AccentColor).Bold(true)
}

func helpStyle(theme Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.TextColor)
}

func center(width, height int, content string) string {
	if width == 0 || height == 0 {
		return content
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
