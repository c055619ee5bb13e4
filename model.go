package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type Screen int

const (
	screenMenu Screen = iota
	screenGame
	screenThemes
	screenConfig
)

type tickMsg struct{}

type Model struct {
	screen      Screen
	width       int
	height      int
	menuIndex   int
	themeIndex  int
	configIndex int
	config      Config
	grid        *Grid
	paused      bool
	source      PieceSource
}

func NewModel() Model {
	config, err := loadConfig()
	if err != nil {
		DebugLogf("config load error: %v", err)
	}
	index := themeIndexByName(config.Theme)
	if index < 0 {
		index = 0
		config.Theme = themes[index].Name
	}
	return Model{
		screen:     screenMenu,
		config:     config,
		themeIndex: index,
		source:     NewRandomSource(),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if m.screen != screenGame || m.grid == nil || m.grid.GameOver() {
			return m, nil
		}
		if !m.paused {
			m.grid.Tick()
		}
		if m.grid.GameOver() {
			DebugLogf("game over score=%d", m.grid.Score())
			return m, nil
		}
		return m, tickCmd(m.grid.Speed())
	case tea.KeyMsg:
		switch m.screen {
		case screenMenu:
			return m, m.updateMenu(msg)
		case screenGame:
			return m, m.updateGame(msg)
		case screenThemes:
			return m, m.updateThemes(msg)
		case screenConfig:
			return m, m.updateConfig(msg)
		}
	}
	return m, nil
}

func (m Model) View() string {
	switch m.screen {
	case screenMenu:
		return viewMenu(m)
	case screenGame:
		return viewGame(m)
	case screenThemes:
		return viewThemes(m)
	case screenConfig:
		return viewConfig(m)
	default:
		return ""
	}
}

// tickCmd schedules the next gravity tick. The interval tracks Grid.Speed,
// so each clearing lock shortens the real-time pace.
func tickCmd(speed float64) tea.Cmd {
	interval := time.Duration(speed * float64(time.Second))
	return tea.Tick(interval, func(time.Time) tea.Msg { return tickMsg{} })
}

func (m *Model) startGame() tea.Cmd {
	grid, err := NewGrid(m.config.Width, m.config.Height, m.config.Speed, m.source)
	if err != nil {
		DebugLogf("grid init error: %v, using defaults", err)
		grid, err = NewGrid(defaultBoardWidth, defaultBoardHeight, defaultSpeed, m.source)
		if err != nil {
			return tea.Quit
		}
	}
	grid.SpawnFirst()
	m.grid = grid
	m.paused = false
	m.screen = screenGame
	return tickCmd(grid.Speed())
}

var menuItems = []string{
	"Start Game",
	"Themes",
	"Config",
	"Quit",
}

func (m *Model) updateMenu(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if m.menuIndex > 0 {
			m.menuIndex--
		}
	case "down", "j":
		if m.menuIndex < len(menuItems)-1 {
			m.menuIndex++
		}
	case "enter":
		switch m.menuIndex {
		case 0:
			return m.startGame()
		case 1:
			m.screen = screenThemes
		case 2:
			m.screen = screenConfig
		case 3:
			return tea.Quit
		}
	case "q", "esc":
		return tea.Quit
	}
	return nil
}

func (m *Model) updateGame(msg tea.KeyMsg) tea.Cmd {
	if m.grid == nil {
		m.screen = screenMenu
		return nil
	}
	if m.grid.GameOver() {
		switch msg.String() {
		case "enter":
			return m.startGame()
		case "q", "esc":
			m.screen = screenMenu
		}
		return nil
	}
	switch msg.String() {
	case "left", "h":
		if !m.paused {
			m.grid.MoveLeft()
		}
	case "right", "l":
		if !m.paused {
			m.grid.MoveRight()
		}
	case "up", "k":
		if !m.paused {
			m.grid.Rotate()
		}
	case "down", "j":
		if !m.paused {
			m.grid.SoftDrop()
		}
	case "p":
		m.paused = !m.paused
	case "q", "esc":
		m.screen = screenMenu
	}
	return nil
}

func (m *Model) updateThemes(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if m.themeIndex > 0 {
			m.themeIndex--
		}
	case "down", "j":
		if m.themeIndex < len(themes)-1 {
			m.themeIndex++
		}
	case "enter":
		m.config.Theme = themes[m.themeIndex].Name
		if err := saveConfig(m.config); err != nil {
			DebugLogf("config save error: %v", err)
		}
		m.screen = screenMenu
	case "q", "esc":
		m.screen = screenMenu
	}
	return nil
}

var configItems = []string{
	"Board Width",
	"Board Height",
	"Fall Interval",
}

func (m *Model) updateConfig(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if m.configIndex > 0 {
			m.configIndex--
		}
	case "down", "j":
		if m.configIndex < len(configItems)-1 {
			m.configIndex++
		}
	case "left", "h":
		m.adjustConfig(-1)
	case "right", "l":
		m.adjustConfig(1)
	case "q", "esc", "enter":
		m.screen = screenMenu
	}
	return nil
}

// adjustConfig nudges the selected setting and persists it. Changes apply
// to the next new game.
func (m *Model) adjustConfig(delta int) {
	switch m.configIndex {
	case 0:
		m.config.Width = clampInt(m.config.Width+delta, minBoardSide, maxBoardWidth)
	case 1:
		m.config.Height = clampInt(m.config.Height+delta, minBoardSide, maxBoardHeight)
	case 2:
		m.config.Speed = clampFloat(m.config.Speed+float64(delta)*0.01, minSpeed, maxSpeed)
	}
	if err := saveConfig(m.config); err != nil {
		DebugLogf("config save error: %v", err)
	}
}
