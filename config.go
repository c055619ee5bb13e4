package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
)

type Config struct {
	Theme  string  `json:"theme"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Speed  float64 `json:"speed"`
}

const (
	defaultBoardWidth  = 10
	defaultBoardHeight = 20
	defaultSpeed       = 0.1

	maxBoardWidth  = 24
	maxBoardHeight = 40
	minSpeed       = 0.02
	maxSpeed       = 1.0
)

func defaultConfig() Config {
	return Config{
		Theme:  themes[0].Name,
		Width:  defaultBoardWidth,
		Height: defaultBoardHeight,
		Speed:  defaultSpeed,
	}
}

// loadConfig reads the saved config, falling back to defaults when the file
// is missing, then applies environment overrides and repairs any
// out-of-range values. A damaged file is reported but still yields a
// playable config.
func loadConfig() (Config, error) {
	config := defaultConfig()
	path, err := configPath()
	if err != nil {
		return applyEnvOverrides(sanitizeConfig(config)), err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return applyEnvOverrides(sanitizeConfig(config)), nil
	}
	if err := json.Unmarshal(data, &config); err != nil {
		return applyEnvOverrides(sanitizeConfig(defaultConfig())), err
	}
	return applyEnvOverrides(sanitizeConfig(config)), nil
}

func saveConfig(config Config) error {
	path, err := configPath()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// sanitizeConfig clamps values into the ranges the core accepts.
func sanitizeConfig(config Config) Config {
	if themeIndexByName(config.Theme) < 0 {
		config.Theme = themes[0].Name
	}
	config.Width = clampInt(config.Width, minBoardSide, maxBoardWidth)
	config.Height = clampInt(config.Height, minBoardSide, maxBoardHeight)
	config.Speed = clampFloat(config.Speed, minSpeed, maxSpeed)
	return config
}

// applyEnvOverrides lets CLI_TETRIS_* variables take precedence over the
// config file, clamped the same way.
func applyEnvOverrides(config Config) Config {
	if value, ok := envInt("CLI_TETRIS_WIDTH"); ok {
		config.Width = clampInt(value, minBoardSide, maxBoardWidth)
	}
	if value, ok := envInt("CLI_TETRIS_HEIGHT"); ok {
		config.Height = clampInt(value, minBoardSide, maxBoardHeight)
	}
	if value, ok := envFloat("CLI_TETRIS_SPEED"); ok {
		config.Speed = clampFloat(value, minSpeed, maxSpeed)
	}
	if name := os.Getenv("CLI_TETRIS_THEME"); name != "" {
		if themeIndexByName(name) >= 0 {
			config.Theme = name
		}
	}
	return config
}

func envInt(key string) (int, bool) {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return 0, false
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return value, true
}

func envFloat(key string) (float64, bool) {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return 0, false
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

func clampInt(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}

func clampFloat(value, low, high float64) float64 {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}

func configPath() (string, error) {
	root, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(root, "cli-tetris")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}
