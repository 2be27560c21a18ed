package main

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Config struct {
	WindowTitle string `toml:"window_title"`
	Width       int    `toml:"width"`
	Height      int    `toml:"height"`
	HistoryDB   string `toml:"history_db"` // empty disables history
	WatchFiles  bool   `toml:"watch_files"`
	LogLevel    string `toml:"log_level"` // "error" (default), "info", or "debug"
}

// loadConfig applies defaults, then ~/.dropwatch/config.toml if
// present, then environment overrides.
func loadConfig() (*Config, error) {
	cfg := &Config{
		WindowTitle: "dropwatch",
		Width:       400,
		Height:      200,
		LogLevel:    "info",
	}

	home, err := os.UserHomeDir()
	if err == nil {
		cfg.HistoryDB = filepath.Join(home, ".dropwatch", "drops.db")
		configPath := filepath.Join(home, ".dropwatch", "config.toml")
		if _, err := os.Stat(configPath); err == nil {
			if _, err := toml.DecodeFile(configPath, cfg); err != nil {
				return nil, err
			}
		}
	}

	if v := os.Getenv("DROPWATCH_TITLE"); v != "" {
		cfg.WindowTitle = v
	}
	if v := os.Getenv("DROPWATCH_HISTORY_DB"); v != "" {
		cfg.HistoryDB = v
	}
	if v := os.Getenv("DROPWATCH_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	return cfg, nil
}
