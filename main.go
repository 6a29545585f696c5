package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/sadopc/devlog/internal/api"
	"github.com/sadopc/devlog/internal/config"
	"github.com/sadopc/devlog/internal/store"
	"github.com/sadopc/devlog/internal/tui"
)

func newLogger(cfg config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
		level = slog.LevelInfo
	}

	// stderr is owned by the TUI, so logs go to a rotating file.
	var out io.Writer = io.Discard
	file := cfg.Log.File
	if file == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			file = filepath.Join(dir, "devlog", "devlog.log")
		}
	}
	if file != "" {
		out = &lumberjack.Logger{
			Filename:   file,
			MaxSize:    5, // megabytes
			MaxBackups: 2,
		}
	}

	return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level}))
}

func main() {
	cfgPath, err := config.DefaultPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
		os.Exit(1)
	}

	log := newLogger(cfg)

	dbPath, err := store.DefaultDBPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	s, err := store.New(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening local store: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout.Std(), log)

	app := tui.NewApp(client, s, log, tui.Options{
		PageSize:         cfg.PageSize,
		AutosaveInterval: cfg.AutosaveInterval.Std(),
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
