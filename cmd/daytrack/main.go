package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/daytrack/internal/scheduler"
	"github.com/sandeepkv93/daytrack/internal/storage"
	"github.com/sandeepkv93/daytrack/internal/tracker"
	"github.com/sandeepkv93/daytrack/internal/update"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "daytrack failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := update.RuntimeConfigFromEnv(update.DefaultRuntimeConfig())

	if cfg.DebugLog {
		f, err := tea.LogToFile("daytrack-debug.log", "debug")
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer f.Close()
	}

	store, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	tr := tracker.New(store)

	engine := scheduler.NewEngine()
	engine.Start()
	defer engine.Stop()

	program := tea.NewProgram(update.NewModel(tr, engine, cfg), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
