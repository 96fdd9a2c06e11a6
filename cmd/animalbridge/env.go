package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/animal-bridge/internal/catalog"
	"github.com/vovakirdan/animal-bridge/internal/config"
	"github.com/vovakirdan/animal-bridge/internal/core"
	"github.com/vovakirdan/animal-bridge/internal/storage"
)

// env holds everything the subcommands share.
type env struct {
	logger  *log.Logger
	cfg     config.GameConfig
	catalog *catalog.Catalog
	logFile io.Closer
}

// loadEnv opens the log file and loads config and catalog data.
func loadEnv() (*env, error) {
	logger, closer, err := openLogger(flagLogFile, flagVerbose)
	if err != nil {
		return nil, err
	}
	e := &env{logger: logger, logFile: closer}

	e.cfg, err = config.Load(flagConfig)
	if err != nil {
		e.close()
		return nil, err
	}

	e.catalog, err = catalog.Load(flagAnimals, flagStages)
	if err != nil {
		e.close()
		return nil, err
	}
	logger.Debug("catalog loaded", "animals", len(e.catalog.Animals()), "stages", e.catalog.StageCount())
	return e, nil
}

func (e *env) openStore() (storage.Store, error) {
	store, err := storage.Open(flagStore, flagDataDir, e.catalog.StageCount(), e.logger)
	if err != nil {
		return nil, fmt.Errorf("could not open %s store in %s: %w", flagStore, flagDataDir, err)
	}
	return store, nil
}

func (e *env) close() {
	if e.logFile != nil {
		e.logFile.Close()
	}
}

// openLogger writes to a file because stdout and stderr belong to the
// alternate screen while playing. An empty path discards logs.
func openLogger(path string, verbose bool) (*log.Logger, io.Closer, error) {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}

	var (
		w      io.Writer = io.Discard
		closer io.Closer
	)
	if path != "" {
		expanded, err := storage.ExpandHome(path)
		if err != nil {
			return nil, nil, err
		}
		if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
			return nil, nil, fmt.Errorf("could not create log directory: %w", err)
		}
		f, err := os.OpenFile(expanded, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("could not open log file: %w", err)
		}
		w, closer = f, f
	}

	logger := log.NewWithOptions(w, log.Options{
		Prefix:          "animalbridge",
		ReportTimestamp: true,
		Level:           level,
	})
	log.SetDefault(logger)
	return logger, closer, nil
}

// runtimeConfig sizes the display from the terminal, falling back to 80x24.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}

	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	cfg.Viewport.Width = float64(width)
	cfg.Viewport.Height = float64(height)
	return cfg
}
