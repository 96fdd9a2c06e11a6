package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOpenLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "animalbridge.log")

	logger, closer, err := openLogger(path, true)
	if err != nil {
		t.Fatalf("openLogger() error = %v", err)
	}
	logger.Debug("catalog loaded", "stages", 10)
	closer.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), "catalog loaded") {
		t.Errorf("log file = %q, expected the debug line", data)
	}
}

func TestOpenLoggerEmptyPathDiscards(t *testing.T) {
	logger, closer, err := openLogger("", false)
	if err != nil {
		t.Fatalf("openLogger() error = %v", err)
	}
	if closer != nil {
		t.Error("openLogger(\"\") closer should be nil")
	}
	logger.Info("dropped")
}

func TestRuntimeConfigUsesFPSFlag(t *testing.T) {
	old := flagFPS
	defer func() { flagFPS = old }()

	flagFPS = 30
	cfg := runtimeConfig()
	if cfg.TickRate != 30 {
		t.Errorf("TickRate = %d, expected 30", cfg.TickRate)
	}
	if cfg.Viewport.BaseWidth != 1280 || cfg.Viewport.BaseHeight != 720 {
		t.Errorf("Viewport base = %vx%v, expected 1280x720", cfg.Viewport.BaseWidth, cfg.Viewport.BaseHeight)
	}
	if cfg.Viewport.Width <= 0 || cfg.Viewport.Height <= 0 {
		t.Errorf("Viewport size = %vx%v, expected positive", cfg.Viewport.Width, cfg.Viewport.Height)
	}
}
