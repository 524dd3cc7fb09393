package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fanyewuji/power-grid-game/game/engine"
)

func TestConstants(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
	if AppName == "" {
		t.Error("AppName should not be empty")
	}
}

func TestInitializeServices(t *testing.T) {
	dir := t.TempDir()

	data, err := json.MarshalIndent(engine.DefaultGameConfig(), "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal config: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "germany.json"), data, 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	gameService, err := initializeServices(dir)
	if err != nil {
		t.Fatalf("Failed to initialize services: %v", err)
	}
	if gameService == nil {
		t.Fatal("Expected game service to be initialized")
	}
}

func TestInitializeServices_EmptyConfigDir(t *testing.T) {
	// An empty directory still works; the built-in default config backs it.
	gameService, err := initializeServices(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to initialize services: %v", err)
	}
	if gameService == nil {
		t.Fatal("Expected game service to be initialized")
	}
}

func TestInitializeServices_InvalidConfigDir(t *testing.T) {
	if _, err := initializeServices("/non/existent/path"); err == nil {
		t.Error("Expected error for non-existent config directory")
	}
}
