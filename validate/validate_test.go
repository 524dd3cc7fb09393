package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fanyewuji/power-grid-game/game/engine"
)

func writeConfig(t *testing.T, config *engine.GameConfig) string {
	t.Helper()

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal config: %v", err)
	}

	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestValidateConfigValid(t *testing.T) {
	path := writeConfig(t, engine.DefaultGameConfig())

	result := validateConfig(path)
	if !result.Valid {
		t.Fatalf("expected a valid config, got errors: %v", result.Errors)
	}

	joined := strings.Join(result.Errors, "\n")
	for _, want := range []string{"Connectivity", "Cities", "Plant cards", "Resource pools"} {
		if !strings.Contains(joined, want) {
			t.Errorf("expected the summary to mention %q, got:\n%s", want, joined)
		}
	}
}

func TestValidateConfigMissingFile(t *testing.T) {
	result := validateConfig(filepath.Join(t.TempDir(), "nope.json"))
	if result.Valid {
		t.Error("expected a missing file to be invalid")
	}
}

func TestValidateConfigMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte("{nope"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	result := validateConfig(path)
	if result.Valid {
		t.Error("expected malformed JSON to be invalid")
	}
	if !strings.Contains(strings.Join(result.Errors, "\n"), "Invalid JSON") {
		t.Errorf("expected a JSON error, got: %v", result.Errors)
	}
}

func TestValidateConfigEngineRules(t *testing.T) {
	bad := engine.DefaultGameConfig()
	bad.PayoutTable = nil

	result := validateConfig(writeConfig(t, bad))
	if result.Valid {
		t.Error("expected a config without a payout table to be invalid")
	}
}

func TestValidateConnectivitySplitMap(t *testing.T) {
	config := engine.DefaultGameConfig()
	config.Cities["Island"] = engine.CityConfig{
		Region:   "north",
		Position: [2]int{999, 999},
	}

	result := validateConnectivity(config)
	if result.Valid {
		t.Fatal("expected a split map to fail connectivity")
	}

	// The flood fill may start from either component, so only the split
	// itself is guaranteed to be reported.
	joined := strings.Join(result.Errors, "\n")
	if !strings.Contains(joined, "Connectivity failure") {
		t.Errorf("expected a connectivity failure report, got:\n%s", joined)
	}
}

func TestValidateConnectivityFullMap(t *testing.T) {
	result := validateConnectivity(engine.DefaultGameConfig())
	if !result.Valid {
		t.Fatalf("expected the default map to be connected, got: %v", result.Errors)
	}
}
