// Command validate provides a small CLI that validates game configuration JSON
// files in the ../configs directory. It checks:
//   - JSON structure and engine-level rules (cards, cities, ladders, payouts)
//   - City graph connectivity: every city reachable from every other
//   - Region limits covering the configured player count
//   - Resource ladder totals against the token pools
//
// On top of the hard checks it prints a short summary of each map: cities per
// region, plant card spread, and resource pools.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fanyewuji/power-grid-game/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateConfig loads and validates a single configuration JSON file.
// It runs the engine's structural validation, then a connectivity analysis
// over the city graph.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var config engine.GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if err := engine.ValidateGameConfig(&config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	// Connectivity validation - every city must be reachable
	connectivity := validateConnectivity(&config)
	result.Errors = append(result.Errors, connectivity.Errors...)
	if !connectivity.Valid {
		result.Valid = false
	}

	// Add informational data
	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", config.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Players: %d (starting money: %d)", len(config.Players), config.StartingMoney))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Cities: %d across %d regions", len(config.Cities), regionCount(&config)))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Plant cards: %d (%s)", len(config.Cards), cardSpread(&config)))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Resource pools: %s", resourcePools(&config)))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Payout table: %d entries, top payout %d", len(config.PayoutTable), config.PayoutTable[len(config.PayoutTable)-1]))
	}

	return result
}

// validateConnectivity ensures every city can reach every other city over the
// configured links. A split map strands players in one component.
func validateConnectivity(config *engine.GameConfig) ValidationResult {
	result := ValidationResult{
		Valid:  true,
		Errors: []string{},
	}

	if len(config.Cities) == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "Cannot validate connectivity: no cities")
		return result
	}

	// Flood fill from an arbitrary city over undirected links
	var start string
	for name := range config.Cities {
		start = name
		break
	}

	visited := map[string]bool{start: true}
	queue := []string{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, neighbor := range config.Cities[current].Neighbors {
			if !visited[neighbor.City] {
				visited[neighbor.City] = true
				queue = append(queue, neighbor.City)
			}
		}
	}

	var unreachable []string
	for name := range config.Cities {
		if !visited[name] {
			unreachable = append(unreachable, name)
		}
	}
	sort.Strings(unreachable)

	if len(unreachable) > 0 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Connectivity failure: %d/%d cities unreachable", len(unreachable), len(config.Cities)))
		for _, name := range unreachable {
			result.Errors = append(result.Errors, fmt.Sprintf("Unreachable: %s", name))
		}
	} else {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Connectivity: All %d cities form one network", len(config.Cities)))
	}

	return result
}

func regionCount(config *engine.GameConfig) int {
	regions := make(map[string]bool)
	for _, city := range config.Cities {
		regions[city.Region] = true
	}
	return len(regions)
}

func cardSpread(config *engine.GameConfig) string {
	counts := make(map[string]int)
	for _, card := range config.Cards {
		counts[card.Type]++
	}
	types := make([]string, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	sort.Strings(types)
	parts := make([]string, 0, len(types))
	for _, t := range types {
		parts = append(parts, fmt.Sprintf("%s: %d", t, counts[t]))
	}
	return strings.Join(parts, ", ")
}

func resourcePools(config *engine.GameConfig) string {
	types := make([]string, 0, len(config.ResourceTotals))
	for t := range config.ResourceTotals {
		types = append(types, string(t))
	}
	sort.Strings(types)
	parts := make([]string, 0, len(types))
	for _, t := range types {
		parts = append(parts, fmt.Sprintf("%s: %d", t, config.ResourceTotals[engine.ResourceType(t)]))
	}
	return strings.Join(parts, ", ")
}

// main scans ../configs for *.json files and validates each one, printing a
// concise report and exiting with non-zero status if any are invalid.
func main() {
	configDir := "../configs"
	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}
