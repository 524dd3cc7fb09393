// Command analyze prints quick, human-readable heuristics about configuration
// files in the project's configs directory. It summarizes the city graph
// (regions, link costs, hub cities), the plant deck (type spread, fuel
// efficiency), and the resource economy (pool sizes, opening availability).
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/fanyewuji/power-grid-game/game/engine"
)

func main() {
	files, err := filepath.Glob(filepath.Join("configs", "*.json"))
	if err != nil || len(files) == 0 {
		fmt.Println("No config files found under configs/")
		return
	}

	for _, configFile := range files {
		fmt.Printf("\n=== Analyzing %s ===\n", filepath.Base(configFile))
		analyzeConfig(configFile)
	}
}

func analyzeConfig(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Error reading file: %v\n", err)
		return
	}

	var config engine.GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		fmt.Printf("Error parsing JSON: %v\n", err)
		return
	}

	fmt.Printf("Name: %s\n", config.Name)
	fmt.Printf("Players: %d, Starting money: %d\n", len(config.Players), config.StartingMoney)

	analyzeCities(&config)
	analyzeDeck(&config)
	analyzeEconomy(&config)
}

// analyzeCities summarizes the map: region sizes, link cost spread, and the
// best-connected cities (cheap hubs matter for early expansion).
func analyzeCities(config *engine.GameConfig) {
	regions := make(map[string]int)
	degree := make(map[string]int)
	minCost, maxCost, totalCost, edges := -1, 0, 0, 0

	for name, city := range config.Cities {
		regions[city.Region]++
		degree[name] = len(city.Neighbors)
		for _, n := range city.Neighbors {
			// Undirected links appear twice; count each direction once here
			// and halve the totals below.
			edges++
			totalCost += n.Cost
			if minCost < 0 || n.Cost < minCost {
				minCost = n.Cost
			}
			if n.Cost > maxCost {
				maxCost = n.Cost
			}
		}
	}

	fmt.Printf("Cities: %d\n", len(config.Cities))
	regionNames := sortedKeys(regions)
	for _, r := range regionNames {
		fmt.Printf("  region %-8s %d cities\n", r, regions[r])
	}

	if edges > 0 {
		fmt.Printf("Links: %d (cost min %d, max %d, avg %.1f)\n",
			edges/2, minCost, maxCost, float64(totalCost)/float64(edges))
	}

	// Top hubs by connection count
	type hub struct {
		name   string
		degree int
	}
	hubs := make([]hub, 0, len(degree))
	for name, d := range degree {
		hubs = append(hubs, hub{name, d})
	}
	sort.Slice(hubs, func(i, j int) bool {
		if hubs[i].degree != hubs[j].degree {
			return hubs[i].degree > hubs[j].degree
		}
		return hubs[i].name < hubs[j].name
	})
	if len(hubs) > 3 {
		hubs = hubs[:3]
	}
	fmt.Print("Hub cities:")
	for _, h := range hubs {
		fmt.Printf(" %s(%d)", h.name, h.degree)
	}
	fmt.Println()

	if len(config.Cities) > 0 {
		isolated := 0
		for _, d := range degree {
			if d == 0 {
				isolated++
			}
		}
		if isolated > 0 {
			fmt.Printf("WARNING: %d isolated cities\n", isolated)
		}
	}
}

// analyzeDeck summarizes the plant cards: type spread and the best payers per
// fuel burned.
func analyzeDeck(config *engine.GameConfig) {
	typeCounts := make(map[string]int)
	bestRatio := 0.0
	bestCard := ""

	for id, card := range config.Cards {
		typeCounts[card.Type]++
		if card.ResourceNumber > 0 {
			ratio := float64(card.CitiesToPower) / float64(card.ResourceNumber)
			if ratio > bestRatio {
				bestRatio = ratio
				bestCard = id
			}
		}
	}

	fmt.Printf("Plant cards: %d\n", len(config.Cards))
	for _, t := range sortedKeys(typeCounts) {
		fmt.Printf("  %-10s %d\n", t, typeCounts[t])
	}
	if bestCard != "" {
		fmt.Printf("Most fuel-efficient plant: %s (%.1f cities per token)\n", bestCard, bestRatio)
	}
	fmt.Printf("Opening market: %v (first draw: %s)\n", config.InitialMarket, config.FirstDraw)
}

// analyzeEconomy summarizes resource pools and how much of each pool is on
// the board at game start.
func analyzeEconomy(config *engine.GameConfig) {
	fmt.Println("Resource economy:")
	for _, name := range sortedResourceTypes(config.ResourceTotals) {
		t := engine.ResourceType(name)
		total := config.ResourceTotals[t]
		open := 0
		for _, slot := range config.InitialLadder[t] {
			if slot.Available {
				open++
			}
		}
		fmt.Printf("  %-8s %d total, %d on the board at start (%.0f%%)\n",
			name, total, open, 100*float64(open)/float64(total))
	}

	if len(config.PayoutTable) > 1 {
		first := config.PayoutTable[1] - config.PayoutTable[0]
		n := len(config.PayoutTable)
		last := config.PayoutTable[n-1] - config.PayoutTable[n-2]
		fmt.Printf("Payout curve: %d..%d (marginal city worth %d early, %d late)\n",
			config.PayoutTable[0], config.PayoutTable[n-1], first, last)
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedResourceTypes(m map[engine.ResourceType]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	return keys
}
