// Package config provides configuration management for the Power Grid Game.
//
// The config package handles:
//   - Loading game configurations from JSON files
//   - Configuration validation and verification
//   - Default configuration management
//   - Configuration discovery and listing
//
// Configuration Format:
//
// Game configurations are stored as JSON files in the configs directory.
// Each configuration defines:
//   - The city map with regions, positions, and weighted connections
//   - The power plant card set and opening market layout
//   - Resource ladders, total token counts, and per-step refill rates
//   - Player seats with starting plants and resources
//   - The payout table and region limits per player count
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Load specific configuration
//	gameConfig, err := manager.LoadConfig("germany")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Get default configuration
//	defaultConfig := manager.GetDefault()
//
//	// List available configurations
//	configs, err := manager.ListConfigs()
//
// Validation:
//
// All configurations are validated before use. A config that names unknown
// cities, leaves a resource ladder short of its token total, or omits refill
// rates for a step never makes it into the cache; see
// engine.ValidateGameConfig for the full set of checks.
package config
