// Package engine provides the core rules engine for the Power Grid Game.
//
// The engine package implements the game mechanics including:
//   - Sequential power plant auctions with per-card bidding
//   - The priced resource-token ladders with reserve and refill
//   - City network connectivity and tiered house building costs
//   - Power generation, fuel accounting and payouts
//   - The four-phase round cycle and turn ordering
//
// Core Types:
//
// GameEngine owns all mutable state and is driven exclusively through
// Apply, which takes a typed Action and returns a structured Result.
// GameConfig defines the full game setup (cards, cities, ladders, payout
// tables) loaded from JSON files. Snapshot is the serializable read model
// handed to transports.
//
// Usage:
//
//	config := engine.DefaultGameConfig()
//	game, err := engine.NewEngine(config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	res := game.Apply(&engine.StartAuction{CardID: "16"})
//	if !res.Success {
//		log.Println(res.Code, res.Message)
//	}
//	state := game.Snapshot()
//
// Game Rules:
//
// Players bid for power plants, buy fuel off priced ladders, build houses
// across a weighted city graph and earn income by burning fuel to power
// their cities. A round cycles through the Auction, Resources, Houses and
// Bureaucracy phases; turn order re-sorts every round by standing. All rule
// violations come back as typed codes on the Result, never as panics, and a
// rejected action leaves the state untouched.
package engine
