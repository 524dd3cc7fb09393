package engine

import (
	"encoding/json"
	"fmt"
	"os"
)

// CardConfig describes one power plant card. Row and column index the card
// art sheet and have no rule meaning.
type CardConfig struct {
	Type           string `json:"type"`
	ResourceNumber int    `json:"resource_number"`
	CitiesToPower  int    `json:"cities_to_power"`
	RowIndex       int    `json:"row_index,omitempty"`
	ColIndex       int    `json:"col_index,omitempty"`
}

// NeighborConfig is one weighted edge out of a city.
type NeighborConfig struct {
	City string `json:"city"`
	Cost int    `json:"cost"`
}

// CityConfig describes one city on the map.
type CityConfig struct {
	Region    string           `json:"region"`
	Position  [2]int           `json:"position"`
	Neighbors []NeighborConfig `json:"neighbors"`
}

// SlotConfig is the starting state of one ladder slot.
type SlotConfig struct {
	Price     int  `json:"price"`
	Available bool `json:"available"`
}

// PlayerConfig is one configured seat: name, color and the preset plant and
// resource kit the player starts with. Kits are dealt to seats randomly at
// game start.
type PlayerConfig struct {
	Name        string                 `json:"name"`
	Color       string                 `json:"color"`
	PowerPlants []string               `json:"power_plants,omitempty"`
	Resources   map[string]ResourceSet `json:"resources,omitempty"` // card ID -> starting tokens
}

// GameConfig is everything a game is built from, loaded once at startup and
// treated as immutable afterwards.
type GameConfig struct {
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	StartingMoney int    `json:"starting_money"`

	Players []PlayerConfig        `json:"players"`
	Cards   map[string]CardConfig `json:"cards"`
	Cities  map[string]CityConfig `json:"cities"`

	RegionLimits map[int]int `json:"region_limits"` // player count -> max regions in play
	PayoutTable  []int       `json:"payout_table"`  // cities powered -> income

	ResourceTotals map[ResourceType]int          `json:"resource_totals"`
	InitialLadder  map[ResourceType][]SlotConfig `json:"initial_ladder"`
	// RefillRates is keyed step -> player count -> type.
	RefillRates map[int]map[int]map[ResourceType]int `json:"refill_rates"`

	InitialMarket []string `json:"initial_market"` // card IDs seeding the opening plant market
	FirstDraw     string   `json:"first_draw"`     // card forced on top of the shuffled deck
	StepThreeCard string   `json:"step_three_card"`
}

// payoutFor returns the income for powering n cities. Counts past the end of
// the table earn the last entry.
func (c *GameConfig) payoutFor(n int) int {
	if len(c.PayoutTable) == 0 {
		return 0
	}
	if n >= len(c.PayoutTable) {
		n = len(c.PayoutTable) - 1
	}
	if n < 0 {
		n = 0
	}
	return c.PayoutTable[n]
}

// ValidateGameConfig checks the structural integrity of a configuration.
// Edge-cost symmetry is advisory and checked separately when the city graph
// is built; everything here is a hard error.
func ValidateGameConfig(c *GameConfig) error {
	if c == nil {
		return fmt.Errorf("nil game config")
	}
	if c.StartingMoney <= 0 {
		return fmt.Errorf("starting_money must be positive, got %d", c.StartingMoney)
	}
	if len(c.Players) < 2 {
		return fmt.Errorf("need at least 2 players, got %d", len(c.Players))
	}
	if len(c.Cards) == 0 {
		return fmt.Errorf("no power plant cards configured")
	}
	if _, ok := c.Cards[c.FirstDraw]; !ok {
		return fmt.Errorf("first_draw card %q not in the card set", c.FirstDraw)
	}
	if _, ok := c.Cards[c.StepThreeCard]; !ok {
		return fmt.Errorf("step_three_card %q not in the card set", c.StepThreeCard)
	}
	for _, id := range c.InitialMarket {
		if _, ok := c.Cards[id]; !ok {
			return fmt.Errorf("initial_market card %q not in the card set", id)
		}
	}
	for _, pc := range c.Players {
		if pc.Name == "" {
			return fmt.Errorf("player with empty name")
		}
		for _, id := range pc.PowerPlants {
			if _, ok := c.Cards[id]; !ok {
				return fmt.Errorf("player %s: preset plant %q not in the card set", pc.Name, id)
			}
		}
	}
	if len(c.Cities) == 0 {
		return fmt.Errorf("no cities configured")
	}
	for name, city := range c.Cities {
		if city.Region == "" {
			return fmt.Errorf("city %s has no region", name)
		}
		for _, nb := range city.Neighbors {
			if _, ok := c.Cities[nb.City]; !ok {
				return fmt.Errorf("city %s references unknown neighbor %q", name, nb.City)
			}
		}
	}
	if _, ok := c.RegionLimits[len(c.Players)]; !ok {
		return fmt.Errorf("no region limit configured for %d players", len(c.Players))
	}
	if len(c.PayoutTable) == 0 {
		return fmt.Errorf("empty payout table")
	}
	for _, t := range ResourceTypes {
		if len(c.InitialLadder[t]) == 0 {
			return fmt.Errorf("no ladder configured for %s", t)
		}
		if c.ResourceTotals[t] <= 0 {
			return fmt.Errorf("no total supply configured for %s", t)
		}
	}
	for step := 1; step <= MaxStep; step++ {
		rates, ok := c.RefillRates[step]
		if !ok {
			return fmt.Errorf("no refill rates for step %d", step)
		}
		if _, ok := rates[len(c.Players)]; !ok {
			return fmt.Errorf("no refill rates for %d players at step %d", len(c.Players), step)
		}
	}
	return nil
}

// LoadGameConfig reads and validates a configuration file.
func LoadGameConfig(filename string) (*GameConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading game config: %w", err)
	}
	var cfg GameConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing game config %s: %w", filename, err)
	}
	if err := ValidateGameConfig(&cfg); err != nil {
		return nil, fmt.Errorf("validating game config %s: %w", filename, err)
	}
	return &cfg, nil
}

// ladderFromLayout expands a (price, count, available) run-length layout into
// slots, cheap end first.
type ladderRun struct {
	price     int
	count     int
	available bool
}

func ladderFromLayout(runs []ladderRun) []SlotConfig {
	var out []SlotConfig
	for _, r := range runs {
		for i := 0; i < r.count; i++ {
			out = append(out, SlotConfig{Price: r.price, Available: r.available})
		}
	}
	return out
}

// link records both directions of an undirected map edge so the built graph
// is symmetric by construction.
type link struct {
	a, b string
	cost int
}

func applyLinks(cities map[string]CityConfig, links []link) {
	for _, l := range links {
		ca := cities[l.a]
		ca.Neighbors = append(ca.Neighbors, NeighborConfig{City: l.b, Cost: l.cost})
		cities[l.a] = ca
		cb := cities[l.b]
		cb.Neighbors = append(cb.Neighbors, NeighborConfig{City: l.a, Cost: l.cost})
		cities[l.b] = cb
	}
}

// DefaultGameConfig is the shipped four-player Germany setup.
func DefaultGameConfig() *GameConfig {
	cities := map[string]CityConfig{
		"Flensburg":      {Region: "north", Position: [2]int{28, 2}},
		"Kiel":           {Region: "north", Position: [2]int{30, 6}},
		"Lubeck":         {Region: "north", Position: [2]int{36, 9}},
		"Hamburg":        {Region: "north", Position: [2]int{31, 12}},
		"Cuxhaven":       {Region: "north", Position: [2]int{22, 9}},
		"Bremen":         {Region: "north", Position: [2]int{21, 14}},
		"Wilhelmshaven":  {Region: "north", Position: [2]int{15, 11}},
		"Rostock":        {Region: "east", Position: [2]int{46, 6}},
		"Schwerin":       {Region: "east", Position: [2]int{41, 11}},
		"Torgelow":       {Region: "east", Position: [2]int{57, 10}},
		"Berlin":         {Region: "east", Position: [2]int{55, 17}},
		"Frankfurt-Oder": {Region: "east", Position: [2]int{62, 19}},
		"Magdeburg":      {Region: "east", Position: [2]int{43, 20}},
		"Halle":          {Region: "east", Position: [2]int{47, 25}},
		"Hannover":       {Region: "west", Position: [2]int{29, 18}},
		"Osnabruck":      {Region: "west", Position: [2]int{17, 19}},
		"Munster":        {Region: "west", Position: [2]int{13, 22}},
		"Essen":          {Region: "west", Position: [2]int{7, 24}},
		"Dortmund":       {Region: "west", Position: [2]int{12, 25}},
		"Dusseldorf":     {Region: "west", Position: [2]int{5, 27}},
		"Kassel":         {Region: "west", Position: [2]int{28, 27}},
	}
	applyLinks(cities, []link{
		{"Flensburg", "Kiel", 4},
		{"Kiel", "Hamburg", 8},
		{"Kiel", "Lubeck", 4},
		{"Lubeck", "Hamburg", 6},
		{"Lubeck", "Schwerin", 6},
		{"Hamburg", "Cuxhaven", 11},
		{"Hamburg", "Bremen", 11},
		{"Hamburg", "Hannover", 17},
		{"Hamburg", "Schwerin", 8},
		{"Cuxhaven", "Bremen", 11},
		{"Bremen", "Wilhelmshaven", 11},
		{"Bremen", "Hannover", 10},
		{"Bremen", "Osnabruck", 11},
		{"Wilhelmshaven", "Osnabruck", 14},
		{"Schwerin", "Rostock", 6},
		{"Schwerin", "Torgelow", 19},
		{"Schwerin", "Berlin", 18},
		{"Schwerin", "Magdeburg", 16},
		{"Rostock", "Torgelow", 19},
		{"Torgelow", "Berlin", 15},
		{"Berlin", "Frankfurt-Oder", 6},
		{"Berlin", "Magdeburg", 10},
		{"Berlin", "Halle", 17},
		{"Frankfurt-Oder", "Halle", 21},
		{"Magdeburg", "Halle", 11},
		{"Magdeburg", "Hannover", 15},
		{"Halle", "Kassel", 21},
		{"Hannover", "Kassel", 15},
		{"Hannover", "Osnabruck", 16},
		{"Osnabruck", "Munster", 7},
		{"Munster", "Essen", 6},
		{"Munster", "Dortmund", 2},
		{"Essen", "Dortmund", 4},
		{"Essen", "Dusseldorf", 2},
		{"Dortmund", "Kassel", 18},
	})

	cards := map[string]CardConfig{
		"3":     {Type: "oil", ResourceNumber: 2, CitiesToPower: 1},
		"4":     {Type: "coal", ResourceNumber: 2, CitiesToPower: 1},
		"5":     {Type: "hybrid", ResourceNumber: 2, CitiesToPower: 1},
		"6":     {Type: "trash", ResourceNumber: 1, CitiesToPower: 1},
		"7":     {Type: "oil", ResourceNumber: 3, CitiesToPower: 2},
		"8":     {Type: "coal", ResourceNumber: 3, CitiesToPower: 2},
		"9":     {Type: "oil", ResourceNumber: 1, CitiesToPower: 1},
		"10":    {Type: "coal", ResourceNumber: 2, CitiesToPower: 2},
		"11":    {Type: "uranium", ResourceNumber: 1, CitiesToPower: 2},
		"12":    {Type: "hybrid", ResourceNumber: 2, CitiesToPower: 2},
		"13":    {Type: "renewable", ResourceNumber: 0, CitiesToPower: 1},
		"14":    {Type: "trash", ResourceNumber: 2, CitiesToPower: 2},
		"15":    {Type: "coal", ResourceNumber: 2, CitiesToPower: 3},
		"16":    {Type: "oil", ResourceNumber: 2, CitiesToPower: 3},
		"17":    {Type: "uranium", ResourceNumber: 1, CitiesToPower: 2},
		"18":    {Type: "renewable", ResourceNumber: 0, CitiesToPower: 2},
		"19":    {Type: "trash", ResourceNumber: 2, CitiesToPower: 3},
		"20":    {Type: "coal", ResourceNumber: 3, CitiesToPower: 5},
		"21":    {Type: "hybrid", ResourceNumber: 2, CitiesToPower: 4},
		"22":    {Type: "renewable", ResourceNumber: 0, CitiesToPower: 2},
		"23":    {Type: "uranium", ResourceNumber: 1, CitiesToPower: 3},
		"24":    {Type: "trash", ResourceNumber: 2, CitiesToPower: 4},
		"25":    {Type: "coal", ResourceNumber: 2, CitiesToPower: 5},
		"26":    {Type: "oil", ResourceNumber: 2, CitiesToPower: 5},
		"27":    {Type: "renewable", ResourceNumber: 0, CitiesToPower: 3},
		"28":    {Type: "uranium", ResourceNumber: 1, CitiesToPower: 4},
		"29":    {Type: "hybrid", ResourceNumber: 1, CitiesToPower: 4},
		"30":    {Type: "trash", ResourceNumber: 3, CitiesToPower: 6},
		"31":    {Type: "coal", ResourceNumber: 3, CitiesToPower: 6},
		"32":    {Type: "oil", ResourceNumber: 3, CitiesToPower: 6},
		"33":    {Type: "renewable", ResourceNumber: 0, CitiesToPower: 4},
		"34":    {Type: "uranium", ResourceNumber: 1, CitiesToPower: 5},
		"35":    {Type: "oil", ResourceNumber: 1, CitiesToPower: 5},
		"36":    {Type: "coal", ResourceNumber: 3, CitiesToPower: 7},
		"37":    {Type: "renewable", ResourceNumber: 0, CitiesToPower: 4},
		"38":    {Type: "trash", ResourceNumber: 3, CitiesToPower: 7},
		"39":    {Type: "uranium", ResourceNumber: 1, CitiesToPower: 6},
		"40":    {Type: "oil", ResourceNumber: 2, CitiesToPower: 6},
		"42":    {Type: "coal", ResourceNumber: 2, CitiesToPower: 6},
		"44":    {Type: "renewable", ResourceNumber: 0, CitiesToPower: 5},
		"46":    {Type: "hybrid", ResourceNumber: 3, CitiesToPower: 7},
		"50":    {Type: "renewable", ResourceNumber: 0, CitiesToPower: 6},
		"step3": {Type: "renewable", ResourceNumber: 0, CitiesToPower: 0},
	}

	return &GameConfig{
		Name:          "germany-4p",
		Description:   "Four-player Germany setup with preset starting kits",
		StartingMoney: 50,
		Players: []PlayerConfig{
			{
				Name: "Player 1", Color: "#FF0000",
				PowerPlants: []string{"16", "21"},
				Resources: map[string]ResourceSet{
					"16": {Oil: 4},
					"21": {Coal: 1, Oil: 1},
				},
			},
			{
				Name: "Player 2", Color: "#0000FF",
				PowerPlants: []string{"19"},
				Resources: map[string]ResourceSet{
					"19": {Trash: 3},
				},
			},
			{
				Name: "Player 3", Color: "#008000",
				PowerPlants: []string{"11", "18", "12"},
				Resources: map[string]ResourceSet{
					"11": {Uranium: 1},
					"12": {Coal: 2},
				},
			},
			{
				Name: "Player 4", Color: "#655802",
				PowerPlants: []string{"15", "34"},
				Resources: map[string]ResourceSet{
					"15": {Coal: 2},
					"34": {Uranium: 2},
				},
			},
		},
		Cards:  cards,
		Cities: cities,
		RegionLimits: map[int]int{
			2: 3, 3: 3, 4: 4, 5: 5, 6: 5,
		},
		PayoutTable: []int{
			10, 22, 33, 44, 54, 64, 73, 82, 90, 98,
			105, 112, 118, 124, 129, 134, 138, 142, 145, 148, 150,
		},
		ResourceTotals: map[ResourceType]int{
			Coal: 24, Oil: 24, Trash: 24, Uranium: 12,
		},
		InitialLadder: map[ResourceType][]SlotConfig{
			Coal: ladderFromLayout([]ladderRun{
				{1, 3, true}, {2, 3, true}, {3, 3, true}, {4, 3, true},
				{5, 3, true}, {6, 3, true}, {7, 3, true}, {8, 3, true},
			}),
			Oil: ladderFromLayout([]ladderRun{
				{1, 3, false}, {2, 3, false}, {3, 3, true}, {4, 3, true},
				{5, 3, true}, {6, 3, true}, {7, 3, true}, {8, 3, true},
			}),
			Trash: ladderFromLayout([]ladderRun{
				{1, 3, false}, {2, 3, false}, {3, 3, false}, {4, 3, false},
				{5, 3, false}, {6, 3, false}, {7, 3, true}, {8, 3, true},
			}),
			Uranium: ladderFromLayout([]ladderRun{
				{1, 1, false}, {2, 1, false}, {3, 1, false}, {4, 1, false},
				{5, 1, false}, {6, 1, false}, {7, 1, false}, {8, 1, false},
				{10, 1, false}, {12, 1, false}, {14, 1, true}, {16, 1, true},
			}),
		},
		RefillRates: map[int]map[int]map[ResourceType]int{
			1: {
				2: {Coal: 3, Oil: 2, Trash: 1, Uranium: 1},
				3: {Coal: 4, Oil: 2, Trash: 1, Uranium: 1},
				4: {Coal: 5, Oil: 3, Trash: 2, Uranium: 1},
				5: {Coal: 5, Oil: 4, Trash: 3, Uranium: 2},
				6: {Coal: 7, Oil: 5, Trash: 3, Uranium: 2},
			},
			2: {
				2: {Coal: 4, Oil: 2, Trash: 2, Uranium: 1},
				3: {Coal: 5, Oil: 3, Trash: 2, Uranium: 1},
				4: {Coal: 6, Oil: 4, Trash: 3, Uranium: 2},
				5: {Coal: 7, Oil: 5, Trash: 3, Uranium: 3},
				6: {Coal: 9, Oil: 6, Trash: 5, Uranium: 3},
			},
			3: {
				2: {Coal: 3, Oil: 4, Trash: 3, Uranium: 1},
				3: {Coal: 3, Oil: 4, Trash: 3, Uranium: 1},
				4: {Coal: 4, Oil: 5, Trash: 4, Uranium: 2},
				5: {Coal: 5, Oil: 6, Trash: 5, Uranium: 2},
				6: {Coal: 6, Oil: 7, Trash: 6, Uranium: 3},
			},
		},
		InitialMarket: []string{"3", "4", "5", "6", "7", "8", "9", "10"},
		FirstDraw:     "13",
		StepThreeCard: "step3",
	}
}
