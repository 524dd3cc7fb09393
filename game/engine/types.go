package engine

// ResourceType identifies one of the four fuel token types traded on the
// resource market.
type ResourceType string

const (
	Coal    ResourceType = "coal"
	Oil     ResourceType = "oil"
	Trash   ResourceType = "trash"
	Uranium ResourceType = "uranium"
)

// ResourceTypes lists all fuel types in display order.
var ResourceTypes = []ResourceType{Coal, Oil, Trash, Uranium}

// Valid reports whether t is one of the known fuel types.
func (t ResourceType) Valid() bool {
	switch t {
	case Coal, Oil, Trash, Uranium:
		return true
	}
	return false
}

// PlantType classifies a power plant card by the fuel it burns.
type PlantType string

const (
	PlantCoal      PlantType = "coal"
	PlantOil       PlantType = "oil"
	PlantTrash     PlantType = "trash"
	PlantUranium   PlantType = "uranium"
	PlantHybrid    PlantType = "hybrid"    // burns coal or oil interchangeably
	PlantRenewable PlantType = "renewable" // needs no fuel at all
)

// Valid reports whether t is one of the known plant types.
func (t PlantType) Valid() bool {
	switch t {
	case PlantCoal, PlantOil, PlantTrash, PlantUranium, PlantHybrid, PlantRenewable:
		return true
	}
	return false
}

// Phase is one of the four phases a round cycles through.
type Phase string

const (
	PhaseAuction     Phase = "Auction"
	PhaseResources   Phase = "Resources"
	PhaseHouses      Phase = "Houses"
	PhaseBureaucracy Phase = "Bureaucracy"
)

// Phases is the fixed phase rotation. The round counter increments every time
// the rotation re-enters Auction.
var Phases = []Phase{PhaseAuction, PhaseResources, PhaseHouses, PhaseBureaucracy}

const (
	// MaxPlantsPerPlayer is the hard cap on simultaneously owned plants.
	// Winning a fourth plant at auction forces a discard.
	MaxPlantsPerPlayer = 3

	// PlantCapacityFactor scales resource_number into the storage cap of a
	// plant: a plant may hold at most 2x the units it burns per cycle.
	PlantCapacityFactor = 2

	// MaxStep is the highest game step.
	MaxStep = 3
)

// ResourceSet is a multiset of fuel tokens keyed by type.
type ResourceSet map[ResourceType]int

// NewResourceSet returns an empty set.
func NewResourceSet() ResourceSet {
	return make(ResourceSet)
}

// Total returns the number of tokens in the set across all types.
func (s ResourceSet) Total() int {
	n := 0
	for _, c := range s {
		n += c
	}
	return n
}

// Clone returns a copy of the set, dropping zero entries.
func (s ResourceSet) Clone() ResourceSet {
	out := make(ResourceSet, len(s))
	for t, c := range s {
		if c > 0 {
			out[t] = c
		}
	}
	return out
}

// AddAll merges other into s.
func (s ResourceSet) AddAll(other ResourceSet) {
	for t, c := range other {
		if c > 0 {
			s[t] += c
		}
	}
}

// Card is an immutable power plant definition from the catalog.
type Card struct {
	ID             string    `json:"id"`
	Type           PlantType `json:"type"`
	ResourceNumber int       `json:"resource_number"` // fuel units burned per generation cycle
	CitiesToPower  int       `json:"cities_to_power"`
}

// Value returns the numeric worth of the card, used for the opening bid and
// for market ordering. The step-3 marker card has no numeric worth.
func (c *Card) Value() int {
	return cardValue(c.ID)
}

// IsRenewable reports whether the plant runs without fuel.
func (c *Card) IsRenewable() bool {
	return c.Type == PlantRenewable
}

// IsHybrid reports whether the plant burns coal or oil interchangeably.
func (c *Card) IsHybrid() bool {
	return c.Type == PlantHybrid
}

// OwnedPlant is a power plant in a player's possession together with the fuel
// tokens stored on it. The four counters partition tokens by what they are
// earmarked for; on_card + to_purchase (or on_hold, which replaces to_purchase
// during a forced-discard reallocation) never exceeds the plant capacity.
type OwnedPlant struct {
	Card       *Card       `json:"card"`
	OnCard     ResourceSet `json:"on_card"`     // stored, available for committing
	ToPurchase ResourceSet `json:"to_purchase"` // pending market purchases this turn
	ToPower    ResourceSet `json:"to_power"`    // committed for the next generation cycle
	OnHold     ResourceSet `json:"on_hold"`     // pending reallocation from a leftover bucket
}

// NewOwnedPlant wraps a catalog card with empty token counters.
func NewOwnedPlant(card *Card) *OwnedPlant {
	return &OwnedPlant{
		Card:       card,
		OnCard:     NewResourceSet(),
		ToPurchase: NewResourceSet(),
		ToPower:    NewResourceSet(),
		OnHold:     NewResourceSet(),
	}
}

// Capacity returns the maximum number of tokens the plant can store.
func (p *OwnedPlant) Capacity() int {
	return PlantCapacityFactor * p.Card.ResourceNumber
}

// Committed returns the number of tokens counting against capacity.
func (p *OwnedPlant) Committed() int {
	return p.OnCard.Total() + p.ToPurchase.Total() + p.ToPower.Total() + p.OnHold.Total()
}

// Player is one seat at the table. Players are referenced by stable ID
// everywhere; slices of players are ordered turn sequences, never identity
// containers.
type Player struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	Color          string        `json:"color"`
	Money          int           `json:"money"`
	MoneyToPay     int           `json:"money_to_pay"` // pending resource bill, reset on purchase confirmation
	Cities         []string      `json:"cities"`       // owned cities in build order
	Plants         []*OwnedPlant `json:"plants"`
	PhaseCompleted bool          `json:"phase_completed"`
	Leftover       ResourceSet   `json:"leftover"` // stranded tokens awaiting reallocation
}

// Plant returns the owned plant for cardID, or nil.
func (p *Player) Plant(cardID string) *OwnedPlant {
	for _, pl := range p.Plants {
		if pl.Card.ID == cardID {
			return pl
		}
	}
	return nil
}

// OwnsCity reports whether the player has a house in city.
func (p *Player) OwnsCity(city string) bool {
	for _, c := range p.Cities {
		if c == city {
			return true
		}
	}
	return false
}

// HighestPlantValue returns the numeric value of the player's best plant, the
// secondary key of the turn-order sort. Players without plants rank lowest.
func (p *Player) HighestPlantValue() int {
	best := -1
	for _, pl := range p.Plants {
		if v := pl.Card.Value(); v > best {
			best = v
		}
	}
	return best
}

// HeldResources sums every token the player holds anywhere: stored, pending
// purchase, committed for power, on hold, and stranded in the leftover bucket.
// Used by the market conservation accounting.
func (p *Player) HeldResources() ResourceSet {
	held := NewResourceSet()
	for _, pl := range p.Plants {
		held.AddAll(pl.OnCard)
		held.AddAll(pl.ToPurchase)
		held.AddAll(pl.ToPower)
		held.AddAll(pl.OnHold)
	}
	held.AddAll(p.Leftover)
	return held
}
