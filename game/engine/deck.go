package engine

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strconv"
)

// cardValue parses a card ID into its numeric worth. The step-3 marker (or
// anything non-numeric) sorts after every real card and cannot be bid on.
func cardValue(id string) int {
	v, err := strconv.Atoi(id)
	if err != nil {
		return math.MaxInt32
	}
	return v
}

// Catalog is the immutable power plant card collection loaded at startup.
type Catalog struct {
	cards map[string]*Card
}

// NewCatalog builds the catalog from config entries.
func NewCatalog(cfg map[string]CardConfig) (*Catalog, error) {
	c := &Catalog{cards: make(map[string]*Card, len(cfg))}
	for id, cc := range cfg {
		t := PlantType(cc.Type)
		if !t.Valid() {
			return nil, fmt.Errorf("card %s: invalid plant type %q", id, cc.Type)
		}
		c.cards[id] = &Card{
			ID:             id,
			Type:           t,
			ResourceNumber: cc.ResourceNumber,
			CitiesToPower:  cc.CitiesToPower,
		}
	}
	return c, nil
}

// Card looks up a card definition by ID.
func (c *Catalog) Card(id string) (*Card, bool) {
	card, ok := c.cards[id]
	return card, ok
}

// Size returns the number of cards in the catalog.
func (c *Catalog) Size() int {
	return len(c.cards)
}

// Deck is the ordered draw pile of power plant cards.
type Deck struct {
	catalog *Catalog
	stack   []string
}

// NewDeck starts with every catalog card in the pile, unordered until
// PrepareInitial is called.
func NewDeck(catalog *Catalog) *Deck {
	d := &Deck{catalog: catalog}
	for id := range catalog.cards {
		d.stack = append(d.stack, id)
	}
	sort.Slice(d.stack, func(i, j int) bool { return cardValue(d.stack[i]) < cardValue(d.stack[j]) })
	return d
}

// PrepareInitial sets up the opening draw pile: the given removals leave the
// deck to seed the opening market, the rest is shuffled with firstDraw forced
// on top and the step-3 marker on the bottom. Returns the removed IDs, which
// form the opening market.
func (d *Deck) PrepareInitial(removals []string, firstDraw, stepThree string, rng *rand.Rand) []string {
	for _, id := range removals {
		d.remove(id)
	}
	d.remove(firstDraw)
	d.remove(stepThree)
	rng.Shuffle(len(d.stack), func(i, j int) {
		d.stack[i], d.stack[j] = d.stack[j], d.stack[i]
	})
	d.stack = append([]string{firstDraw}, d.stack...)
	d.stack = append(d.stack, stepThree)

	market := make([]string, len(removals))
	copy(market, removals)
	return market
}

func (d *Deck) remove(id string) {
	for i, c := range d.stack {
		if c == id {
			d.stack = append(d.stack[:i], d.stack[i+1:]...)
			return
		}
	}
}

// Draw takes the top card off the pile.
func (d *Deck) Draw() (string, bool) {
	if len(d.stack) == 0 {
		return "", false
	}
	top := d.stack[0]
	d.stack = d.stack[1:]
	return top, true
}

// PutBack returns a card to the bottom of the pile.
func (d *Deck) PutBack(id string) {
	d.stack = append(d.stack, id)
}

// Remaining returns the number of cards left to draw.
func (d *Deck) Remaining() int {
	return len(d.stack)
}

// PlantMarket is the ordered list of card IDs currently up for auction.
type PlantMarket struct {
	cards []string
}

// NewPlantMarket creates a market seeded with the given card IDs.
func NewPlantMarket(ids []string) *PlantMarket {
	m := &PlantMarket{}
	for _, id := range ids {
		m.Add(id)
	}
	return m
}

// Add inserts a card and re-sorts the market ascending by value; the step-3
// marker always sorts last.
func (m *PlantMarket) Add(id string) {
	m.cards = append(m.cards, id)
	sort.Slice(m.cards, func(i, j int) bool { return cardValue(m.cards[i]) < cardValue(m.cards[j]) })
}

// Remove takes the card out of the market. Reports whether it was present.
func (m *PlantMarket) Remove(id string) bool {
	for i, c := range m.cards {
		if c == id {
			m.cards = append(m.cards[:i], m.cards[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveLowest discards the cheapest card in the market.
// No game rule invokes this today; it exists for market-size capping.
func (m *PlantMarket) RemoveLowest() (string, bool) {
	if len(m.cards) == 0 {
		return "", false
	}
	lowest := m.cards[0]
	m.cards = m.cards[1:]
	return lowest, true
}

// Contains reports whether the card is currently in the market.
func (m *PlantMarket) Contains(id string) bool {
	for _, c := range m.cards {
		if c == id {
			return true
		}
	}
	return false
}

// Cards returns a copy of the market in display order.
func (m *PlantMarket) Cards() []string {
	out := make([]string, len(m.cards))
	copy(out, m.cards)
	return out
}
