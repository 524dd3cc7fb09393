package engine

import "log"

// Slot is one position on a resource ladder: a price tag that either holds a
// purchasable token or sits empty.
type Slot struct {
	Price     int  `json:"price"`
	Available bool `json:"available"`
}

// ResourceMarket holds the four priced token ladders plus the off-board
// reserve pool each ladder refills from.
//
// Invariant, checked by the conservation tests: for every type,
// available-on-ladder + reserve + tokens-held-by-players == Total(type).
type ResourceMarket struct {
	ladders map[ResourceType][]Slot
	reserve map[ResourceType]int
	totals  map[ResourceType]int
	refill  map[int]map[int]map[ResourceType]int // step -> player count -> rate
}

// NewResourceMarket builds the market from the configured ladder layout. The
// reserve starts as everything in the fixed total that is not already sitting
// on a ladder slot.
func NewResourceMarket(cfg *GameConfig) *ResourceMarket {
	m := &ResourceMarket{
		ladders: make(map[ResourceType][]Slot, len(ResourceTypes)),
		reserve: make(map[ResourceType]int, len(ResourceTypes)),
		totals:  make(map[ResourceType]int, len(ResourceTypes)),
		refill:  cfg.RefillRates,
	}
	for _, t := range ResourceTypes {
		slots := make([]Slot, len(cfg.InitialLadder[t]))
		for i, s := range cfg.InitialLadder[t] {
			slots[i] = Slot{Price: s.Price, Available: s.Available}
		}
		m.ladders[t] = slots
		m.totals[t] = cfg.ResourceTotals[t]
		m.reserve[t] = cfg.ResourceTotals[t] - m.AvailableCount(t)
		if m.reserve[t] < 0 {
			log.Printf("[market] %s ladder exposes %d tokens but total supply is only %d", t, m.AvailableCount(t), cfg.ResourceTotals[t])
			m.reserve[t] = 0
		}
	}
	return m
}

// AbsorbInitialHoldings grows the fixed totals by tokens players start the
// game already holding. Those tokens exist outside the bank's ladder and
// reserve, so the totals must account for them for conservation to hold.
func (m *ResourceMarket) AbsorbInitialHoldings(held ResourceSet) {
	for t, n := range held {
		m.totals[t] += n
	}
}

// CheapestPrice returns the price of the lowest-priced available token of
// type t without removing it. ok is false when the ladder is sold out.
func (m *ResourceMarket) CheapestPrice(t ResourceType) (price int, ok bool) {
	for _, s := range m.ladders[t] {
		if s.Available {
			return s.Price, true
		}
	}
	return 0, false
}

// RemoveCheapest takes the lowest-priced available token of type t off the
// ladder and returns its price. Purchases always consume the cheapest token
// first.
func (m *ResourceMarket) RemoveCheapest(t ResourceType) (price int, ok bool) {
	ladder := m.ladders[t]
	for i := range ladder {
		if ladder[i].Available {
			ladder[i].Available = false
			return ladder[i].Price, true
		}
	}
	return 0, false
}

// AddBackLatest undoes the most recent purchase of type t: within the
// contiguous run of empty slots at the cheap end of the ladder, the last one
// is exactly the slot the latest purchase emptied. Returns the restored price,
// or ok=false when there is nothing to restore.
func (m *ResourceMarket) AddBackLatest(t ResourceType) (price int, ok bool) {
	ladder := m.ladders[t]
	last := -1
	for i := range ladder {
		if !ladder[i].Available {
			last = i
		} else {
			break
		}
	}
	if last == -1 {
		return 0, false
	}
	ladder[last].Available = true
	return ladder[last].Price, true
}

// Refill restocks the ladders from the reserve at the configured rate for
// (step, player count). Tokens re-enter at the expensive end: the highest
// empty slots are filled first, in descending order.
func (m *ResourceMarket) Refill(playerCount, step int) {
	steps, ok := m.refill[step]
	if !ok {
		log.Printf("[market] no refill rates for step %d", step)
		return
	}
	rates, ok := steps[playerCount]
	if !ok {
		log.Printf("[market] no refill rates for %d players at step %d", playerCount, step)
		return
	}
	for t, rate := range rates {
		ladder := m.ladders[t]
		var empty []int
		for i := range ladder {
			if !ladder[i].Available {
				empty = append(empty, i)
			}
		}
		n := rate
		if n > len(empty) {
			n = len(empty)
		}
		if n > m.reserve[t] {
			n = m.reserve[t]
		}
		for i := 0; i < n; i++ {
			ladder[empty[len(empty)-1-i]].Available = true
			m.reserve[t]--
		}
	}
}

// ReturnToReserve puts n consumed tokens of type t back into the off-board
// pool. They only become purchasable again through a future refill.
func (m *ResourceMarket) ReturnToReserve(t ResourceType, n int) {
	if n > 0 {
		m.reserve[t] += n
	}
}

// AvailableCount returns how many tokens of type t are purchasable right now.
func (m *ResourceMarket) AvailableCount(t ResourceType) int {
	n := 0
	for _, s := range m.ladders[t] {
		if s.Available {
			n++
		}
	}
	return n
}

// Reserve returns the off-board pool size for type t.
func (m *ResourceMarket) Reserve(t ResourceType) int {
	return m.reserve[t]
}

// Total returns the fixed total supply for type t.
func (m *ResourceMarket) Total(t ResourceType) int {
	return m.totals[t]
}

// Ladder returns a copy of the ladder for type t.
func (m *ResourceMarket) Ladder(t ResourceType) []Slot {
	out := make([]Slot, len(m.ladders[t]))
	copy(out, m.ladders[t])
	return out
}
