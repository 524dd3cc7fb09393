package engine

// PlantView is the serializable state of one owned plant.
type PlantView struct {
	CardID         string      `json:"card_id"`
	Type           PlantType   `json:"type"`
	ResourceNumber int         `json:"resource_number"`
	CitiesToPower  int         `json:"cities_to_power"`
	OnCard         ResourceSet `json:"on_card"`
	ToPurchase     ResourceSet `json:"to_purchase,omitempty"`
	ToPower        ResourceSet `json:"to_power,omitempty"`
	OnHold         ResourceSet `json:"on_hold,omitempty"`
}

// PlayerView is the serializable state of one seat.
type PlayerView struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Color          string      `json:"color"`
	Money          int         `json:"money"`
	MoneyToPay     int         `json:"money_to_pay,omitempty"`
	Cities         []string    `json:"cities"`
	Plants         []PlantView `json:"plants"`
	PhaseCompleted bool        `json:"phase_completed"`
	Leftover       ResourceSet `json:"leftover,omitempty"`
}

// AuctionView is the serializable state of a running auction.
type AuctionView struct {
	CardID              string   `json:"card_id"`
	CurrentBid          int      `json:"current_bid"`
	InitialBidSubmitted bool     `json:"initial_bid_submitted"`
	ActiveBidder        string   `json:"active_bidder"`
	ActiveBidderName    string   `json:"active_bidder_name"`
	Passed              []string `json:"passed,omitempty"`
}

// CityView is one city plus its current build state.
type CityView struct {
	Region   string   `json:"region"`
	X        int      `json:"x"`
	Y        int      `json:"y"`
	Builders []string `json:"builders,omitempty"` // player IDs in build order
}

// Snapshot is a full serializable copy of the observable game state, built
// fresh on request. Mutating a snapshot never touches the engine.
type Snapshot struct {
	Name           string                     `json:"name"`
	Phase          Phase                      `json:"phase"`
	Round          int                        `json:"round"`
	Step           int                        `json:"step"`
	CurrentPlayer  string                     `json:"current_player"`
	Players        []PlayerView               `json:"players"`
	PlantMarket    []string                   `json:"plant_market"`
	DeckRemaining  int                        `json:"deck_remaining"`
	Ladders        map[ResourceType][]Slot    `json:"ladders"`
	Reserve        map[ResourceType]int       `json:"reserve"`
	Cities         map[string]CityView        `json:"cities"`
	Auction        *AuctionView               `json:"auction,omitempty"`
	PendingDiscard string                     `json:"pending_discard,omitempty"` // player who must discard
}

// Snapshot returns the current observable state.
func (e *GameEngine) Snapshot() *Snapshot {
	s := &Snapshot{
		Name:          e.config.Name,
		Phase:         e.Phase(),
		Round:         e.round,
		Step:          e.step,
		CurrentPlayer: e.CurrentPlayer().ID,
		PlantMarket:   e.plantMarket.Cards(),
		DeckRemaining: e.deck.Remaining(),
		Ladders:       make(map[ResourceType][]Slot, len(ResourceTypes)),
		Reserve:       make(map[ResourceType]int, len(ResourceTypes)),
		Cities:        make(map[string]CityView, e.network.Size()),
	}
	for _, t := range ResourceTypes {
		s.Ladders[t] = e.market.Ladder(t)
		s.Reserve[t] = e.market.Reserve(t)
	}
	for _, p := range e.players {
		s.Players = append(s.Players, playerView(p))
	}
	for name, cfg := range e.config.Cities {
		s.Cities[name] = CityView{
			Region:   cfg.Region,
			X:        cfg.Position[0],
			Y:        cfg.Position[1],
			Builders: e.board.Builders(name),
		}
	}
	if e.auction != nil {
		active := e.auction.ActiveBidder()
		s.Auction = &AuctionView{
			CardID:              e.auction.CardID,
			CurrentBid:          e.auction.CurrentBid,
			InitialBidSubmitted: e.auction.InitialBidSubmitted,
			ActiveBidder:        active.ID,
			ActiveBidderName:    active.Name,
			Passed:              e.auction.PassedIDs(),
		}
	}
	if e.pendingWin != nil {
		s.PendingDiscard = e.pendingWin.PlayerID
	}
	return s
}

func playerView(p *Player) PlayerView {
	v := PlayerView{
		ID:             p.ID,
		Name:           p.Name,
		Color:          p.Color,
		Money:          p.Money,
		MoneyToPay:     p.MoneyToPay,
		Cities:         append([]string(nil), p.Cities...),
		PhaseCompleted: p.PhaseCompleted,
		Leftover:       p.Leftover.Clone(),
	}
	for _, pl := range p.Plants {
		v.Plants = append(v.Plants, PlantView{
			CardID:         pl.Card.ID,
			Type:           pl.Card.Type,
			ResourceNumber: pl.Card.ResourceNumber,
			CitiesToPower:  pl.Card.CitiesToPower,
			OnCard:         pl.OnCard.Clone(),
			ToPurchase:     pl.ToPurchase.Clone(),
			ToPower:        pl.ToPower.Clone(),
			OnHold:         pl.OnHold.Clone(),
		})
	}
	return v
}
