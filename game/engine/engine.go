package engine

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
)

// pendingPlantWin is a settled auction waiting for the winner to pick which
// of their three plants to give up for the new one.
type pendingPlantWin struct {
	PlayerID string
	CardID   string
	Price    int
}

// GameEngine owns all mutable game state and is the only mutation path into
// it. One external action is processed to completion per call; every
// multi-step mutation is validated fully before the first write.
type GameEngine struct {
	config      *GameConfig
	catalog     *Catalog
	network     *CityNetwork
	board       *Board
	market      *ResourceMarket
	deck        *Deck
	plantMarket *PlantMarket
	players     []*Player
	auction     *Auction
	pendingWin  *pendingPlantWin

	step            int
	phaseIndex      int
	round           int
	currentPlayer   int
	maxRegions      int
	occupiedRegions map[string]bool

	rng     *rand.Rand
	started bool
}

// NewEngine creates an engine for the given configuration with a
// time-seeded shuffle source.
func NewEngine(config *GameConfig) (*GameEngine, error) {
	return NewEngineSeeded(config, time.Now().UnixNano())
}

// NewEngineSeeded creates an engine with a deterministic shuffle source,
// which pins down player order and deck order for tests.
func NewEngineSeeded(config *GameConfig, seed int64) (*GameEngine, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	catalog, err := NewCatalog(config.Cards)
	if err != nil {
		return nil, err
	}

	e := &GameEngine{
		config:          config,
		catalog:         catalog,
		network:         NewCityNetwork(config.Cities),
		market:          NewResourceMarket(config),
		deck:            NewDeck(catalog),
		step:            1,
		phaseIndex:      -1,
		round:           1,
		maxRegions:      config.RegionLimits[len(config.Players)],
		occupiedRegions: make(map[string]bool),
		rng:             rand.New(rand.NewSource(seed)),
	}
	e.board = NewBoard(e.network)

	if err := e.initPlayers(); err != nil {
		return nil, err
	}

	opening := e.deck.PrepareInitial(config.InitialMarket, config.FirstDraw, config.StepThreeCard, e.rng)
	e.plantMarket = NewPlantMarket(opening)

	held := NewResourceSet()
	for _, p := range e.players {
		held.AddAll(p.HeldResources())
	}
	e.market.AbsorbInitialHoldings(held)

	e.nextPhase() // enters Auction; round stays 1 on the first entry
	e.started = true
	return e, nil
}

// initPlayers builds the roster. Seats keep the configured name order, but
// the preset plant/resource kits are dealt out randomly, as on the physical
// table.
func (e *GameEngine) initPlayers() error {
	n := len(e.config.Players)
	kit := make([]int, n)
	for i := range kit {
		kit[i] = i
	}
	e.rng.Shuffle(n, func(i, j int) { kit[i], kit[j] = kit[j], kit[i] })

	for i, pc := range e.config.Players {
		p := &Player{
			ID:       uuid.NewString(),
			Name:     pc.Name,
			Color:    pc.Color,
			Money:    e.config.StartingMoney,
			Leftover: NewResourceSet(),
		}
		preset := e.config.Players[kit[i]]
		for _, cardID := range preset.PowerPlants {
			card, ok := e.catalog.Card(cardID)
			if !ok {
				return fmt.Errorf("player %s: preset plant %s not in catalog", pc.Name, cardID)
			}
			plant := NewOwnedPlant(card)
			for t, count := range preset.Resources[cardID] {
				plant.OnCard[t] = count
			}
			p.Plants = append(p.Plants, plant)
			e.deck.remove(cardID)
		}
		e.players = append(e.players, p)
	}
	return nil
}

// Apply processes one action to completion and returns its structured result.
// Rule violations leave state untouched.
func (e *GameEngine) Apply(action Action) *Result {
	switch a := action.(type) {
	case *StartAuction:
		return e.startAuction(a.CardID)
	case *SubmitBid:
		return e.submitBid(a.Amount)
	case *PassBid:
		return e.passBid()
	case *PlayerPass:
		return e.playerPass()
	case *DiscardPlant:
		return e.discardPlant(a.CardID)
	case *AddResourceToPurchase:
		return e.addResourceToPurchase(a)
	case *PutBackResourceToPurchase:
		return e.putBackResourceToPurchase(a)
	case *PurchaseResources:
		return e.purchaseResources()
	case *CanBuildHouse:
		return e.canBuildHouse(a.City)
	case *BuildHouse:
		return e.buildHouse(a)
	case *AddResourceToPower:
		return e.addResourceToPower(a)
	case *RemoveResourceFromPower:
		return e.removeResourceFromPower(a)
	case *GeneratePower:
		return e.generatePower()
	case *MoveResource:
		return e.moveResource(a)
	case *GetPossiblePlantsForLeftover:
		return e.possiblePlantsForLeftover(a)
	case *AddLeftoverOnHold:
		return e.addLeftoverOnHold(a)
	case *PutBackToLeftover:
		return e.putBackToLeftover(a)
	case *ConfirmLeftoverAllocation:
		return e.confirmLeftoverAllocation(a)
	}
	return failf(CodeNotAvailable, "unsupported action %T", action)
}

// Phase returns the current phase.
func (e *GameEngine) Phase() Phase {
	return Phases[e.phaseIndex]
}

// Round returns the current round number.
func (e *GameEngine) Round() int {
	return e.round
}

// Step returns the current game step.
func (e *GameEngine) Step() int {
	return e.step
}

// Players returns the players in current turn order.
func (e *GameEngine) Players() []*Player {
	return e.players
}

// CurrentPlayer returns the player whose turn it is.
func (e *GameEngine) CurrentPlayer() *Player {
	return e.players[e.currentPlayer]
}

func (e *GameEngine) playerByID(id string) *Player {
	for _, p := range e.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// --- phase and turn control -------------------------------------------------

// nextPhase rotates to the next phase, resets per-phase flags and applies the
// phase-entry bookkeeping: round increment, market refill and re-sort on
// Auction, order reversal on Resources.
func (e *GameEngine) nextPhase() {
	e.phaseIndex = (e.phaseIndex + 1) % len(Phases)
	switch Phases[e.phaseIndex] {
	case PhaseAuction:
		if e.started {
			e.round++
			e.market.Refill(len(e.players), e.step)
		}
		e.sortPlayers()
	case PhaseResources:
		// Resources runs in reverse auction order. In round 1 the auction
		// order was random, so the standing sort applies first.
		if e.round == 1 {
			e.sortByStanding()
		}
		e.reversePlayers()
	}
	for _, p := range e.players {
		p.PhaseCompleted = false
	}
	e.currentPlayer = 0
}

func (e *GameEngine) sortPlayers() {
	if e.round == 1 {
		e.rng.Shuffle(len(e.players), func(i, j int) {
			e.players[i], e.players[j] = e.players[j], e.players[i]
		})
		return
	}
	e.sortByStanding()
}

// sortByStanding orders players by descending city count, breaking ties on
// the highest-valued plant.
func (e *GameEngine) sortByStanding() {
	sort.SliceStable(e.players, func(i, j int) bool {
		ci, cj := len(e.players[i].Cities), len(e.players[j].Cities)
		if ci != cj {
			return ci > cj
		}
		return e.players[i].HighestPlantValue() > e.players[j].HighestPlantValue()
	})
}

func (e *GameEngine) reversePlayers() {
	for i, j := 0, len(e.players)-1; i < j; i, j = i+1, j-1 {
		e.players[i], e.players[j] = e.players[j], e.players[i]
	}
}

// determineNextPlayer advances past players who finished the phase. When the
// list is exhausted the phase ends — unless stranded leftover resources still
// await reallocation, which parks the turn on their owner instead.
func (e *GameEngine) determineNextPlayer() {
	if !e.players[e.currentPlayer].PhaseCompleted {
		return
	}
	for e.currentPlayer < len(e.players) && e.players[e.currentPlayer].PhaseCompleted {
		e.currentPlayer++
	}
	if e.currentPlayer < len(e.players) {
		return
	}
	if i := e.leftoverOwnerIndex(); i >= 0 {
		e.currentPlayer = i
		return
	}
	e.nextPhase()
}

func (e *GameEngine) leftoverOwnerIndex() int {
	for i, p := range e.players {
		if p.Leftover.Total() > 0 {
			return i
		}
		for _, pl := range p.Plants {
			if pl.OnHold.Total() > 0 {
				return i
			}
		}
	}
	return -1
}

func (e *GameEngine) requirePhase(phase Phase) *Result {
	if e.Phase() != phase {
		return failf(CodeWrongPhase, "only legal in the %s phase (current: %s)", phase, e.Phase())
	}
	return nil
}

// --- auction ----------------------------------------------------------------

func (e *GameEngine) startAuction(cardID string) *Result {
	if e.Phase() != PhaseAuction {
		return failf(CodeWrongPhase, "auctions can only start in the Auction phase (current: %s)", e.Phase())
	}
	if e.auction != nil {
		return failf(CodeAuctionRunning, "an auction for plant %s is already running", e.auction.CardID)
	}
	if e.pendingWin != nil {
		return failf(CodePendingDiscard, "waiting for %s to discard a plant", e.playerByID(e.pendingWin.PlayerID).Name)
	}
	cur := e.CurrentPlayer()
	if cur.PhaseCompleted {
		return failf(CodeNotYourTurn, "%s already finished the auction phase", cur.Name)
	}
	card, known := e.catalog.Card(cardID)
	if !known {
		return failf(CodeUnknownCard, "unknown power plant %q", cardID)
	}
	if !e.plantMarket.Contains(cardID) {
		return failf(CodeNotAvailable, "plant %s is not in the market", cardID)
	}
	if cardID == e.config.StepThreeCard {
		return failf(CodeNotAvailable, "the step-3 card cannot be auctioned")
	}

	var bidders []Bidder
	for _, p := range e.players {
		if !p.PhaseCompleted {
			bidders = append(bidders, Bidder{ID: p.ID, Name: p.Name, Money: p.Money})
		}
	}
	e.auction = NewAuction(card, bidders)
	return ok("%s opened the auction for plant %s; bidding starts above %d", cur.Name, cardID, e.auction.CurrentBid)
}

func (e *GameEngine) submitBid(amount int) *Result {
	if e.auction == nil {
		return failf(CodeNoAuction, "no auction is running")
	}
	if err := e.auction.SubmitBid(amount); err != nil {
		return fail(err)
	}
	if e.auction.Ended {
		return e.settleAuction()
	}
	return ok("bid of %d accepted; %s is next", amount, e.auction.ActiveBidder().Name)
}

func (e *GameEngine) passBid() *Result {
	if e.auction == nil {
		return failf(CodeNoAuction, "no auction is running")
	}
	if err := e.auction.PassBid(); err != nil {
		return fail(err)
	}
	if e.auction.Ended {
		return e.settleAuction()
	}
	return ok("passed; %s is next", e.auction.ActiveBidder().Name)
}

// settleAuction runs the auction-end bookkeeping: card transfer, market
// restock and turn advancement. A winner already at the plant cap is asked to
// discard before anything is committed.
func (e *GameEngine) settleAuction() *Result {
	a := e.auction
	e.auction = nil
	winner := e.playerByID(a.WinnerID)

	if len(winner.Plants) >= MaxPlantsPerPlayer {
		e.pendingWin = &pendingPlantWin{PlayerID: winner.ID, CardID: a.CardID, Price: a.FinalPrice}
		options := make([]string, 0, len(winner.Plants))
		for _, pl := range winner.Plants {
			options = append(options, pl.Card.ID)
		}
		return &Result{
			Success: true,
			Winner:  winner.ID,
			Price:   a.FinalPrice,
			Message: fmt.Sprintf("%s won plant %s at %d and must discard one plant", winner.Name, a.CardID, a.FinalPrice),
			NeedsInput: &SelectionRequest{
				Kind:     "discard_plant",
				PlayerID: winner.ID,
				Options:  options,
				Resume:   "discard_plant",
			},
		}
	}

	res := e.transferPlant(winner, a.CardID, a.FinalPrice)
	e.determineNextPlayer()
	return res
}

// transferPlant commits a won card: debit, ownership, market restock.
func (e *GameEngine) transferPlant(winner *Player, cardID string, price int) *Result {
	card, _ := e.catalog.Card(cardID)
	winner.Money -= price
	winner.Plants = append(winner.Plants, NewOwnedPlant(card))
	winner.PhaseCompleted = true
	e.plantMarket.Remove(cardID)
	if next, drawn := e.deck.Draw(); drawn {
		e.plantMarket.Add(next)
	}
	return &Result{
		Success: true,
		Winner:  winner.ID,
		Price:   price,
		Message: fmt.Sprintf("%s won the auction for plant %s at %d", winner.Name, cardID, price),
	}
}

func (e *GameEngine) discardPlant(cardID string) *Result {
	if e.pendingWin == nil {
		return failf(CodePendingDiscard, "no plant discard is pending")
	}
	winner := e.playerByID(e.pendingWin.PlayerID)
	old := winner.Plant(cardID)
	if old == nil {
		return failf(CodeUnknownCard, "%s does not own plant %q", winner.Name, cardID)
	}

	pw := e.pendingWin
	e.pendingWin = nil

	stranded := old.DrainAll()
	for i, pl := range winner.Plants {
		if pl.Card.ID == cardID {
			winner.Plants = append(winner.Plants[:i], winner.Plants[i+1:]...)
			break
		}
	}
	e.deck.PutBack(cardID)

	res := e.transferPlant(winner, pw.CardID, pw.Price)
	if stranded.Total() > 0 {
		newPlant := winner.Plant(pw.CardID)
		if err := newPlant.Migrate(stranded); err != nil {
			winner.Leftover.AddAll(stranded)
			res.Message = fmt.Sprintf("%s; %d stranded tokens from plant %s need manual reallocation",
				res.Message, stranded.Total(), cardID)
			res.NeedsInput = &SelectionRequest{
				Kind:     "reallocate_leftover",
				PlayerID: winner.ID,
				Options:  e.plantsHoldingAny(winner, stranded),
				Resume:   "confirm_leftover_allocation",
			}
		} else {
			res.Message = fmt.Sprintf("%s; %d tokens migrated from plant %s", res.Message, stranded.Total(), cardID)
		}
	}
	e.determineNextPlayer()
	return res
}

func (e *GameEngine) plantsHoldingAny(p *Player, res ResourceSet) []string {
	var out []string
	for _, pl := range p.Plants {
		for t, n := range res {
			if n > 0 && pl.CanHold(t) {
				out = append(out, pl.Card.ID)
				break
			}
		}
	}
	return out
}

// --- passing ----------------------------------------------------------------

func (e *GameEngine) playerPass() *Result {
	cur := e.CurrentPlayer()
	if cur.Leftover.Total() > 0 {
		return failf(CodePendingLeftover, "%s must reallocate leftover resources first", cur.Name)
	}

	switch e.Phase() {
	case PhaseAuction:
		if e.auction != nil {
			return failf(CodeAuctionRunning, "cannot leave the phase during a running auction")
		}
		if e.pendingWin != nil && e.pendingWin.PlayerID == cur.ID {
			return failf(CodePendingDiscard, "%s must discard a plant first", cur.Name)
		}
		if e.round == 1 {
			return failf(CodeIllegalPass, "every player must buy a power plant in the first round")
		}
	case PhaseResources:
		if cur.MoneyToPay > 0 {
			return failf(CodePendingPurchase, "%s has pending purchases worth %d; confirm or put them back", cur.Name, cur.MoneyToPay)
		}
	case PhaseBureaucracy:
		for _, pl := range cur.Plants {
			if pl.ToPower.Total() > 0 {
				return failf(CodePendingPower, "%s has resources committed to power; generate or uncommit them", cur.Name)
			}
		}
	}

	cur.PhaseCompleted = true
	e.determineNextPlayer()
	return ok("%s finished the %s phase", cur.Name, e.Phase())
}

// --- resource purchasing ----------------------------------------------------

func (e *GameEngine) addResourceToPurchase(a *AddResourceToPurchase) *Result {
	if res := e.requirePhase(PhaseResources); res != nil {
		return res
	}
	if !a.Type.Valid() {
		return failf(CodeUnknownResource, "unknown resource type %q", a.Type)
	}
	cur := e.CurrentPlayer()

	price, available := e.market.CheapestPrice(a.Type)
	if !available {
		return failf(CodeNotAvailable, "no %s available in the market", a.Type)
	}
	if a.Cost != price {
		return failf(CodeStaleCost, "cheapest %s costs %d, not %d", a.Type, price, a.Cost)
	}
	if cur.MoneyToPay+price > cur.Money {
		return failf(CodeInsufficientFunds, "%s cannot afford another %s at %d (bill %d, money %d)",
			cur.Name, a.Type, price, cur.MoneyToPay, cur.Money)
	}

	var eligible []*OwnedPlant
	for _, pl := range cur.Plants {
		if pl.CanHold(a.Type) {
			eligible = append(eligible, pl)
		}
	}
	if len(eligible) == 0 {
		return failf(CodeCannotHold, "none of %s's plants can store %s", cur.Name, a.Type)
	}

	var target *OwnedPlant
	if a.CardID == "" {
		if len(eligible) > 1 {
			ids := make([]string, len(eligible))
			for i, pl := range eligible {
				ids[i] = pl.Card.ID
			}
			return &Result{
				Success: false,
				Code:    CodeSelectionRequired,
				Message: fmt.Sprintf("several plants can store %s; pick one", a.Type),
				NeedsInput: &SelectionRequest{
					Kind:     "choose_plant",
					PlayerID: cur.ID,
					Options:  ids,
					Resume:   "add_res_to_purchase",
				},
			}
		}
		target = eligible[0]
	} else {
		target = cur.Plant(a.CardID)
		if target == nil {
			return failf(CodeUnknownCard, "%s does not own plant %q", cur.Name, a.CardID)
		}
		if !target.CanHold(a.Type) {
			return failf(CodeCannotHold, "plant %s cannot store %s", a.CardID, a.Type)
		}
	}

	e.market.RemoveCheapest(a.Type)
	target.ToPurchase[a.Type]++
	cur.MoneyToPay += price
	return &Result{Success: true, Cost: price,
		Message: fmt.Sprintf("%s reserved for plant %s at %d (bill: %d)", a.Type, target.Card.ID, price, cur.MoneyToPay)}
}

func (e *GameEngine) putBackResourceToPurchase(a *PutBackResourceToPurchase) *Result {
	if res := e.requirePhase(PhaseResources); res != nil {
		return res
	}
	cur := e.CurrentPlayer()
	plant := cur.Plant(a.CardID)
	if plant == nil {
		return failf(CodeUnknownCard, "%s does not own plant %q", cur.Name, a.CardID)
	}
	if plant.ToPurchase[a.Type] == 0 {
		return failf(CodeNotAvailable, "plant %s has no pending %s purchase", a.CardID, a.Type)
	}
	price, restored := e.market.AddBackLatest(a.Type)
	if !restored {
		return failf(CodeNotAvailable, "the %s ladder has no slot to restore", a.Type)
	}
	plant.ToPurchase[a.Type]--
	cur.MoneyToPay -= price
	return &Result{Success: true, Cost: price,
		Message: fmt.Sprintf("%s returned to the market for %d (bill: %d)", a.Type, price, cur.MoneyToPay)}
}

func (e *GameEngine) purchaseResources() *Result {
	if res := e.requirePhase(PhaseResources); res != nil {
		return res
	}
	cur := e.CurrentPlayer()
	bill := cur.MoneyToPay
	cur.Money -= bill
	cur.MoneyToPay = 0
	for _, pl := range cur.Plants {
		pl.OnCard.AddAll(pl.ToPurchase)
		pl.ToPurchase = NewResourceSet()
	}
	cur.PhaseCompleted = true
	e.determineNextPlayer()
	return ok("%s paid %d for resources", cur.Name, bill)
}

// --- building ---------------------------------------------------------------

func (e *GameEngine) canBuildHouse(city string) *Result {
	if res := e.requirePhase(PhaseHouses); res != nil {
		return res
	}
	cur := e.CurrentPlayer()
	cost, err := e.board.CanBuild(cur, city, e.step, e.maxRegions, e.occupiedRegions)
	if err != nil {
		return fail(err)
	}
	return &Result{Success: true, Cost: cost,
		Message: fmt.Sprintf("%s can build in %s for %d", cur.Name, city, cost)}
}

func (e *GameEngine) buildHouse(a *BuildHouse) *Result {
	if res := e.requirePhase(PhaseHouses); res != nil {
		return res
	}
	cur := e.CurrentPlayer()
	total, err := e.board.CanBuild(cur, a.City, e.step, e.maxRegions, e.occupiedRegions)
	if err != nil {
		return fail(err)
	}
	if a.Cost != total {
		return failf(CodeStaleCost, "building in %s costs %d, not %d", a.City, total, a.Cost)
	}
	e.board.Build(cur, a.City, total, e.occupiedRegions)
	return &Result{Success: true, Cost: total,
		Message: fmt.Sprintf("%s built in %s for %d", cur.Name, a.City, total)}
}

// --- power generation -------------------------------------------------------

func (e *GameEngine) addResourceToPower(a *AddResourceToPower) *Result {
	if res := e.requirePhase(PhaseBureaucracy); res != nil {
		return res
	}
	cur := e.CurrentPlayer()
	plant := cur.Plant(a.CardID)
	if plant == nil {
		return failf(CodeUnknownCard, "%s does not own plant %q", cur.Name, a.CardID)
	}
	if plant.Card.IsRenewable() {
		return failf(CodeCannotHold, "plant %s is renewable and burns no fuel", a.CardID)
	}
	if plant.OnCard[a.Type] == 0 {
		return failf(CodeNotAvailable, "plant %s has no stored %s", a.CardID, a.Type)
	}
	if plant.ToPower.Total() >= plant.Card.ResourceNumber {
		return failf(CodeBadResourceCount, "plant %s already has its %d units committed", a.CardID, plant.Card.ResourceNumber)
	}
	plant.OnCard[a.Type]--
	plant.ToPower[a.Type]++
	return ok("committed one %s on plant %s (%d/%d)", a.Type, a.CardID, plant.ToPower.Total(), plant.Card.ResourceNumber)
}

func (e *GameEngine) removeResourceFromPower(a *RemoveResourceFromPower) *Result {
	if res := e.requirePhase(PhaseBureaucracy); res != nil {
		return res
	}
	cur := e.CurrentPlayer()
	plant := cur.Plant(a.CardID)
	if plant == nil {
		return failf(CodeUnknownCard, "%s does not own plant %q", cur.Name, a.CardID)
	}
	if plant.ToPower[a.Type] == 0 {
		return failf(CodeNotAvailable, "plant %s has no %s committed", a.CardID, a.Type)
	}
	plant.ToPower[a.Type]--
	plant.OnCard[a.Type]++
	return ok("uncommitted one %s on plant %s", a.Type, a.CardID)
}

func (e *GameEngine) generatePower() *Result {
	if res := e.requirePhase(PhaseBureaucracy); res != nil {
		return res
	}
	cur := e.CurrentPlayer()

	// Validate every plant before touching anything.
	powered := 0
	for _, pl := range cur.Plants {
		contribution, err := pl.powerContribution()
		if err != nil {
			return fail(err)
		}
		powered += contribution
	}
	if powered > len(cur.Cities) {
		powered = len(cur.Cities)
	}
	payout := e.config.payoutFor(powered)

	cur.Money += payout
	for _, pl := range cur.Plants {
		for t, n := range pl.ToPower {
			e.market.ReturnToReserve(t, n)
		}
		for t, n := range pl.OnCard {
			e.market.ReturnToReserve(t, n)
		}
		pl.ToPower = NewResourceSet()
		pl.OnCard = NewResourceSet()
	}
	cur.PhaseCompleted = true
	e.determineNextPlayer()
	return &Result{Success: true, Payout: payout,
		Message: fmt.Sprintf("%s powered %d cities and earned %d", cur.Name, powered, payout)}
}

// --- moving and reallocating resources --------------------------------------

func (e *GameEngine) moveResource(a *MoveResource) *Result {
	cur := e.CurrentPlayer()
	src := cur.Plant(a.SourceCard)
	if src == nil {
		return failf(CodeUnknownCard, "%s does not own plant %q", cur.Name, a.SourceCard)
	}
	dst := cur.Plant(a.TargetCard)
	if dst == nil {
		return failf(CodeUnknownCard, "%s does not own plant %q", cur.Name, a.TargetCard)
	}
	if src.OnCard[a.Type] == 0 {
		return failf(CodeNotAvailable, "plant %s has no stored %s", a.SourceCard, a.Type)
	}
	if !dst.CanHold(a.Type) {
		return failf(CodeCannotHold, "plant %s cannot store %s", a.TargetCard, a.Type)
	}
	src.OnCard[a.Type]--
	dst.OnCard[a.Type]++
	return ok("moved one %s from plant %s to plant %s", a.Type, a.SourceCard, a.TargetCard)
}

// leftoverPlayer resolves which player a leftover action targets: the
// explicit ID when given, otherwise the unique player with unresolved
// leftover state.
func (e *GameEngine) leftoverPlayer(explicit string) (*Player, *Result) {
	if explicit != "" {
		p := e.playerByID(explicit)
		if p == nil {
			return nil, failf(CodeNotAvailable, "unknown player %q", explicit)
		}
		return p, nil
	}
	var found *Player
	for _, p := range e.players {
		pending := p.Leftover.Total() > 0
		for _, pl := range p.Plants {
			if pl.OnHold.Total() > 0 {
				pending = true
			}
		}
		if pending {
			if found != nil {
				return nil, failf(CodePendingLeftover, "several players have leftover resources; specify player_id")
			}
			found = p
		}
	}
	if found == nil {
		return nil, failf(CodePendingLeftover, "no leftover resources to reallocate")
	}
	return found, nil
}

func (e *GameEngine) possiblePlantsForLeftover(a *GetPossiblePlantsForLeftover) *Result {
	p, res := e.leftoverPlayer(a.PlayerID)
	if res != nil {
		return res
	}
	if !a.Type.Valid() {
		return failf(CodeUnknownResource, "unknown resource type %q", a.Type)
	}
	var ids []string
	for _, pl := range p.Plants {
		if pl.CanHold(a.Type) {
			ids = append(ids, pl.Card.ID)
		}
	}
	return &Result{Success: true, Plants: ids,
		Message: fmt.Sprintf("%d plants can take %s", len(ids), a.Type)}
}

func (e *GameEngine) addLeftoverOnHold(a *AddLeftoverOnHold) *Result {
	p, res := e.leftoverPlayer(a.PlayerID)
	if res != nil {
		return res
	}
	if p.Leftover[a.Type] == 0 {
		return failf(CodeNotAvailable, "%s has no leftover %s", p.Name, a.Type)
	}
	plant := p.Plant(a.CardID)
	if plant == nil {
		return failf(CodeUnknownCard, "%s does not own plant %q", p.Name, a.CardID)
	}
	if !plant.CanHold(a.Type) {
		return failf(CodeCannotHold, "plant %s cannot store %s", a.CardID, a.Type)
	}
	p.Leftover[a.Type]--
	plant.OnHold[a.Type]++
	return ok("one leftover %s staged on plant %s", a.Type, a.CardID)
}

func (e *GameEngine) putBackToLeftover(a *PutBackToLeftover) *Result {
	p, res := e.leftoverPlayer(a.PlayerID)
	if res != nil {
		return res
	}
	plant := p.Plant(a.CardID)
	if plant == nil {
		return failf(CodeUnknownCard, "%s does not own plant %q", p.Name, a.CardID)
	}
	if plant.OnHold[a.Type] == 0 {
		return failf(CodeNotAvailable, "plant %s has no %s on hold", a.CardID, a.Type)
	}
	plant.OnHold[a.Type]--
	p.Leftover[a.Type]++
	return ok("one %s returned to %s's leftover bucket", a.Type, p.Name)
}

func (e *GameEngine) confirmLeftoverAllocation(a *ConfirmLeftoverAllocation) *Result {
	p, res := e.leftoverPlayer(a.PlayerID)
	if res != nil {
		return res
	}
	staged := 0
	for _, pl := range p.Plants {
		staged += pl.OnHold.Total()
		pl.OnCard.AddAll(pl.OnHold)
		pl.OnHold = NewResourceSet()
	}
	abandoned := p.Leftover.Total()
	for t, n := range p.Leftover {
		e.market.ReturnToReserve(t, n)
	}
	p.Leftover = NewResourceSet()
	e.determineNextPlayer()
	return ok("%s kept %d reallocated tokens, %d returned to the reserve", p.Name, staged, abandoned)
}
