package engine

// Bidder is a participant snapshot the auction works from: a stable player ID
// and the money the player can back a bid with. Money cannot change while an
// auction runs, so the snapshot stays valid until the auction ends.
type Bidder struct {
	ID    string
	Name  string
	Money int
}

// Auction is the sequential bidding state machine for a single card. The
// engine owns the value and drives it; results flow outward through the Ended
// flag and the winner fields, never through back-references.
type Auction struct {
	CardID              string
	CurrentBid          int
	InitialBidSubmitted bool
	Ended               bool
	WinnerID            string
	FinalPrice          int

	bidders     []Bidder
	activeIndex int
	passed      map[string]bool
}

// NewAuction opens bidding on card among the given participants, in order.
// The first participant is the auction starter and bids first; the opening
// bid floor is the card value minus one, so the minimum legal bid equals the
// card value.
func NewAuction(card *Card, bidders []Bidder) *Auction {
	return &Auction{
		CardID:     card.ID,
		CurrentBid: card.Value() - 1,
		bidders:    bidders,
		passed:     make(map[string]bool),
	}
}

// ActiveBidder returns the participant whose turn it is to bid or pass.
func (a *Auction) ActiveBidder() Bidder {
	return a.bidders[a.activeIndex]
}

// SubmitBid places a bid for the active bidder. The bid must strictly exceed
// the current bid and fit within the bidder's money; on failure the auction
// state is untouched and a typed reason comes back.
func (a *Auction) SubmitBid(amount int) error {
	active := a.ActiveBidder()
	if amount > active.Money {
		return ruleErrorf(CodeInsufficientFunds, "%s cannot back a bid of %d with %d", active.Name, amount, active.Money)
	}
	if amount <= a.CurrentBid {
		return ruleErrorf(CodeBidTooLow, "bid of %d does not beat the current bid of %d", amount, a.CurrentBid)
	}
	a.CurrentBid = amount
	a.InitialBidSubmitted = true
	a.nextBidder()
	return nil
}

// PassBid folds the active bidder. The auction starter cannot pass before the
// first bid exists.
func (a *Auction) PassBid() error {
	if !a.InitialBidSubmitted {
		return ruleErrorf(CodeIllegalPass, "the player who started the auction cannot pass before bidding")
	}
	a.passed[a.ActiveBidder().ID] = true
	a.nextBidder()
	return nil
}

// nextBidder advances to the next non-passed participant. When exactly one
// remains the auction ends immediately, even mid-round, and that participant
// wins at the current bid.
func (a *Auction) nextBidder() {
	remaining := a.remaining()
	if len(remaining) == 1 {
		a.Ended = true
		a.WinnerID = remaining[0].ID
		a.FinalPrice = a.CurrentBid
		return
	}
	a.activeIndex = (a.activeIndex + 1) % len(a.bidders)
	for a.passed[a.bidders[a.activeIndex].ID] {
		a.activeIndex = (a.activeIndex + 1) % len(a.bidders)
	}
}

func (a *Auction) remaining() []Bidder {
	var out []Bidder
	for _, b := range a.bidders {
		if !a.passed[b.ID] {
			out = append(out, b)
		}
	}
	return out
}

// PassedIDs returns the IDs of participants who folded, in seating order.
func (a *Auction) PassedIDs() []string {
	var out []string
	for _, b := range a.bidders {
		if a.passed[b.ID] {
			out = append(out, b.ID)
		}
	}
	return out
}
