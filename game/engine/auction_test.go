package engine

import "testing"

func newTestAuction(cardID string, money ...int) *Auction {
	card := &Card{ID: cardID, Type: PlantOil, ResourceNumber: 2, CitiesToPower: 3}
	var bidders []Bidder
	for i, m := range money {
		bidders = append(bidders, Bidder{ID: string(rune('a' + i)), Name: string(rune('A' + i)), Money: m})
	}
	return NewAuction(card, bidders)
}

func TestOpeningBidIsCardValueMinusOne(t *testing.T) {
	a := newTestAuction("16", 50, 50, 50)
	if a.CurrentBid != 15 {
		t.Errorf("expected opening bid 15 for card 16, got %d", a.CurrentBid)
	}
	if err := a.SubmitBid(15); err == nil {
		t.Error("a bid equal to the opening floor must be rejected")
	}
	if err := a.SubmitBid(16); err != nil {
		t.Errorf("the card value itself is a legal first bid: %v", err)
	}
}

func TestBidMustBeatCurrentBid(t *testing.T) {
	a := newTestAuction("16", 50, 50, 50)
	if err := a.SubmitBid(20); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := a.SubmitBid(20)
	assertRuleCode(t, err, CodeBidTooLow)
	if a.CurrentBid != 20 {
		t.Errorf("a rejected bid must not move the current bid, got %d", a.CurrentBid)
	}
}

func TestBidLimitedByMoney(t *testing.T) {
	a := newTestAuction("16", 50, 18, 50)
	if err := a.SubmitBid(16); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Second bidder holds 18 and cannot back 19.
	err := a.SubmitBid(19)
	assertRuleCode(t, err, CodeInsufficientFunds)
	if err := a.SubmitBid(18); err != nil {
		t.Errorf("a bid of the full bankroll is legal: %v", err)
	}
}

func TestStarterCannotPassBeforeFirstBid(t *testing.T) {
	a := newTestAuction("16", 50, 50, 50)
	err := a.PassBid()
	assertRuleCode(t, err, CodeIllegalPass)
	if a.Ended {
		t.Error("a rejected pass must not end the auction")
	}
}

func TestBiddingRotatesAndSkipsPassed(t *testing.T) {
	a := newTestAuction("16", 50, 50, 50)
	a.SubmitBid(16)
	if a.ActiveBidder().ID != "b" {
		t.Fatalf("expected bidder b to act next, got %s", a.ActiveBidder().ID)
	}
	a.PassBid()
	if a.ActiveBidder().ID != "c" {
		t.Fatalf("expected bidder c after b passed, got %s", a.ActiveBidder().ID)
	}
	a.SubmitBid(17)
	// b already passed, so the turn wraps straight back to a.
	if a.ActiveBidder().ID != "a" {
		t.Errorf("expected the turn to skip b and return to a, got %s", a.ActiveBidder().ID)
	}
}

func TestLastRemainingBidderWins(t *testing.T) {
	a := newTestAuction("16", 50, 50, 50)
	a.SubmitBid(16)
	a.PassBid()
	a.PassBid()

	if !a.Ended {
		t.Fatal("expected the auction to end with one bidder left")
	}
	if a.WinnerID != "a" {
		t.Errorf("expected winner a, got %s", a.WinnerID)
	}
	if a.FinalPrice != 16 {
		t.Errorf("expected final price 16, got %d", a.FinalPrice)
	}
}

func TestHighBidderWinsAfterOthersFold(t *testing.T) {
	a := newTestAuction("20", 100, 100, 100)
	a.SubmitBid(20)
	a.SubmitBid(25)
	a.SubmitBid(30)
	a.SubmitBid(31)
	a.PassBid() // b folds
	a.PassBid() // c folds

	if !a.Ended {
		t.Fatal("expected the auction to be over")
	}
	if a.WinnerID != "a" || a.FinalPrice != 31 {
		t.Errorf("expected a to win at 31, got %s at %d", a.WinnerID, a.FinalPrice)
	}
	if got := a.PassedIDs(); len(got) != 2 {
		t.Errorf("expected two folded bidders, got %v", got)
	}
}

func TestTwoBidderAuctionEndsOnFirstPass(t *testing.T) {
	a := newTestAuction("10", 50, 50)
	a.SubmitBid(10)
	a.PassBid()
	if !a.Ended || a.WinnerID != "a" || a.FinalPrice != 10 {
		t.Errorf("expected a to win at 10, got ended=%v winner=%s price=%d", a.Ended, a.WinnerID, a.FinalPrice)
	}
}
