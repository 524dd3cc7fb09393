package engine

import (
	"encoding/json"
	"testing"
)

func TestDecodeActionByVerb(t *testing.T) {
	cases := []struct {
		verb   string
		params string
		check  func(t *testing.T, a Action)
	}{
		{"start_auction", `{"card_id":"16"}`, func(t *testing.T, a Action) {
			if got := a.(*StartAuction).CardID; got != "16" {
				t.Errorf("expected card 16, got %s", got)
			}
		}},
		{"submit_bid", `{"amount":21}`, func(t *testing.T, a Action) {
			if got := a.(*SubmitBid).Amount; got != 21 {
				t.Errorf("expected amount 21, got %d", got)
			}
		}},
		{"pass_bid", ``, func(t *testing.T, a Action) {
			if _, ok := a.(*PassBid); !ok {
				t.Errorf("expected *PassBid, got %T", a)
			}
		}},
		{"add_res_to_purchase", `{"type":"coal","cost":3,"card_id":"4"}`, func(t *testing.T, a Action) {
			p := a.(*AddResourceToPurchase)
			if p.Type != Coal || p.Cost != 3 || p.CardID != "4" {
				t.Errorf("unexpected decode: %+v", p)
			}
		}},
		{"build_house", `{"city":"Hamburg","cost":16}`, func(t *testing.T, a Action) {
			p := a.(*BuildHouse)
			if p.City != "Hamburg" || p.Cost != 16 {
				t.Errorf("unexpected decode: %+v", p)
			}
		}},
		{"move_resource", `{"source_card":"16","target_card":"21","type":"oil"}`, func(t *testing.T, a Action) {
			p := a.(*MoveResource)
			if p.SourceCard != "16" || p.TargetCard != "21" || p.Type != Oil {
				t.Errorf("unexpected decode: %+v", p)
			}
		}},
		{"confirm_leftover_allocation", `{}`, func(t *testing.T, a Action) {
			if _, ok := a.(*ConfirmLeftoverAllocation); !ok {
				t.Errorf("expected *ConfirmLeftoverAllocation, got %T", a)
			}
		}},
	}

	for _, tc := range cases {
		t.Run(tc.verb, func(t *testing.T) {
			a, err := DecodeAction(tc.verb, json.RawMessage(tc.params))
			if err != nil {
				t.Fatalf("decoding failed: %v", err)
			}
			if a.Verb() != tc.verb {
				t.Errorf("expected verb %s round-tripped, got %s", tc.verb, a.Verb())
			}
			tc.check(t, a)
		})
	}
}

func TestDecodeActionRejectsUnknownVerb(t *testing.T) {
	if _, err := DecodeAction("teleport", nil); err == nil {
		t.Error("expected an error for an unknown verb")
	}
}

func TestDecodeActionRejectsBadParams(t *testing.T) {
	if _, err := DecodeAction("submit_bid", json.RawMessage(`{"amount":"lots"}`)); err == nil {
		t.Error("expected an error for mistyped parameters")
	}
}

func TestEveryVerbRoundTrips(t *testing.T) {
	verbs := []string{
		"start_auction", "submit_bid", "pass_bid", "player_pass", "discard_plant",
		"add_res_to_purchase", "put_back_res_to_purchase", "purchase_resources",
		"can_build_house", "build_house", "add_res_to_power", "remove_res_from_power",
		"generate_power", "move_resource", "get_possible_plants_for_leftover",
		"add_leftover_on_hold", "put_back_to_leftover", "confirm_leftover_allocation",
	}
	for _, verb := range verbs {
		a, err := DecodeAction(verb, nil)
		if err != nil {
			t.Errorf("%s: decoding failed: %v", verb, err)
			continue
		}
		if a.Verb() != verb {
			t.Errorf("expected verb %s, got %s", verb, a.Verb())
		}
	}
}
