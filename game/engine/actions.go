package engine

import (
	"encoding/json"
	"fmt"
)

// Action is the closed union of everything a caller can ask the engine to do.
// Transports carry verb + named parameters on the wire and decode them into
// one of these types at the boundary; the engine dispatches on the concrete
// type so an unhandled action is a compile-visible gap, not a silent string
// mismatch.
type Action interface {
	Verb() string
}

// StartAuction puts a market card up for auction on behalf of the current
// player.
type StartAuction struct {
	CardID string `json:"card_id"`
}

// SubmitBid places a bid for the active bidder of the running auction.
type SubmitBid struct {
	Amount int `json:"amount"`
}

// PassBid folds the active bidder of the running auction.
type PassBid struct{}

// PlayerPass ends the current player's participation in the current phase.
type PlayerPass struct{}

// DiscardPlant resumes a fourth-plant auction win with the card the winner
// chose to give up.
type DiscardPlant struct {
	CardID string `json:"card_id"`
}

// AddResourceToPurchase reserves the cheapest available token of Type for the
// current player. Cost is the price the caller saw and must match the ladder.
// CardID selects the receiving plant; when several plants are eligible and
// CardID is empty, the engine answers with a selection request instead of
// mutating anything.
type AddResourceToPurchase struct {
	Type   ResourceType `json:"type"`
	Cost   int          `json:"cost"`
	CardID string       `json:"card_id,omitempty"`
}

// PutBackResourceToPurchase returns a pending token from a plant to the
// ladder, undoing the latest purchase of that type.
type PutBackResourceToPurchase struct {
	CardID string       `json:"card_id"`
	Type   ResourceType `json:"type"`
}

// PurchaseResources confirms all pending purchases of the current player,
// pays the accumulated bill and ends their resources turn.
type PurchaseResources struct{}

// CanBuildHouse asks whether the current player may build in City and what it
// would cost. Pure query, never mutates.
type CanBuildHouse struct {
	City string `json:"city"`
}

// BuildHouse commits a house purchase at the cost the caller saw.
type BuildHouse struct {
	City string `json:"city"`
	Cost int    `json:"cost"`
}

// AddResourceToPower moves one stored token on a plant into its committed
// generation set.
type AddResourceToPower struct {
	CardID string       `json:"card_id"`
	Type   ResourceType `json:"type"`
}

// RemoveResourceFromPower moves one committed token back to storage.
type RemoveResourceFromPower struct {
	CardID string       `json:"card_id"`
	Type   ResourceType `json:"type"`
}

// GeneratePower burns the committed tokens of the current player, credits the
// payout and ends their bureaucracy turn.
type GeneratePower struct{}

// MoveResource shifts one stored token between two plants of the acting
// player.
type MoveResource struct {
	SourceCard string       `json:"source_card"`
	TargetCard string       `json:"target_card"`
	Type       ResourceType `json:"type"`
}

// GetPossiblePlantsForLeftover lists the plants that can absorb one leftover
// token of Type. Pure query.
type GetPossiblePlantsForLeftover struct {
	PlayerID string       `json:"player_id,omitempty"`
	Type     ResourceType `json:"type"`
}

// AddLeftoverOnHold stages one leftover token onto a plant.
type AddLeftoverOnHold struct {
	PlayerID string       `json:"player_id,omitempty"`
	CardID   string       `json:"card_id"`
	Type     ResourceType `json:"type"`
}

// PutBackToLeftover returns a staged token to the leftover bucket.
type PutBackToLeftover struct {
	PlayerID string       `json:"player_id,omitempty"`
	CardID   string       `json:"card_id"`
	Type     ResourceType `json:"type"`
}

// ConfirmLeftoverAllocation commits every staged token to its plant and
// abandons whatever is left in the bucket back to the market reserve.
type ConfirmLeftoverAllocation struct {
	PlayerID string `json:"player_id,omitempty"`
}

func (StartAuction) Verb() string                 { return "start_auction" }
func (SubmitBid) Verb() string                    { return "submit_bid" }
func (PassBid) Verb() string                      { return "pass_bid" }
func (PlayerPass) Verb() string                   { return "player_pass" }
func (DiscardPlant) Verb() string                 { return "discard_plant" }
func (AddResourceToPurchase) Verb() string        { return "add_res_to_purchase" }
func (PutBackResourceToPurchase) Verb() string    { return "put_back_res_to_purchase" }
func (PurchaseResources) Verb() string            { return "purchase_resources" }
func (CanBuildHouse) Verb() string                { return "can_build_house" }
func (BuildHouse) Verb() string                   { return "build_house" }
func (AddResourceToPower) Verb() string           { return "add_res_to_power" }
func (RemoveResourceFromPower) Verb() string      { return "remove_res_from_power" }
func (GeneratePower) Verb() string                { return "generate_power" }
func (MoveResource) Verb() string                 { return "move_resource" }
func (GetPossiblePlantsForLeftover) Verb() string { return "get_possible_plants_for_leftover" }
func (AddLeftoverOnHold) Verb() string            { return "add_leftover_on_hold" }
func (PutBackToLeftover) Verb() string            { return "put_back_to_leftover" }
func (ConfirmLeftoverAllocation) Verb() string    { return "confirm_leftover_allocation" }

// DecodeAction turns a wire-level verb plus JSON parameters into the typed
// action it names.
func DecodeAction(verb string, params json.RawMessage) (Action, error) {
	if len(params) == 0 {
		params = json.RawMessage("{}")
	}
	decode := func(into Action) (Action, error) {
		if err := json.Unmarshal(params, into); err != nil {
			return nil, fmt.Errorf("decoding %s parameters: %w", verb, err)
		}
		return into, nil
	}

	switch verb {
	case "start_auction":
		return decode(&StartAuction{})
	case "submit_bid":
		return decode(&SubmitBid{})
	case "pass_bid":
		return decode(&PassBid{})
	case "player_pass":
		return decode(&PlayerPass{})
	case "discard_plant":
		return decode(&DiscardPlant{})
	case "add_res_to_purchase":
		return decode(&AddResourceToPurchase{})
	case "put_back_res_to_purchase":
		return decode(&PutBackResourceToPurchase{})
	case "purchase_resources":
		return decode(&PurchaseResources{})
	case "can_build_house":
		return decode(&CanBuildHouse{})
	case "build_house":
		return decode(&BuildHouse{})
	case "add_res_to_power":
		return decode(&AddResourceToPower{})
	case "remove_res_from_power":
		return decode(&RemoveResourceFromPower{})
	case "generate_power":
		return decode(&GeneratePower{})
	case "move_resource":
		return decode(&MoveResource{})
	case "get_possible_plants_for_leftover":
		return decode(&GetPossiblePlantsForLeftover{})
	case "add_leftover_on_hold":
		return decode(&AddLeftoverOnHold{})
	case "put_back_to_leftover":
		return decode(&PutBackToLeftover{})
	case "confirm_leftover_allocation":
		return decode(&ConfirmLeftoverAllocation{})
	}
	return nil, fmt.Errorf("unknown action verb %q", verb)
}

// SelectionRequest tells the caller the engine needs a human choice before it
// can commit the triggering action. The caller resumes by issuing the
// follow-up action named in Resume with one of Options.
type SelectionRequest struct {
	Kind     string   `json:"kind"`
	PlayerID string   `json:"player_id"`
	Options  []string `json:"options"`
	Resume   string   `json:"resume"` // verb of the follow-up action
}

// Result is the structured outcome of one action.
type Result struct {
	Success    bool              `json:"success"`
	Code       string            `json:"code,omitempty"` // rule-violation code on failure
	Message    string            `json:"message,omitempty"`
	Cost       int               `json:"cost,omitempty"`   // build / connection total or token price
	Winner     string            `json:"winner,omitempty"` // auction winner ID
	Price      int               `json:"price,omitempty"`  // final auction price
	Payout     int               `json:"payout,omitempty"` // generation income
	Plants     []string          `json:"plants,omitempty"` // eligible plant IDs for queries
	NeedsInput *SelectionRequest `json:"needs_input,omitempty"`
}

func ok(format string, args ...interface{}) *Result {
	return &Result{Success: true, Message: fmt.Sprintf(format, args...)}
}

func fail(err error) *Result {
	if re, isRule := err.(*RuleError); isRule {
		return &Result{Success: false, Code: re.Code, Message: re.Message}
	}
	return &Result{Success: false, Message: err.Error()}
}

func failf(code, format string, args ...interface{}) *Result {
	return fail(ruleErrorf(code, format, args...))
}
