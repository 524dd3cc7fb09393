package engine

import "fmt"

// Rule violation codes. Every rejected action carries one of these so callers
// can react without parsing messages.
const (
	CodeWrongPhase        = "wrong_phase"
	CodeNotYourTurn       = "not_your_turn"
	CodeUnknownCard       = "unknown_card"
	CodeUnknownCity       = "unknown_city"
	CodeUnknownResource   = "unknown_resource"
	CodeAuctionRunning    = "auction_running"
	CodeNoAuction         = "no_auction"
	CodeBidTooLow         = "bid_too_low"
	CodeInsufficientFunds = "insufficient_funds"
	CodeIllegalPass       = "illegal_pass"
	CodeRegionLimit       = "region_limit"
	CodeAlreadyBuilt      = "already_built"
	CodeStepCap           = "step_cap"
	CodeSameSettlement    = "same_settlement"
	CodeNoPath            = "no_path"
	CodeStaleCost         = "stale_cost"
	CodeNotAvailable      = "not_available"
	CodeCannotHold        = "cannot_hold"
	CodeBadResourceCount  = "bad_resource_count"
	CodePendingPurchase   = "pending_purchase"
	CodePendingPower      = "pending_power"
	CodePendingDiscard    = "pending_discard"
	CodePendingLeftover   = "pending_leftover"
	CodeSelectionRequired = "selection_required"
)

// RuleError is a rejected game action: the rule that failed plus a
// human-readable explanation. State is guaranteed untouched when one is
// returned.
type RuleError struct {
	Code    string
	Message string
}

func (e *RuleError) Error() string {
	return e.Message
}

func ruleErrorf(code, format string, args ...interface{}) *RuleError {
	return &RuleError{Code: code, Message: fmt.Sprintf(format, args...)}
}
