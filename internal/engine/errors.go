package engine

import (
	"errors"
	"fmt"

	"github.com/lox/sitngo/internal/pot"
)

// Invariant-class errors. These indicate the caller handed the engine a
// state that violates its invariants; they are never retried and must abort
// the hand rather than risk an incorrect award.
var (
	// ErrHandComplete is returned when an action is applied to a finished hand.
	ErrHandComplete = errors.New("hand is complete")
	// ErrChipConservation is returned when chips stop adding up at settlement.
	ErrChipConservation = errors.New("chip conservation violated")
	// ErrTooFewPlayers is returned when a hand starts with fewer than two players.
	ErrTooFewPlayers = errors.New("at least 2 players required")
	// ErrBadButton is returned when the button position is out of range.
	ErrBadButton = errors.New("button position out of range")
)

// RejectReason classifies why an action was refused. Rejections are
// user-correctable: the state is unchanged and the caller simply prompts for
// a new action.
type RejectReason int

const (
	RejectNotYourTurn RejectReason = iota
	RejectUnknownPlayer
	RejectCannotCheck
	RejectNothingToCall
	RejectRoundAlreadyOpen
	RejectRoundNotOpen
	RejectRaiseTooSmall
	RejectActionNotReopened
	RejectInsufficientChips
	RejectInvalidAmount
)

func (r RejectReason) String() string {
	switch r {
	case RejectNotYourTurn:
		return "not your turn"
	case RejectUnknownPlayer:
		return "unknown player"
	case RejectCannotCheck:
		return "cannot check facing a bet"
	case RejectNothingToCall:
		return "nothing to call"
	case RejectRoundAlreadyOpen:
		return "round already has a bet, raise instead"
	case RejectRoundNotOpen:
		return "no bet to raise, bet instead"
	case RejectRaiseTooSmall:
		return "raise below minimum"
	case RejectActionNotReopened:
		return "action not reopened, call or fold"
	case RejectInsufficientChips:
		return "insufficient chips"
	case RejectInvalidAmount:
		return "invalid amount"
	default:
		return "rejected"
	}
}

// ActionError is returned for rejected actions. Validation has no side
// effects on failure: the input state is returned untouched.
type ActionError struct {
	Reason RejectReason
	Player pot.PlayerID
	Detail string
}

func (e *ActionError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("action rejected for %s: %s (%s)", e.Player, e.Reason, e.Detail)
	}
	return fmt.Sprintf("action rejected for %s: %s", e.Player, e.Reason)
}

func reject(player pot.PlayerID, reason RejectReason, detail string) *ActionError {
	return &ActionError{Reason: reason, Player: player, Detail: detail}
}

// IsRejection reports whether err is a recoverable action rejection rather
// than an invariant violation.
func IsRejection(err error) bool {
	var ae *ActionError
	return errors.As(err, &ae)
}
