package engine

import "github.com/lox/sitngo/internal/pot"

// ActionType represents a player action
type ActionType int

const (
	Fold ActionType = iota
	Check
	Call
	Bet
	Raise
	AllIn
)

func (a ActionType) String() string {
	return [...]string{"fold", "check", "call", "bet", "raise", "allin"}[a]
}

// Action is one player decision submitted to the engine. For Bet and Raise,
// Amount is the total bet level the player moves to for the street, not the
// increment. Fold, Check, Call and AllIn ignore Amount.
type Action struct {
	Type   ActionType
	Player pot.PlayerID
	Amount int
}

// ValidAction describes one legal action for the player to act, with the
// permitted sizing range for Bet/Raise (both bounds are total bet levels).
type ValidAction struct {
	Type ActionType
	Min  int
	Max  int
}

// LegalActions returns the actions available to the player currently to
// act, or nil when no one can act.
func LegalActions(s GameState) []ValidAction {
	if s.Phase == Complete || s.Active < 0 || s.Active >= len(s.Players) {
		return nil
	}

	p := s.Players[s.Active]
	toCall := s.Betting.CurrentBet - p.Bet
	actions := []ValidAction{{Type: Fold}}

	if toCall == 0 {
		actions = append(actions, ValidAction{Type: Check})
	} else if toCall < p.Chips {
		actions = append(actions, ValidAction{Type: Call, Min: toCall, Max: toCall})
	}

	if toCall >= p.Chips {
		// Calling empties the stack
		actions = append(actions, ValidAction{Type: AllIn, Min: p.Chips, Max: p.Chips})
		return actions
	}

	canRaise := !s.Betting.Acted[s.Active] || s.Betting.Reopened
	if !canRaise {
		return actions
	}

	target := Bet
	if s.Betting.CurrentBet > 0 {
		target = Raise
	}
	minTo := s.Betting.CurrentBet + s.Betting.MinRaise
	maxTo := p.Bet + p.Chips
	if maxTo >= minTo {
		actions = append(actions, ValidAction{Type: target, Min: minTo, Max: maxTo})
	}
	// A short all-in past the call amount is always available
	if maxTo > s.Betting.CurrentBet {
		actions = append(actions, ValidAction{Type: AllIn, Min: p.Chips, Max: p.Chips})
	}
	return actions
}
