package engine

import "github.com/lox/sitngo/internal/deck"

// EventType identifies a game event with type safety.
type EventType string

const (
	EventHandStart   EventType = "hand_start"
	EventBlindPosted EventType = "blind_posted"
	EventHoleDealt   EventType = "hole_cards_dealt"
	EventAction      EventType = "player_action"
	EventBoardCard   EventType = "board_card"
	EventStreet      EventType = "street_change"
	EventPotAwarded  EventType = "pot_awarded"
	EventHandEnd     EventType = "hand_end"
)

// Event is one entry in a hand's ordered event record. Events are appended
// to the state by accepted transitions and are the engine's observable side
// channel: every blind, deal, action, board reveal and award appears here in
// order, including reveals on all-in run-outs where no betting occurs.
type Event struct {
	Type   EventType   `json:"type"`
	Player PlayerID    `json:"player,omitempty"`
	Action ActionType  `json:"action,omitempty"`
	Amount int         `json:"amount,omitempty"`
	Cards  []deck.Card `json:"cards,omitempty"`
	Phase  Phase       `json:"phase"`
}

func (s *GameState) emit(e Event) {
	e.Phase = s.Phase
	s.Events = append(s.Events, e)
}
