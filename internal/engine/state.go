package engine

import (
	"github.com/lox/sitngo/internal/deck"
	"github.com/lox/sitngo/internal/eval"
	"github.com/lox/sitngo/internal/pot"
)

// PlayerID identifies a player. Shared with the pot engine.
type PlayerID = pot.PlayerID

// Status represents a player's standing within the current hand.
type Status int

const (
	Active Status = iota
	Folded
	AllInStatus
	SittingOut
	Eliminated
)

func (s Status) String() string {
	return [...]string{"active", "folded", "all-in", "sitting-out", "eliminated"}[s]
}

// Player is one seat's state within a hand.
type Player struct {
	ID        PlayerID
	Seat      int
	Chips     int
	HoleCards []deck.Card // empty or exactly 2
	Status    Status
	Bet       int // contributed this betting round
	TotalBet  int // contributed this hand
}

// InHand reports whether the player still contests the pot.
func (p Player) InHand() bool {
	return p.Status == Active || p.Status == AllInStatus
}

// CanAct reports whether the player can still make betting decisions.
func (p Player) CanAct() bool {
	return p.Status == Active
}

// Phase is the hand state machine phase. Dealing phases are traversed inside
// a single accepted action but remain observable through emitted events.
type Phase int

const (
	WaitingForPlayers Phase = iota
	PostingBlinds
	DealingHole
	PreflopBetting
	DealingFlop
	FlopBetting
	DealingTurn
	TurnBetting
	DealingRiver
	RiverBetting
	Showdown
	Complete
)

func (p Phase) String() string {
	return [...]string{
		"waiting_for_players", "posting_blinds", "dealing_hole",
		"preflop_betting", "dealing_flop", "flop_betting", "dealing_turn",
		"turn_betting", "dealing_river", "river_betting", "showdown",
		"complete",
	}[p]
}

// Blinds holds the blind level for a hand.
type Blinds struct {
	Small int
	Big   int
}

// Betting holds the state of the current betting round.
type Betting struct {
	CurrentBet    int  // highest total bet this round
	MinRaise      int  // size of the last bet/raise, big blind floor
	LastAggressor int  // seat of last bet/raise, -1 if none
	Reopened      bool // whether the last aggression reopened the action
	Acted         []bool
	BigBlindSeat  int
	BigBlindActed bool // preflop option tracking
}

// GameState is the complete, immutable state of one hand. ApplyAction
// returns a fresh state; a previously returned state is never mutated, so an
// ordered action log can reconstruct any historical state.
type GameState struct {
	HandID    string
	Players   []Player // seat order, only players dealt into this hand
	Button    int
	Blinds    Blinds
	Phase     Phase
	Board     []deck.Card
	Deck      deck.Deck
	Betting   Betting
	Active    int // index of player to act, -1 when nobody can
	Events    []Event
	Result    *HandResult
	ChipTotal int // chips + contributions at hand start, conservation check
}

// HandResult is the terminal record of a hand, immutable once produced. It
// carries enough for a caller to render the showdown without re-running the
// evaluator.
type HandResult struct {
	HandID      string
	Pots        []pot.PotAward
	Rankings    map[PlayerID]eval.HandRank // contenders only; empty when uncontested
	Uncontested bool
	Stacks      map[PlayerID]int // chip stacks after awards
}

// Clone returns a deep copy of the state.
func (s GameState) Clone() GameState {
	c := s

	c.Players = make([]Player, len(s.Players))
	copy(c.Players, s.Players)
	for i := range c.Players {
		if len(s.Players[i].HoleCards) > 0 {
			c.Players[i].HoleCards = append([]deck.Card(nil), s.Players[i].HoleCards...)
		}
	}

	c.Board = append([]deck.Card(nil), s.Board...)
	c.Betting.Acted = append([]bool(nil), s.Betting.Acted...)
	c.Events = append([]Event(nil), s.Events...)
	c.Result = nil
	if s.Result != nil {
		r := *s.Result
		c.Result = &r
	}
	return c
}

// Pots returns the pot structure as it stands, including bets not yet
// swept into totals. Folded players still fund pots they contributed to.
func (s GameState) Pots() []pot.Pot {
	contribs := make([]pot.Contribution, len(s.Players))
	for i, p := range s.Players {
		contribs[i] = pot.Contribution{
			Player: p.ID,
			Amount: p.TotalBet,
			Folded: p.Status == Folded,
		}
	}
	pots, err := pot.Settle(contribs)
	if err != nil {
		return nil
	}
	return pots
}

// PotTotal returns the total chips committed to the hand so far.
func (s GameState) PotTotal() int {
	total := 0
	for _, p := range s.Players {
		total += p.TotalBet
	}
	return total
}

// PlayerByID returns the player with the given id.
func (s GameState) PlayerByID(id PlayerID) (Player, bool) {
	for _, p := range s.Players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

// seatOf returns the seat index for a player id, or -1.
func (s GameState) seatOf(id PlayerID) int {
	for i, p := range s.Players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// inHandCount counts players still contesting the pot.
func (s GameState) inHandCount() int {
	n := 0
	for _, p := range s.Players {
		if p.InHand() {
			n++
		}
	}
	return n
}

// nextActionable returns the first seat at or after from (wrapping) that can
// still act, or -1.
func (s GameState) nextActionable(from int) int {
	n := len(s.Players)
	for i := 0; i < n; i++ {
		seat := (from + i) % n
		if s.Players[seat].CanAct() {
			return seat
		}
	}
	return -1
}

// awardOrder returns player ids clockwise from the seat after the button,
// the documented order for odd-chip distribution.
func (s GameState) awardOrder() []PlayerID {
	n := len(s.Players)
	order := make([]PlayerID, 0, n)
	for i := 1; i <= n; i++ {
		order = append(order, s.Players[(s.Button+i)%n].ID)
	}
	return order
}
