// Package table runs a sit-and-go tournament around the hand engine:
// seating, blind escalation, dealer rotation, eliminations and the agent
// decision loop with timeouts.
package table

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/sitngo/internal/config"
	"github.com/lox/sitngo/internal/deck"
	"github.com/lox/sitngo/internal/engine"
)

// ErrTableFull is returned when adding a player past the configured maximum.
var ErrTableFull = errors.New("table is full")

// View is the information an agent sees when asked for a decision: its own
// cards and stack plus the public state, never other players' hole cards.
type View struct {
	HandID    string
	Phase     engine.Phase
	Board     []deck.Card
	HoleCards []deck.Card
	Chips     int
	Bet       int
	ToCall    int
	PotTotal  int
	Blinds    engine.Blinds
}

// Agent makes decisions for one seat. Decide must return one of the offered
// actions; anything else is treated as a fold.
type Agent interface {
	Decide(view View, actions []engine.ValidAction) engine.Action
}

// Result summarizes a finished tournament.
type Result struct {
	Winner      engine.PlayerID
	FinishOrder []engine.PlayerID // winner first
	HandsPlayed int
}

type seatEntry struct {
	id    engine.PlayerID
	chips int
	agent Agent
}

// Table hosts one sit-and-go.
type Table struct {
	cfg    *config.TournamentConfig
	logger *log.Logger
	clock  quartz.Clock
	rng    *rand.Rand

	seats       []seatEntry
	button      int
	handsPlayed int
	finished    []engine.PlayerID // eliminated players, most recent first
}

// New creates an empty table. The clock is injectable so decision timeouts
// are testable without sleeping; pass quartz.NewReal() in production.
func New(cfg *config.TournamentConfig, logger *log.Logger, clock quartz.Clock, rng *rand.Rand) *Table {
	return &Table{
		cfg:    cfg,
		logger: logger.WithPrefix("table"),
		clock:  clock,
		rng:    rng,
	}
}

// AddPlayer seats a player with the configured starting stack.
func (t *Table) AddPlayer(id engine.PlayerID, agent Agent) error {
	if len(t.seats) >= t.cfg.Game.MaxPlayers {
		return ErrTableFull
	}
	t.seats = append(t.seats, seatEntry{id: id, chips: t.cfg.Game.StartingChips, agent: agent})
	return nil
}

// Run plays hands until a single player holds all the chips and returns the
// finish order.
func (t *Table) Run() (*Result, error) {
	if len(t.seats) < 2 {
		return nil, engine.ErrTooFewPlayers
	}

	for t.aliveCount() > 1 {
		if err := t.playHand(); err != nil {
			return nil, fmt.Errorf("hand %d: %w", t.handsPlayed+1, err)
		}
		t.handsPlayed++
		t.button = (t.button + 1) % t.aliveCount()
	}

	var winner engine.PlayerID
	for _, seat := range t.seats {
		if seat.chips > 0 {
			winner = seat.id
		}
	}

	order := make([]engine.PlayerID, 0, len(t.seats))
	order = append(order, winner)
	order = append(order, t.finished...)

	t.logger.Info("tournament complete", "winner", winner, "hands", t.handsPlayed)
	return &Result{Winner: winner, FinishOrder: order, HandsPlayed: t.handsPlayed}, nil
}

func (t *Table) playHand() error {
	level := t.cfg.LevelFor(t.handsPlayed)
	blinds := engine.Blinds{Small: level.SmallBlind, Big: level.BigBlind}

	alive := t.aliveSeats()
	dealt := make([]engine.Seat, len(alive))
	for i, idx := range alive {
		dealt[i] = engine.Seat{ID: t.seats[idx].id, Chips: t.seats[idx].chips}
	}

	state, err := engine.StartHand(t.rng, dealt, t.button%len(dealt), blinds)
	if err != nil {
		return err
	}

	t.logger.Debug("hand started",
		"handID", state.HandID,
		"players", len(dealt),
		"smallBlind", blinds.Small,
		"bigBlind", blinds.Big)

	for state.Phase != engine.Complete {
		seat := state.Active
		if seat < 0 {
			return fmt.Errorf("no player to act in phase %s", state.Phase)
		}
		player := state.Players[seat]
		actions := engine.LegalActions(state)

		action := t.decide(player, state, actions)
		next, err := engine.ApplyAction(state, action)
		if err != nil {
			if !engine.IsRejection(err) {
				return err
			}
			// Agent produced an illegal action; fold it out of the hand
			t.logger.Warn("rejected action, folding", "player", player.ID, "error", err)
			next, err = engine.ApplyAction(state, engine.Action{Type: engine.Fold, Player: player.ID})
			if err != nil {
				return err
			}
		}
		state = next
	}

	t.applyResult(state.Result)
	return nil
}

// decide asks the seat's agent for an action, enforcing the configured
// decision timeout. A timeout resolves to check when free, otherwise fold.
func (t *Table) decide(player engine.Player, state engine.GameState, actions []engine.ValidAction) engine.Action {
	view := View{
		HandID:    state.HandID,
		Phase:     state.Phase,
		Board:     state.Board,
		HoleCards: player.HoleCards,
		Chips:     player.Chips,
		Bet:       player.Bet,
		ToCall:    state.Betting.CurrentBet - player.Bet,
		PotTotal:  state.PotTotal(),
		Blinds:    state.Blinds,
	}

	agent := t.agentFor(player.ID)

	decisionCh := make(chan engine.Action, 1)
	go func() {
		decisionCh <- agent.Decide(view, actions)
	}()

	timeout := time.Duration(t.cfg.Game.TimeoutSeconds) * time.Second
	timedOut := make(chan struct{})
	timer := t.clock.AfterFunc(timeout, func() {
		close(timedOut)
	})
	defer timer.Stop()

	select {
	case action := <-decisionCh:
		action.Player = player.ID
		return action
	case <-timedOut:
		t.logger.Warn("decision timeout", "player", player.ID)
		if view.ToCall == 0 {
			return engine.Action{Type: engine.Check, Player: player.ID}
		}
		return engine.Action{Type: engine.Fold, Player: player.ID}
	}
}

// applyResult carries stacks forward and records eliminations in finish
// order.
func (t *Table) applyResult(result *engine.HandResult) {
	for i := range t.seats {
		if chips, ok := result.Stacks[t.seats[i].id]; ok {
			wasAlive := t.seats[i].chips > 0
			t.seats[i].chips = chips
			if wasAlive && chips == 0 {
				t.finished = append([]engine.PlayerID{t.seats[i].id}, t.finished...)
				t.logger.Info("player eliminated",
					"player", t.seats[i].id,
					"place", t.aliveCount()+len(t.finished))
			}
		}
	}
}

func (t *Table) agentFor(id engine.PlayerID) Agent {
	for _, seat := range t.seats {
		if seat.id == id {
			return seat.agent
		}
	}
	return CheckFoldAgent{}
}

func (t *Table) aliveSeats() []int {
	var out []int
	for i, seat := range t.seats {
		if seat.chips > 0 {
			out = append(out, i)
		}
	}
	return out
}

func (t *Table) aliveCount() int {
	return len(t.aliveSeats())
}
