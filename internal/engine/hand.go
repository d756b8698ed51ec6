package engine

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/lox/sitngo/internal/deck"
	"github.com/lox/sitngo/internal/eval"
	"github.com/lox/sitngo/internal/handid"
	"github.com/lox/sitngo/internal/pot"
)

// Seat describes one player entering a hand.
type Seat struct {
	ID    PlayerID
	Chips int
}

// HandOption configures a hand during creation.
type HandOption func(*handConfig)

type handConfig struct {
	deck   *deck.Deck
	handID string
}

// WithDeck sets a specific pre-arranged deck, for deterministic testing.
func WithDeck(d deck.Deck) HandOption {
	return func(c *handConfig) { c.deck = &d }
}

// WithHandID sets an explicit hand id instead of generating one.
func WithHandID(id string) HandOption {
	return func(c *handConfig) { c.handID = id }
}

// StartHand creates the state for a new hand: blinds posted, hole cards
// dealt, first player to act positioned. Seats must hold only players being
// dealt in, in seat order, each with a positive stack. The RNG is explicit
// so shuffles are reproducible.
func StartHand(rng *rand.Rand, seats []Seat, button int, blinds Blinds, opts ...HandOption) (GameState, error) {
	if len(seats) < 2 {
		return GameState{}, ErrTooFewPlayers
	}
	if button < 0 || button >= len(seats) {
		return GameState{}, ErrBadButton
	}
	for _, seat := range seats {
		if seat.Chips <= 0 {
			return GameState{}, fmt.Errorf("player %s has no chips to play", seat.ID)
		}
	}

	cfg := &handConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.handID == "" {
		cfg.handID = handid.New()
	}

	d := deck.New(rng)
	if cfg.deck != nil {
		d = *cfg.deck
	}

	players := make([]Player, len(seats))
	chipTotal := 0
	for i, seat := range seats {
		players[i] = Player{ID: seat.ID, Seat: i, Chips: seat.Chips, Status: Active}
		chipTotal += seat.Chips
	}

	s := GameState{
		HandID:    cfg.handID,
		Players:   players,
		Button:    button,
		Blinds:    blinds,
		Phase:     PostingBlinds,
		Deck:      d,
		Active:    -1,
		ChipTotal: chipTotal,
	}
	s.emit(Event{Type: EventHandStart})

	s.postBlinds()

	s.Phase = DealingHole
	if err := s.dealHoleCards(); err != nil {
		return GameState{}, err
	}

	s.Phase = PreflopBetting
	s.Betting = Betting{
		CurrentBet:    blinds.Big,
		MinRaise:      blinds.Big,
		LastAggressor: -1,
		Reopened:      true,
		Acted:         make([]bool, len(players)),
		BigBlindSeat:  s.bigBlindSeat(),
	}

	if len(players) == 2 {
		// Heads-up: button acts first preflop
		s.Active = s.nextActionable(button)
	} else {
		s.Active = s.nextActionable((button + 3) % len(players))
	}

	// Blinds can put the whole table all-in at high levels
	if s.Active == -1 || s.bettingComplete() {
		if err := s.advanceStreet(); err != nil {
			return GameState{}, err
		}
	}

	return s, nil
}

// ApplyAction validates and applies one player decision, returning the
// resulting state. On rejection the input state is returned unchanged
// alongside the error.
func ApplyAction(s GameState, a Action) (GameState, error) {
	if s.Phase == Complete {
		return s, ErrHandComplete
	}
	if s.Phase != PreflopBetting && s.Phase != FlopBetting && s.Phase != TurnBetting && s.Phase != RiverBetting {
		return s, fmt.Errorf("no action expected in phase %s", s.Phase)
	}

	eff, rejErr := validate(s, a)
	if rejErr != nil {
		return s, rejErr
	}

	next := s.Clone()
	if err := next.apply(a, eff); err != nil {
		return s, err
	}

	if next.Phase != Complete {
		if next.Active == -1 || next.bettingComplete() {
			if err := next.advanceStreet(); err != nil {
				return s, err
			}
		}
	}

	return next, nil
}

// apply mutates the cloned state with a validated effect.
func (s *GameState) apply(a Action, eff effect) error {
	seat := s.Active
	p := &s.Players[seat]

	s.Betting.Acted[seat] = true
	if s.Phase == PreflopBetting && seat == s.Betting.BigBlindSeat {
		s.Betting.BigBlindActed = true
	}

	paid := eff.toAmount - p.Bet
	p.Chips -= paid
	p.Bet = eff.toAmount
	p.TotalBet += paid

	switch {
	case a.Type == Fold:
		p.Status = Folded
	case eff.allIn || p.Chips == 0:
		p.Status = AllInStatus
	}

	if eff.aggression {
		raiseSize := eff.toAmount - s.Betting.CurrentBet
		s.Betting.CurrentBet = eff.toAmount
		s.Betting.LastAggressor = seat
		if eff.fullRaise {
			// A full raise reopens the action to everyone
			s.Betting.MinRaise = raiseSize
			s.Betting.Reopened = true
			for i := range s.Betting.Acted {
				s.Betting.Acted[i] = false
			}
			s.Betting.Acted[seat] = true
		} else {
			// Short all-in: players who already acted may call or fold
			// but not raise
			s.Betting.Reopened = false
		}
	}

	s.emit(Event{Type: EventAction, Player: a.Player, Action: a.Type, Amount: paid})

	if s.inHandCount() == 1 {
		return s.settleUncontested()
	}

	s.Active = s.nextActionable((seat + 1) % len(s.Players))
	return nil
}

func (s *GameState) postBlinds() {
	n := len(s.Players)
	var sbSeat, bbSeat int
	if n == 2 {
		// Heads-up: button posts the small blind
		sbSeat = s.Button
		bbSeat = (s.Button + 1) % n
	} else {
		sbSeat = (s.Button + 1) % n
		bbSeat = (s.Button + 2) % n
	}

	s.postBlind(sbSeat, s.Blinds.Small)
	s.postBlind(bbSeat, s.Blinds.Big)
}

func (s *GameState) postBlind(seat, amount int) {
	p := &s.Players[seat]
	paid := min(amount, p.Chips)
	p.Chips -= paid
	p.Bet += paid
	p.TotalBet += paid
	if p.Chips == 0 {
		p.Status = AllInStatus
	}
	s.emit(Event{Type: EventBlindPosted, Player: p.ID, Amount: paid})
}

func (s *GameState) bigBlindSeat() int {
	if len(s.Players) == 2 {
		return (s.Button + 1) % 2
	}
	return (s.Button + 2) % len(s.Players)
}

func (s *GameState) dealHoleCards() error {
	for i := range s.Players {
		cards, rest, err := s.Deck.Deal(2)
		if err != nil {
			return fmt.Errorf("dealing hole cards: %w", err)
		}
		s.Players[i].HoleCards = cards
		s.Deck = rest
		s.emit(Event{Type: EventHoleDealt, Player: s.Players[i].ID})
	}
	return nil
}

// bettingComplete reports whether the current betting round has finished:
// every player who can act has acted since the last full raise and all
// active bets match the current bet, with the big blind keeping its preflop
// option on an unraised pot.
func (s GameState) bettingComplete() bool {
	actionable := 0
	for _, p := range s.Players {
		if p.CanAct() {
			actionable++
		}
	}
	if actionable == 0 {
		return true
	}
	if actionable == 1 {
		// Betting against a table of all-ins is moot once the lone player
		// has matched the current bet
		for _, p := range s.Players {
			if p.CanAct() {
				return p.Bet == s.Betting.CurrentBet
			}
		}
	}

	for i, p := range s.Players {
		if !p.CanAct() {
			continue
		}
		if p.Bet != s.Betting.CurrentBet {
			return false
		}
		if !s.Betting.Acted[i] {
			return false
		}
	}

	if s.Phase == PreflopBetting && s.Betting.LastAggressor == -1 {
		bb := s.Players[s.Betting.BigBlindSeat]
		if bb.CanAct() && !s.Betting.BigBlindActed {
			return false // BB still has the option
		}
	}

	return true
}

// advanceStreet sweeps street bets, deals the next board cards and positions
// the next player to act. When nobody can act (all-in run-out) it keeps
// advancing, revealing each street in sequence, until showdown.
func (s *GameState) advanceStreet() error {
	for {
		for i := range s.Players {
			s.Players[i].Bet = 0
		}

		switch s.Phase {
		case PreflopBetting:
			s.Phase = DealingFlop
			if err := s.dealBoard(3); err != nil {
				return err
			}
			s.Phase = FlopBetting
		case FlopBetting:
			s.Phase = DealingTurn
			if err := s.dealBoard(1); err != nil {
				return err
			}
			s.Phase = TurnBetting
		case TurnBetting:
			s.Phase = DealingRiver
			if err := s.dealBoard(1); err != nil {
				return err
			}
			s.Phase = RiverBetting
		case RiverBetting:
			s.Phase = Showdown
			return s.settleShowdown()
		default:
			return fmt.Errorf("cannot advance from phase %s", s.Phase)
		}

		s.Betting = Betting{
			MinRaise:      s.Blinds.Big,
			LastAggressor: -1,
			Reopened:      true,
			Acted:         make([]bool, len(s.Players)),
			BigBlindSeat:  s.Betting.BigBlindSeat,
		}
		s.emit(Event{Type: EventStreet})

		s.Active = s.nextActionable((s.Button + 1) % len(s.Players))
		if s.Active != -1 && !s.bettingComplete() {
			return nil
		}
		// Nobody left to act: run out the remaining streets
	}
}

func (s *GameState) dealBoard(n int) error {
	cards, rest, err := s.Deck.Deal(n)
	if err != nil {
		return fmt.Errorf("dealing board: %w", err)
	}
	s.Deck = rest
	s.Board = append(s.Board, cards...)
	for _, c := range cards {
		s.emit(Event{Type: EventBoardCard, Cards: []deck.Card{c}})
	}
	return nil
}

// settleUncontested awards the entire pot to the last player standing
// without revealing further cards or consulting the evaluator.
func (s *GameState) settleUncontested() error {
	pots := s.Pots()
	order := s.awardOrder()
	awards := pot.AwardPots(pots, nil, order)
	return s.applyAwards(awards, nil, true)
}

// settleShowdown evaluates each contender's best hand, settles the pot
// layers from final contributions and distributes the winnings.
func (s *GameState) settleShowdown() error {
	ranks := make(map[PlayerID]eval.HandRank)
	for _, p := range s.Players {
		if !p.InHand() {
			continue
		}
		cards := append(append([]deck.Card(nil), p.HoleCards...), s.Board...)
		rank, err := eval.Evaluate(cards)
		if err != nil {
			return fmt.Errorf("evaluating %s at showdown: %w", p.ID, err)
		}
		ranks[p.ID] = rank
	}

	pots := s.Pots()
	awards := pot.AwardPots(pots, ranks, s.awardOrder())
	return s.applyAwards(awards, ranks, false)
}

// applyAwards moves pot amounts to winners, verifies chip conservation and
// finalizes the hand.
func (s *GameState) applyAwards(awards []pot.PotAward, ranks map[PlayerID]eval.HandRank, uncontested bool) error {
	for _, award := range awards {
		for id, amount := range award.Amounts {
			seat := s.seatOf(id)
			s.Players[seat].Chips += amount
			s.emit(Event{Type: EventPotAwarded, Player: id, Amount: amount})
		}
	}

	stacks := make(map[PlayerID]int, len(s.Players))
	total := 0
	for _, p := range s.Players {
		stacks[p.ID] = p.Chips
		total += p.Chips
	}
	if total != s.ChipTotal {
		// Never mis-award silently: abort the hand with a flagged state
		return fmt.Errorf("%w: expected %d chips, have %d", ErrChipConservation, s.ChipTotal, total)
	}

	s.Result = &HandResult{
		HandID:      s.HandID,
		Pots:        awards,
		Rankings:    ranks,
		Uncontested: uncontested,
		Stacks:      stacks,
	}
	s.Phase = Complete
	s.Active = -1
	s.emit(Event{Type: EventHandEnd})
	return nil
}
