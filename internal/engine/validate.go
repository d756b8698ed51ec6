package engine

import "fmt"

// effect is the normalized outcome of a validated action: the total street
// bet the player moves to and how it affects the betting round.
type effect struct {
	toAmount   int  // player's total bet this street after the action
	allIn      bool
	aggression bool // toAmount exceeds the current bet
	fullRaise  bool // aggression of at least the minimum raise
}

// validate decides whether an action is legal in the given state and
// computes its effect. It never modifies state; a rejection leaves the
// caller's state exactly as it was.
func validate(s GameState, a Action) (effect, *ActionError) {
	seat := s.seatOf(a.Player)
	if seat == -1 {
		return effect{}, reject(a.Player, RejectUnknownPlayer, "")
	}
	if seat != s.Active {
		return effect{}, reject(a.Player, RejectNotYourTurn, "")
	}

	p := s.Players[seat]
	toCall := s.Betting.CurrentBet - p.Bet

	switch a.Type {
	case Fold:
		// Always legal for the player to act
		return effect{toAmount: p.Bet}, nil

	case Check:
		if toCall != 0 {
			return effect{}, reject(a.Player, RejectCannotCheck, fmt.Sprintf("must call %d", toCall))
		}
		return effect{toAmount: p.Bet}, nil

	case Call:
		if toCall <= 0 {
			return effect{}, reject(a.Player, RejectNothingToCall, "")
		}
		// Amount is fixed at the call difference; callers may omit it. A
		// short amount is rejected unless it is the player's entire stack,
		// which becomes an all-in call.
		if a.Amount != 0 && a.Amount != toCall {
			if a.Amount > toCall {
				return effect{}, reject(a.Player, RejectInvalidAmount, fmt.Sprintf("call is %d", toCall))
			}
			if a.Amount != p.Chips {
				return effect{}, reject(a.Player, RejectInsufficientChips, fmt.Sprintf("call is %d", toCall))
			}
		}
		paid := min(toCall, p.Chips)
		return effect{toAmount: p.Bet + paid, allIn: paid == p.Chips}, nil

	case Bet:
		if s.Betting.CurrentBet != 0 {
			return effect{}, reject(a.Player, RejectRoundAlreadyOpen, "")
		}
		return sizeAggression(s, a, seat)

	case Raise:
		if s.Betting.CurrentBet == 0 {
			return effect{}, reject(a.Player, RejectRoundNotOpen, "")
		}
		if s.Betting.Acted[seat] && !s.Betting.Reopened {
			return effect{}, reject(a.Player, RejectActionNotReopened, "")
		}
		if a.Amount <= s.Betting.CurrentBet {
			return effect{}, reject(a.Player, RejectInvalidAmount, fmt.Sprintf("raise must exceed %d", s.Betting.CurrentBet))
		}
		return sizeAggression(s, a, seat)

	case AllIn:
		if p.Chips == 0 {
			return effect{}, reject(a.Player, RejectInvalidAmount, "no chips")
		}
		to := p.Bet + p.Chips
		aggr := to > s.Betting.CurrentBet
		if aggr && s.Betting.Acted[seat] && !s.Betting.Reopened {
			return effect{}, reject(a.Player, RejectActionNotReopened, "")
		}
		return effect{
			toAmount:   to,
			allIn:      true,
			aggression: aggr,
			fullRaise:  to-s.Betting.CurrentBet >= s.Betting.MinRaise,
		}, nil

	default:
		return effect{}, reject(a.Player, RejectInvalidAmount, "unknown action type")
	}
}

// sizeAggression validates bet/raise sizing. Amount is the total bet level
// for the street. Undersized aggression is only legal as an all-in.
func sizeAggression(s GameState, a Action, seat int) (effect, *ActionError) {
	p := s.Players[seat]
	if a.Amount <= 0 {
		return effect{}, reject(a.Player, RejectInvalidAmount, "")
	}

	needed := a.Amount - p.Bet
	if needed > p.Chips {
		return effect{}, reject(a.Player, RejectInsufficientChips, fmt.Sprintf("have %d", p.Chips))
	}

	minTo := s.Betting.CurrentBet + s.Betting.MinRaise
	allIn := needed == p.Chips
	if a.Amount < minTo && !allIn {
		return effect{}, reject(a.Player, RejectRaiseTooSmall, fmt.Sprintf("minimum %d", minTo))
	}

	return effect{
		toAmount:   a.Amount,
		allIn:      allIn,
		aggression: true,
		fullRaise:  a.Amount-s.Betting.CurrentBet >= s.Betting.MinRaise,
	}, nil
}
