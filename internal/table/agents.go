package table

import (
	rand "math/rand/v2"

	"github.com/lox/sitngo/internal/engine"
)

// CheckFoldAgent checks whenever it is free to and folds otherwise.
type CheckFoldAgent struct{}

func (CheckFoldAgent) Decide(_ View, actions []engine.ValidAction) engine.Action {
	for _, a := range actions {
		if a.Type == engine.Check {
			return engine.Action{Type: engine.Check}
		}
	}
	return engine.Action{Type: engine.Fold}
}

// CallingAgent calls any bet and checks when there is nothing to call.
type CallingAgent struct{}

func (CallingAgent) Decide(_ View, actions []engine.ValidAction) engine.Action {
	for _, a := range actions {
		switch a.Type {
		case engine.Check:
			return engine.Action{Type: engine.Check}
		case engine.Call:
			return engine.Action{Type: engine.Call}
		case engine.AllIn:
			// Forced when a call would empty the stack
			return engine.Action{Type: engine.AllIn}
		}
	}
	return engine.Action{Type: engine.Fold}
}

// RandomAgent picks uniformly among the offered actions, with a random
// legal size for bets and raises. Useful for soak-testing the engine.
type RandomAgent struct {
	Rng *rand.Rand
}

func (r RandomAgent) Decide(_ View, actions []engine.ValidAction) engine.Action {
	choice := actions[r.Rng.IntN(len(actions))]
	action := engine.Action{Type: choice.Type}
	if choice.Type == engine.Bet || choice.Type == engine.Raise {
		action.Amount = choice.Min
		if choice.Max > choice.Min {
			action.Amount += r.Rng.IntN(choice.Max - choice.Min + 1)
		}
	}
	return action
}
