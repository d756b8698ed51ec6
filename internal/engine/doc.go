// Package engine is the authoritative rules core for a 6-max no-limit
// hold'em hand: it decides legal actions, advances hand state, evaluates
// showdowns and settles chips.
//
// The engine is pure computation. StartHand produces a GameState and
// ApplyAction maps (GameState, Action) to a new GameState or an error; a
// returned state is never mutated afterwards, so an ordered action log
// replays to identical states. Rejected actions (*ActionError) leave the
// input state untouched and are fully recoverable; invariant-class errors
// (ErrChipConservation, deck exhaustion) indicate an upstream bug and abort
// the hand.
//
// The engine performs no I/O and holds no shared state. It is safe to call
// from multiple goroutines as long as the caller serializes actions per
// hand; ordering between actions is the caller's responsibility.
package engine
