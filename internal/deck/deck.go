package deck

import (
	"errors"
	rand "math/rand/v2"
)

// ErrExhausted is returned when a deal asks for more cards than remain.
// It cannot happen in a six-handed hold'em hand with a full deck, but it is
// checked rather than assumed.
var ErrExhausted = errors.New("deck exhausted")

// Deck is an ordered view into a shuffled 52-card sequence. Deal returns the
// remaining view instead of mutating in place, so the deck threads through
// state snapshots like any other value; the hand state owns the current view.
type Deck struct {
	cards []Card
}

// New creates a freshly shuffled deck using Fisher-Yates driven by rng.
func New(rng *rand.Rand) Deck {
	cards := make([]Card, 0, 52)
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			cards = append(cards, Card{Rank: rank, Suit: suit})
		}
	}

	for i := len(cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}

	return Deck{cards: cards}
}

// FromCards builds a deck with a fixed order, for deterministic tests.
func FromCards(cards []Card) Deck {
	copied := make([]Card, len(cards))
	copy(copied, cards)
	return Deck{cards: copied}
}

// Deal removes n cards from the front and returns them along with the
// remaining deck view.
func (d Deck) Deal(n int) ([]Card, Deck, error) {
	if n < 0 || n > len(d.cards) {
		return nil, d, ErrExhausted
	}
	dealt := make([]Card, n)
	copy(dealt, d.cards[:n])
	return dealt, Deck{cards: d.cards[n:]}, nil
}

// Remaining returns the number of cards left.
func (d Deck) Remaining() int {
	return len(d.cards)
}

// Cards returns a copy of the remaining cards in order.
func (d Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}
