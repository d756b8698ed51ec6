// Package eval maps 5, 6, or 7 card sets to a totally ordered hand strength.
//
// A HandRank packs the hand category and its significance-ordered tiebreak
// ranks into a single integer, so comparing two ranks numerically always
// agrees with poker rules, kickers included. Two hands of identical strength
// produce bit-identical ranks, which is what triggers a split pot.
package eval

import (
	"errors"
	"math/bits"

	"github.com/lox/sitngo/internal/deck"
)

var (
	// ErrInsufficientCards is returned for inputs of fewer than five cards.
	ErrInsufficientCards = errors.New("need at least 5 cards to evaluate")
	// ErrTooManyCards is returned for inputs of more than seven cards.
	ErrTooManyCards = errors.New("cannot evaluate more than 7 cards")
	// ErrDuplicateCard is returned when the input contains the same card
	// twice. Unreachable from a well-formed deck, but the evaluator is also
	// called with externally assembled hole+board sets, so it is checked
	// here.
	ErrDuplicateCard = errors.New("duplicate card in hand")
)

// Category enumerates hand categories from weakest to strongest.
type Category int

const (
	HighCard Category = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush // ace-high straight flush
)

// String returns a human-readable category name.
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// HandRank encodes a hand's strength. Higher values are stronger. The
// category occupies bits 20-23 and up to five 4-bit tiebreak ranks follow in
// significance order, so the numeric ordering is the poker ordering.
type HandRank uint32

// Category returns the hand category encoded in the rank.
func (hr HandRank) Category() Category {
	return Category(hr >> 20)
}

// Tiebreaks returns the significance-ordered tiebreak ranks, highest
// significance first, without trailing zero slots.
func (hr HandRank) Tiebreaks() []deck.Rank {
	out := make([]deck.Rank, 0, 5)
	for i := 4; i >= 0; i-- {
		r := deck.Rank((hr >> (uint(i) * 4)) & 0xf)
		if r == 0 {
			continue
		}
		out = append(out, r)
	}
	return out
}

// String returns a human-readable description like "Two Pair (K K 7 7 A)".
func (hr HandRank) String() string {
	s := hr.Category().String()
	tb := hr.Tiebreaks()
	if len(tb) == 0 {
		return s
	}
	s += " ("
	for i, r := range tb {
		if i > 0 {
			s += " "
		}
		s += r.String()
	}
	return s + ")"
}

// Compare returns 1 if a is stronger than b, -1 if weaker, 0 on an exact tie.
func Compare(a, b HandRank) int {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	default:
		return 0
	}
}

// Evaluate returns the strength of the best five-card hand available from
// the given 5, 6, or 7 cards.
func Evaluate(cards []deck.Card) (HandRank, error) {
	switch {
	case len(cards) < 5:
		return 0, ErrInsufficientCards
	case len(cards) > 7:
		return 0, ErrTooManyCards
	}

	var seen uint64
	for _, c := range cards {
		bit := uint64(1) << c.Ordinal()
		if seen&bit != 0 {
			return 0, ErrDuplicateCard
		}
		seen |= bit
	}

	if len(cards) == 5 {
		return evaluate5(cards[0], cards[1], cards[2], cards[3], cards[4]), nil
	}

	// Best five-card hand out of any subset of the given cards.
	var best HandRank
	n := len(cards)
	for i := 0; i < n-4; i++ {
		for j := i + 1; j < n-3; j++ {
			for k := j + 1; k < n-2; k++ {
				for l := k + 1; l < n-1; l++ {
					for m := l + 1; m < n; m++ {
						r := evaluate5(cards[i], cards[j], cards[k], cards[l], cards[m])
						if r > best {
							best = r
						}
					}
				}
			}
		}
	}
	return best, nil
}

// evaluate5 ranks exactly five distinct cards.
func evaluate5(c0, c1, c2, c3, c4 deck.Card) HandRank {
	var rankMask uint16 // bit r-2 set for each rank present
	var counts [15]int  // indexed by deck.Rank value
	for _, c := range [5]deck.Card{c0, c1, c2, c3, c4} {
		rankMask |= 1 << (c.Rank - deck.Two)
		counts[c.Rank]++
	}

	flush := c0.Suit == c1.Suit && c1.Suit == c2.Suit && c2.Suit == c3.Suit && c3.Suit == c4.Suit
	straightHigh := straightHighCard(rankMask)

	if flush && straightHigh != 0 {
		if straightHigh == deck.Ace {
			return pack(RoyalFlush, straightHigh)
		}
		return pack(StraightFlush, straightHigh)
	}

	// Group ranks by multiplicity, each group ordered high to low.
	var quads, trips, pairs, singles []deck.Rank
	for r := deck.Ace; r >= deck.Two; r-- {
		switch counts[r] {
		case 4:
			quads = append(quads, r)
		case 3:
			trips = append(trips, r)
		case 2:
			pairs = append(pairs, r)
		case 1:
			singles = append(singles, r)
		}
	}

	switch {
	case len(quads) == 1:
		return pack(FourOfAKind, quads[0], singles[0])
	case len(trips) == 1 && len(pairs) == 1:
		return pack(FullHouse, trips[0], pairs[0])
	case flush:
		return pack(Flush, singles[0], singles[1], singles[2], singles[3], singles[4])
	case straightHigh != 0:
		return pack(Straight, straightHigh)
	case len(trips) == 1:
		return pack(ThreeOfAKind, trips[0], singles[0], singles[1])
	case len(pairs) == 2:
		return pack(TwoPair, pairs[0], pairs[1], singles[0])
	case len(pairs) == 1:
		return pack(Pair, pairs[0], singles[0], singles[1], singles[2])
	default:
		return pack(HighCard, singles[0], singles[1], singles[2], singles[3], singles[4])
	}
}

// straightHighCard returns the high card of the straight present in the rank
// mask, or 0 if there is none. The wheel (A-2-3-4-5) reports Five, ranking it
// as the lowest straight.
func straightHighCard(mask uint16) deck.Rank {
	const wheelMask = 0x100F // Ace + 2-3-4-5
	if mask&wheelMask == wheelMask && bits.OnesCount16(mask) == 5 {
		return deck.Five
	}

	// Bitwise cascade identifies five consecutive set bits in one pass.
	seq := mask & (mask >> 1) & (mask >> 2) & (mask >> 3) & (mask >> 4)
	if seq == 0 {
		return 0
	}
	low := bits.Len16(seq) - 1
	return deck.Rank(low) + deck.Two + 4
}

// pack builds a HandRank from a category and up to five tiebreak ranks in
// significance order.
func pack(cat Category, tiebreaks ...deck.Rank) HandRank {
	hr := HandRank(cat) << 20
	shift := uint(16)
	for _, r := range tiebreaks {
		hr |= HandRank(r) << shift
		shift -= 4
	}
	return hr
}
