package eval

import (
	"testing"

	oracle "github.com/paulhankin/poker"
	"github.com/stretchr/testify/require"

	"github.com/lox/sitngo/internal/deck"
	"github.com/lox/sitngo/internal/randutil"
)

// toOracle converts a card to the reference evaluator's representation
// (rank 1-13 with ace low, suit 0-3).
func toOracle(t *testing.T, c deck.Card) oracle.Card {
	t.Helper()

	rank := int(c.Rank)
	if c.Rank == deck.Ace {
		rank = 1
	}
	var suit oracle.Suit
	switch c.Suit {
	case deck.Clubs:
		suit = oracle.Club
	case deck.Diamonds:
		suit = oracle.Diamond
	case deck.Hearts:
		suit = oracle.Heart
	case deck.Spades:
		suit = oracle.Spade
	}

	card, err := oracle.MakeCard(suit, oracle.Rank(rank))
	require.NoError(t, err)
	return card
}

// TestAgainstReferenceEvaluator deals random pairs of 7-card hands and
// checks our ordering agrees with an independent evaluator on every pair.
func TestAgainstReferenceEvaluator(t *testing.T) {
	t.Parallel()

	rng := randutil.New(2024)
	for trial := 0; trial < 2000; trial++ {
		d := deck.New(rng)
		handA, d, err := d.Deal(7)
		require.NoError(t, err)
		handB, _, err := d.Deal(7)
		require.NoError(t, err)

		rankA, err := Evaluate(handA)
		require.NoError(t, err)
		rankB, err := Evaluate(handB)
		require.NoError(t, err)

		var oracleA, oracleB [7]oracle.Card
		for i := 0; i < 7; i++ {
			oracleA[i] = toOracle(t, handA[i])
			oracleB[i] = toOracle(t, handB[i])
		}
		scoreA := oracle.Eval7(&oracleA)
		scoreB := oracle.Eval7(&oracleB)

		got := Compare(rankA, rankB)
		want := 0
		if scoreA > scoreB {
			want = 1
		} else if scoreA < scoreB {
			want = -1
		}

		require.Equalf(t, want, got,
			"ordering disagrees with reference on %v vs %v", handA, handB)
	}
}
