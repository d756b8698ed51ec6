package eval

import (
	"errors"
	"testing"

	"github.com/lox/sitngo/internal/deck"
	"github.com/lox/sitngo/internal/randutil"
)

func mustEval(t *testing.T, notation string) HandRank {
	t.Helper()
	rank, err := Evaluate(deck.MustParseCards(notation))
	if err != nil {
		t.Fatalf("Evaluate(%q): %v", notation, err)
	}
	return rank
}

func TestCategories(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cards    string
		category Category
	}{
		{"royal flush", "AsKsQsJsTs", RoyalFlush},
		{"straight flush", "9h8h7h6h5h", StraightFlush},
		{"steel wheel", "5c4c3c2cAc", StraightFlush},
		{"four of a kind", "7s7h7d7cKs", FourOfAKind},
		{"full house", "KsKhKd2s2h", FullHouse},
		{"flush", "AdJd8d6d3d", Flush},
		{"straight", "Ts9h8d7c6s", Straight},
		{"wheel", "5s4h3d2cAs", Straight},
		{"broadway", "AsKhQdJcTs", Straight},
		{"three of a kind", "QsQhQd8c3s", ThreeOfAKind},
		{"two pair", "JsJh4d4cAs", TwoPair},
		{"one pair", "9s9hAdKcQs", Pair},
		{"high card", "AsJh9d6c3s", HighCard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rank := mustEval(t, tt.cards)
			if rank.Category() != tt.category {
				t.Errorf("got %v, want %v", rank.Category(), tt.category)
			}
		})
	}
}

// TestStrengthOrdering walks hands from weakest to strongest and checks each
// strictly beats the previous one.
func TestStrengthOrdering(t *testing.T) {
	t.Parallel()

	ascending := []string{
		"7s5h4d3c2s", // worst high card
		"AsJh9d6c3s",
		"2s2h5d7c9s", // lowest pair
		"9s9hAdKcQs",
		"3s3h2d2cAs",
		"JsJh4d4cAs",
		"2s2h2d5c4s",
		"QsQhQd8c3s",
		"5s4h3d2cAs", // wheel is the lowest straight
		"Ts9h8d7c6s",
		"AsKhQdJcTs", // broadway straight
		"7d5d4d3d2d", // lowest flush
		"AdJd8d6d3d",
		"2s2h2d3c3s", // lowest full house
		"KsKhKd2s2h",
		"2s2h2d2cAs",
		"7s7h7d7cKs",
		"5c4c3c2cAc", // steel wheel
		"9h8h7h6h5h",
		"AsKsQsJsTs", // royal
	}

	prev := HandRank(0)
	for _, cards := range ascending {
		rank := mustEval(t, cards)
		if rank <= prev {
			t.Errorf("%s (rank %d, %s) should beat previous rank %d", cards, rank, rank, prev)
		}
		prev = rank
	}
}

func TestKickerComparisons(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		weaker, strong string
	}{
		{"high card kicker", "AsKhQd9c3s", "AsKhQdTc3s"},
		{"pair kicker", "9s9hKdQc2s", "9s9hAdQc2s"},
		{"higher pair beats kickers", "9s9hAdKcQs", "TsTh4d3c2s"},
		{"two pair low pair", "JsJh3d3cAs", "JsJh4d4c2s"},
		{"two pair kicker", "JsJh4d4cKs", "JsJh4d4cAs"},
		{"trips kicker", "QsQhQd8c3s", "QsQhQd8c4s"},
		{"full house pair rank", "KsKhKd2s2h", "KsKhKd3s3h"},
		{"quads kicker", "7s7h7d7cKs", "7s7h7d7cAs"},
		{"straight high card", "Ts9h8d7c6s", "Js9hTd8c7s"},
		{"flush second card", "AdJd8d6d3d", "AdQd8d6d3d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			weaker, stronger := mustEval(t, tt.weaker), mustEval(t, tt.strong)
			if Compare(stronger, weaker) != 1 {
				t.Errorf("%s (%v) should beat %s (%v)", tt.strong, stronger, tt.weaker, weaker)
			}
		})
	}
}

// TestExactTies verifies hands of identical strength produce bit-identical
// ranks, the trigger for a split pot.
func TestExactTies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b string
	}{
		{"AsKdQh7c2s", "AhKsQd7h2c"},
		{"9s9hAdKcQs", "9d9cAhKhQd"},
		{"Ts9h8d7c6s", "Th9d8c7s6h"},
		{"KsKhKd2s2h", "KcKhKd2d2c"},
	}

	for _, tt := range tests {
		a, b := mustEval(t, tt.a), mustEval(t, tt.b)
		if a != b {
			t.Errorf("%s (%d) and %s (%d) should tie exactly", tt.a, a, tt.b, b)
		}
	}
}

// TestPermutationInvariance checks the result does not depend on input
// order.
func TestPermutationInvariance(t *testing.T) {
	t.Parallel()

	rng := randutil.New(7)
	cards := deck.MustParseCards("AsKsQsJs9h5d2c")
	want, err := Evaluate(cards)
	if err != nil {
		t.Fatal(err)
	}

	for trial := 0; trial < 100; trial++ {
		shuffled := append([]deck.Card(nil), cards...)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		got, err := Evaluate(shuffled)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Fatalf("permutation changed rank: %d vs %d", got, want)
		}
	}
}

func TestSevenCardBestSubset(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cards    string
		category Category
	}{
		{"flush on board beats pair", "AsAh9d8d7d6d5d", Flush},
		{"board straight", "2s2hTd9c8s7h6d", Straight},
		{"full house from trips and pair", "QsQhQd8c8sAh2d", FullHouse},
		{"hidden straight flush", "9h8h7h6h5hAsAd", StraightFlush},
		{"two pair uses best kicker", "JsJh4d4c9sAh2d", TwoPair},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rank := mustEval(t, tt.cards)
			if rank.Category() != tt.category {
				t.Errorf("got %v, want %v", rank.Category(), tt.category)
			}
		})
	}

	// The two pair hand must pick the ace kicker, not the nine
	rank := mustEval(t, "JsJh4d4c9sAh2d")
	tb := rank.Tiebreaks()
	if tb[2] != deck.Ace {
		t.Errorf("kicker should be the ace, got %v", tb[2])
	}
}

func TestSixCardEvaluation(t *testing.T) {
	t.Parallel()

	rank := mustEval(t, "AsKsQsJsTs2h")
	if rank.Category() != RoyalFlush {
		t.Errorf("six cards containing a royal should rank RoyalFlush, got %v", rank.Category())
	}
}

func TestEvaluateErrors(t *testing.T) {
	t.Parallel()

	if _, err := Evaluate(deck.MustParseCards("AsKsQsJs")); !errors.Is(err, ErrInsufficientCards) {
		t.Errorf("expected ErrInsufficientCards, got %v", err)
	}
	if _, err := Evaluate(deck.MustParseCards("AsKsQsJsTs9s8s7s")); !errors.Is(err, ErrTooManyCards) {
		t.Errorf("expected ErrTooManyCards, got %v", err)
	}
	if _, err := Evaluate(deck.MustParseCards("AsAsQsJsTs")); !errors.Is(err, ErrDuplicateCard) {
		t.Errorf("expected ErrDuplicateCard, got %v", err)
	}
}

func BenchmarkEvaluate7(b *testing.B) {
	cards := deck.MustParseCards("AsKd9h8h7c4s2d")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Evaluate(cards); err != nil {
			b.Fatal(err)
		}
	}
}
