package pot

import (
	"errors"
	"testing"

	"github.com/lox/sitngo/internal/deck"
	"github.com/lox/sitngo/internal/eval"
	"github.com/lox/sitngo/internal/randutil"
)

func rankFor(t *testing.T, notation string) eval.HandRank {
	t.Helper()
	rank, err := eval.Evaluate(deck.MustParseCards(notation))
	if err != nil {
		t.Fatal(err)
	}
	return rank
}

func TestSettleSinglePot(t *testing.T) {
	t.Parallel()

	pots, err := Settle([]Contribution{
		{Player: "p1", Amount: 100},
		{Player: "p2", Amount: 100},
		{Player: "p3", Amount: 100},
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(pots) != 1 {
		t.Fatalf("expected 1 pot, got %d", len(pots))
	}
	if pots[0].Amount != 300 {
		t.Errorf("expected 300, got %d", pots[0].Amount)
	}
	if len(pots[0].Eligible) != 3 {
		t.Errorf("all 3 players should be eligible, got %d", len(pots[0].Eligible))
	}
}

// TestSettleAllInSidePot covers the canonical {50,100,100} layering: a 150
// main pot everyone can win and a 100 side pot for the two big stacks.
func TestSettleAllInSidePot(t *testing.T) {
	t.Parallel()

	pots, err := Settle([]Contribution{
		{Player: "p1", Amount: 50},
		{Player: "p2", Amount: 100},
		{Player: "p3", Amount: 100},
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(pots) != 2 {
		t.Fatalf("expected 2 pots, got %d", len(pots))
	}
	if pots[0].Amount != 150 || len(pots[0].Eligible) != 3 {
		t.Errorf("main pot should be 150 with 3 eligible, got %d with %v", pots[0].Amount, pots[0].Eligible)
	}
	if pots[1].Amount != 100 || len(pots[1].Eligible) != 2 {
		t.Errorf("side pot should be 100 with 2 eligible, got %d with %v", pots[1].Amount, pots[1].Eligible)
	}
}

// TestFoldedChipsFundThePot: folded players' contributions stay in but they
// are never eligible to win.
func TestFoldedChipsFundThePot(t *testing.T) {
	t.Parallel()

	pots, err := Settle([]Contribution{
		{Player: "p1", Amount: 40, Folded: true},
		{Player: "p2", Amount: 100},
		{Player: "p3", Amount: 100},
	})
	if err != nil {
		t.Fatal(err)
	}

	// The fold does not create a layer boundary for eligibility purposes:
	// both remaining players are eligible for everything, so a single pot
	// results after merging.
	if len(pots) != 1 {
		t.Fatalf("expected 1 merged pot, got %d", len(pots))
	}
	if pots[0].Amount != 240 {
		t.Errorf("pot should include folded chips: got %d, want 240", pots[0].Amount)
	}
	for _, id := range pots[0].Eligible {
		if id == "p1" {
			t.Error("folded player must not be eligible")
		}
	}
}

func TestSettleConservation(t *testing.T) {
	t.Parallel()

	rng := randutil.New(11)
	players := []PlayerID{"a", "b", "c", "d", "e", "f"}

	for trial := 0; trial < 500; trial++ {
		contribs := make([]Contribution, len(players))
		total := 0
		for i, id := range players {
			amount := rng.IntN(200)
			contribs[i] = Contribution{Player: id, Amount: amount, Folded: rng.IntN(3) == 0}
			total += amount
		}

		pots, err := Settle(contribs)
		if err != nil {
			t.Fatal(err)
		}
		sum := 0
		for _, p := range pots {
			sum += p.Amount
		}
		if sum != total {
			t.Fatalf("trial %d: pots sum to %d, contributions %d", trial, sum, total)
		}
	}
}

func TestSettleNegativeContribution(t *testing.T) {
	t.Parallel()

	_, err := Settle([]Contribution{{Player: "p1", Amount: -5}})
	if !errors.Is(err, ErrInvalidContribution) {
		t.Errorf("expected ErrInvalidContribution, got %v", err)
	}
}

func TestAwardUncontestedPotSkipsRanks(t *testing.T) {
	t.Parallel()

	pots := []Pot{{Amount: 75, Eligible: []PlayerID{"p2"}}}
	// nil ranks: a single-eligible pot must not consult them
	awards := AwardPots(pots, nil, []PlayerID{"p1", "p2", "p3"})

	if len(awards) != 1 {
		t.Fatalf("expected 1 award, got %d", len(awards))
	}
	if awards[0].Amounts["p2"] != 75 {
		t.Errorf("p2 should win 75, got %d", awards[0].Amounts["p2"])
	}
}

func TestAwardSplitPotOddChip(t *testing.T) {
	t.Parallel()

	ranks := map[PlayerID]eval.HandRank{
		"p1": rankFor(t, "9s9hAdKcQs"),
		"p2": rankFor(t, "9d9cAhKhQd"), // exact tie with p1
		"p3": rankFor(t, "AsJh9d6c3s"),
	}
	pots := []Pot{{Amount: 101, Eligible: []PlayerID{"p1", "p2", "p3"}}}

	// p2 sits closest clockwise from the dealer, so the odd chip is theirs
	awards := AwardPots(pots, ranks, []PlayerID{"p2", "p3", "p1"})

	if len(awards[0].Winners) != 2 {
		t.Fatalf("expected 2 winners, got %v", awards[0].Winners)
	}
	if awards[0].Amounts["p2"] != 51 {
		t.Errorf("p2 should get the odd chip: got %d, want 51", awards[0].Amounts["p2"])
	}
	if awards[0].Amounts["p1"] != 50 {
		t.Errorf("p1 should get 50, got %d", awards[0].Amounts["p1"])
	}
	if awards[0].Amounts["p3"] != 0 {
		t.Errorf("p3 should get nothing, got %d", awards[0].Amounts["p3"])
	}
}

// TestAwardLayeredShowdown walks the full 20/50/100/100 scenario: the short
// stack holds the best hand and scoops only the layer it funded, while the
// tied pair split everything above it.
func TestAwardLayeredShowdown(t *testing.T) {
	t.Parallel()

	pots, err := Settle([]Contribution{
		{Player: "p1", Amount: 20},
		{Player: "p2", Amount: 50},
		{Player: "p3", Amount: 100},
		{Player: "p4", Amount: 100},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(pots) != 3 {
		t.Fatalf("expected 3 pots, got %d", len(pots))
	}

	ranks := map[PlayerID]eval.HandRank{
		"p1": rankFor(t, "KsKhKd2s2h"), // best hand, short stack
		"p2": rankFor(t, "AsJh9d6c3s"),
		"p3": rankFor(t, "9s9hAdKcQs"), // ties with p4
		"p4": rankFor(t, "9d9cAhKhQd"),
	}
	order := []PlayerID{"p2", "p3", "p4", "p1"}
	awards := AwardPots(pots, ranks, order)

	// Bottom layer: 4 x 20 to p1
	if got := awards[0].Amounts["p1"]; got != 80 {
		t.Errorf("p1 should win the bottom layer (80), got %d", got)
	}
	// Middle layer: 3 x 30 = 90 split between p3 and p4, odd chip to p3
	// (earlier in clockwise order)
	if got := awards[1].Amounts["p3"]; got != 45 {
		t.Errorf("p3 middle share should be 45, got %d", got)
	}
	if got := awards[1].Amounts["p4"]; got != 45 {
		t.Errorf("p4 middle share should be 45, got %d", got)
	}
	// Top layer: 2 x 50 = 100 split between p3 and p4
	if got := awards[2].Amounts["p3"]; got != 50 {
		t.Errorf("p3 top share should be 50, got %d", got)
	}
	if got := awards[2].Amounts["p4"]; got != 50 {
		t.Errorf("p4 top share should be 50, got %d", got)
	}
}

func TestAdjacentLayersMerge(t *testing.T) {
	t.Parallel()

	// p1 folds at 30: the 30 and 80 levels have identical eligible sets and
	// must merge into one pot.
	pots, err := Settle([]Contribution{
		{Player: "p1", Amount: 30, Folded: true},
		{Player: "p2", Amount: 80},
		{Player: "p3", Amount: 80},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(pots) != 1 {
		t.Fatalf("expected merged single pot, got %d", len(pots))
	}
	if pots[0].Amount != 190 {
		t.Errorf("merged pot should be 190, got %d", pots[0].Amount)
	}
}
