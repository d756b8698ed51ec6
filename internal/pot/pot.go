// Package pot converts per-player hand contributions into main and side
// pots and distributes them to winners, including split pots and odd chips.
package pot

import (
	"errors"
	"sort"

	"github.com/lox/sitngo/internal/eval"
)

// ErrInvalidContribution indicates a negative contribution reached the pot
// engine. Contributions are derived from validated actions, so this is a
// programming-error invariant violation, not a user-facing rejection.
var ErrInvalidContribution = errors.New("negative pot contribution")

// PlayerID identifies a player across the pot engine and its callers.
type PlayerID string

// Contribution records what one player put into the hand and whether they
// folded. The slice order given to Settle fixes the order of eligible sets.
type Contribution struct {
	Player PlayerID
	Amount int
	Folded bool
}

// Pot is one layer of the settled pot structure. Folded players' chips fund
// the amount but only non-folded contributors appear in Eligible.
type Pot struct {
	Amount   int
	Eligible []PlayerID
}

// Settle layers contributions into pots. Distinct contribution levels are
// walked ascending; each player funds min(contribution, level) - floor into
// the layer, and every non-folded player who contributed past the floor is
// eligible to win it. Adjacent layers with identical eligible sets are
// merged. The sum of pot amounts always equals the sum of contributions.
func Settle(contribs []Contribution) ([]Pot, error) {
	for _, c := range contribs {
		if c.Amount < 0 {
			return nil, ErrInvalidContribution
		}
	}

	levels := distinctLevels(contribs)
	if len(levels) == 0 {
		return nil, nil
	}

	var pots []Pot
	floor := 0
	for _, level := range levels {
		p := Pot{}
		for _, c := range contribs {
			if c.Amount <= floor {
				continue
			}
			slice := min(c.Amount, level) - floor
			p.Amount += slice
			if !c.Folded {
				p.Eligible = append(p.Eligible, c.Player)
			}
		}
		if p.Amount == 0 {
			floor = level
			continue
		}

		if n := len(pots); n > 0 && samePlayers(pots[n-1].Eligible, p.Eligible) {
			pots[n-1].Amount += p.Amount
		} else {
			pots = append(pots, p)
		}
		floor = level
	}

	return pots, nil
}

// PotAward records the outcome of one pot: who won it and how much each
// winner received. Amounts differ by at most one chip across winners.
type PotAward struct {
	Pot     Pot
	Winners []PlayerID
	Amounts map[PlayerID]int
}

// AwardPots determines winners for each pot and splits the amounts. The
// ranks map holds the hand strength of every player still contesting the
// hand; an eligible player absent from it cannot win. A pot whose eligible
// set has a single player is awarded uncontested without consulting ranks.
//
// Split pots divide by integer division; odd chips go one each to tied
// winners in the order given (callers pass clockwise-from-dealer seat order,
// keeping the odd-chip rule deterministic and configurable at the call
// site).
func AwardPots(pots []Pot, ranks map[PlayerID]eval.HandRank, order []PlayerID) []PotAward {
	awards := make([]PotAward, 0, len(pots))

	for _, p := range pots {
		var winners []PlayerID

		if len(p.Eligible) == 1 {
			winners = []PlayerID{p.Eligible[0]}
		} else {
			var best eval.HandRank
			for _, id := range p.Eligible {
				rank, ok := ranks[id]
				if !ok {
					continue
				}
				switch eval.Compare(rank, best) {
				case 1:
					best = rank
					winners = []PlayerID{id}
				case 0:
					if len(winners) > 0 {
						winners = append(winners, id)
					}
				}
			}
		}

		awards = append(awards, PotAward{
			Pot:     p,
			Winners: winners,
			Amounts: split(p.Amount, winners, order),
		})
	}

	return awards
}

// split divides amount among winners, awarding the remainder one chip at a
// time in the given player order.
func split(amount int, winners []PlayerID, order []PlayerID) map[PlayerID]int {
	amounts := make(map[PlayerID]int, len(winners))
	if len(winners) == 0 {
		return amounts
	}

	each := amount / len(winners)
	remainder := amount % len(winners)
	for _, id := range winners {
		amounts[id] = each
	}

	for _, id := range order {
		if remainder == 0 {
			break
		}
		if _, ok := amounts[id]; ok {
			amounts[id]++
			remainder--
		}
	}

	// Winners missing from order still receive their remainder share.
	for _, id := range winners {
		if remainder == 0 {
			break
		}
		if amounts[id] == each {
			amounts[id]++
			remainder--
		}
	}

	return amounts
}

func distinctLevels(contribs []Contribution) []int {
	seen := make(map[int]bool, len(contribs))
	var levels []int
	for _, c := range contribs {
		if c.Amount > 0 && !seen[c.Amount] {
			seen[c.Amount] = true
			levels = append(levels, c.Amount)
		}
	}
	sort.Ints(levels)
	return levels
}

func samePlayers(a, b []PlayerID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
