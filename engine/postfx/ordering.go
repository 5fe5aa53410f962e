package postfx

import (
	"sort"

	"github.com/Carmen-Shannon/oxy-postfx/engine/effect"
)

// OrderingTable maps effect categories to pass ranks. Lower ranks run
// earlier in the chain; categories absent from the table run last. Effects
// sharing a rank keep their registration order.
type OrderingTable map[effect.Category]int

// DefaultOrdering returns the standard pass order: antialiasing first, then
// ambient occlusion, bloom, color work, lens effects, and film effects last.
//
// Returns:
//   - OrderingTable: the default table
func DefaultOrdering() OrderingTable {
	return OrderingTable{
		effect.CategoryAntialiasing:     0,
		effect.CategoryAmbientOcclusion: 1,
		effect.CategoryBloom:            2,
		effect.CategoryColor:            3,
		effect.CategoryLens:             4,
		effect.CategoryFilm:             5,
	}
}

// Rank returns the pass rank for a category. Unlisted categories rank after
// every listed one.
//
// Parameters:
//   - category: the category to look up
//
// Returns:
//   - int: the rank
func (t OrderingTable) Rank(category effect.Category) int {
	if rank, ok := t[category]; ok {
		return rank
	}

	last := 0
	for _, rank := range t {
		if rank > last {
			last = rank
		}
	}
	return last + 1
}

// Sort orders effects by category rank, ascending and stable: effects with
// equal ranks keep their relative input order. The input slice is not
// modified.
//
// Parameters:
//   - effects: the effects to order
//
// Returns:
//   - []effect.Effect: a new slice in pass order
func (t OrderingTable) Sort(effects []effect.Effect) []effect.Effect {
	ordered := make([]effect.Effect, len(effects))
	copy(ordered, effects)

	sort.SliceStable(ordered, func(i, j int) bool {
		return t.Rank(ordered[i].Category()) < t.Rank(ordered[j].Category())
	})

	return ordered
}
