package postfx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-postfx/engine/effect"
)

func TestDefaultOrderingRanks(t *testing.T) {
	table := DefaultOrdering()

	assert.Equal(t, 0, table.Rank(effect.CategoryAntialiasing))
	assert.Equal(t, 1, table.Rank(effect.CategoryAmbientOcclusion))
	assert.Equal(t, 2, table.Rank(effect.CategoryBloom))
	assert.Equal(t, 3, table.Rank(effect.CategoryColor))
	assert.Equal(t, 4, table.Rank(effect.CategoryLens))
	assert.Equal(t, 5, table.Rank(effect.CategoryFilm))
}

func TestOrderingUnlistedCategoryRanksLast(t *testing.T) {
	table := DefaultOrdering()
	assert.Equal(t, 6, table.Rank(effect.Category("distortion")))

	sparse := OrderingTable{effect.CategoryBloom: 3}
	assert.Equal(t, 4, sparse.Rank(effect.CategoryFilm))
}

func TestOrderingSortByRank(t *testing.T) {
	table := DefaultOrdering()

	ordered := table.Sort([]effect.Effect{
		effect.NewGrain(),
		effect.NewVignette(),
		effect.NewColorGrade(),
		effect.NewBloom(),
		effect.NewSSAO(),
		effect.NewSMAA(),
	})

	names := make([]string, len(ordered))
	for i, e := range ordered {
		names[i] = e.Name()
	}
	assert.Equal(t, []string{"smaa", "ssao", "bloom", "color-grade", "vignette", "grain"}, names)
}

func TestOrderingSortIsStableAndCopies(t *testing.T) {
	// Two effects in the same category keep registration order.
	table := OrderingTable{effect.CategoryBloom: 0}

	first := effect.NewBloom()
	second := effect.NewVignette()
	third := effect.NewGrain()
	input := []effect.Effect{third, first, second}

	ordered := table.Sort(input)

	require.Len(t, ordered, 3)
	// Bloom is ranked; the unlisted vignette and grain follow in input order.
	assert.Equal(t, "bloom", ordered[0].Name())
	assert.Equal(t, "grain", ordered[1].Name())
	assert.Equal(t, "vignette", ordered[2].Name())

	// The input slice is untouched.
	assert.Equal(t, "grain", input[0].Name())
	assert.Equal(t, "bloom", input[1].Name())
	assert.Equal(t, "vignette", input[2].Name())
}
