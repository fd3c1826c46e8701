package privacy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTierRankOrdering(t *testing.T) {
	assert.Less(t, TierStandard.Rank(), TierRAG.Rank())
	assert.Less(t, TierRAG.Rank(), TierClassified.Rank())
	assert.Less(t, TierClassified.Rank(), TierDeidentified.Rank())
}

func TestTierValid(t *testing.T) {
	for _, tier := range Tiers {
		assert.True(t, tier.Valid(), "tier %s should be valid", tier)
	}
	assert.False(t, Tier("ultra").Valid())
	assert.False(t, Tier("").Valid())
}

func TestParseTier(t *testing.T) {
	tier, err := ParseTier("classified")
	require.NoError(t, err)
	assert.Equal(t, TierClassified, tier)

	_, err = ParseTier("Classified")
	assert.Error(t, err)

	_, err = ParseTier("")
	assert.Error(t, err)
}
