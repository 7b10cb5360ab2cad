package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCard(t *testing.T) {
	card, err := LoadCard()
	require.NoError(t, err)

	assert.Equal(t, "Meta Ads Strategist", card.Name)
	assert.Empty(t, card.URL)
	require.Len(t, card.Skills, 1)
	assert.Equal(t, "meta-ads-strategy", card.Skills[0].ID)
	assert.Contains(t, card.DefaultOutputModes, "text/markdown")
}

func TestWithURL_DoesNotMutate(t *testing.T) {
	card, err := LoadCard()
	require.NoError(t, err)

	withURL := card.WithURL("https://ads.example.com/a2a/strategist")

	assert.Equal(t, "https://ads.example.com/a2a/strategist", withURL.URL)
	assert.Empty(t, card.URL)
}
