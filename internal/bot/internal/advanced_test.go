package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"landlord/internal/domain"
)

func TestAdvancedAnalyze_SevenCardChain(t *testing.T) {
	got := AdvancedAnalyze(domain.MustParseCards("3S 4H 5D 6C 7S 8S 9H"))

	require.Len(t, got, 1)
	assert.Equal(t, domain.TypeSoloChain, got[0].Type)
	assert.Equal(t, 7, got[0].ChainLength())
}

func TestAdvancedAnalyze_SplitsOverlappingChains(t *testing.T) {
	cards := domain.MustParseCards("3S 4S 5S 6S 7S 7H 8S 9S 10S JS")

	assert.Equal(t, 9, StandardEvaluate(cards))

	got := AdvancedAnalyze(cards)
	require.Len(t, got, 2)
	assert.Equal(t, domain.TypeSoloChain, got[0].Type)
	assert.True(t, got.Cards().Equal(cards))
}

func TestAdvancedAnalyze_KeepsFixedHandsFirst(t *testing.T) {
	cards := domain.MustParseCards("r R 2S 3S 4S 5S 6S 7S 7H 8S 9S 10S JS")
	got := AdvancedAnalyze(cards)

	require.GreaterOrEqual(t, len(got), 3)
	assert.Equal(t, domain.TypeNuke, got[0].Type)
	assert.Equal(t, domain.TypeSolo, got[1].Type)
	assert.Equal(t, domain.Rank2, got[1].Rank())
	assert.Equal(t, 4, len(got))
}

func TestAdvancedAnalyze_NoChainsMatchesStandard(t *testing.T) {
	cards := domain.MustParseCards("3S 3H 5S 5H 5D 9C JS JH 2S")
	assert.Equal(t, StandardAnalyze(cards), AdvancedAnalyze(cards))
}

func TestAdvancedEvaluate_NeverWorseThanStandard(t *testing.T) {
	for seed := int64(1); seed <= 40; seed++ {
		hands := dealHands(seed)
		for _, cards := range hands {
			std := StandardEvaluate(cards)
			adv := AdvancedEvaluate(cards)
			assert.LessOrEqual(t, adv, std, "seed %d: %v", seed, cards)
		}
	}
}

func TestChainMoves(t *testing.T) {
	count := domain.MustParseCards("3S 4S 5S 6S 7S 8S").CountRanks()
	moves := chainMoves(count)

	// 3-8, then 3-7 and 4-8
	require.Len(t, moves, 3)
	assert.Equal(t, rankRun{Lo: domain.Rank3, Length: 6}, moves[0].Run)
	assert.Equal(t, rankRun{Lo: domain.Rank3, Length: 5}, moves[1].Run)
	assert.Equal(t, rankRun{Lo: domain.Rank4, Length: 5}, moves[2].Run)
}
