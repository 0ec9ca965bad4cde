package game

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cabogame/cabo/internal/models"
)

func testRNG() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func TestNewDeckComposition(t *testing.T) {
	d := NewDeck(testRNG(), false)
	assert.Equal(t, 52, d.Len())

	seen := make(map[models.Card]int)
	for _, c := range d.cards {
		seen[c]++
	}
	assert.Len(t, seen, 52, "every card unique")

	withJokers := NewDeck(testRNG(), true)
	assert.Equal(t, 54, withJokers.Len())
	jokers := 0
	for _, c := range withJokers.cards {
		if c.IsJoker() {
			jokers++
		}
	}
	assert.Equal(t, 2, jokers)
}

func TestDeckDrawEmpty(t *testing.T) {
	d := &Deck{rng: testRNG()}
	_, err := d.Draw()
	assert.True(t, errors.Is(err, ErrEmptyResource))
}

func TestDeckDrawPopsTop(t *testing.T) {
	d := &Deck{
		cards: []models.Card{
			{Rank: 2, Suit: models.SuitHearts},
			{Rank: 5, Suit: models.SuitSpades},
		},
		rng: testRNG(),
	}
	c, err := d.Draw()
	require.NoError(t, err)
	assert.Equal(t, models.Card{Rank: 5, Suit: models.SuitSpades}, c)
	assert.Equal(t, 1, d.Len())
}

func TestReshufflePreservesVisibleTop(t *testing.T) {
	d := &Deck{rng: testRNG()}
	discard := []models.Card{
		{Rank: 2, Suit: models.SuitHearts},
		{Rank: 7, Suit: models.SuitClubs},
		{Rank: 9, Suit: models.SuitDiamonds},
		{Rank: 13, Suit: models.SuitSpades},
	}
	top := discard[len(discard)-1]

	d.ReshuffleFromDiscard(&discard)

	require.Len(t, discard, 1)
	assert.Equal(t, top, discard[0], "visible top stays on the discard pile")
	assert.Equal(t, 3, d.Len())
	for _, c := range d.cards {
		assert.NotEqual(t, top, c)
	}
}

func TestReshuffleNoOpOnSmallDiscard(t *testing.T) {
	d := &Deck{rng: testRNG()}

	discard := []models.Card{{Rank: 4, Suit: models.SuitHearts}}
	d.ReshuffleFromDiscard(&discard)
	assert.Len(t, discard, 1)
	assert.Equal(t, 0, d.Len())

	var empty []models.Card
	d.ReshuffleFromDiscard(&empty)
	assert.Empty(t, empty)
	assert.Equal(t, 0, d.Len())
}

// TestShuffleSpread is a coarse uniformity check: over many shuffles a fixed
// card's position should average near the middle of the deck.
func TestShuffleSpread(t *testing.T) {
	rng := testRNG()
	target := models.Card{Rank: 1, Suit: models.SuitSpades}
	const n = 2000

	sum := 0
	for i := 0; i < n; i++ {
		d := NewDeck(rng, false)
		for pos, c := range d.cards {
			if c == target {
				sum += pos
				break
			}
		}
	}
	mean := float64(sum) / n
	assert.InDelta(t, 25.5, mean, 3.0)
}
