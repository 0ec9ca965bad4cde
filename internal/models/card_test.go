package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCardValueTable(t *testing.T) {
	// Ace through 10 score face value.
	for rank := 1; rank <= 10; rank++ {
		assert.Equal(t, rank, Card{Rank: rank, Suit: SuitClubs}.Value())
	}
	assert.Equal(t, 11, Card{Rank: 11, Suit: SuitHearts}.Value())
	assert.Equal(t, 12, Card{Rank: 12, Suit: SuitDiamonds}.Value())

	// Kings split by color.
	assert.Equal(t, 13, Card{Rank: 13, Suit: SuitClubs}.Value())
	assert.Equal(t, 13, Card{Rank: 13, Suit: SuitSpades}.Value())
	assert.Equal(t, -1, Card{Rank: 13, Suit: SuitHearts}.Value())
	assert.Equal(t, -1, Card{Rank: 13, Suit: SuitDiamonds}.Value())

	// Jokers are worth nothing.
	assert.Equal(t, 0, Card{Rank: 0, Suit: SuitJokerRed}.Value())
	assert.Equal(t, 0, Card{Rank: 0, Suit: SuitJokerBlack}.Value())
}

func TestBlackKing(t *testing.T) {
	assert.True(t, Card{Rank: 13, Suit: SuitSpades}.IsBlackKing())
	assert.True(t, Card{Rank: 13, Suit: SuitClubs}.IsBlackKing())
	assert.False(t, Card{Rank: 13, Suit: SuitHearts}.IsBlackKing())
	assert.False(t, Card{Rank: 12, Suit: SuitSpades}.IsBlackKing())
}

func TestCardString(t *testing.T) {
	assert.Equal(t, "AH", Card{Rank: 1, Suit: SuitHearts}.String())
	assert.Equal(t, "10S", Card{Rank: 10, Suit: SuitSpades}.String())
	assert.Equal(t, "KD", Card{Rank: 13, Suit: SuitDiamonds}.String())
	assert.Equal(t, "JOKERR", Card{Rank: 0, Suit: SuitJokerRed}.String())
}
