package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func handOf(cards ...Card) *Hand {
	h := NewHand()
	for _, c := range cards {
		h.Add(c)
	}
	return h
}

func TestHandReplaceResetsKnown(t *testing.T) {
	h := handOf(Card{Rank: 5, Suit: SuitHearts}, Card{Rank: 9, Suit: SuitClubs})
	h.MarkKnown(0)
	require.True(t, h.Known(0))

	old, ok := h.Replace(0, Card{Rank: 2, Suit: SuitSpades})
	require.True(t, ok)
	assert.Equal(t, Card{Rank: 5, Suit: SuitHearts}, old)

	// The incoming card went in face down.
	assert.False(t, h.Known(0))

	got, ok := h.Peek(0)
	require.True(t, ok)
	assert.Equal(t, Card{Rank: 2, Suit: SuitSpades}, got)
}

func TestHandSwapClearsBothKnownBits(t *testing.T) {
	a := handOf(Card{Rank: 3, Suit: SuitHearts})
	b := handOf(Card{Rank: 13, Suit: SuitSpades})
	a.MarkKnown(0)
	b.MarkKnown(0)

	require.True(t, a.Swap(b, 0, 0))

	ca, _ := a.Peek(0)
	cb, _ := b.Peek(0)
	assert.Equal(t, Card{Rank: 13, Suit: SuitSpades}, ca)
	assert.Equal(t, Card{Rank: 3, Suit: SuitHearts}, cb)
	assert.False(t, a.Known(0))
	assert.False(t, b.Known(0))
}

func TestHandOutOfRangeIsNoOp(t *testing.T) {
	h := handOf(Card{Rank: 7, Suit: SuitDiamonds})

	_, ok := h.Peek(1)
	assert.False(t, ok)
	_, ok = h.Replace(-1, Card{Rank: 1, Suit: SuitHearts})
	assert.False(t, ok)
	_, ok = h.RemoveAndShift(3)
	assert.False(t, ok)
	assert.False(t, h.Swap(handOf(), 0, 0))

	assert.Equal(t, 1, h.Len())
	got, _ := h.Peek(0)
	assert.Equal(t, Card{Rank: 7, Suit: SuitDiamonds}, got)
}

func TestHandRemoveAndShift(t *testing.T) {
	h := handOf(
		Card{Rank: 1, Suit: SuitHearts},
		Card{Rank: 2, Suit: SuitHearts},
		Card{Rank: 3, Suit: SuitHearts},
	)
	h.MarkKnown(2)

	c, ok := h.RemoveAndShift(1)
	require.True(t, ok)
	assert.Equal(t, Card{Rank: 2, Suit: SuitHearts}, c)
	assert.Equal(t, 2, h.Len())

	// The known bit follows the card that shifted down.
	got, _ := h.Peek(1)
	assert.Equal(t, Card{Rank: 3, Suit: SuitHearts}, got)
	assert.True(t, h.Known(1))
}

func TestHandInsertShiftsRight(t *testing.T) {
	h := handOf(Card{Rank: 1, Suit: SuitHearts}, Card{Rank: 3, Suit: SuitHearts})
	h.MarkKnown(1)

	require.True(t, h.Insert(1, Card{Rank: 2, Suit: SuitClubs}))
	assert.Equal(t, 3, h.Len())

	got, _ := h.Peek(1)
	assert.Equal(t, Card{Rank: 2, Suit: SuitClubs}, got)
	assert.False(t, h.Known(1))
	assert.True(t, h.Known(2))

	// Appending at Len is allowed, one past is not.
	require.True(t, h.Insert(h.Len(), Card{Rank: 4, Suit: SuitClubs}))
	assert.False(t, h.Insert(h.Len()+1, Card{Rank: 5, Suit: SuitClubs}))
}
