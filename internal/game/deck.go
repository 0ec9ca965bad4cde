package game

import (
	"fmt"
	"math/rand"

	"github.com/cabogame/cabo/internal/models"
)

// Deck is an ordered stack of cards; Draw pops from the top. Each room owns
// one deck and its own rng, so shuffles never contend across rooms.
type Deck struct {
	cards []models.Card
	rng   *rand.Rand
}

// NewDeck builds a full 52-card deck, plus the two jokers when enabled, and
// shuffles it uniformly.
func NewDeck(rng *rand.Rand, includeJokers bool) *Deck {
	suits := []models.Suit{models.SuitHearts, models.SuitDiamonds, models.SuitClubs, models.SuitSpades}
	cards := make([]models.Card, 0, 54)
	for _, suit := range suits {
		for rank := 1; rank <= 13; rank++ {
			cards = append(cards, models.Card{Rank: rank, Suit: suit})
		}
	}
	if includeJokers {
		cards = append(cards,
			models.Card{Rank: 0, Suit: models.SuitJokerRed},
			models.Card{Rank: 0, Suit: models.SuitJokerBlack},
		)
	}
	d := &Deck{cards: cards, rng: rng}
	d.shuffle(d.cards)
	return d
}

// shuffle applies a uniform Fisher-Yates permutation in place.
func (d *Deck) shuffle(cards []models.Card) {
	d.rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}

// Len returns the number of cards remaining.
func (d *Deck) Len() int {
	return len(d.cards)
}

// Draw pops the top card. It fails with ErrEmptyResource when no cards
// remain; the caller decides whether a reshuffle can recover.
func (d *Deck) Draw() (models.Card, error) {
	if len(d.cards) == 0 {
		return models.Card{}, fmt.Errorf("draw: %w", ErrEmptyResource)
	}
	top := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return top, nil
}

// ReshuffleFromDiscard moves every discard card except the visible top back
// into the deck and shuffles. The top card stays behind as the new discard
// pile of one. A discard of one card or fewer is left untouched.
func (d *Deck) ReshuffleFromDiscard(discard *[]models.Card) {
	if len(*discard) <= 1 {
		return
	}
	top := (*discard)[len(*discard)-1]
	d.cards = append(d.cards, (*discard)[:len(*discard)-1]...)
	d.shuffle(d.cards)
	*discard = []models.Card{top}
}
