package models

import "strconv"

// Suit is a single-letter suit code. Jokers carry their own pseudo-suits so
// the two of them stay distinguishable in the discard pile.
type Suit string

const (
	SuitHearts   Suit = "H"
	SuitDiamonds Suit = "D"
	SuitClubs    Suit = "C"
	SuitSpades   Suit = "S"

	SuitJokerRed   Suit = "R"
	SuitJokerBlack Suit = "B"
)

// Card is immutable once created. Identity is the (rank, suit) pair;
// duplicates are expected once jokers are in play.
type Card struct {
	Rank int  `json:"rank"` // 1..13, 0 reserved for jokers
	Suit Suit `json:"suit"`
}

// IsJoker reports whether the card is one of the two jokers.
func (c Card) IsJoker() bool {
	return c.Rank == 0
}

// IsBlackKing reports whether the card is a king of clubs or spades, the
// rank that opens the multi-step king power.
func (c Card) IsBlackKing() bool {
	return c.Rank == 13 && (c.Suit == SuitClubs || c.Suit == SuitSpades)
}

// Value returns the scoring value: Ace=1, 2-10 face value, J=11, Q=12,
// black K=13, red K=-1, joker=0.
func (c Card) Value() int {
	if c.IsJoker() {
		return 0
	}
	if c.Rank == 13 && (c.Suit == SuitHearts || c.Suit == SuitDiamonds) {
		return -1
	}
	return c.Rank
}

// String renders the card the way clients display it, e.g. "AH", "10S", "KD".
func (c Card) String() string {
	if c.IsJoker() {
		return "JOKER" + string(c.Suit)
	}
	var name string
	switch c.Rank {
	case 1:
		name = "A"
	case 11:
		name = "J"
	case 12:
		name = "Q"
	case 13:
		name = "K"
	default:
		name = strconv.Itoa(c.Rank)
	}
	return name + string(c.Suit)
}
