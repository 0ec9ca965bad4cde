package models

// Hand is the fixed-capacity slot array for one player. Each slot carries a
// "known to owner" bit so "what can this player currently know" stays a pure
// query over the hand instead of booleans scattered around the engine.
//
// All index-taking methods return ok=false for an out-of-range slot and leave
// the hand untouched.
type Hand struct {
	cards []Card
	known []bool
}

// NewHand returns an empty hand ready to be dealt into.
func NewHand() *Hand {
	return &Hand{}
}

// Add appends a card in a face-down, unknown slot. Used during the deal and
// for match-discard hand-offs via Insert.
func (h *Hand) Add(c Card) {
	h.cards = append(h.cards, c)
	h.known = append(h.known, false)
}

// Len returns the number of occupied slots.
func (h *Hand) Len() int {
	return len(h.cards)
}

func (h *Hand) valid(idx int) bool {
	return idx >= 0 && idx < len(h.cards)
}

// Peek returns the card at idx without mutating the hand. Revelation policy
// (who learns what) is the caller's concern.
func (h *Hand) Peek(idx int) (Card, bool) {
	if !h.valid(idx) {
		return Card{}, false
	}
	return h.cards[idx], true
}

// Replace swaps newCard into the slot and returns the displaced card. The
// slot is reset to unknown: the owner placed the card face down and has not
// peeked at it since.
func (h *Hand) Replace(idx int, newCard Card) (Card, bool) {
	if !h.valid(idx) {
		return Card{}, false
	}
	old := h.cards[idx]
	h.cards[idx] = newCard
	h.known[idx] = false
	return old, true
}

// Known reports whether the owner has seen the card currently in the slot.
func (h *Hand) Known(idx int) bool {
	return h.valid(idx) && h.known[idx]
}

// MarkKnown records that the owner has seen the card in the slot.
func (h *Hand) MarkKnown(idx int) {
	if h.valid(idx) {
		h.known[idx] = true
	}
}

// Swap exchanges two slots across two hands atomically. Both slots lose
// their known bit: neither owner has seen the card now sitting there.
func (h *Hand) Swap(other *Hand, myIdx, theirIdx int) bool {
	if !h.valid(myIdx) || !other.valid(theirIdx) {
		return false
	}
	h.cards[myIdx], other.cards[theirIdx] = other.cards[theirIdx], h.cards[myIdx]
	h.known[myIdx] = false
	other.known[theirIdx] = false
	return true
}

// RemoveAndShift splices a slot out, shrinking the hand. Used by the
// match-discard variant.
func (h *Hand) RemoveAndShift(idx int) (Card, bool) {
	if !h.valid(idx) {
		return Card{}, false
	}
	c := h.cards[idx]
	h.cards = append(h.cards[:idx], h.cards[idx+1:]...)
	h.known = append(h.known[:idx], h.known[idx+1:]...)
	return c, true
}

// Insert places a card into the hand at idx (unknown to the owner), shifting
// later slots right. idx == Len() appends.
func (h *Hand) Insert(idx int, c Card) bool {
	if idx < 0 || idx > len(h.cards) {
		return false
	}
	h.cards = append(h.cards, Card{})
	copy(h.cards[idx+1:], h.cards[idx:])
	h.cards[idx] = c
	h.known = append(h.known, false)
	copy(h.known[idx+1:], h.known[idx:])
	h.known[idx] = false
	return true
}

// Cards returns a copy of the occupied slots for scoring and snapshots.
func (h *Hand) Cards() []Card {
	out := make([]Card, len(h.cards))
	copy(out, h.cards)
	return out
}
