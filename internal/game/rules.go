package game

// HouseRules defines the optional rules a room can run with. The zero value
// is not useful; DefaultHouseRules matches the base rule set.
type HouseRules struct {
	// AllowDrawFromDiscardPile lets the turn holder reclaim the discard top
	// instead of drawing blind. Reclaimed cards never trigger powers.
	AllowDrawFromDiscardPile bool `json:"allowDrawFromDiscardPile"`

	// AllowMatchDiscard enables the match-discard variant: discarding a card
	// that exactly matches the discard top, shrinking a hand.
	AllowMatchDiscard bool `json:"allowMatchDiscard"`

	// SimpleKing resolves a black king as a single look-and-swap instead of
	// the three-step reveal/reveal/decide combo.
	SimpleKing bool `json:"simpleKing"`

	// IncludeJokers adds the two zero-value jokers to the deck.
	IncludeJokers bool `json:"includeJokers"`

	// FreePeeks is the number of own-slot peeks each player gets before
	// their first draw.
	FreePeeks int `json:"freePeeks"`

	// DealtWindowSec is how long the post-deal knowledge window lasts before
	// the first turn opens. 0 opens the first turn immediately.
	DealtWindowSec int `json:"dealtWindowSec"`

	// TurnTimerSec auto-abandons a stalled turn after this many seconds.
	// 0 disables the timer; the base design has no timeout.
	TurnTimerSec int `json:"turnTimerSec"`

	// MaxPlayers caps the roster.
	MaxPlayers int `json:"maxPlayers"`
}

// DefaultHouseRules returns the base rule set.
func DefaultHouseRules() HouseRules {
	return HouseRules{
		AllowDrawFromDiscardPile: true,
		AllowMatchDiscard:        false,
		SimpleKing:               false,
		IncludeJokers:            false,
		FreePeeks:                2,
		DealtWindowSec:           10,
		TurnTimerSec:             0,
		MaxPlayers:               8,
	}
}
