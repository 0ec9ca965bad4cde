package models

import "github.com/google/uuid"

// Player is one seat in a room. The ID is the opaque connection identity the
// transport hands us; the engine never looks inside it.
type Player struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Hand      *Hand     `json:"-"`
	Connected bool      `json:"connected"`

	// HasDrawnFirstCard closes the pre-draw knowledge window for this player.
	HasDrawnFirstCard bool `json:"-"`

	// PeeksRemaining counts the free own-slot peeks left before the first draw.
	PeeksRemaining int `json:"-"`
}
