package game

import (
	"github.com/google/uuid"

	"github.com/cabogame/cabo/internal/models"
)

// EventType is an enum-like type for events emitted at the transport
// boundary. "private_" events go to one player; everything else is a
// broadcast to the whole room.
type EventType string

const (
	EventRoster        EventType = "room_roster"        // broadcast on join/leave
	EventGameStarted   EventType = "game_started"       // broadcast once dealt
	EventHandSizes     EventType = "hand_sizes"         // broadcast, sizes only
	EventDiscardTop    EventType = "discard_top"        // broadcast
	EventDeckReshuffle EventType = "deck_reshuffled"    // broadcast
	EventFinalRound    EventType = "final_round_called" // broadcast
	EventMatchDiscard  EventType = "match_discard"      // broadcast
	EventPlayerDrew    EventType = "player_drew"        // broadcast, source + deck size only
	EventGameEnded     EventType = "game_ended"         // broadcast with scores
	EventPlayerLeft    EventType = "player_left"        // broadcast

	EventPrivateTurn   EventType = "private_your_turn"   // targeted turn notification
	EventPrivateDrawn  EventType = "private_drawn_card"  // targeted, full card
	EventPrivateReveal EventType = "private_reveal"      // targeted peek result
	EventPrivatePower  EventType = "private_power_stage" // targeted power prompt
	EventPrivatePeeks  EventType = "private_peeks_left"  // targeted
	EventPrivateDenied EventType = "private_denied"      // targeted, reason only
)

// EventPlayer identifies the subject of an event, e.g. the owner of a
// revealed card so an opponent-peek stays transparent to the peeker.
type EventPlayer struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name,omitempty"`
}

// EventCard carries card details plus the slot it occupies when relevant.
type EventCard struct {
	Rank  int         `json:"rank"`
	Suit  models.Suit `json:"suit"`
	Value int         `json:"value"`
	Label string      `json:"label"`
	Slot  *int        `json:"slot,omitempty"`
}

// Event is the single envelope for everything the engine emits.
type Event struct {
	Type   EventType    `json:"type"`
	Player *EventPlayer `json:"player,omitempty"`
	Card   *EventCard   `json:"card,omitempty"`
	Reason string       `json:"reason,omitempty"`

	Payload map[string]interface{} `json:"payload,omitempty"`
}

// buildEventCard fills an EventCard from a card, optionally pinning the slot.
func buildEventCard(c models.Card, slot *int) *EventCard {
	return &EventCard{
		Rank:  c.Rank,
		Suit:  c.Suit,
		Value: c.Value(),
		Label: c.String(),
		Slot:  slot,
	}
}
