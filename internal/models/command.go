package models

import "github.com/google/uuid"

// CommandType names a player-issued command. These are the wire values the
// transport reads off the socket and the values the engine switches on.
type CommandType string

const (
	CmdJoin         CommandType = "join"
	CmdStart        CommandType = "start"
	CmdPeek         CommandType = "peek" // free pre-draw peek at an own slot
	CmdDraw         CommandType = "draw"
	CmdReplace      CommandType = "replace"
	CmdDiscardDrawn CommandType = "discard_drawn"
	CmdResolvePower CommandType = "resolve_power"
	CmdCallCabo     CommandType = "call_cabo"
	CmdMatchDiscard CommandType = "match_discard"
)

// Draw sources.
const (
	DrawSourceDeck    = "deck"
	DrawSourceDiscard = "discard"
)

// Decisions for the final step of the black king combo. DecisionSkip
// abandons any pending power at any stage.
const (
	DecisionSwap = "swap"
	DecisionKeep = "keep"
	DecisionSkip = "skip"
)

// Command is one typed player command. Slot fields are pointers so a missing
// field is distinguishable from slot 0.
type Command struct {
	Type CommandType `json:"type"`

	// Join.
	Name string `json:"name,omitempty"`

	// Draw.
	Source string `json:"source,omitempty"`

	// Replace, Peek, and power steps naming one of the actor's own slots.
	Slot *int `json:"slot,omitempty"`

	// Power and match targets.
	Target     uuid.UUID `json:"target,omitempty"`
	TargetSlot *int      `json:"targetSlot,omitempty"`

	// Decision for the black king combo ("swap"/"keep") or "skip".
	Decision string `json:"decision,omitempty"`
}
