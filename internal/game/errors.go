package game

import "errors"

// Denial taxonomy. Every rejected command maps onto exactly one of these;
// the room state is unchanged and only the sender learns about the failure.
var (
	// ErrOutOfTurn: the command came from a player who does not hold the
	// turn (or from outside the room entirely).
	ErrOutOfTurn = errors.New("out of turn")

	// ErrInvalidTarget: a slot index out of range or an unknown opponent id.
	ErrInvalidTarget = errors.New("invalid target")

	// ErrEmptyResource: drawing from an empty discard pile, or a peek with
	// no free peeks remaining.
	ErrEmptyResource = errors.New("empty resource")

	// ErrIllegalPhase: the command does not match the current room phase,
	// e.g. calling Cabo during an active final round.
	ErrIllegalPhase = errors.New("illegal phase")

	// ErrRoomClosed: the room's processing loop has shut down.
	ErrRoomClosed = errors.New("room closed")
)

// DenialReason maps an engine error onto the reason string carried by the
// denial event sent back to the offending player.
func DenialReason(err error) string {
	switch {
	case errors.Is(err, ErrOutOfTurn):
		return "out_of_turn"
	case errors.Is(err, ErrInvalidTarget):
		return "invalid_target"
	case errors.Is(err, ErrEmptyResource):
		return "empty_resource"
	case errors.Is(err, ErrIllegalPhase):
		return "illegal_phase"
	case errors.Is(err, ErrRoomClosed):
		return "room_closed"
	default:
		return "denied"
	}
}
