package game

import (
	"context"

	"github.com/google/uuid"

	"github.com/cabogame/cabo/internal/models"
)

// Each room is a single-threaded actor: one goroutine consumes a command
// queue and is the only code that touches room state. Commands from
// concurrent connections serialize here, which is what enforces "current
// player" exclusivity without locks.

type roomOp struct {
	run   func() error
	reply chan<- error
}

// Run consumes the room's command queue until the context is cancelled.
// Start it in its own goroutine right after NewRoom.
func (r *Room) Run(ctx context.Context) {
	defer close(r.done)
	for {
		select {
		case <-ctx.Done():
			r.resetToWaiting()
			return
		case op := <-r.ops:
			err := op.run()
			if op.reply != nil {
				op.reply <- err
			}
		}
	}
}

// Submit queues one player command and waits for the accept/deny verdict.
// A nil error means the command was applied; a denial error means the room
// state is unchanged and only the sender was told.
func (r *Room) Submit(ctx context.Context, actor uuid.UUID, cmd models.Command) error {
	reply := make(chan error, 1)
	op := roomOp{run: func() error { return r.apply(actor, cmd) }, reply: reply}
	select {
	case r.ops <- op:
	case <-r.done:
		return ErrRoomClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-reply:
		return err
	case <-r.done:
		return ErrRoomClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Disconnect removes a player. It is the one external event that arrives
// outside the command protocol and must be safe in any phase; it still goes
// through the queue so it cannot interleave with a command.
func (r *Room) Disconnect(playerID uuid.UUID) {
	r.post(func() { r.removePlayer(playerID) })
}

// post queues internal work (timers, disconnects) without waiting on it.
func (r *Room) post(fn func()) {
	op := roomOp{run: func() error { fn(); return nil }}
	select {
	case r.ops <- op:
	case <-r.done:
	}
}
