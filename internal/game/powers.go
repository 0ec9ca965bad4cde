package game

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/cabogame/cabo/internal/models"
)

// PowerKind is the closed set of rank-triggered powers. Adding a power means
// adding a kind and registering its resolver, not touching shared dispatch.
type PowerKind string

const (
	PowerPeekSelf       PowerKind = "peek_self"
	PowerPeekOther      PowerKind = "peek_other"
	PowerBlindSwap      PowerKind = "blind_swap"
	PowerLookAndSwap    PowerKind = "look_and_swap"
	PowerBlackKingCombo PowerKind = "black_king_combo"
)

// Stages of the black king combo. Single-step powers never leave stageStart.
const (
	stageStart      = "start"
	stagePickOwn    = "pick_own"
	stageDecideSwap = "decide_swap"
)

// PowerRequest is the short-lived sub-state-machine opened when a power card
// is discarded from a deck draw. At most one exists per room; it is destroyed
// when resolved or abandoned. A malformed step leaves it pending, so a bad
// attempt never consumes the turn.
type PowerRequest struct {
	Kind    PowerKind
	Stage   string
	OwnerID uuid.UUID

	// Black king bookkeeping: the two slots revealed during the first two
	// steps, scoped for the final swap/keep decision.
	targetID   uuid.UUID
	targetSlot int
	ownSlot    int
}

func newPowerRequest(kind PowerKind, owner uuid.UUID) *PowerRequest {
	return &PowerRequest{Kind: kind, Stage: stageStart, OwnerID: owner}
}

// powerKindFor maps a discarded card to the power it grants, or "" for none.
// Red kings grant nothing; that asymmetry against black kings is the rule.
func powerKindFor(c models.Card, rules HouseRules) PowerKind {
	switch c.Rank {
	case 7, 8:
		return PowerPeekSelf
	case 9, 10:
		return PowerPeekOther
	case 11, 12:
		return PowerBlindSwap
	case 13:
		if c.IsBlackKing() {
			if rules.SimpleKing {
				return PowerLookAndSwap
			}
			return PowerBlackKingCombo
		}
	}
	return ""
}

// powerResolvers holds one resolver per power kind. A resolver returning an
// error leaves the PowerRequest pending; returning nil means the step was
// accepted (the resolver itself decides when the turn advances).
var powerResolvers = map[PowerKind]func(r *Room, p *models.Player, cmd models.Command) error{
	PowerPeekSelf:       resolvePeekSelf,
	PowerPeekOther:      resolvePeekOther,
	PowerBlindSwap:      resolveBlindSwap,
	PowerLookAndSwap:    resolveLookAndSwap,
	PowerBlackKingCombo: resolveBlackKingCombo,
}

func resolvePeekSelf(r *Room, p *models.Player, cmd models.Command) error {
	if cmd.Slot == nil {
		return fmt.Errorf("peek self: missing slot: %w", ErrInvalidTarget)
	}
	card, ok := p.Hand.Peek(*cmd.Slot)
	if !ok {
		return fmt.Errorf("peek self: slot %d: %w", *cmd.Slot, ErrInvalidTarget)
	}
	p.Hand.MarkKnown(*cmd.Slot)
	r.revealTo(p.ID, p, *cmd.Slot, card)
	r.clearPowerAndAdvance()
	return nil
}

func resolvePeekOther(r *Room, p *models.Player, cmd models.Command) error {
	target, err := r.opponentOf(p, cmd.Target)
	if err != nil {
		return err
	}
	if cmd.TargetSlot == nil {
		return fmt.Errorf("peek other: missing target slot: %w", ErrInvalidTarget)
	}
	card, ok := target.Hand.Peek(*cmd.TargetSlot)
	if !ok {
		return fmt.Errorf("peek other: slot %d: %w", *cmd.TargetSlot, ErrInvalidTarget)
	}
	r.revealTo(p.ID, target, *cmd.TargetSlot, card)
	r.clearPowerAndAdvance()
	return nil
}

func resolveBlindSwap(r *Room, p *models.Player, cmd models.Command) error {
	if err := swapWithOpponent(r, p, cmd); err != nil {
		return err
	}
	r.clearPowerAndAdvance()
	return nil
}

// resolveLookAndSwap is a blind swap that afterwards shows the acting player
// the card they received from the opponent.
func resolveLookAndSwap(r *Room, p *models.Player, cmd models.Command) error {
	if err := swapWithOpponent(r, p, cmd); err != nil {
		return err
	}
	gained, _ := p.Hand.Peek(*cmd.Slot)
	p.Hand.MarkKnown(*cmd.Slot)
	r.revealTo(p.ID, p, *cmd.Slot, gained)
	r.clearPowerAndAdvance()
	return nil
}

func resolveBlackKingCombo(r *Room, p *models.Player, cmd models.Command) error {
	req := r.pending
	switch req.Stage {
	case stageStart:
		// Step 1: name an opponent slot; it is revealed to the actor only.
		target, err := r.opponentOf(p, cmd.Target)
		if err != nil {
			return err
		}
		if cmd.TargetSlot == nil {
			return fmt.Errorf("king combo: missing target slot: %w", ErrInvalidTarget)
		}
		card, ok := target.Hand.Peek(*cmd.TargetSlot)
		if !ok {
			return fmt.Errorf("king combo: target slot %d: %w", *cmd.TargetSlot, ErrInvalidTarget)
		}
		req.targetID = target.ID
		req.targetSlot = *cmd.TargetSlot
		req.Stage = stagePickOwn
		r.revealTo(p.ID, target, *cmd.TargetSlot, card)
		r.promptPowerStage(p.ID)
		return nil

	case stagePickOwn:
		// Step 2: name an own slot; it is revealed to the actor only.
		if cmd.Slot == nil {
			return fmt.Errorf("king combo: missing own slot: %w", ErrInvalidTarget)
		}
		card, ok := p.Hand.Peek(*cmd.Slot)
		if !ok {
			return fmt.Errorf("king combo: own slot %d: %w", *cmd.Slot, ErrInvalidTarget)
		}
		p.Hand.MarkKnown(*cmd.Slot)
		req.ownSlot = *cmd.Slot
		req.Stage = stageDecideSwap
		r.revealTo(p.ID, p, *cmd.Slot, card)
		r.promptPowerStage(p.ID)
		return nil

	case stageDecideSwap:
		// Step 3: swap or keep, scoped to the two revealed slots.
		switch cmd.Decision {
		case models.DecisionSwap:
			target := r.players[req.targetID]
			if target == nil {
				// Target left mid-combo; nothing to swap with.
				return fmt.Errorf("king combo: target gone: %w", ErrInvalidTarget)
			}
			if !p.Hand.Swap(target.Hand, req.ownSlot, req.targetSlot) {
				return fmt.Errorf("king combo: stale slots: %w", ErrInvalidTarget)
			}
		case models.DecisionKeep:
			// No mutation.
		default:
			return fmt.Errorf("king combo: decision %q: %w", cmd.Decision, ErrInvalidTarget)
		}
		r.clearPowerAndAdvance()
		return nil
	}
	return fmt.Errorf("king combo: stage %q: %w", req.Stage, ErrIllegalPhase)
}

// swapWithOpponent validates the three-part target of a swap power and
// exchanges the two slots, with neither player shown the result.
func swapWithOpponent(r *Room, p *models.Player, cmd models.Command) error {
	target, err := r.opponentOf(p, cmd.Target)
	if err != nil {
		return err
	}
	if cmd.Slot == nil || cmd.TargetSlot == nil {
		return fmt.Errorf("swap: missing slots: %w", ErrInvalidTarget)
	}
	if !p.Hand.Swap(target.Hand, *cmd.Slot, *cmd.TargetSlot) {
		return fmt.Errorf("swap: slots %d/%d: %w", *cmd.Slot, *cmd.TargetSlot, ErrInvalidTarget)
	}
	return nil
}
