package game

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/cabogame/cabo/internal/journal"
	"github.com/cabogame/cabo/internal/models"
)

// Phase is the room's position in the turn state machine.
type Phase string

const (
	PhaseWaiting            Phase = "waiting"
	PhaseDealt              Phase = "dealt"
	PhaseAwaitingDraw       Phase = "awaiting_draw"
	PhaseAwaitingResolution Phase = "awaiting_resolution"
	PhaseAwaitingPower      Phase = "awaiting_power"
)

// EndReason explains a terminal transition.
type EndReason string

const (
	EndReasonCabo      EndReason = "cabo"
	EndReasonNoCards   EndReason = "noCards"
	EndReasonDeckEmpty EndReason = "deckEmpty"
)

// Room is the aggregate for one game: player registry, turn order, deck,
// discard, phase, and any pending power. Nothing outside this package mutates
// it; all access goes through the command loop in actor.go, so there is
// never a torn read of a hand or the deck.
type Room struct {
	ID    uuid.UUID
	Rules HouseRules

	players map[uuid.UUID]*models.Player
	order   []uuid.UUID
	deck    *Deck
	discard []models.Card

	phase     Phase
	turnIndex int

	// Resolution state for the turn holder's drawn card.
	drawn            *models.Card
	drawnFromDiscard bool

	// pending is the at-most-one outstanding power request.
	pending *PowerRequest

	finalRound   bool
	finalAnchor  int
	finalReason  EndReason
	caboCallerID uuid.UUID

	rng         *rand.Rand
	log         *logrus.Entry
	journal     *journal.Publisher
	actionIndex int

	// BroadcastFn sends an event to every player in the room.
	BroadcastFn func(ev Event)
	// SendToPlayerFn sends an event to one player only.
	SendToPlayerFn func(playerID uuid.UUID, ev Event)

	ops  chan roomOp
	done chan struct{}

	dealtTimer *time.Timer
	turnTimer  *time.Timer
	turnSeq    int
}

// NewRoom builds an empty room in the waiting phase. The journal may be nil.
func NewRoom(rules HouseRules, logger *logrus.Logger, jrnl *journal.Publisher) *Room {
	if logger == nil {
		logger = logrus.New()
	}
	id := uuid.New()
	return &Room{
		ID:      id,
		Rules:   rules,
		players: make(map[uuid.UUID]*models.Player),
		phase:   PhaseWaiting,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		log:     logger.WithField("room", id),
		journal: jrnl,
		ops:     make(chan roomOp, 32),
		done:    make(chan struct{}),
	}
}

// Phase returns the current phase. Only safe from inside the command loop or
// from tests driving the room synchronously.
func (r *Room) Phase() Phase {
	return r.phase
}

// apply validates one command against the current state and either mutates
// the room or returns a denial error leaving the state untouched.
func (r *Room) apply(actor uuid.UUID, cmd models.Command) error {
	var err error
	switch cmd.Type {
	case models.CmdJoin:
		err = r.handleJoin(actor, cmd.Name)
	case models.CmdStart:
		err = r.handleStart(actor)
	case models.CmdPeek:
		err = r.handlePeek(actor, cmd)
	case models.CmdDraw:
		err = r.handleDraw(actor, cmd.Source)
	case models.CmdReplace:
		err = r.handleReplace(actor, cmd)
	case models.CmdDiscardDrawn:
		err = r.handleDiscardDrawn(actor)
	case models.CmdResolvePower:
		err = r.handleResolvePower(actor, cmd)
	case models.CmdCallCabo:
		err = r.handleCallCabo(actor)
	case models.CmdMatchDiscard:
		err = r.handleMatchDiscard(actor, cmd)
	default:
		err = fmt.Errorf("unknown command %q: %w", cmd.Type, ErrIllegalPhase)
	}
	if err != nil {
		r.log.WithFields(logrus.Fields{"actor": actor, "cmd": cmd.Type}).Debugf("denied: %v", err)
		r.sendTo(actor, Event{Type: EventPrivateDenied, Reason: DenialReason(err)})
	}
	return err
}

func (r *Room) handleJoin(actor uuid.UUID, name string) error {
	if r.phase != PhaseWaiting {
		return fmt.Errorf("join: game already started: %w", ErrIllegalPhase)
	}
	if _, dup := r.players[actor]; dup {
		return fmt.Errorf("join: already seated: %w", ErrIllegalPhase)
	}
	if len(r.order) >= r.Rules.MaxPlayers {
		return fmt.Errorf("join: room full: %w", ErrIllegalPhase)
	}
	if name == "" {
		name = "player-" + actor.String()[:8]
	}
	r.players[actor] = &models.Player{ID: actor, Name: name, Hand: models.NewHand(), Connected: true}
	r.order = append(r.order, actor)
	r.logAction(actor, "player_join", map[string]interface{}{"name": name})
	r.broadcastRoster()
	return nil
}

func (r *Room) handleStart(actor uuid.UUID) error {
	if r.phase != PhaseWaiting {
		return fmt.Errorf("start: %w", ErrIllegalPhase)
	}
	if len(r.order) == 0 || r.order[0] != actor {
		return fmt.Errorf("start: only the first player may start: %w", ErrOutOfTurn)
	}
	if len(r.order) < 2 {
		return fmt.Errorf("start: need at least 2 players: %w", ErrIllegalPhase)
	}
	r.deal()
	return nil
}

// deal shuffles a fresh deck, gives every player 4 face-down cards, and opens
// the knowledge window.
func (r *Room) deal() {
	r.deck = NewDeck(r.rng, r.Rules.IncludeJokers)
	r.discard = nil
	for _, id := range r.order {
		p := r.players[id]
		p.Hand = models.NewHand()
		for i := 0; i < 4; i++ {
			c, err := r.deck.Draw()
			if err != nil {
				// 8 players * 4 cards fits any deck we build; defensive only.
				r.log.Errorf("deal: deck exhausted mid-deal")
				break
			}
			p.Hand.Add(c)
		}
		p.PeeksRemaining = r.Rules.FreePeeks
		p.HasDrawnFirstCard = false
	}
	r.turnIndex = 0
	r.finalRound = false
	r.finalAnchor = 0
	r.caboCallerID = uuid.Nil
	r.phase = PhaseDealt
	r.logAction(uuid.Nil, "game_start", map[string]interface{}{"players": len(r.order)})

	r.broadcast(Event{Type: EventGameStarted, Payload: map[string]interface{}{"players": r.rosterPayload()}})
	r.broadcastHandSizes()
	r.broadcastDiscardTop()
	for _, id := range r.order {
		r.sendPeeksLeft(id)
	}

	if r.Rules.DealtWindowSec > 0 {
		r.dealtTimer = time.AfterFunc(time.Duration(r.Rules.DealtWindowSec)*time.Second, func() {
			r.post(r.openFirstTurn)
		})
	} else {
		r.openFirstTurn()
	}
}

// openFirstTurn closes the knowledge window and hands the first turn to the
// first player in join order.
func (r *Room) openFirstTurn() {
	if r.phase != PhaseDealt {
		return
	}
	r.phase = PhaseAwaitingDraw
	r.notifyTurn()
	r.scheduleTurnTimer()
}

// handlePeek serves the free pre-draw peeks. Allowed at any point after the
// deal until the acting player draws their first card; it is the one command
// the turn gate does not apply to.
func (r *Room) handlePeek(actor uuid.UUID, cmd models.Command) error {
	p := r.players[actor]
	if p == nil {
		return fmt.Errorf("peek: not in room: %w", ErrOutOfTurn)
	}
	if r.phase == PhaseWaiting {
		return fmt.Errorf("peek: game not started: %w", ErrIllegalPhase)
	}
	if p.HasDrawnFirstCard {
		return fmt.Errorf("peek: knowledge window closed: %w", ErrIllegalPhase)
	}
	if p.PeeksRemaining <= 0 {
		return fmt.Errorf("peek: none remaining: %w", ErrEmptyResource)
	}
	if cmd.Slot == nil {
		return fmt.Errorf("peek: missing slot: %w", ErrInvalidTarget)
	}
	card, ok := p.Hand.Peek(*cmd.Slot)
	if !ok {
		return fmt.Errorf("peek: slot %d: %w", *cmd.Slot, ErrInvalidTarget)
	}
	p.PeeksRemaining--
	p.Hand.MarkKnown(*cmd.Slot)
	r.revealTo(actor, p, *cmd.Slot, card)
	r.sendPeeksLeft(actor)
	r.logAction(actor, "player_peek", map[string]interface{}{"slot": *cmd.Slot})
	return nil
}

func (r *Room) handleDraw(actor uuid.UUID, source string) error {
	p, err := r.requireTurn(actor, PhaseAwaitingDraw)
	if err != nil {
		return fmt.Errorf("draw: %w", err)
	}

	var card models.Card
	fromDiscard := false
	switch source {
	case models.DrawSourceDeck, "":
		card, err = r.deck.Draw()
		if errors.Is(err, ErrEmptyResource) {
			r.deck.ReshuffleFromDiscard(&r.discard)
			if r.deck.Len() > 0 {
				r.broadcast(Event{Type: EventDeckReshuffle, Payload: map[string]interface{}{"deckSize": r.deck.Len()}})
				r.broadcastDiscardTop()
			}
			card, err = r.deck.Draw()
		}
		if err != nil {
			// Double exhaustion is terminal, not a denial.
			r.logAction(actor, "deck_exhausted", nil)
			r.endGame(EndReasonDeckEmpty)
			return nil
		}
	case models.DrawSourceDiscard:
		if !r.Rules.AllowDrawFromDiscardPile {
			return fmt.Errorf("draw: discard draws disabled: %w", ErrIllegalPhase)
		}
		if len(r.discard) == 0 {
			return fmt.Errorf("draw: discard empty: %w", ErrEmptyResource)
		}
		card = r.discard[len(r.discard)-1]
		r.discard = r.discard[:len(r.discard)-1]
		fromDiscard = true
	default:
		return fmt.Errorf("draw: source %q: %w", source, ErrInvalidTarget)
	}

	r.drawn = &card
	r.drawnFromDiscard = fromDiscard
	p.HasDrawnFirstCard = true
	r.phase = PhaseAwaitingResolution

	r.sendTo(actor, Event{Type: EventPrivateDrawn, Card: buildEventCard(card, nil)})
	r.broadcast(Event{
		Type:   EventPlayerDrew,
		Player: &EventPlayer{ID: p.ID, Name: p.Name},
		Payload: map[string]interface{}{
			"source":   sourceName(fromDiscard),
			"deckSize": r.deck.Len(),
		},
	})
	if fromDiscard {
		r.broadcastDiscardTop()
	}
	r.logAction(actor, "player_draw", map[string]interface{}{"source": sourceName(fromDiscard)})
	return nil
}

func sourceName(fromDiscard bool) string {
	if fromDiscard {
		return models.DrawSourceDiscard
	}
	return models.DrawSourceDeck
}

// handleReplace swaps the drawn card into the named slot and discards the
// displaced card. This path never opens a power, whatever the displaced rank.
func (r *Room) handleReplace(actor uuid.UUID, cmd models.Command) error {
	p, err := r.requireTurn(actor, PhaseAwaitingResolution)
	if err != nil {
		return fmt.Errorf("replace: %w", err)
	}
	if cmd.Slot == nil {
		return fmt.Errorf("replace: missing slot: %w", ErrInvalidTarget)
	}
	displaced, ok := p.Hand.Replace(*cmd.Slot, *r.drawn)
	if !ok {
		return fmt.Errorf("replace: slot %d: %w", *cmd.Slot, ErrInvalidTarget)
	}
	r.discard = append(r.discard, displaced)
	r.logAction(actor, "player_replace", map[string]interface{}{"slot": *cmd.Slot, "discarded": displaced.String()})
	r.broadcastDiscardTop()
	r.advanceTurn()
	return nil
}

// handleDiscardDrawn pushes the drawn card straight to the discard pile.
// Powers fire only here, and only for cards drawn from the deck.
func (r *Room) handleDiscardDrawn(actor uuid.UUID) error {
	p, err := r.requireTurn(actor, PhaseAwaitingResolution)
	if err != nil {
		return fmt.Errorf("discard: %w", err)
	}
	card := *r.drawn
	r.discard = append(r.discard, card)
	r.logAction(actor, "player_discard", map[string]interface{}{"card": card.String()})
	r.broadcastDiscardTop()

	if !r.drawnFromDiscard {
		if kind := powerKindFor(card, r.Rules); kind != "" {
			r.drawn = nil
			r.pending = newPowerRequest(kind, p.ID)
			r.phase = PhaseAwaitingPower
			r.logAction(actor, "power_opened", map[string]interface{}{"kind": string(kind)})
			r.promptPowerStage(actor)
			return nil
		}
	}
	r.advanceTurn()
	return nil
}

func (r *Room) handleResolvePower(actor uuid.UUID, cmd models.Command) error {
	if r.phase != PhaseAwaitingPower || r.pending == nil {
		return fmt.Errorf("power: none pending: %w", ErrIllegalPhase)
	}
	if r.pending.OwnerID != actor {
		return fmt.Errorf("power: not yours to resolve: %w", ErrOutOfTurn)
	}
	p := r.players[actor]
	if p == nil {
		return fmt.Errorf("power: not in room: %w", ErrOutOfTurn)
	}
	if cmd.Decision == models.DecisionSkip {
		r.logAction(actor, "power_skipped", map[string]interface{}{"kind": string(r.pending.Kind)})
		r.clearPowerAndAdvance()
		return nil
	}
	resolve, ok := powerResolvers[r.pending.Kind]
	if !ok {
		return fmt.Errorf("power: kind %q has no resolver: %w", r.pending.Kind, ErrIllegalPhase)
	}
	if err := resolve(r, p, cmd); err != nil {
		// A bad attempt leaves the request pending; the turn is not consumed.
		return fmt.Errorf("power: %w", err)
	}
	return nil
}

// handleCallCabo starts the final round. Only the turn holder may call, only
// before drawing, and only when no final round is already active.
func (r *Room) handleCallCabo(actor uuid.UUID) error {
	p, err := r.requireTurn(actor, PhaseAwaitingDraw)
	if err != nil {
		return fmt.Errorf("cabo: %w", err)
	}
	if r.finalRound {
		return fmt.Errorf("cabo: final round already active: %w", ErrIllegalPhase)
	}
	r.finalRound = true
	r.finalAnchor = r.turnIndex
	r.finalReason = EndReasonCabo
	r.caboCallerID = actor
	r.logAction(actor, "cabo_called", nil)
	r.broadcast(Event{
		Type:   EventFinalRound,
		Player: &EventPlayer{ID: p.ID, Name: p.Name},
		Reason: string(EndReasonCabo),
	})
	// Calling ends the caller's turn; every other player now gets exactly
	// one turn before play returns to the anchor.
	r.advanceTurn()
	return nil
}

// handleMatchDiscard discards a card matching the discard top exactly. A
// self-match shrinks the actor's hand; matching an opponent's card discards
// theirs and hands them one of the actor's cards in its place.
func (r *Room) handleMatchDiscard(actor uuid.UUID, cmd models.Command) error {
	if !r.Rules.AllowMatchDiscard {
		return fmt.Errorf("match: variant disabled: %w", ErrIllegalPhase)
	}
	p, err := r.requireTurn(actor, PhaseAwaitingDraw)
	if err != nil {
		return fmt.Errorf("match: %w", err)
	}
	if len(r.discard) == 0 {
		return fmt.Errorf("match: discard empty: %w", ErrEmptyResource)
	}
	if cmd.TargetSlot == nil {
		return fmt.Errorf("match: missing target slot: %w", ErrInvalidTarget)
	}
	top := r.discard[len(r.discard)-1]

	targetID := cmd.Target
	if targetID == uuid.Nil {
		targetID = actor
	}
	target := r.players[targetID]
	if target == nil {
		return fmt.Errorf("match: unknown target: %w", ErrInvalidTarget)
	}
	candidate, ok := target.Hand.Peek(*cmd.TargetSlot)
	if !ok {
		return fmt.Errorf("match: target slot %d: %w", *cmd.TargetSlot, ErrInvalidTarget)
	}
	if candidate != top {
		return fmt.Errorf("match: %s does not match discard top: %w", candidate, ErrInvalidTarget)
	}

	if targetID == actor {
		matched, _ := p.Hand.RemoveAndShift(*cmd.TargetSlot)
		r.discard = append(r.discard, matched)
	} else {
		if cmd.Slot == nil {
			return fmt.Errorf("match: missing own slot to give: %w", ErrInvalidTarget)
		}
		if _, ok := p.Hand.Peek(*cmd.Slot); !ok {
			return fmt.Errorf("match: own slot %d: %w", *cmd.Slot, ErrInvalidTarget)
		}
		matched, _ := target.Hand.RemoveAndShift(*cmd.TargetSlot)
		r.discard = append(r.discard, matched)
		given, _ := p.Hand.RemoveAndShift(*cmd.Slot)
		target.Hand.Insert(*cmd.TargetSlot, given)
	}

	r.logAction(actor, "match_discard", map[string]interface{}{"target": targetID.String()})
	r.broadcast(Event{
		Type:   EventMatchDiscard,
		Player: &EventPlayer{ID: p.ID, Name: p.Name},
		Payload: map[string]interface{}{
			"target": targetID.String(),
		},
	})
	r.broadcastDiscardTop()
	r.broadcastHandSizes()

	// An emptied hand starts the final round, unless one is already running.
	if p.Hand.Len() == 0 && !r.finalRound {
		r.finalRound = true
		r.finalAnchor = r.turnIndex
		r.finalReason = EndReasonNoCards
		r.logAction(actor, "hand_emptied", nil)
		r.broadcast(Event{
			Type:   EventFinalRound,
			Player: &EventPlayer{ID: p.ID, Name: p.Name},
			Reason: string(EndReasonNoCards),
		})
	}
	r.advanceTurn()
	return nil
}

// removePlayer handles a disconnect. Safe to apply in any phase.
func (r *Room) removePlayer(playerID uuid.UUID) {
	p := r.players[playerID]
	if p == nil {
		return
	}
	idx := -1
	for i, id := range r.order {
		if id == playerID {
			idx = i
			break
		}
	}
	delete(r.players, playerID)
	if idx >= 0 {
		r.order = append(r.order[:idx], r.order[idx+1:]...)
	}
	r.logAction(playerID, "player_leave", nil)
	r.broadcast(Event{Type: EventPlayerLeft, Player: &EventPlayer{ID: p.ID, Name: p.Name}})
	r.broadcastRoster()

	if len(r.order) == 0 {
		r.resetToWaiting()
		return
	}
	if r.phase == PhaseWaiting || idx < 0 {
		return
	}

	heldTurn := idx == r.turnIndex
	if idx < r.turnIndex {
		r.turnIndex--
	} else if r.turnIndex >= len(r.order) {
		r.turnIndex = r.turnIndex % len(r.order)
	}
	if r.finalRound {
		if idx < r.finalAnchor {
			r.finalAnchor--
		} else if r.finalAnchor >= len(r.order) {
			r.finalAnchor = 0
		}
	}
	if heldTurn && r.phase != PhaseDealt {
		// Abandon whatever the departing player had in flight; the seat that
		// slid into their index holds the turn now. An undecided drawn card
		// goes to the discard pile, as with an expired turn, so it stays in
		// play.
		if r.drawn != nil {
			r.discard = append(r.discard, *r.drawn)
			r.broadcastDiscardTop()
		}
		r.drawn = nil
		r.drawnFromDiscard = false
		r.pending = nil
		r.phase = PhaseAwaitingDraw
		r.turnIndex = r.turnIndex % len(r.order)
		r.notifyTurn()
		r.scheduleTurnTimer()
	}
}

// requireTurn enforces the uniform validation contract: the actor must be
// seated and hold the turn, and the phase must match. Turn ownership is
// checked before the phase so a bystander is always told "out of turn",
// whatever the room is currently doing.
func (r *Room) requireTurn(actor uuid.UUID, phase Phase) (*models.Player, error) {
	p := r.players[actor]
	if p == nil {
		return nil, ErrOutOfTurn
	}
	if r.order[r.turnIndex] != actor {
		return nil, ErrOutOfTurn
	}
	if r.phase != phase {
		return nil, ErrIllegalPhase
	}
	return p, nil
}

// opponentOf resolves a power target, rejecting self-targets and unknowns.
func (r *Room) opponentOf(p *models.Player, targetID uuid.UUID) (*models.Player, error) {
	if targetID == uuid.Nil || targetID == p.ID {
		return nil, fmt.Errorf("target must be an opponent: %w", ErrInvalidTarget)
	}
	target := r.players[targetID]
	if target == nil {
		return nil, fmt.Errorf("unknown opponent %s: %w", targetID, ErrInvalidTarget)
	}
	return target, nil
}

func (r *Room) current() *models.Player {
	if len(r.order) == 0 {
		return nil
	}
	return r.players[r.order[r.turnIndex]]
}

// advanceTurn hands the turn to the next seat, ending the game instead when
// the final round wraps back to its anchor.
func (r *Room) advanceTurn() {
	r.drawn = nil
	r.drawnFromDiscard = false
	r.pending = nil
	if len(r.order) == 0 {
		r.resetToWaiting()
		return
	}
	next := (r.turnIndex + 1) % len(r.order)
	if r.finalRound && next == r.finalAnchor {
		r.endGame(r.finalReason)
		return
	}
	r.turnIndex = next
	r.phase = PhaseAwaitingDraw
	r.notifyTurn()
	r.scheduleTurnTimer()
}

// endGame broadcasts the score table and resets the room to waiting. No
// history survives the reset.
func (r *Room) endGame(reason EndReason) {
	scores := r.computeScores()
	winnerID := r.findWinner(scores)

	table := make([]map[string]interface{}, 0, len(r.order))
	for _, id := range r.order {
		p := r.players[id]
		table = append(table, map[string]interface{}{
			"id":    id.String(),
			"name":  p.Name,
			"score": scores[id],
		})
	}
	ev := Event{
		Type:   EventGameEnded,
		Reason: string(reason),
		Payload: map[string]interface{}{
			"scores": table,
		},
	}
	if winner := r.players[winnerID]; winner != nil {
		ev.Player = &EventPlayer{ID: winner.ID, Name: winner.Name}
	}
	r.logAction(uuid.Nil, "game_end", map[string]interface{}{"reason": string(reason)})
	r.broadcast(ev)
	r.resetToWaiting()
}

// resetToWaiting clears every piece of game state. Players must join again
// for the next game.
func (r *Room) resetToWaiting() {
	if r.dealtTimer != nil {
		r.dealtTimer.Stop()
		r.dealtTimer = nil
	}
	if r.turnTimer != nil {
		r.turnTimer.Stop()
		r.turnTimer = nil
	}
	r.turnSeq++
	r.players = make(map[uuid.UUID]*models.Player)
	r.order = nil
	r.deck = nil
	r.discard = nil
	r.phase = PhaseWaiting
	r.turnIndex = 0
	r.drawn = nil
	r.drawnFromDiscard = false
	r.pending = nil
	r.finalRound = false
	r.finalAnchor = 0
	r.finalReason = ""
	r.caboCallerID = uuid.Nil
}

// clearPowerAndAdvance destroys the pending power request and moves on.
func (r *Room) clearPowerAndAdvance() {
	r.pending = nil
	r.advanceTurn()
}

// scheduleTurnTimer arms the optional stalled-turn timer. Disabled turns
// simply wait forever; a pending power denies everyone else's commands but
// blocks no goroutine.
func (r *Room) scheduleTurnTimer() {
	if r.turnTimer != nil {
		r.turnTimer.Stop()
		r.turnTimer = nil
	}
	if r.Rules.TurnTimerSec <= 0 {
		return
	}
	r.turnSeq++
	seq := r.turnSeq
	r.turnTimer = time.AfterFunc(time.Duration(r.Rules.TurnTimerSec)*time.Second, func() {
		r.post(func() { r.expireTurn(seq) })
	})
}

// expireTurn forfeits a stalled turn: a drawn card is discarded without its
// power, a pending power abandoned.
func (r *Room) expireTurn(seq int) {
	if seq != r.turnSeq {
		return // stale timer
	}
	switch r.phase {
	case PhaseAwaitingDraw:
		r.logAction(uuid.Nil, "turn_expired", nil)
		r.advanceTurn()
	case PhaseAwaitingResolution:
		r.logAction(uuid.Nil, "turn_expired", nil)
		r.discard = append(r.discard, *r.drawn)
		r.broadcastDiscardTop()
		r.advanceTurn()
	case PhaseAwaitingPower:
		r.logAction(uuid.Nil, "turn_expired", nil)
		r.clearPowerAndAdvance()
	}
}

// --- event emission helpers ---

func (r *Room) broadcast(ev Event) {
	if r.BroadcastFn != nil {
		r.BroadcastFn(ev)
	}
}

func (r *Room) sendTo(playerID uuid.UUID, ev Event) {
	if r.SendToPlayerFn != nil {
		r.SendToPlayerFn(playerID, ev)
	}
}

// revealTo shows viewer the card at owner's slot, naming the owner so an
// opponent peek stays transparent about whose card was seen.
func (r *Room) revealTo(viewer uuid.UUID, owner *models.Player, slot int, card models.Card) {
	s := slot
	r.sendTo(viewer, Event{
		Type:   EventPrivateReveal,
		Player: &EventPlayer{ID: owner.ID, Name: owner.Name},
		Card:   buildEventCard(card, &s),
	})
}

func (r *Room) promptPowerStage(playerID uuid.UUID) {
	if r.pending == nil {
		return
	}
	r.sendTo(playerID, Event{
		Type: EventPrivatePower,
		Payload: map[string]interface{}{
			"kind":  string(r.pending.Kind),
			"stage": r.pending.Stage,
		},
	})
}

func (r *Room) notifyTurn() {
	p := r.current()
	if p == nil {
		return
	}
	r.sendTo(p.ID, Event{Type: EventPrivateTurn, Player: &EventPlayer{ID: p.ID, Name: p.Name}})
}

func (r *Room) broadcastDiscardTop() {
	ev := Event{Type: EventDiscardTop, Payload: map[string]interface{}{"discardSize": len(r.discard)}}
	if len(r.discard) > 0 {
		ev.Card = buildEventCard(r.discard[len(r.discard)-1], nil)
	}
	r.broadcast(ev)
}

func (r *Room) broadcastHandSizes() {
	sizes := make(map[string]int, len(r.order))
	for _, id := range r.order {
		sizes[id.String()] = r.players[id].Hand.Len()
	}
	r.broadcast(Event{Type: EventHandSizes, Payload: map[string]interface{}{"sizes": sizes}})
}

func (r *Room) broadcastRoster() {
	r.broadcast(Event{Type: EventRoster, Payload: map[string]interface{}{"players": r.rosterPayload()}})
}

func (r *Room) rosterPayload() []map[string]string {
	roster := make([]map[string]string, 0, len(r.order))
	for _, id := range r.order {
		roster = append(roster, map[string]string{"id": id.String(), "name": r.players[id].Name})
	}
	return roster
}

func (r *Room) sendPeeksLeft(playerID uuid.UUID) {
	p := r.players[playerID]
	if p == nil {
		return
	}
	r.sendTo(playerID, Event{Type: EventPrivatePeeks, Payload: map[string]interface{}{"peeks": p.PeeksRemaining}})
}

// logAction records an action in the optional journal, keyed and ordered per
// room. Publishing is fire-and-forget; the engine never waits on Redis.
func (r *Room) logAction(actor uuid.UUID, action string, payload map[string]interface{}) {
	r.actionIndex++
	if r.journal == nil {
		return
	}
	rec := journal.Record{
		RoomID:      r.ID,
		ActionIndex: r.actionIndex,
		ActorID:     actor,
		Action:      action,
		Payload:     payload,
		Timestamp:   time.Now().UnixMilli(),
	}
	jrnl := r.journal
	go func() {
		if err := jrnl.Publish(rec); err != nil {
			logrus.Debugf("journal publish failed: %v", err)
		}
	}()
}
