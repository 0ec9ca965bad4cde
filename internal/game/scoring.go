package game

import "github.com/google/uuid"

// computeScores sums the card value table over each player's current hand.
func (r *Room) computeScores() map[uuid.UUID]int {
	scores := make(map[uuid.UUID]int, len(r.order))
	for _, id := range r.order {
		sum := 0
		for _, c := range r.players[id].Hand.Cards() {
			sum += c.Value()
		}
		scores[id] = sum
	}
	return scores
}

// findWinner returns the player with the strictly lowest score. Ties resolve
// in favor of the earliest player in turn order; the Cabo caller gets no
// penalty and no preference.
func (r *Room) findWinner(scores map[uuid.UUID]int) uuid.UUID {
	winner := uuid.Nil
	best := 0
	for _, id := range r.order {
		score, ok := scores[id]
		if !ok {
			continue
		}
		if winner == uuid.Nil || score < best {
			winner = id
			best = score
		}
	}
	return winner
}
