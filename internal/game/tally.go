package game

import "github.com/kg250006/KGP-Game-Imposter-sub000/internal/models"

// tallyBallots determines the plurality vote target from ballots in cast
// order. Returns 0 when no votes were cast. Ties break toward the player
// number whose running count reached the maximum first: comparisons are
// strictly-greater, so a later target matching the leader's count never
// takes over.
func tallyBallots(ballots []models.Ballot) int {
	counts := make(map[int]int, len(ballots))
	leader, maxVotes := 0, 0
	for _, b := range ballots {
		counts[b.Target]++
		if counts[b.Target] > maxVotes {
			maxVotes = counts[b.Target]
			leader = b.Target
		}
	}
	return leader
}
