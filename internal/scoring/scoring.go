// Package scoring computes per-player point awards from a round's vote
// outcome. All functions are pure; the session applies the results.
package scoring

// Point awards for the imposter, stepped by how much of the crew was fooled
const (
	PerfectDeceptionPoints = 3 // nobody accused the imposter
	MajorityFooledPoints   = 2 // at least half the crew voted wrong
	CaughtPoints           = 0 // majority of the crew accused correctly
)

// CorrectVotePoints is awarded to each crew member whose vote hit the imposter
const CorrectVotePoints = 1

// ImposterPoints returns the imposter's award for a round. correctVotes is
// the number of crew members whose vote targeted the imposter,
// totalCrewCount is the player count minus one. The fooled fraction uses a
// >= 0.5 boundary: with an even crew, exactly half wrong still pays out.
func ImposterPoints(correctVotes, totalCrewCount int) int {
	if totalCrewCount == 0 {
		return 0
	}

	fooled := totalCrewCount - correctVotes
	if fooled == totalCrewCount {
		return PerfectDeceptionPoints
	}
	if fooled*2 >= totalCrewCount {
		return MajorityFooledPoints
	}
	return CaughtPoints
}

// CrewPoints returns a single crew member's award. It is purely individual:
// a correct vote scores even when the group's plurality missed the imposter.
func CrewPoints(votedForImposter bool) int {
	if votedForImposter {
		return CorrectVotePoints
	}
	return 0
}
