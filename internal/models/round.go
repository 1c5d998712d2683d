package models

import "time"

// Ballot records a single cast vote. Ballots are appended in the order
// votes arrive; the tally's tie-break depends on that order.
type Ballot struct {
	Voter  int `json:"voter"`
	Target int `json:"target"`
}

// Round holds the state of one round of play
type Round struct {
	ID         string    `json:"id"`
	Number     int       `json:"number"`
	Word       WordData  `json:"word"`
	ImposterID string    `json:"imposterId"`
	Ballots    []Ballot  `json:"ballots"`
	VotedOut   int       `json:"votedOut"` // plurality target number, 0 = nobody
	CrewWon    bool      `json:"crewWon"`
	StartedAt  time.Time `json:"startedAt"`
	EndedAt    time.Time `json:"endedAt"` // zero while the round is open
}

// Finished reports whether the round's votes have been tallied. A finished
// round is immutable and belongs in the round history.
func (r *Round) Finished() bool {
	return !r.EndedAt.IsZero()
}
