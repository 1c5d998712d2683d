package models

// MaxNameLength is the longest allowed player name, in runes
const MaxNameLength = 15

// Player represents one seat in the game. ID is assigned once and survives
// across rounds; Number is the 1-based positional index used for voting.
type Player struct {
	ID         string `json:"id"`
	Number     int    `json:"number"`
	Name       string `json:"name"`
	Score      int    `json:"score"`
	IsImposter bool   `json:"isImposter"`
	HasVoted   bool   `json:"hasVoted"`
	VotedFor   int    `json:"votedFor"` // target player number, 0 = no vote
}

// ResetForRound clears the per-round fields while keeping identity,
// name and cumulative score.
func (p *Player) ResetForRound() {
	p.IsImposter = false
	p.HasVoted = false
	p.VotedFor = 0
}
