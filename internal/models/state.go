package models

import "time"

// GameState is the aggregate root for one session. It is exclusively owned
// and mutated by game.Session; everything else reads snapshots.
type GameState struct {
	Phase        Phase        `json:"phase"`
	Players      []*Player    `json:"players"` // ordered by Number, contiguous 1..N
	CurrentRound *Round       `json:"currentRound,omitempty"`
	RoundHistory []*Round     `json:"roundHistory"`
	Settings     GameSettings `json:"settings"`
	StartedAt    time.Time    `json:"startedAt"`
}

// NewGameState returns the initial landing-phase state
func NewGameState() *GameState {
	return &GameState{
		Phase:        PhaseLanding,
		Players:      nil,
		RoundHistory: nil,
		Settings:     DefaultSettings(),
	}
}

// PlayerByNumber returns the player with the given 1-based number, or nil
func (s *GameState) PlayerByNumber(number int) *Player {
	if number < 1 || number > len(s.Players) {
		return nil
	}
	return s.Players[number-1]
}

// PlayerByID returns the player with the given identity, or nil
func (s *GameState) PlayerByID(id string) *Player {
	for _, p := range s.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Clone returns a deep copy of the state, safe to hand out to readers
func (s *GameState) Clone() *GameState {
	out := &GameState{
		Phase:     s.Phase,
		Settings:  s.Settings,
		StartedAt: s.StartedAt,
	}
	if s.Players != nil {
		out.Players = make([]*Player, len(s.Players))
		for i, p := range s.Players {
			cp := *p
			out.Players[i] = &cp
		}
	}
	if s.CurrentRound != nil {
		out.CurrentRound = cloneRound(s.CurrentRound)
	}
	if s.RoundHistory != nil {
		out.RoundHistory = make([]*Round, len(s.RoundHistory))
		for i, r := range s.RoundHistory {
			out.RoundHistory[i] = cloneRound(r)
		}
	}
	return out
}

func cloneRound(r *Round) *Round {
	cp := *r
	if r.Ballots != nil {
		cp.Ballots = make([]Ballot, len(r.Ballots))
		copy(cp.Ballots, r.Ballots)
	}
	return &cp
}
