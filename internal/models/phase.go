package models

// Phase represents the current screen/phase of a game session
type Phase string

const (
	PhaseLanding Phase = "landing"
	PhaseLobby   Phase = "lobby"
	PhaseReveal  Phase = "reveal"
	PhaseDiscuss Phase = "discuss"
	PhaseVote    Phase = "vote"
	PhaseResults Phase = "results"
)

// String returns the string representation of the phase
func (p Phase) String() string {
	return string(p)
}

// CanTransitionTo checks if a transition from the current phase to the
// target phase follows a forward edge. Reset-style operations (endGame,
// returnToLanding) bypass this table and may fire from any phase.
func (p Phase) CanTransitionTo(target Phase) bool {
	validTransitions := map[Phase][]Phase{
		PhaseLanding: {PhaseLobby},
		PhaseLobby:   {PhaseReveal},
		PhaseReveal:  {PhaseDiscuss},
		PhaseDiscuss: {PhaseVote},
		PhaseVote:    {PhaseResults},
		PhaseResults: {PhaseLobby},
	}

	allowed, ok := validTransitions[p]
	if !ok {
		return false
	}

	for _, phase := range allowed {
		if phase == target {
			return true
		}
	}
	return false
}
