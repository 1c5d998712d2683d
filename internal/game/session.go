// Package game owns the authoritative state machine for one session:
// phase transitions, the player roster, round lifecycle, imposter
// selection, vote tallying and score application.
package game

import (
	"fmt"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/kg250006/KGP-Game-Imposter-sub000/internal/models"
	"github.com/kg250006/KGP-Game-Imposter-sub000/internal/scoring"
)

// WordSource supplies the secret word for a round
type WordSource interface {
	Pick(categoryID string) (models.WordData, error)
}

// RoundSink receives one summary per completed round. Fire-and-forget: the
// session never reads anything back.
type RoundSink interface {
	RecordRound(summary RoundSummary)
}

// RoundSummary is the per-round notification handed to the stats collaborator
type RoundSummary struct {
	SessionCode    string
	RoundNumber    int
	Word           string
	Category       string
	ImposterName   string
	ImposterNumber int
	VotedOut       int
	CrewWon        bool
	ImposterPoints int
	CorrectVotes   int
	CrewCount      int
	StartedAt      time.Time
	EndedAt        time.Time
}

// Session owns one GameState. Every transition operation locks, checks its
// precondition and either mutates or does nothing; no operation panics or
// leaves partial state behind.
type Session struct {
	Code      string
	CreatedAt time.Time

	mu    sync.Mutex
	state *models.GameState
	words WordSource
	stats RoundSink
}

// NewSession creates a session in the landing phase. stats may be nil.
func NewSession(code string, words WordSource, stats RoundSink) *Session {
	return &Session{
		Code:      code,
		CreatedAt: time.Now().UTC(),
		state:     models.NewGameState(),
		words:     words,
		stats:     stats,
	}
}

// StartGame applies settings, reconciles the roster (preserving names where
// the player number already exists) and begins a fresh game in the lobby.
// Round history and scores from any previous game are dropped.
func (s *Session) StartGame(settings models.GameSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings.PlayerCount = clampPlayerCount(settings.PlayerCount)
	s.state.Settings = settings
	s.reconcileRosterLocked(settings.PlayerCount)
	for _, p := range s.state.Players {
		p.Score = 0
		p.ResetForRound()
	}
	s.state.CurrentRound = nil
	s.state.RoundHistory = nil
	s.state.StartedAt = time.Now().UTC()
	s.state.Phase = models.PhaseLobby
}

// StartRound draws a word, picks the imposter uniformly at random and moves
// to the reveal phase. Fails without a phase change if no word is available,
// so the lobby can retry with another category.
func (s *Session) StartRound() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Phase != models.PhaseLobby || len(s.state.Players) == 0 {
		return nil
	}

	word, err := s.words.Pick(s.state.Settings.CategoryID)
	if err != nil {
		return fmt.Errorf("selecting word: %w", err)
	}

	for _, p := range s.state.Players {
		p.ResetForRound()
	}
	imposter := s.state.Players[randIntn(len(s.state.Players))]
	imposter.IsImposter = true

	s.state.CurrentRound = &models.Round{
		ID:         uuid.New().String(),
		Number:     len(s.state.RoundHistory) + 1,
		Word:       word,
		ImposterID: imposter.ID,
		StartedAt:  time.Now().UTC(),
	}
	s.state.Phase = models.PhaseReveal
	return nil
}

// StartDiscussion moves from reveal to discussion
func (s *Session) StartDiscussion() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Phase == models.PhaseReveal {
		s.state.Phase = models.PhaseDiscuss
	}
}

// StartVoting moves from discussion to voting. Safe to call repeatedly, so
// a discussion timer firing after a manual advance is harmless.
func (s *Session) StartVoting() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Phase == models.PhaseDiscuss {
		s.state.Phase = models.PhaseVote
	}
}

// CastVote records voterNumber's vote for targetNumber. Votes for unknown
// player numbers and second votes from the same voter are rejected without
// touching tally state. The final outstanding vote ends the round.
func (s *Session) CastVote(voterNumber, targetNumber int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Phase != models.PhaseVote || s.state.CurrentRound == nil {
		return
	}
	voter := s.state.PlayerByNumber(voterNumber)
	target := s.state.PlayerByNumber(targetNumber)
	if voter == nil || target == nil || voter.HasVoted {
		return
	}

	voter.HasVoted = true
	voter.VotedFor = targetNumber
	s.state.CurrentRound.Ballots = append(s.state.CurrentRound.Ballots, models.Ballot{
		Voter:  voterNumber,
		Target: targetNumber,
	})

	for _, p := range s.state.Players {
		if !p.HasVoted {
			return
		}
	}
	s.endRoundLocked()
}

// EndRound tallies votes, applies scores and finalizes the current round.
// No-op if no round is open.
func (s *Session) EndRound() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.endRoundLocked()
}

func (s *Session) endRoundLocked() {
	round := s.state.CurrentRound
	if round == nil || round.Finished() {
		return
	}
	imposter := s.state.PlayerByID(round.ImposterID)
	if imposter == nil {
		// Roster mutated under the round; nothing sane to score
		return
	}

	round.VotedOut = tallyBallots(round.Ballots)
	round.CrewWon = round.VotedOut == imposter.Number

	correctVotes := 0
	crewCount := len(s.state.Players) - 1
	for _, p := range s.state.Players {
		if p.ID == imposter.ID {
			continue
		}
		votedForImposter := p.HasVoted && p.VotedFor == imposter.Number
		if votedForImposter {
			correctVotes++
		}
		p.Score += scoring.CrewPoints(votedForImposter)
	}
	imposterAward := scoring.ImposterPoints(correctVotes, crewCount)
	imposter.Score += imposterAward

	round.EndedAt = time.Now().UTC()
	s.state.Phase = models.PhaseResults

	if s.stats != nil {
		s.stats.RecordRound(RoundSummary{
			SessionCode:    s.Code,
			RoundNumber:    round.Number,
			Word:           round.Word.Word,
			Category:       round.Word.Category,
			ImposterName:   imposter.Name,
			ImposterNumber: imposter.Number,
			VotedOut:       round.VotedOut,
			CrewWon:        round.CrewWon,
			ImposterPoints: imposterAward,
			CorrectVotes:   correctVotes,
			CrewCount:      crewCount,
			StartedAt:      round.StartedAt,
			EndedAt:        round.EndedAt,
		})
	}
}

// NextRound archives the finished round and returns to the lobby
func (s *Session) NextRound() {
	s.mu.Lock()
	defer s.mu.Unlock()

	round := s.state.CurrentRound
	if round == nil || !round.Finished() {
		return
	}
	s.state.RoundHistory = append(s.state.RoundHistory, round)
	s.state.CurrentRound = nil
	s.state.Phase = models.PhaseLobby
}

// ResetGame clears everything back to the initial landing state
func (s *Session) ResetGame() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = models.NewGameState()
}

// ReturnToLanding abandons any open round but keeps players and settings
func (s *Session) ReturnToLanding() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.CurrentRound = nil
	s.state.Phase = models.PhaseLanding
}

// UpdateSettings merges a partial settings update. A player count change
// reconciles the roster: new seats get default names, shrinking trims the
// highest-numbered players first.
func (s *Session) UpdateSettings(patch models.SettingsPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if patch.PlayerCount != nil {
		clamped := clampPlayerCount(*patch.PlayerCount)
		patch.PlayerCount = &clamped
	}
	if patch.Apply(&s.state.Settings) {
		s.reconcileRosterLocked(s.state.Settings.PlayerCount)
	}
}

// UpdatePlayerName renames one seat. Empty names are rejected; overlong
// names are truncated to the limit.
func (s *Session) UpdatePlayerName(number int, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.state.PlayerByNumber(number)
	if p == nil || name == "" {
		return
	}
	if utf8.RuneCountInString(name) > models.MaxNameLength {
		runes := []rune(name)
		name = string(runes[:models.MaxNameLength])
	}
	p.Name = name
}

// ResetPlayerNames restores every seat's default name
func (s *Session) ResetPlayerNames() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.state.Players {
		p.Name = defaultPlayerName(p.Number)
	}
}

// reconcileRosterLocked grows or shrinks the roster to count seats.
// Existing seats keep their identity, name and score.
func (s *Session) reconcileRosterLocked(count int) {
	if count < 0 {
		count = 0
	}
	for len(s.state.Players) > count {
		s.state.Players = s.state.Players[:len(s.state.Players)-1]
	}
	for len(s.state.Players) < count {
		number := len(s.state.Players) + 1
		s.state.Players = append(s.state.Players, &models.Player{
			ID:     uuid.New().String(),
			Number: number,
			Name:   defaultPlayerName(number),
		})
	}
}

// Phase returns the current phase
func (s *Session) Phase() models.Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Phase
}

// Settings returns a copy of the current settings
func (s *Session) Settings() models.GameSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Settings
}

// Players returns a copy of the roster, ordered by player number
func (s *Session) Players() []*models.Player {
	return s.State().Players
}

// CurrentRound returns a copy of the open round, or nil
func (s *Session) CurrentRound() *models.Round {
	return s.State().CurrentRound
}

// RoundHistory returns copies of the completed rounds, oldest first
func (s *Session) RoundHistory() []*models.Round {
	return s.State().RoundHistory
}

// State returns a deep copy of the full aggregate for rendering or
// persistence. Mutating the copy has no effect on the session.
func (s *Session) State() *models.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Restore replaces the session's state, e.g. from a persisted snapshot.
// The caller is responsible for having defaulted missing fields.
func (s *Session) Restore(state *models.GameState) {
	if state == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

func clampPlayerCount(n int) int {
	if n < models.MinPlayers {
		return models.MinPlayers
	}
	if n > models.MaxPlayers {
		return models.MaxPlayers
	}
	return n
}

func defaultPlayerName(number int) string {
	return fmt.Sprintf("Player %d", number)
}
