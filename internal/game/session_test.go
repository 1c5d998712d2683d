package game

import (
	"errors"
	"testing"

	"github.com/kg250006/KGP-Game-Imposter-sub000/internal/models"
)

type stubWords struct {
	word models.WordData
	err  error
}

func (s stubWords) Pick(categoryID string) (models.WordData, error) {
	if s.err != nil {
		return models.WordData{}, s.err
	}
	w := s.word
	if w.Category == "" {
		w.Category = categoryID
	}
	return w, nil
}

type recordingSink struct {
	summaries []RoundSummary
}

func (r *recordingSink) RecordRound(summary RoundSummary) {
	r.summaries = append(r.summaries, summary)
}

func newTestSession(t *testing.T) *Session {
	t.Helper()
	return NewSession("TEST42", stubWords{word: models.WordData{Word: "Pizza", Category: "food"}}, nil)
}

func startGameWith(t *testing.T, s *Session, players int) {
	t.Helper()
	settings := models.DefaultSettings()
	settings.PlayerCount = players
	s.StartGame(settings)
}

// startFixedRound runs startGame+startRound and then pins the imposter to a
// known seat so vote outcomes are deterministic.
func startFixedRound(t *testing.T, s *Session, players, imposterNumber int) {
	t.Helper()
	startGameWith(t, s, players)
	if err := s.StartRound(); err != nil {
		t.Fatalf("StartRound: %v", err)
	}
	st := s.State()
	for _, p := range st.Players {
		p.IsImposter = p.Number == imposterNumber
		if p.IsImposter {
			st.CurrentRound.ImposterID = p.ID
		}
	}
	s.Restore(st)
	s.StartDiscussion()
	s.StartVoting()
}

func scores(s *Session) []int {
	st := s.State()
	out := make([]int, len(st.Players))
	for i, p := range st.Players {
		out[i] = p.Score
	}
	return out
}

func TestStartGame_InitializesRoster(t *testing.T) {
	s := newTestSession(t)
	startGameWith(t, s, 5)

	if got := s.Phase(); got != models.PhaseLobby {
		t.Fatalf("Phase = %q, want %q", got, models.PhaseLobby)
	}
	st := s.State()
	if len(st.Players) != 5 {
		t.Fatalf("len(Players) = %d, want 5", len(st.Players))
	}
	for i, p := range st.Players {
		if p.Number != i+1 {
			t.Errorf("player %d has Number %d, want %d", i, p.Number, i+1)
		}
		if p.ID == "" {
			t.Errorf("player %d has empty ID", i+1)
		}
		if p.Name == "" {
			t.Errorf("player %d has empty Name", i+1)
		}
	}
	if st.RoundHistory != nil {
		t.Errorf("RoundHistory not reset: %v", st.RoundHistory)
	}
}

func TestStartGame_PreservesNamesAcrossRestart(t *testing.T) {
	s := newTestSession(t)
	startGameWith(t, s, 4)
	s.UpdatePlayerName(2, "Mia")

	startGameWith(t, s, 4)
	st := s.State()
	if st.Players[1].Name != "Mia" {
		t.Errorf("player 2 name = %q, want Mia", st.Players[1].Name)
	}
}

func TestStartRound_ExactlyOneImposter(t *testing.T) {
	s := newTestSession(t)
	startGameWith(t, s, 6)
	if err := s.StartRound(); err != nil {
		t.Fatalf("StartRound: %v", err)
	}

	if got := s.Phase(); got != models.PhaseReveal {
		t.Fatalf("Phase = %q, want %q", got, models.PhaseReveal)
	}
	st := s.State()
	imposters := 0
	for _, p := range st.Players {
		if p.IsImposter {
			imposters++
			if p.ID != st.CurrentRound.ImposterID {
				t.Errorf("imposter flag on %s but round records %s", p.ID, st.CurrentRound.ImposterID)
			}
		}
		if p.HasVoted || p.VotedFor != 0 {
			t.Errorf("player %d vote state not reset", p.Number)
		}
	}
	if imposters != 1 {
		t.Fatalf("imposter count = %d, want 1", imposters)
	}
	if st.CurrentRound.Number != 1 {
		t.Errorf("round Number = %d, want 1", st.CurrentRound.Number)
	}
	if st.CurrentRound.Word.Word != "Pizza" {
		t.Errorf("round word = %q, want Pizza", st.CurrentRound.Word.Word)
	}
}

func TestStartRound_NoWordStaysInLobby(t *testing.T) {
	wantErr := errors.New("pool empty")
	s := NewSession("TEST42", stubWords{err: wantErr}, nil)
	startGameWith(t, s, 4)

	err := s.StartRound()
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, wantErr) {
		t.Errorf("error = %v, want wrapped %v", err, wantErr)
	}
	if got := s.Phase(); got != models.PhaseLobby {
		t.Errorf("Phase = %q, want lobby after failed word selection", got)
	}
	if s.State().CurrentRound != nil {
		t.Error("CurrentRound should be nil after failed start")
	}
}

func TestStartRound_OutsideLobbyIsNoOp(t *testing.T) {
	s := newTestSession(t)
	// Still in landing
	if err := s.StartRound(); err != nil {
		t.Fatalf("StartRound: %v", err)
	}
	if got := s.Phase(); got != models.PhaseLanding {
		t.Errorf("Phase = %q, want landing", got)
	}
}

func TestPhaseFlow_RedundantCallsAreHarmless(t *testing.T) {
	s := newTestSession(t)
	startGameWith(t, s, 3)
	if err := s.StartRound(); err != nil {
		t.Fatalf("StartRound: %v", err)
	}

	s.StartVoting() // out of order, must not skip discussion
	if got := s.Phase(); got != models.PhaseReveal {
		t.Fatalf("Phase = %q, want reveal", got)
	}

	s.StartDiscussion()
	s.StartDiscussion()
	if got := s.Phase(); got != models.PhaseDiscuss {
		t.Fatalf("Phase = %q, want discuss", got)
	}

	// Timer expiry and manual advance can both fire
	s.StartVoting()
	s.StartVoting()
	if got := s.Phase(); got != models.PhaseVote {
		t.Fatalf("Phase = %q, want vote", got)
	}
}

func TestCastVote_FinalVoteAutoAdvances(t *testing.T) {
	s := newTestSession(t)
	startFixedRound(t, s, 3, 2)

	s.CastVote(1, 2)
	s.CastVote(2, 3)
	if got := s.Phase(); got != models.PhaseVote {
		t.Fatalf("Phase = %q before final vote, want vote", got)
	}

	s.CastVote(3, 2)
	if got := s.Phase(); got != models.PhaseResults {
		t.Fatalf("Phase = %q after final vote, want results", got)
	}
	if !s.State().CurrentRound.Finished() {
		t.Error("round should be finalized after auto-advance")
	}
}

func TestCastVote_RejectsInvalidAndDuplicate(t *testing.T) {
	s := newTestSession(t)
	startFixedRound(t, s, 3, 1)

	s.CastVote(1, 9) // no such target
	s.CastVote(9, 1) // no such voter
	if n := len(s.State().CurrentRound.Ballots); n != 0 {
		t.Fatalf("ballots = %d after invalid votes, want 0", n)
	}

	s.CastVote(1, 2)
	s.CastVote(1, 3) // second vote from the same seat
	st := s.State()
	if n := len(st.CurrentRound.Ballots); n != 1 {
		t.Fatalf("ballots = %d, want 1", n)
	}
	if st.Players[0].VotedFor != 2 {
		t.Errorf("VotedFor = %d, want original target 2", st.Players[0].VotedFor)
	}
}

func TestCastVote_OutsideVotePhaseIsNoOp(t *testing.T) {
	s := newTestSession(t)
	startGameWith(t, s, 3)
	s.CastVote(1, 2)
	if got := s.Phase(); got != models.PhaseLobby {
		t.Errorf("Phase = %q, want lobby", got)
	}
}

func TestTallyBallots_FirstToReachMaxWinsTies(t *testing.T) {
	// Two targets at two votes each; cast order decides
	ballots := []models.Ballot{
		{Voter: 1, Target: 2}, {Voter: 2, Target: 1},
		{Voter: 3, Target: 1}, {Voter: 4, Target: 2},
	}
	// 1 reaches count 2 before 2 does
	if got := tallyBallots(ballots); got != 1 {
		t.Errorf("tallyBallots = %d, want 1", got)
	}

	// Same counts, opposite order
	ballots = []models.Ballot{
		{Voter: 1, Target: 2}, {Voter: 2, Target: 1},
		{Voter: 3, Target: 2}, {Voter: 4, Target: 1},
	}
	if got := tallyBallots(ballots); got != 2 {
		t.Errorf("tallyBallots = %d, want 2", got)
	}
}

func TestTallyBallots_NoVotes(t *testing.T) {
	if got := tallyBallots(nil); got != 0 {
		t.Errorf("tallyBallots(nil) = %d, want 0", got)
	}
}

func TestEndRound_WithoutRoundIsNoOp(t *testing.T) {
	s := newTestSession(t)
	startGameWith(t, s, 4)
	s.EndRound()
	if got := s.Phase(); got != models.PhaseLobby {
		t.Errorf("Phase = %q, want lobby", got)
	}
}

func TestEndRound_Idempotent(t *testing.T) {
	s := newTestSession(t)
	startFixedRound(t, s, 3, 1)
	s.CastVote(2, 1)
	s.CastVote(3, 1)
	s.CastVote(1, 2)

	before := scores(s)
	s.EndRound()
	s.EndRound()
	after := scores(s)
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("score %d changed on repeat EndRound: %d -> %d", i+1, before[i], after[i])
		}
	}
}

func TestEndRound_PizzaScenario(t *testing.T) {
	sink := &recordingSink{}
	s := NewSession("TEST42", stubWords{word: models.WordData{Word: "Pizza", Category: "food"}}, sink)
	startFixedRound(t, s, 5, 3)

	s.CastVote(1, 3)
	s.CastVote(2, 3)
	s.CastVote(3, 3)
	s.CastVote(4, 3)
	s.CastVote(5, 1)

	st := s.State()
	round := st.CurrentRound
	if round.VotedOut != 3 {
		t.Errorf("VotedOut = %d, want 3", round.VotedOut)
	}
	if !round.CrewWon {
		t.Error("CrewWon = false, want true")
	}

	// Crew 1, 2, 4 hit the imposter; 5 missed; caught imposter scores nothing
	want := []int{1, 1, 0, 1, 0}
	got := scores(s)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("player %d score = %d, want %d", i+1, got[i], want[i])
		}
	}

	if len(sink.summaries) != 1 {
		t.Fatalf("recorded %d summaries, want 1", len(sink.summaries))
	}
	sum := sink.summaries[0]
	if sum.Word != "Pizza" || sum.Category != "food" {
		t.Errorf("summary word = %q/%q, want Pizza/food", sum.Word, sum.Category)
	}
	if sum.ImposterNumber != 3 || !sum.CrewWon || sum.CorrectVotes != 3 || sum.CrewCount != 4 {
		t.Errorf("summary = %+v, want imposter 3, crewWon, 3/4 correct", sum)
	}
	if sum.ImposterPoints != 0 {
		t.Errorf("summary ImposterPoints = %d, want 0", sum.ImposterPoints)
	}
}

func TestEndRound_PerfectDeception(t *testing.T) {
	s := newTestSession(t)
	startFixedRound(t, s, 5, 2)

	// Nobody accuses player 2
	s.CastVote(1, 3)
	s.CastVote(2, 1)
	s.CastVote(3, 1)
	s.CastVote(4, 3)
	s.CastVote(5, 1)

	st := s.State()
	if st.CurrentRound.CrewWon {
		t.Error("CrewWon = true, want false")
	}
	if got := st.Players[1].Score; got != 3 {
		t.Errorf("imposter score = %d, want 3", got)
	}
	for _, n := range []int{1, 3, 4, 5} {
		if got := st.Players[n-1].Score; got != 0 {
			t.Errorf("player %d score = %d, want 0", n, got)
		}
	}
}

func TestScoreMonotonicity_AcrossRounds(t *testing.T) {
	s := newTestSession(t)
	startFixedRound(t, s, 3, 1)
	s.CastVote(1, 2)
	s.CastVote(2, 1)
	s.CastVote(3, 1)

	first := scores(s)
	s.NextRound()
	if got := s.Phase(); got != models.PhaseLobby {
		t.Fatalf("Phase = %q after NextRound, want lobby", got)
	}
	st := s.State()
	if len(st.RoundHistory) != 1 {
		t.Fatalf("RoundHistory len = %d, want 1", len(st.RoundHistory))
	}
	if st.CurrentRound != nil {
		t.Fatal("CurrentRound not cleared")
	}

	if err := s.StartRound(); err != nil {
		t.Fatalf("StartRound: %v", err)
	}
	if got := s.State().CurrentRound.Number; got != 2 {
		t.Errorf("round Number = %d, want 2", got)
	}
	s.StartDiscussion()
	s.StartVoting()
	s.CastVote(1, 2)
	s.CastVote(2, 3)
	s.CastVote(3, 2)

	second := scores(s)
	for i := range first {
		if second[i] < first[i] {
			t.Errorf("player %d score decreased: %d -> %d", i+1, first[i], second[i])
		}
	}
}

func TestNextRound_OpenRoundIsNoOp(t *testing.T) {
	s := newTestSession(t)
	startFixedRound(t, s, 3, 1)
	s.NextRound()
	if got := s.Phase(); got != models.PhaseVote {
		t.Errorf("Phase = %q, want vote (round still open)", got)
	}
	if s.State().CurrentRound == nil {
		t.Error("open round was discarded")
	}
}

func TestUpdateSettings_RosterReconciliation(t *testing.T) {
	s := newTestSession(t)
	startGameWith(t, s, 4)
	s.UpdatePlayerName(1, "Ana")
	s.UpdatePlayerName(4, "Diego")

	six := 6
	s.UpdateSettings(models.SettingsPatch{PlayerCount: &six})
	st := s.State()
	if len(st.Players) != 6 {
		t.Fatalf("len(Players) = %d, want 6", len(st.Players))
	}
	if st.Players[0].Name != "Ana" || st.Players[3].Name != "Diego" {
		t.Errorf("names not preserved on grow: %q, %q", st.Players[0].Name, st.Players[3].Name)
	}
	if st.Players[4].Name != "Player 5" || st.Players[5].Name != "Player 6" {
		t.Errorf("appended default names wrong: %q, %q", st.Players[4].Name, st.Players[5].Name)
	}

	four := 4
	s.UpdateSettings(models.SettingsPatch{PlayerCount: &four})
	st = s.State()
	if len(st.Players) != 4 {
		t.Fatalf("len(Players) = %d, want 4", len(st.Players))
	}
	if st.Players[0].Name != "Ana" || st.Players[3].Name != "Diego" {
		t.Errorf("names not preserved on shrink: %q, %q", st.Players[0].Name, st.Players[3].Name)
	}
}

func TestUpdateSettings_ClampsPlayerCount(t *testing.T) {
	s := newTestSession(t)
	startGameWith(t, s, 4)

	twenty := 20
	s.UpdateSettings(models.SettingsPatch{PlayerCount: &twenty})
	if got := s.Settings().PlayerCount; got != models.MaxPlayers {
		t.Errorf("PlayerCount = %d, want clamped to %d", got, models.MaxPlayers)
	}

	one := 1
	s.UpdateSettings(models.SettingsPatch{PlayerCount: &one})
	if got := s.Settings().PlayerCount; got != models.MinPlayers {
		t.Errorf("PlayerCount = %d, want clamped to %d", got, models.MinPlayers)
	}
}

func TestUpdatePlayerName_Rules(t *testing.T) {
	s := newTestSession(t)
	startGameWith(t, s, 3)

	s.UpdatePlayerName(1, "🦊 Fox")
	if got := s.State().Players[0].Name; got != "🦊 Fox" {
		t.Errorf("Name = %q, want emoji preserved", got)
	}

	s.UpdatePlayerName(2, "")
	if got := s.State().Players[1].Name; got != "Player 2" {
		t.Errorf("empty rename applied: %q", got)
	}

	s.UpdatePlayerName(3, "abcdefghijklmnopqrstuvwxyz")
	if got := s.State().Players[2].Name; got != "abcdefghijklmno" {
		t.Errorf("Name = %q, want truncated to 15 runes", got)
	}

	s.ResetPlayerNames()
	for i, p := range s.State().Players {
		want := defaultPlayerName(i + 1)
		if p.Name != want {
			t.Errorf("player %d name = %q, want %q", i+1, p.Name, want)
		}
	}
}

func TestReturnToLanding_KeepsRoster(t *testing.T) {
	s := newTestSession(t)
	startFixedRound(t, s, 4, 1)
	s.ReturnToLanding()

	st := s.State()
	if st.Phase != models.PhaseLanding {
		t.Errorf("Phase = %q, want landing", st.Phase)
	}
	if st.CurrentRound != nil {
		t.Error("CurrentRound not cleared")
	}
	if len(st.Players) != 4 {
		t.Errorf("len(Players) = %d, want roster kept", len(st.Players))
	}
}

func TestResetGame_ClearsEverything(t *testing.T) {
	s := newTestSession(t)
	startFixedRound(t, s, 4, 1)
	s.ResetGame()

	st := s.State()
	if st.Phase != models.PhaseLanding {
		t.Errorf("Phase = %q, want landing", st.Phase)
	}
	if len(st.Players) != 0 || st.CurrentRound != nil || len(st.RoundHistory) != 0 {
		t.Error("state not fully cleared")
	}
}

func TestGenerateSessionCode(t *testing.T) {
	code := GenerateSessionCode()
	if len(code) != SessionCodeLength {
		t.Fatalf("len(code) = %d, want %d", len(code), SessionCodeLength)
	}
	for _, c := range code {
		if c == '0' || c == 'O' || c == '1' || c == 'I' {
			t.Errorf("code %q contains ambiguous character %q", code, c)
		}
	}
}
