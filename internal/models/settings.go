package models

// Player count bounds enforced by the core regardless of entitlement;
// free-tier gating happens in the presentation layer.
const (
	MinPlayers = 3
	MaxPlayers = 12
)

// GameSettings configures a session. Owned by the session; mutated only
// through UpdateSettings so roster reconciliation cannot be skipped.
type GameSettings struct {
	CategoryID             string `json:"categoryId"`
	PlayerCount            int    `json:"playerCount"`
	GameMode               string `json:"gameMode"`
	DiscussionTimerEnabled bool   `json:"discussionTimerEnabled"`
	DiscussionTimerSeconds int    `json:"discussionTimerSeconds"`
	ConfettiEnabled        bool   `json:"confettiEnabled"`
	ThemeID                string `json:"themeId"`
	ImposterHintsEnabled   bool   `json:"imposterHintsEnabled"`
}

// DefaultSettings returns the settings a fresh session starts with
func DefaultSettings() GameSettings {
	return GameSettings{
		CategoryID:             "food",
		PlayerCount:            5,
		GameMode:               "classic",
		DiscussionTimerEnabled: false,
		DiscussionTimerSeconds: 120,
		ConfettiEnabled:        true,
		ThemeID:                "default",
		ImposterHintsEnabled:   false,
	}
}

// SettingsPatch is a partial settings update; nil fields are left unchanged
type SettingsPatch struct {
	CategoryID             *string `json:"categoryId,omitempty"`
	PlayerCount            *int    `json:"playerCount,omitempty"`
	GameMode               *string `json:"gameMode,omitempty"`
	DiscussionTimerEnabled *bool   `json:"discussionTimerEnabled,omitempty"`
	DiscussionTimerSeconds *int    `json:"discussionTimerSeconds,omitempty"`
	ConfettiEnabled        *bool   `json:"confettiEnabled,omitempty"`
	ThemeID                *string `json:"themeId,omitempty"`
	ImposterHintsEnabled   *bool   `json:"imposterHintsEnabled,omitempty"`
}

// Apply merges the patch into s and reports whether PlayerCount changed
func (p SettingsPatch) Apply(s *GameSettings) (playerCountChanged bool) {
	if p.CategoryID != nil {
		s.CategoryID = *p.CategoryID
	}
	if p.PlayerCount != nil && *p.PlayerCount != s.PlayerCount {
		s.PlayerCount = *p.PlayerCount
		playerCountChanged = true
	}
	if p.GameMode != nil {
		s.GameMode = *p.GameMode
	}
	if p.DiscussionTimerEnabled != nil {
		s.DiscussionTimerEnabled = *p.DiscussionTimerEnabled
	}
	if p.DiscussionTimerSeconds != nil {
		s.DiscussionTimerSeconds = *p.DiscussionTimerSeconds
	}
	if p.ConfettiEnabled != nil {
		s.ConfettiEnabled = *p.ConfettiEnabled
	}
	if p.ThemeID != nil {
		s.ThemeID = *p.ThemeID
	}
	if p.ImposterHintsEnabled != nil {
		s.ImposterHintsEnabled = *p.ImposterHintsEnabled
	}
	return playerCountChanged
}
