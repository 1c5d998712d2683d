package handlers

import (
	"net/url"
	"strconv"

	"github.com/kg250006/KGP-Game-Imposter-sub000/internal/models"
)

// applySettingsForm overlays submitted form values onto existing settings.
// Checkboxes are always taken from the form: an unchecked box submits
// nothing, which means off.
func applySettingsForm(s *models.GameSettings, form url.Values) {
	if v := form.Get("playerCount"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			s.PlayerCount = n
		}
	}
	if v := form.Get("categoryId"); v != "" {
		s.CategoryID = v
	}
	if v := form.Get("gameMode"); v != "" {
		s.GameMode = v
	}
	if v := form.Get("discussionTimerSeconds"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			s.DiscussionTimerSeconds = n
		}
	}
	s.DiscussionTimerEnabled = form.Get("discussionTimerEnabled") == "1"
	s.ImposterHintsEnabled = form.Get("imposterHintsEnabled") == "1"
}

// settingsPatchFromForm builds a partial update from submitted fields only
func settingsPatchFromForm(form url.Values) models.SettingsPatch {
	var patch models.SettingsPatch
	if v := form.Get("playerCount"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			patch.PlayerCount = &n
		}
	}
	if v := form.Get("categoryId"); v != "" {
		patch.CategoryID = &v
	}
	if v := form.Get("gameMode"); v != "" {
		patch.GameMode = &v
	}
	if v := form.Get("discussionTimerSeconds"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			patch.DiscussionTimerSeconds = &n
		}
	}
	timer := form.Get("discussionTimerEnabled") == "1"
	patch.DiscussionTimerEnabled = &timer
	hints := form.Get("imposterHintsEnabled") == "1"
	patch.ImposterHintsEnabled = &hints
	return patch
}
