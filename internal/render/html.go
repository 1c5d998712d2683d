// Package render builds the HTML served to the browser. Pages are assembled
// with strings.Builder; all player-controlled text is escaped here.
package render

import (
	"fmt"
	htmlpkg "html"
	"strconv"
	"strings"

	"github.com/kg250006/KGP-Game-Imposter-sub000/internal/models"
	"github.com/kg250006/KGP-Game-Imposter-sub000/internal/stats"
)

// Page wraps a body in the shared document shell
func Page(title, body string) string {
	var b strings.Builder
	b.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
	b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
	b.WriteString(`<title>`)
	b.WriteString(htmlpkg.EscapeString(title))
	b.WriteString(`</title><link rel="stylesheet" href="/static/style.css"></head><body><main class="container">`)
	b.WriteString(body)
	b.WriteString(`</main></body></html>`)
	return b.String()
}

// Landing renders the landing page with new-game and resume forms
func Landing(categories []string) string {
	var b strings.Builder
	b.WriteString(`<h1>Find the Imposter</h1>`)
	b.WriteString(`<div class="card"><h2>New game</h2><form method="post" action="/session">`)
	b.WriteString(`<button type="submit" class="btn btn-primary">Create session</button></form></div>`)
	b.WriteString(`<div class="card"><h2>Resume a session</h2><form method="post" action="/resume">`)
	b.WriteString(`<input type="text" name="code" placeholder="Session code" maxlength="6" required>`)
	b.WriteString(`<button type="submit" class="btn btn-secondary">Resume</button></form></div>`)
	if len(categories) > 0 {
		b.WriteString(`<p class="text-muted">Word packs: `)
		b.WriteString(htmlpkg.EscapeString(strings.Join(categories, ", ")))
		b.WriteString(`</p>`)
	}
	return b.String()
}

// SessionLanding renders the in-session landing screen
func SessionLanding(code string, st *models.GameState) string {
	var b strings.Builder
	b.WriteString(`<h1>Find the Imposter</h1>`)
	b.WriteString(sessionHeader(code))
	b.WriteString(`<div class="card"><form method="post" action="/session/` + code + `/start">`)
	b.WriteString(settingsFields(st.Settings, nil))
	b.WriteString(`<button type="submit" class="btn btn-primary">Start game</button></form></div>`)
	b.WriteString(`<form method="post" action="/session/` + code + `/delete">`)
	b.WriteString(`<button type="submit" class="btn btn-secondary">Delete session</button></form>`)
	return b.String()
}

// Lobby renders the lobby: settings, roster and the start-round control
func Lobby(code string, st *models.GameState, categories []string, errMsg string) string {
	var b strings.Builder
	b.WriteString(`<h1>Lobby</h1>`)
	b.WriteString(sessionHeader(code))
	if errMsg != "" {
		b.WriteString(`<p class="error" id="error-message">`)
		b.WriteString(htmlpkg.EscapeString(errMsg))
		b.WriteString(`</p>`)
	}

	b.WriteString(`<div class="card"><h2>Settings</h2><form method="post" action="/session/` + code + `/settings">`)
	b.WriteString(settingsFields(st.Settings, categories))
	b.WriteString(`<button type="submit" class="btn btn-secondary">Apply</button></form></div>`)

	b.WriteString(`<div class="card"><h2>Players</h2>`)
	b.WriteString(RosterList(code, st.Players))
	b.WriteString(`<form method="post" action="/session/` + code + `/players/reset">`)
	b.WriteString(`<button type="submit" class="btn btn-secondary">Reset names</button></form></div>`)

	b.WriteString(`<div class="button-stack"><form method="post" action="/session/` + code + `/round">`)
	b.WriteString(`<button type="submit" class="btn btn-primary">Start round</button></form>`)
	b.WriteString(`<form method="post" action="/session/` + code + `/landing">`)
	b.WriteString(`<button type="submit" class="btn btn-secondary">Back</button></form></div>`)
	return b.String()
}

// RosterList generates HTML for the player list with rename forms
func RosterList(code string, players []*models.Player) string {
	var b strings.Builder
	b.WriteString(`<ul class="player-list" id="roster">`)
	for _, p := range players {
		name := htmlpkg.EscapeString(p.Name)
		b.WriteString(`<li class="player-item"><span class="player-number">`)
		b.WriteString(strconv.Itoa(p.Number))
		b.WriteString(`</span><form method="post" action="/session/` + code + `/players/` + strconv.Itoa(p.Number) + `/name">`)
		b.WriteString(`<input type="text" name="name" value="` + name + `" maxlength="` + strconv.Itoa(models.MaxNameLength) + `">`)
		b.WriteString(`<button type="submit" class="btn btn-small">Rename</button></form></li>`)
	}
	b.WriteString(`</ul>`)
	return b.String()
}

// Reveal renders the pass-the-phone reveal page: one button per player
func Reveal(code string, st *models.GameState) string {
	var b strings.Builder
	b.WriteString(`<h1>Pass the phone</h1>`)
	b.WriteString(sessionHeader(code))
	b.WriteString(`<p>Each player taps their name, looks at their card alone, then hands the phone on.</p>`)
	b.WriteString(`<ul class="player-list">`)
	for _, p := range st.Players {
		b.WriteString(`<li class="player-item"><a class="btn btn-secondary" href="/session/` + code + `/reveal/` + strconv.Itoa(p.Number) + `">`)
		b.WriteString(htmlpkg.EscapeString(p.Name))
		b.WriteString(`</a></li>`)
	}
	b.WriteString(`</ul>`)
	b.WriteString(`<form method="post" action="/session/` + code + `/discuss">`)
	b.WriteString(`<button type="submit" class="btn btn-primary">Everyone has seen their card</button></form>`)
	return b.String()
}

// RevealCard renders a single player's secret card
func RevealCard(code string, p *models.Player, round *models.Round, hintsEnabled bool) string {
	var b strings.Builder
	b.WriteString(`<h1>`)
	b.WriteString(htmlpkg.EscapeString(p.Name))
	b.WriteString(`</h1>`)
	if p.IsImposter {
		b.WriteString(`<div class="card card-imposter"><h2>You are the imposter</h2>`)
		b.WriteString(`<p>Blend in. The others know the secret word.</p>`)
		if hintsEnabled && round.Word.Hint != "" {
			b.WriteString(`<p class="hint">Hint: `)
			b.WriteString(htmlpkg.EscapeString(round.Word.Hint))
			b.WriteString(`</p>`)
		}
		b.WriteString(`</div>`)
	} else {
		b.WriteString(`<div class="card"><h2>`)
		b.WriteString(htmlpkg.EscapeString(round.Word.Word))
		b.WriteString(`</h2><p class="text-muted">Category: `)
		b.WriteString(htmlpkg.EscapeString(round.Word.Category))
		b.WriteString(`</p></div>`)
	}
	b.WriteString(`<a class="btn btn-primary" href="/session/` + code + `">Done, pass the phone</a>`)
	return b.String()
}

// Discuss renders the discussion page
func Discuss(code string, st *models.GameState) string {
	var b strings.Builder
	b.WriteString(`<h1>Discussion</h1>`)
	b.WriteString(sessionHeader(code))
	b.WriteString(`<p>Take turns describing the word without giving it away. Find the imposter.</p>`)
	if st.Settings.DiscussionTimerEnabled {
		b.WriteString(`<p class="timer" data-seconds="`)
		b.WriteString(strconv.Itoa(st.Settings.DiscussionTimerSeconds))
		b.WriteString(`">Timer: `)
		b.WriteString(strconv.Itoa(st.Settings.DiscussionTimerSeconds))
		b.WriteString(`s</p>`)
	}
	b.WriteString(`<form method="post" action="/session/` + code + `/voting">`)
	b.WriteString(`<button type="submit" class="btn btn-primary">Start voting</button></form>`)
	return b.String()
}

// Vote renders the voting page with one ballot form per outstanding voter
func Vote(code string, st *models.GameState) string {
	voted := 0
	for _, p := range st.Players {
		if p.HasVoted {
			voted++
		}
	}

	var b strings.Builder
	b.WriteString(`<h1>Voting</h1>`)
	b.WriteString(sessionHeader(code))
	b.WriteString(VoteCount(voted, len(st.Players)))
	for _, p := range st.Players {
		if p.HasVoted {
			continue
		}
		b.WriteString(`<div class="card"><form method="post" action="/session/` + code + `/vote">`)
		b.WriteString(`<input type="hidden" name="voter" value="` + strconv.Itoa(p.Number) + `">`)
		b.WriteString(`<label>`)
		b.WriteString(htmlpkg.EscapeString(p.Name))
		b.WriteString(` votes for: <select name="target">`)
		for _, target := range st.Players {
			if target.Number == p.Number {
				continue
			}
			b.WriteString(`<option value="` + strconv.Itoa(target.Number) + `">`)
			b.WriteString(htmlpkg.EscapeString(target.Name))
			b.WriteString(`</option>`)
		}
		b.WriteString(`</select></label><button type="submit" class="btn btn-small">Vote</button></form></div>`)
	}
	b.WriteString(`<form method="post" action="/session/` + code + `/round/end">`)
	b.WriteString(`<button type="submit" class="btn btn-secondary">End voting now</button></form>`)
	return b.String()
}

// VoteCount generates HTML for vote progress display
func VoteCount(count, total int) string {
	var b strings.Builder
	b.WriteString(`<p class="ready-count">`)
	b.WriteString(strconv.Itoa(count))
	b.WriteString(`/`)
	b.WriteString(strconv.Itoa(total))
	b.WriteString(` players have voted</p>`)
	return b.String()
}

// Results renders the round outcome, the score table and session totals
func Results(code string, st *models.GameState, totals stats.SessionTotals) string {
	round := st.CurrentRound
	var b strings.Builder
	b.WriteString(`<h1>Results</h1>`)
	b.WriteString(sessionHeader(code))

	if round != nil {
		imposter := st.PlayerByID(round.ImposterID)
		banner := `<div class="banner banner-imposter"><h2>The imposter got away!</h2></div>`
		if round.CrewWon {
			banner = `<div class="banner banner-crew`
			if st.Settings.ConfettiEnabled {
				banner += ` confetti`
			}
			banner += `"><h2>The crew wins!</h2></div>`
		}
		b.WriteString(banner)

		b.WriteString(`<div class="card"><p>The word was <strong>`)
		b.WriteString(htmlpkg.EscapeString(round.Word.Word))
		b.WriteString(`</strong>.`)
		if imposter != nil {
			b.WriteString(` The imposter was <strong>`)
			b.WriteString(htmlpkg.EscapeString(imposter.Name))
			b.WriteString(`</strong>.`)
		}
		if round.VotedOut != 0 {
			if out := st.PlayerByNumber(round.VotedOut); out != nil {
				b.WriteString(` The group voted out <strong>`)
				b.WriteString(htmlpkg.EscapeString(out.Name))
				b.WriteString(`</strong>.`)
			}
		} else {
			b.WriteString(` Nobody was voted out.`)
		}
		b.WriteString(`</p></div>`)
	}

	b.WriteString(ScoreTable(st.Players))

	if totals.RoundsPlayed > 0 {
		b.WriteString(fmt.Sprintf(`<p class="text-muted">%d rounds played this session, crew won %d.</p>`,
			totals.RoundsPlayed, totals.CrewWins))
	}

	b.WriteString(`<div class="button-stack"><form method="post" action="/session/` + code + `/round/next">`)
	b.WriteString(`<button type="submit" class="btn btn-primary">Next round</button></form>`)
	b.WriteString(`<form method="post" action="/session/` + code + `/landing">`)
	b.WriteString(`<button type="submit" class="btn btn-secondary">Back to start</button></form>`)
	b.WriteString(`<form method="post" action="/session/` + code + `/reset">`)
	b.WriteString(`<button type="submit" class="btn btn-secondary">End game</button></form></div>`)
	return b.String()
}

// ScoreTable generates HTML for the cumulative score table
func ScoreTable(players []*models.Player) string {
	if len(players) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(`<h2>Scores</h2><table class="score-table"><thead><tr><th>Player</th><th>Points</th></tr></thead><tbody>`)
	for _, p := range players {
		b.WriteString(`<tr><td class="score-player">`)
		b.WriteString(htmlpkg.EscapeString(p.Name))
		b.WriteString(`</td><td><span class="badge-pill">`)
		b.WriteString(strconv.Itoa(p.Score))
		b.WriteString(`</span></td></tr>`)
	}
	b.WriteString(`</tbody></table>`)
	return b.String()
}

func sessionHeader(code string) string {
	var b strings.Builder
	b.WriteString(`<p class="session-code">Session <strong>`)
	b.WriteString(htmlpkg.EscapeString(code))
	b.WriteString(`</strong> <a href="/session/`)
	b.WriteString(code)
	b.WriteString(`/qr" title="Share as QR code">QR</a></p>`)
	return b.String()
}

func settingsFields(s models.GameSettings, categories []string) string {
	var b strings.Builder
	b.WriteString(`<label>Players <select name="playerCount">`)
	for n := models.MinPlayers; n <= models.MaxPlayers; n++ {
		b.WriteString(`<option value="` + strconv.Itoa(n) + `"`)
		if n == s.PlayerCount {
			b.WriteString(` selected`)
		}
		b.WriteString(`>` + strconv.Itoa(n) + `</option>`)
	}
	b.WriteString(`</select></label>`)

	if len(categories) > 0 {
		b.WriteString(`<label>Category <select name="categoryId">`)
		for _, c := range categories {
			esc := htmlpkg.EscapeString(c)
			b.WriteString(`<option value="` + esc + `"`)
			if c == s.CategoryID {
				b.WriteString(` selected`)
			}
			b.WriteString(`>` + esc + `</option>`)
		}
		b.WriteString(`</select></label>`)
	} else {
		b.WriteString(`<input type="hidden" name="categoryId" value="` + htmlpkg.EscapeString(s.CategoryID) + `">`)
	}

	b.WriteString(`<label><input type="checkbox" name="discussionTimerEnabled" value="1"`)
	if s.DiscussionTimerEnabled {
		b.WriteString(` checked`)
	}
	b.WriteString(`> Discussion timer</label>`)

	b.WriteString(`<label><input type="checkbox" name="imposterHintsEnabled" value="1"`)
	if s.ImposterHintsEnabled {
		b.WriteString(` checked`)
	}
	b.WriteString(`> Imposter hints</label>`)
	return b.String()
}
