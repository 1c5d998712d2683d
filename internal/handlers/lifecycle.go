package handlers

import (
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"github.com/kg250006/KGP-Game-Imposter-sub000/internal/game"
	"github.com/kg250006/KGP-Game-Imposter-sub000/internal/models"
	"github.com/kg250006/KGP-Game-Imposter-sub000/internal/render"
	"github.com/kg250006/KGP-Game-Imposter-sub000/internal/sse"
)

// HandleStartGame applies the settings form and moves the session to the lobby
func (ctx *Context) HandleStartGame(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	session, err := ctx.getSession(p.ByName("code"))
	if err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	r.ParseForm()
	settings := session.Settings()
	applySettingsForm(&settings, r.Form)
	session.StartGame(settings)

	log.Printf("session %s: game started with %d players", session.Code, settings.PlayerCount)
	ctx.finishTransition(w, r, session)
}

// HandleUpdateSettings merges the settings form into the session
func (ctx *Context) HandleUpdateSettings(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	session, err := ctx.getSession(p.ByName("code"))
	if err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	r.ParseForm()
	session.UpdateSettings(settingsPatchFromForm(r.Form))
	ctx.Hub.For(session.Code).Broadcast(sse.EventRosterUpdate, "")
	ctx.finishTransition(w, r, session)
}

// HandleRenamePlayer updates one seat's name
func (ctx *Context) HandleRenamePlayer(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	session, err := ctx.getSession(p.ByName("code"))
	if err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	r.ParseForm()
	number, _ := strconv.Atoi(p.ByName("number"))
	session.UpdatePlayerName(number, r.FormValue("name"))
	ctx.Hub.For(session.Code).Broadcast(sse.EventRosterUpdate, "")
	ctx.finishTransition(w, r, session)
}

// HandleResetNames restores all default player names
func (ctx *Context) HandleResetNames(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	session, err := ctx.getSession(p.ByName("code"))
	if err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	session.ResetPlayerNames()
	ctx.Hub.For(session.Code).Broadcast(sse.EventRosterUpdate, "")
	ctx.finishTransition(w, r, session)
}

// HandleStartRound draws a word and enters the reveal phase. A failed word
// selection keeps the lobby up with a retryable error message.
func (ctx *Context) HandleStartRound(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	session, err := ctx.getSession(p.ByName("code"))
	if err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if err := session.StartRound(); err != nil {
		log.Printf("session %s: cannot start round: %v", session.Code, err)
		ctx.Hub.For(session.Code).Broadcast(sse.EventErrorMessage, "No words left in this category, pick another one")
		http.Redirect(w, r, "/session/"+session.Code+"?err="+url.QueryEscape("No words available for this category"), http.StatusSeeOther)
		return
	}
	ctx.finishTransition(w, r, session)
}

// HandleStartDiscussion moves reveal -> discuss
func (ctx *Context) HandleStartDiscussion(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	ctx.simpleTransition(w, r, p, (*game.Session).StartDiscussion)
}

// HandleStartVoting moves discuss -> vote. The discussion timer and the
// manual button both land here; repeats are no-ops.
func (ctx *Context) HandleStartVoting(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	ctx.simpleTransition(w, r, p, (*game.Session).StartVoting)
}

// HandleCastVote records one ballot; the final ballot ends the round
func (ctx *Context) HandleCastVote(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	session, err := ctx.getSession(p.ByName("code"))
	if err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	r.ParseForm()
	voter, _ := strconv.Atoi(r.FormValue("voter"))
	target, _ := strconv.Atoi(r.FormValue("target"))
	session.CastVote(voter, target)

	if session.Phase() == models.PhaseResults {
		ctx.Hub.For(session.Code).Broadcast(sse.EventScoreUpdate, "")
	} else {
		voted := 0
		players := session.Players()
		for _, pl := range players {
			if pl.HasVoted {
				voted++
			}
		}
		ctx.Hub.For(session.Code).Broadcast(sse.EventVoteCount, render.VoteCount(voted, len(players)))
	}
	ctx.finishTransition(w, r, session)
}

// HandleEndRound tallies early, before every vote is in
func (ctx *Context) HandleEndRound(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	ctx.simpleTransition(w, r, p, (*game.Session).EndRound)
}

// HandleNextRound archives the finished round and returns to the lobby
func (ctx *Context) HandleNextRound(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	ctx.simpleTransition(w, r, p, (*game.Session).NextRound)
}

// HandleResetGame clears the session back to its initial state
func (ctx *Context) HandleResetGame(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	ctx.simpleTransition(w, r, p, (*game.Session).ResetGame)
}

// HandleReturnToLanding abandons the open round, keeping players and settings
func (ctx *Context) HandleReturnToLanding(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	ctx.simpleTransition(w, r, p, (*game.Session).ReturnToLanding)
}

func (ctx *Context) simpleTransition(w http.ResponseWriter, r *http.Request, p httprouter.Params, op func(*game.Session)) {
	session, err := ctx.getSession(p.ByName("code"))
	if err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	op(session)
	ctx.finishTransition(w, r, session)
}

// finishTransition persists, notifies SSE clients of the (possibly
// unchanged) phase and redirects back to the session page.
func (ctx *Context) finishTransition(w http.ResponseWriter, r *http.Request, session *game.Session) {
	ctx.persist(session)
	ctx.Hub.For(session.Code).Broadcast(sse.EventPhaseUpdate, session.Phase().String())
	http.Redirect(w, r, "/session/"+session.Code, http.StatusSeeOther)
}
