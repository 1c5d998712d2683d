package handlers

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"

	"github.com/kg250006/KGP-Game-Imposter-sub000/internal/game"
	"github.com/kg250006/KGP-Game-Imposter-sub000/internal/models"
	"github.com/kg250006/KGP-Game-Imposter-sub000/internal/render"
	"github.com/kg250006/KGP-Game-Imposter-sub000/internal/stats"
	"github.com/kg250006/KGP-Game-Imposter-sub000/internal/store"
)

const qrSize = 256

// HandleCreateSession creates a new session and redirects into it
func (ctx *Context) HandleCreateSession(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	code := ctx.Sessions.UniqueCode()
	session := game.NewSession(code, ctx.Words, ctx.Stats)
	ctx.Sessions.Set(code, session)

	log.Printf("session %s created", code)
	http.Redirect(w, r, "/session/"+code, http.StatusSeeOther)
}

// HandleResumeSession looks a session up by code, reloading its snapshot
// from disk if it is not live in this process.
func (ctx *Context) HandleResumeSession(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	r.ParseForm()
	code := strings.ToUpper(strings.TrimSpace(r.FormValue("code")))
	if code == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if _, err := ctx.getSession(code); err != nil {
		writePage(w, "Not found", render.Landing(ctx.Words.Categories()))
		return
	}
	http.Redirect(w, r, "/session/"+code, http.StatusSeeOther)
}

// HandleSession renders the page for the session's current phase
func (ctx *Context) HandleSession(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	session, err := ctx.getSession(p.ByName("code"))
	if err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	st := session.State()
	code := session.Code
	errMsg := r.URL.Query().Get("err")

	switch st.Phase {
	case models.PhaseLanding:
		writePage(w, "Find the Imposter", render.SessionLanding(code, st))
	case models.PhaseLobby:
		writePage(w, "Lobby", render.Lobby(code, st, ctx.Words.Categories(), errMsg))
	case models.PhaseReveal:
		writePage(w, "Reveal", render.Reveal(code, st))
	case models.PhaseDiscuss:
		writePage(w, "Discussion", render.Discuss(code, st))
	case models.PhaseVote:
		writePage(w, "Voting", render.Vote(code, st))
	case models.PhaseResults:
		writePage(w, "Results", render.Results(code, st, ctx.sessionTotals(code)))
	default:
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// HandleRevealCard shows one player's secret card during the reveal phase
func (ctx *Context) HandleRevealCard(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	session, err := ctx.getSession(p.ByName("code"))
	if err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	st := session.State()
	if st.Phase != models.PhaseReveal || st.CurrentRound == nil {
		http.Redirect(w, r, "/session/"+session.Code, http.StatusSeeOther)
		return
	}
	number, _ := strconv.Atoi(p.ByName("number"))
	player := st.PlayerByNumber(number)
	if player == nil {
		http.Redirect(w, r, "/session/"+session.Code, http.StatusSeeOther)
		return
	}

	writePage(w, "Your card", render.RevealCard(session.Code, player, st.CurrentRound, st.Settings.ImposterHintsEnabled))
}

// HandleSessionQR serves a PNG QR code pointing at the session URL
func (ctx *Context) HandleSessionQR(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	session, err := ctx.getSession(p.ByName("code"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	url := ctx.BaseURL + "/session/" + session.Code
	png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
	if err != nil {
		http.Error(w, "QR generation failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

// HandleDeleteSession tears the session down for good: the registry entry,
// the broadcaster and the on-disk snapshot all go.
func (ctx *Context) HandleDeleteSession(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	code := strings.ToUpper(p.ByName("code"))
	ctx.Sessions.Delete(code)
	ctx.Hub.Drop(code)
	if ctx.SnapshotDir != "" {
		if err := os.Remove(ctx.snapshotPath(code)); err != nil && !os.IsNotExist(err) {
			log.Printf("session %s: snapshot delete failed: %v", code, err)
		}
	}
	log.Printf("session %s deleted", code)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// getSession fetches a live session, falling back to a disk snapshot
func (ctx *Context) getSession(code string) (*game.Session, error) {
	if session, exists := ctx.Sessions.Get(code); exists {
		return session, nil
	}
	if ctx.SnapshotDir == "" {
		return nil, store.ErrSessionNotFound
	}

	snap, err := store.LoadSnapshot(ctx.snapshotPath(code))
	if err != nil {
		if debug {
			log.Printf("session %s: snapshot load failed: %v", code, err)
		}
		return nil, store.ErrSessionNotFound
	}
	session := game.NewSession(code, ctx.Words, ctx.Stats)
	session.Restore(snap.State)
	ctx.Sessions.Set(code, session)
	log.Printf("session %s restored from snapshot", code)
	return session, nil
}

// persist writes the session snapshot, best-effort
func (ctx *Context) persist(session *game.Session) {
	if ctx.SnapshotDir == "" {
		return
	}
	if err := store.SaveSnapshot(ctx.snapshotPath(session.Code), session.Code, session.State()); err != nil {
		log.Printf("session %s: snapshot save failed: %v", session.Code, err)
	}
}

func (ctx *Context) snapshotPath(code string) string {
	return filepath.Join(ctx.SnapshotDir, code+".json")
}

func (ctx *Context) sessionTotals(code string) stats.SessionTotals {
	if ctx.Stats == nil {
		return stats.SessionTotals{}
	}
	totals, err := ctx.Stats.Totals(code)
	if err != nil {
		if debug {
			log.Printf("session %s: totals query failed: %v", code, err)
		}
		return stats.SessionTotals{}
	}
	return totals
}
