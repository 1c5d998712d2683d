// Package handlers is the thin HTTP glue over the game session API. No game
// rule lives here; handlers parse input, call one session operation, notify
// the SSE hub and render.
package handlers

import (
	"log"
	"net/http"
	"os"

	"github.com/julienschmidt/httprouter"

	"github.com/kg250006/KGP-Game-Imposter-sub000/internal/render"
	"github.com/kg250006/KGP-Game-Imposter-sub000/internal/sse"
	"github.com/kg250006/KGP-Game-Imposter-sub000/internal/stats"
	"github.com/kg250006/KGP-Game-Imposter-sub000/internal/store"
	"github.com/kg250006/KGP-Game-Imposter-sub000/internal/words"
)

var debug bool

func init() {
	debug = os.Getenv("DEBUG") != ""
}

// Context holds shared application dependencies
type Context struct {
	Sessions    *store.SessionStore
	Words       *words.Provider
	Stats       *stats.Store
	Hub         *sse.Hub
	SnapshotDir string
	BaseURL     string
}

// HandleIndex serves the landing page
func (ctx *Context) HandleIndex(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	writePage(w, "Find the Imposter", render.Landing(ctx.Words.Categories()))
}

func writePage(w http.ResponseWriter, title, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write([]byte(render.Page(title, body))); err != nil && debug {
		log.Printf("handlers: writing page: %v", err)
	}
}
