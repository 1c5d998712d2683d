package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/kg250006/KGP-Game-Imposter-sub000/internal/game"
	"github.com/kg250006/KGP-Game-Imposter-sub000/internal/sse"
)

// HandleEvents streams session updates via Server-Sent Events
func (ctx *Context) HandleEvents(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	code := p.ByName("code")
	if debug {
		log.Printf("events: stream requested for %s", code)
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	// Set headers for SSE
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable buffering in nginx/proxies

	session, err := ctx.getSession(code)
	if err != nil {
		// Unknown session: tell the client to navigate home
		fmt.Fprintf(w, "event: %s\ndata: /\n\n", sse.EventNavRedirect)
		flusher.Flush()
		return
	}

	broadcaster := ctx.Hub.For(code)
	client := make(chan sse.Message, game.SSEBufferSize)
	broadcaster.AddClient(client, r.RemoteAddr)
	defer broadcaster.RemoveClient(client)

	// Send the current phase immediately so a fresh client can sync
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", sse.EventPhaseUpdate, session.Phase())
	flusher.Flush()

	ctxDone := r.Context().Done()
	for {
		select {
		case <-ctxDone:
			return
		case msg := <-client:
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", msg.Event, msg.Data)
			flusher.Flush()
		}
	}
}
