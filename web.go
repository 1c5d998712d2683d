package main

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/kg250006/KGP-Game-Imposter-sub000/internal/handlers"
	"github.com/kg250006/KGP-Game-Imposter-sub000/internal/sse"
	"github.com/kg250006/KGP-Game-Imposter-sub000/internal/stats"
	"github.com/kg250006/KGP-Game-Imposter-sub000/internal/store"
	"github.com/kg250006/KGP-Game-Imposter-sub000/internal/words"
)

const (
	logDate string        = `2006-01-02T15:04:05.000-07:00`
	timeout time.Duration = 10 * time.Second
)

//go:embed static
var staticFiles embed.FS

func logf(cfg *Config, format string, args ...any) {
	if !cfg.verbose {
		return
	}

	log.Printf("%s | "+format, append([]any{time.Now().Format(logDate)}, args...)...)
}

func serveVersion() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintf(w, "imposter v%s\n", releaseVersion)
	}
}

// ServePage assembles the application and runs the HTTP server until the
// command context is cancelled.
func ServePage(ctx context.Context, cfg *Config) error {
	logf(cfg, "START: imposter v%s", releaseVersion)

	provider, err := words.Load()
	if err != nil {
		return fmt.Errorf("loading word packs: %w", err)
	}
	log.Printf("Loaded %d word categories", len(provider.Categories()))

	if err := os.MkdirAll(cfg.dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	statsStore, err := stats.Open(filepath.Join(cfg.dataDir, "stats.db"))
	if err != nil {
		return fmt.Errorf("opening stats database: %w", err)
	}
	defer statsStore.Close()

	appCtx := &handlers.Context{
		Sessions:    store.NewSessionStore(),
		Words:       provider,
		Stats:       statsStore,
		Hub:         sse.NewHub(),
		SnapshotDir: filepath.Join(cfg.dataDir, "sessions"),
		BaseURL:     cfg.externalURL(),
	}

	mux := httprouter.New()

	mux.GET("/", appCtx.HandleIndex)
	mux.GET("/version", serveVersion())

	mux.POST("/session", appCtx.HandleCreateSession)
	// Static "resume" would conflict with the :code wildcard under /session
	mux.POST("/resume", appCtx.HandleResumeSession)
	mux.GET("/session/:code", appCtx.HandleSession)
	mux.GET("/session/:code/qr", appCtx.HandleSessionQR)
	mux.GET("/session/:code/events", appCtx.HandleEvents)
	mux.GET("/session/:code/reveal/:number", appCtx.HandleRevealCard)

	mux.POST("/session/:code/start", appCtx.HandleStartGame)
	mux.POST("/session/:code/settings", appCtx.HandleUpdateSettings)
	mux.POST("/session/:code/players/reset", appCtx.HandleResetNames)
	mux.POST("/session/:code/players/:number/name", appCtx.HandleRenamePlayer)
	mux.POST("/session/:code/round", appCtx.HandleStartRound)
	mux.POST("/session/:code/discuss", appCtx.HandleStartDiscussion)
	mux.POST("/session/:code/voting", appCtx.HandleStartVoting)
	mux.POST("/session/:code/vote", appCtx.HandleCastVote)
	mux.POST("/session/:code/round/end", appCtx.HandleEndRound)
	mux.POST("/session/:code/round/next", appCtx.HandleNextRound)
	mux.POST("/session/:code/reset", appCtx.HandleResetGame)
	mux.POST("/session/:code/landing", appCtx.HandleReturnToLanding)
	mux.POST("/session/:code/delete", appCtx.HandleDeleteSession)

	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		return err
	}
	mux.ServeFiles("/static/*filepath", http.FS(static))

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.bind, fmt.Sprintf("%d", cfg.port)),
		Handler:           mux,
		IdleTimeout:       10 * time.Minute,
		ReadTimeout:       timeout,
		ReadHeaderTimeout: timeout,
		// No WriteTimeout: SSE streams stay open indefinitely
	}

	go func() {
		log.Printf("Listening on http://%s/", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("%s | ERROR: %v", time.Now().Format(logDate), err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
