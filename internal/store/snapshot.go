// Snapshot persistence: the full GameState round-trips through a flat JSON
// document on disk. Best-effort only; a missing or unreadable snapshot is
// never fatal to the game.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kg250006/KGP-Game-Imposter-sub000/internal/models"
)

// SnapshotVersion is the current on-disk schema version. Loaders accept
// this version and older; anything newer is refused rather than guessed at.
const SnapshotVersion = 1

// ErrSnapshotVersion is returned for snapshots written by a newer build
var ErrSnapshotVersion = errors.New("snapshot schema version too new")

// Snapshot is the persisted form of one session
type Snapshot struct {
	Version int               `json:"version"`
	Code    string            `json:"code"`
	SavedAt time.Time         `json:"savedAt"`
	State   *models.GameState `json:"state"`
}

// SaveSnapshot writes the state for a session to path, replacing any
// previous snapshot atomically.
func SaveSnapshot(path, code string, state *models.GameState) error {
	snap := Snapshot{
		Version: SnapshotVersion,
		Code:    code,
		SavedAt: time.Now().UTC(),
		State:   state,
	}
	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating snapshot dir: %w", err)
	}
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return os.Rename(tmp, path)
}

// LoadSnapshot reads a snapshot from path and defaults any missing fields,
// so documents written by older builds (including unversioned ones) load
// cleanly.
func LoadSnapshot(path string) (*Snapshot, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}
	if snap.Version > SnapshotVersion {
		return nil, fmt.Errorf("%w: %d", ErrSnapshotVersion, snap.Version)
	}

	if snap.State == nil {
		snap.State = models.NewGameState()
	}
	applyStateDefaults(snap.State)
	return &snap, nil
}

// applyStateDefaults fills in fields a partial or legacy document may lack
func applyStateDefaults(st *models.GameState) {
	if st.Phase == "" {
		st.Phase = models.PhaseLanding
	}
	defaults := models.DefaultSettings()
	if st.Settings.CategoryID == "" {
		st.Settings.CategoryID = defaults.CategoryID
	}
	if st.Settings.PlayerCount == 0 {
		st.Settings.PlayerCount = defaults.PlayerCount
	}
	if st.Settings.GameMode == "" {
		st.Settings.GameMode = defaults.GameMode
	}
	if st.Settings.DiscussionTimerSeconds == 0 {
		st.Settings.DiscussionTimerSeconds = defaults.DiscussionTimerSeconds
	}
	if st.Settings.ThemeID == "" {
		st.Settings.ThemeID = defaults.ThemeID
	}

	// Seat numbers must stay a contiguous 1..N range
	for i, p := range st.Players {
		if p.Number != i+1 {
			p.Number = i + 1
		}
	}
}
