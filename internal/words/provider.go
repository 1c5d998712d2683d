// Package words supplies the secret word for each round. Picks are uniform
// within a category and non-repeating per session until the pool is
// exhausted, at which point the exclusion set resets.
package words

import (
	crand "crypto/rand"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"math/rand"
	"sort"
	"sync"

	"github.com/kg250006/KGP-Game-Imposter-sub000/internal/models"
)

//go:embed data/packs.json
var embeddedPacks embed.FS

// ErrNoWords is returned when a category is unknown or holds no words
var ErrNoWords = errors.New("no words available")

type packEntry struct {
	Word string `json:"word"`
	Hint string `json:"hint"`
}

// Provider hands out words and tracks which ones a session has already seen.
// Safe for use from multiple sessions at once.
type Provider struct {
	mu    sync.Mutex
	packs map[string][]models.WordData
	used  map[string]map[string]bool // category -> word -> already served
}

// Load builds a provider from the embedded category packs
func Load() (*Provider, error) {
	b, err := embeddedPacks.ReadFile("data/packs.json")
	if err != nil {
		return nil, fmt.Errorf("reading packs.json: %w", err)
	}

	var raw map[string][]packEntry
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parsing packs.json: %w", err)
	}

	packs := make(map[string][]models.WordData, len(raw))
	for category, entries := range raw {
		pack := make([]models.WordData, 0, len(entries))
		for _, e := range entries {
			pack = append(pack, models.WordData{
				Word:     e.Word,
				Category: category,
				Hint:     e.Hint,
			})
		}
		packs[category] = pack
	}

	return NewProvider(packs), nil
}

// NewProvider builds a provider from explicit packs
func NewProvider(packs map[string][]models.WordData) *Provider {
	return &Provider{
		packs: packs,
		used:  make(map[string]map[string]bool),
	}
}

// Categories returns the available category IDs, sorted
func (p *Provider) Categories() []string {
	out := make([]string, 0, len(p.packs))
	for category := range p.packs {
		out = append(out, category)
	}
	sort.Strings(out)
	return out
}

// Pick returns a random unseen word from the category. Once every word in
// the pool has been served, the exclusion set resets and words may repeat.
func (p *Provider) Pick(categoryID string) (models.WordData, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pack := p.packs[categoryID]
	if len(pack) == 0 {
		return models.WordData{}, ErrNoWords
	}

	used := p.used[categoryID]
	if used == nil {
		used = make(map[string]bool)
		p.used[categoryID] = used
	}

	candidates := make([]models.WordData, 0, len(pack))
	for _, w := range pack {
		if !used[w.Word] {
			candidates = append(candidates, w)
		}
	}
	if len(candidates) == 0 {
		// Pool exhausted; start over
		clear(used)
		candidates = append(candidates, pack...)
	}

	picked := candidates[randIntn(len(candidates))]
	used[picked.Word] = true
	return picked, nil
}

// randIntn picks uniformly in [0, n) from a cryptographically strong source
func randIntn(n int) int {
	v, err := crand.Int(crand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// fallback to math/rand if crypto fails
		return rand.Intn(n)
	}
	return int(v.Int64())
}
