package words

import (
	"errors"
	"testing"

	"github.com/kg250006/KGP-Game-Imposter-sub000/internal/models"
)

func smallProvider(t *testing.T) *Provider {
	t.Helper()
	return NewProvider(map[string][]models.WordData{
		"food": {
			{Word: "Pizza", Category: "food"},
			{Word: "Sushi", Category: "food"},
			{Word: "Taco", Category: "food"},
		},
	})
}

func TestLoad_EmbeddedPacks(t *testing.T) {
	p, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	categories := p.Categories()
	if len(categories) == 0 {
		t.Fatal("no categories loaded")
	}
	w, err := p.Pick(categories[0])
	if err != nil {
		t.Fatalf("Pick(%q): %v", categories[0], err)
	}
	if w.Word == "" {
		t.Error("picked empty word")
	}
	if w.Category != categories[0] {
		t.Errorf("Category %q, want %q", w.Category, categories[0])
	}
}

func TestPick_NoRepeatsUntilExhausted(t *testing.T) {
	p := smallProvider(t)

	seen := make(map[string]bool)
	for i := 0; i < 3; i++ {
		w, err := p.Pick("food")
		if err != nil {
			t.Fatalf("Pick %d: %v", i, err)
		}
		if seen[w.Word] {
			t.Fatalf("word %q repeated before pool exhausted", w.Word)
		}
		seen[w.Word] = true
	}

	// Pool exhausted: next pick resets and must still succeed
	w, err := p.Pick("food")
	if err != nil {
		t.Fatalf("Pick after exhaustion: %v", err)
	}
	if !seen[w.Word] {
		t.Errorf("post-reset word %q not from the original pool", w.Word)
	}
}

func TestPick_UnknownCategory(t *testing.T) {
	p := smallProvider(t)
	_, err := p.Pick("nope")
	if !errors.Is(err, ErrNoWords) {
		t.Errorf("Pick(unknown) error = %v, want ErrNoWords", err)
	}
}
