package distractor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/at-ishikawa/verbdrill/internal/deck"
	"github.com/at-ishikawa/verbdrill/internal/random"
)

func cards(translations ...string) []deck.Card {
	result := make([]deck.Card, 0, len(translations))
	for i, translation := range translations {
		result = append(result, deck.Card{ID: i + 1, Translation: translation})
	}
	return result
}

func TestBuildOptions(t *testing.T) {
	tests := []struct {
		name      string
		cards     []deck.Card
		correct   int
		wantCount int
		wantPool  []string
	}{
		{
			name:      "large deck",
			cards:     cards("koşmak", "yemek", "uyumak", "içmek", "yazmak", "okumak"),
			correct:   0,
			wantCount: 4,
			wantPool:  []string{"koşmak", "yemek", "uyumak", "içmek", "yazmak", "okumak"},
		},
		{
			name:      "exactly four cards",
			cards:     cards("koşmak", "yemek", "uyumak", "içmek"),
			correct:   2,
			wantCount: 4,
			wantPool:  []string{"koşmak", "yemek", "uyumak", "içmek"},
		},
		{
			name:      "duplicate translations are collapsed",
			cards:     cards("koşmak", "yemek", "yemek", "koşmak", "uyumak"),
			correct:   0,
			wantCount: 3,
			wantPool:  []string{"koşmak", "yemek", "uyumak"},
		},
		{
			name:      "two card deck",
			cards:     cards("koşmak", "yemek"),
			correct:   1,
			wantCount: 2,
			wantPool:  []string{"koşmak", "yemek"},
		},
		{
			name:      "single card deck",
			cards:     cards("koşmak"),
			correct:   0,
			wantCount: 1,
			wantPool:  []string{"koşmak"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := random.New(11)
			correct := tt.cards[tt.correct]
			for range 50 {
				options := BuildOptions(correct, tt.cards, rng)

				assert.Len(t, options, tt.wantCount)
				assert.Contains(t, options, correct.Translation)
				seen := make(map[string]bool)
				for _, option := range options {
					assert.False(t, seen[option], "duplicate option %q", option)
					seen[option] = true
					assert.Contains(t, tt.wantPool, option)
				}
			}
		})
	}
}

func TestBuildOptions_CorrectPositionVaries(t *testing.T) {
	deckCards := cards("koşmak", "yemek", "uyumak", "içmek", "yazmak")
	rng := random.New(5)

	positions := make(map[int]bool)
	for range 200 {
		options := BuildOptions(deckCards[0], deckCards, rng)
		for i, option := range options {
			if option == "koşmak" {
				positions[i] = true
			}
		}
	}
	assert.Len(t, positions, OptionCount)
}
