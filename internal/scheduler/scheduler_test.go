package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/verbdrill/internal/deck"
	"github.com/at-ishikawa/verbdrill/internal/random"
)

// fixedSource returns the same draw every time and records the bounds it was asked for.
type fixedSource struct {
	intN   int
	float  float64
	bounds []int
}

func (s *fixedSource) IntN(n int) int {
	s.bounds = append(s.bounds, n)
	return min(s.intN, n-1)
}

func (s *fixedSource) Float64() float64 {
	return s.float
}

func (s *fixedSource) Shuffle(int, func(i, j int)) {}

const now = int64(10_000)

func card(id int, correctCount int, nextReviewAt int64, weight float64) deck.Card {
	return deck.Card{ID: id, CorrectCount: correctCount, NextReviewAt: nextReviewAt, Weight: weight}
}

func ids(cards []deck.Card) []int {
	var result []int
	for _, c := range cards {
		result = append(result, c.ID)
	}
	return result
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		input   string
		want    Policy
		wantErr bool
	}{
		{input: "uniform", want: PolicyUniform},
		{input: "weighted", want: PolicyWeighted},
		{input: "", want: PolicyUniform},
		{input: "fsrs", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePolicy(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScheduler_SelectNext_EmptyDeck(t *testing.T) {
	for _, policy := range []Policy{PolicyUniform, PolicyWeighted} {
		_, err := New(policy, random.New(1)).SelectNext(nil, now)
		assert.ErrorIs(t, err, ErrEmptyDeck)
	}
}

func TestScheduler_SelectNext_Tiers(t *testing.T) {
	manyNew := make([]deck.Card, 0, 15)
	for i := 1; i <= 15; i++ {
		manyNew = append(manyNew, card(i, 0, now+100, 100))
	}

	tests := []struct {
		name       string
		cards      []deck.Card
		allowed    []int
		wantBounds []int
	}{
		{
			name: "due cards first",
			cards: []deck.Card{
				card(1, 0, now+1, 100),
				card(2, 3, now, 12.5),
				card(3, 2, 0, 25),
				card(4, 5, now+86400, 3),
			},
			allowed:    []int{2, 3},
			wantBounds: []int{2},
		},
		{
			name:       "new cards limited to the first ten",
			cards:      manyNew,
			allowed:    []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
			wantBounds: []int{10},
		},
		{
			name: "fewer new cards than the window",
			cards: []deck.Card{
				card(1, 2, now+50, 25),
				card(2, 0, now+50, 100),
				card(3, 0, now+50, 100),
			},
			allowed:    []int{2, 3},
			wantBounds: []int{2},
		},
		{
			name: "fallback to the whole deck",
			cards: []deck.Card{
				card(1, 2, now+50, 25),
				card(2, 5, now+5000, 3),
			},
			allowed:    []int{1, 2},
			wantBounds: []int{2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for draw := range 3 {
				src := &fixedSource{intN: draw * 7}
				got, err := New(PolicyUniform, src).SelectNext(tt.cards, now)
				require.NoError(t, err)
				assert.Contains(t, tt.allowed, got.ID)
				assert.Equal(t, tt.wantBounds, src.bounds)
			}

			rng := random.New(7)
			seen := make(map[int]bool)
			for range 500 {
				got, err := New(PolicyUniform, rng).SelectNext(tt.cards, now)
				require.NoError(t, err)
				seen[got.ID] = true
			}
			for id := range seen {
				assert.Contains(t, tt.allowed, id)
			}
			assert.Len(t, seen, len(tt.allowed))
		})
	}
}

func TestScheduler_SelectNext_Weighted(t *testing.T) {
	due := []deck.Card{
		card(1, 1, 0, 100),
		card(2, 3, 0, 1),
		card(3, 0, now+1, 100),
	}

	tests := []struct {
		name  string
		float float64
		want  int
	}{
		{name: "low draw", float: 0, want: 1},
		{name: "inside the first weight", float: 0.98, want: 1},
		{name: "past the first weight", float: 0.995, want: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New(PolicyWeighted, &fixedSource{float: tt.float}).SelectNext(due, now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.ID)
		})
	}

	t.Run("new tier stays uniform", func(t *testing.T) {
		cards := []deck.Card{
			card(1, 0, now+1, 100),
			card(2, 0, now+1, 1),
		}
		src := &fixedSource{intN: 1, float: 0}
		got, err := New(PolicyWeighted, src).SelectNext(cards, now)
		require.NoError(t, err)
		assert.Equal(t, 2, got.ID)
		assert.Equal(t, []int{2}, src.bounds)
	})

	t.Run("heavier cards are drawn more often", func(t *testing.T) {
		rng := random.New(3)
		counts := make(map[int]int)
		for range 2000 {
			got, err := New(PolicyWeighted, rng).SelectNext(due, now)
			require.NoError(t, err)
			counts[got.ID]++
		}
		assert.Greater(t, counts[1], counts[2]*10)
		assert.Zero(t, counts[3])
	})
}

func TestScheduler_SelectNext_DoesNotReorder(t *testing.T) {
	cards := []deck.Card{card(3, 0, now+1, 100), card(1, 0, now+1, 100)}
	_, err := New(PolicyUniform, random.New(1)).SelectNext(cards, now)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1}, ids(cards))
}
