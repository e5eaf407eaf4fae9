// Package progress provides the per-card review state and the durable stores that keep it.
package progress

import "context"

const (
	MaxWeight = 100.0
	MinWeight = 1.0

	// MaxCorrectCount bounds the consecutive correct answers a record can hold.
	MaxCorrectCount = 1000
)

// Record is the mutable review state of a single card.
type Record struct {
	Weight         float64 `yaml:"weight" json:"weight" db:"weight"`
	CorrectCount   int     `yaml:"correct_count" json:"correct_count" db:"correct_count"`
	NextReviewAt   int64   `yaml:"next_review_at" json:"next_review_at" db:"next_review_at"`
	LastReviewedAt *int64  `yaml:"last_reviewed_at,omitempty" json:"last_reviewed_at,omitempty" db:"last_reviewed_at"`
}

// NewRecord returns the state of a card that has never been answered.
func NewRecord() Record {
	return Record{
		Weight:       MaxWeight,
		CorrectCount: 0,
		NextReviewAt: 0,
	}
}

// Valid reports whether the record satisfies the weight and count bounds. NaN weights are
// invalid.
func (r Record) Valid() bool {
	if !(r.Weight >= MinWeight && r.Weight <= MaxWeight) {
		return false
	}
	if r.CorrectCount < 0 || r.CorrectCount > MaxCorrectCount || r.NextReviewAt < 0 {
		return false
	}
	return true
}

// Blob is the full persisted progress keyed by card id.
type Blob map[int]Record

//go:generate mockgen -source=record.go -destination=../mocks/progress/mock_store.go -package=mock_progress Store

// Store is a durable mapping from card id to Record.
// Load of an empty or absent store returns an empty Blob.
// Save replaces the entry for one id and leaves every other entry untouched.
type Store interface {
	Load(ctx context.Context) (Blob, error)
	Save(ctx context.Context, cardID int, record Record) error
}

// rawRecord mirrors Record with every field optional, so entries missing a field can be told
// apart from entries holding a zero value.
type rawRecord struct {
	Weight         *float64 `yaml:"weight" json:"weight"`
	CorrectCount   *int     `yaml:"correct_count" json:"correct_count"`
	NextReviewAt   *int64   `yaml:"next_review_at" json:"next_review_at"`
	LastReviewedAt *int64   `yaml:"last_reviewed_at" json:"last_reviewed_at"`
}

func (raw rawRecord) toRecord() (Record, bool) {
	if raw.Weight == nil || raw.CorrectCount == nil || raw.NextReviewAt == nil {
		return Record{}, false
	}
	record := Record{
		Weight:         *raw.Weight,
		CorrectCount:   *raw.CorrectCount,
		NextReviewAt:   *raw.NextReviewAt,
		LastReviewedAt: raw.LastReviewedAt,
	}
	if !record.Valid() {
		return Record{}, false
	}
	return record, true
}
