// Package deck holds the in-memory card collection a drill session works on.
package deck

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/at-ishikawa/verbdrill/internal/progress"
	"github.com/at-ishikawa/verbdrill/internal/vocabulary"
)

var ErrUnknownCard = errors.New("unknown card")

// Card is a vocabulary entry together with its review state.
type Card struct {
	ID              int
	Verb            string
	Translation     string
	Category        string
	ExampleSentence string

	Weight         float64
	CorrectCount   int
	NextReviewAt   int64
	LastReviewedAt *int64
}

// Progress returns the mutable part of the card in its persisted form.
func (c Card) Progress() progress.Record {
	return progress.Record{
		Weight:         c.Weight,
		CorrectCount:   c.CorrectCount,
		NextReviewAt:   c.NextReviewAt,
		LastReviewedAt: c.LastReviewedAt,
	}
}

func (c Card) withProgress(record progress.Record) Card {
	c.Weight = record.Weight
	c.CorrectCount = record.CorrectCount
	c.NextReviewAt = record.NextReviewAt
	c.LastReviewedAt = record.LastReviewedAt
	return c
}

// Deck keeps cards in vocabulary order.
type Deck struct {
	cards []Card
	index map[int]int
}

// Hydrate builds a deck from the vocabulary, overlaying the persisted record of each id.
// Cards without a record, or with an invalid one, start from progress.NewRecord.
// Entries repeating an earlier id are skipped.
func Hydrate(entries []vocabulary.Entry, blob progress.Blob) *Deck {
	d := &Deck{
		cards: make([]Card, 0, len(entries)),
		index: make(map[int]int, len(entries)),
	}
	for _, entry := range entries {
		if _, ok := d.index[entry.ID]; ok {
			slog.Default().Warn("skip vocabulary entry with duplicate id", "id", entry.ID, "verb", entry.Verb)
			continue
		}

		record, ok := blob[entry.ID]
		if ok && !record.Valid() {
			slog.Default().Warn("reset out of range progress", "id", entry.ID, "record", record)
			ok = false
		}
		if !ok {
			record = progress.NewRecord()
		}

		card := Card{
			ID:              entry.ID,
			Verb:            entry.Verb,
			Translation:     entry.Translation,
			Category:        entry.Category,
			ExampleSentence: entry.ExampleSentence,
		}
		d.index[entry.ID] = len(d.cards)
		d.cards = append(d.cards, card.withProgress(record))
	}
	return d
}

// Cards returns a copy of all cards in vocabulary order.
func (d *Deck) Cards() []Card {
	return slices.Clone(d.cards)
}

func (d *Deck) Len() int {
	return len(d.cards)
}

// Card returns the card with id.
func (d *Deck) Card(id int) (Card, bool) {
	i, ok := d.index[id]
	if !ok {
		return Card{}, false
	}
	return d.cards[i], true
}

// Update replaces the review state of the card with the same id. Static content is kept.
func (d *Deck) Update(card Card) error {
	i, ok := d.index[card.ID]
	if !ok {
		return fmt.Errorf("card %d: %w", card.ID, ErrUnknownCard)
	}
	d.cards[i] = d.cards[i].withProgress(card.Progress())
	return nil
}

// Add appends a card for entry with the state of a never answered card.
func (d *Deck) Add(entry vocabulary.Entry) (Card, error) {
	if _, ok := d.index[entry.ID]; ok {
		return Card{}, fmt.Errorf("card %d already exists", entry.ID)
	}
	card := Card{
		ID:              entry.ID,
		Verb:            entry.Verb,
		Translation:     entry.Translation,
		Category:        entry.Category,
		ExampleSentence: entry.ExampleSentence,
	}.withProgress(progress.NewRecord())
	d.index[entry.ID] = len(d.cards)
	d.cards = append(d.cards, card)
	return card, nil
}
