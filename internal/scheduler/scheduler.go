// Package scheduler decides which card a drill shows next.
package scheduler

import (
	"errors"
	"fmt"

	"github.com/at-ishikawa/verbdrill/internal/deck"
	"github.com/at-ishikawa/verbdrill/internal/random"
)

// NewCardWindow caps how far into the vocabulary order unseen cards are drawn from.
const NewCardWindow = 10

var ErrEmptyDeck = errors.New("no card available")

type Policy string

const (
	// PolicyUniform draws uniformly inside each tier and never looks at weights.
	PolicyUniform Policy = "uniform"
	// PolicyWeighted draws due and fallback cards in proportion to their weight.
	PolicyWeighted Policy = "weighted"
)

func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyUniform, PolicyWeighted:
		return Policy(s), nil
	case "":
		return PolicyUniform, nil
	}
	return "", fmt.Errorf("unknown selection policy %q", s)
}

type Scheduler struct {
	policy Policy
	rng    random.Source
}

func New(policy Policy, rng random.Source) *Scheduler {
	if policy == "" {
		policy = PolicyUniform
	}
	return &Scheduler{policy: policy, rng: rng}
}

// SelectNext picks the next card at time now:
//  1. a card that is due, when any is
//  2. otherwise one of the first NewCardWindow cards never answered correctly
//  3. otherwise any card
//
// It returns ErrEmptyDeck only when cards is empty.
func (s *Scheduler) SelectNext(cards []deck.Card, now int64) (deck.Card, error) {
	if len(cards) == 0 {
		return deck.Card{}, ErrEmptyDeck
	}

	var due, unseen []deck.Card
	for _, card := range cards {
		if card.NextReviewAt <= now {
			due = append(due, card)
		}
		if card.CorrectCount == 0 {
			unseen = append(unseen, card)
		}
	}

	if len(due) > 0 {
		return s.pick(due), nil
	}
	if len(unseen) > 0 {
		window := unseen[:min(NewCardWindow, len(unseen))]
		return window[s.rng.IntN(len(window))], nil
	}
	return s.pick(cards), nil
}

func (s *Scheduler) pick(cards []deck.Card) deck.Card {
	if s.policy != PolicyWeighted {
		return cards[s.rng.IntN(len(cards))]
	}

	var total float64
	for _, card := range cards {
		total += card.Weight
	}
	if total <= 0 {
		return cards[s.rng.IntN(len(cards))]
	}

	target := s.rng.Float64() * total
	for _, card := range cards {
		target -= card.Weight
		if target < 0 {
			return card
		}
	}
	return cards[len(cards)-1]
}
