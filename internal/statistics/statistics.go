// Package statistics summarizes how far a deck has been learned.
package statistics

import (
	"sort"

	"github.com/at-ishikawa/verbdrill/internal/deck"
)

// LearnedThreshold is the number of consecutive correct answers after which a card counts as
// learned.
const LearnedThreshold = 5

// Summary partitions a set of cards by correct count.
type Summary struct {
	Total      int `json:"total"`
	Learned    int `json:"learned"`     // correct count >= LearnedThreshold
	InProgress int `json:"in_progress"` // 1 .. LearnedThreshold-1
	New        int `json:"new"`         // never answered correctly since the last miss
	Due        int `json:"due"`
}

// MasteryPercentage is the share of learned cards, 0 for an empty deck.
func (s Summary) MasteryPercentage() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Learned) / float64(s.Total) * 100
}

// CategoryStatistics is the Summary of the cards of one category.
type CategoryStatistics struct {
	Category string `json:"category"`
	Summary
}

// StatisticsResult holds the deck wide summary and a breakdown per category.
type StatisticsResult struct {
	Summary    Summary              `json:"summary"`
	Categories []CategoryStatistics `json:"categories"`
}

// Summarize counts cards by bucket. Due counts cards whose next review is at or before now.
func Summarize(cards []deck.Card, now int64) Summary {
	var summary Summary
	for _, card := range cards {
		summary.add(card, now)
	}
	return summary
}

// CalculateStatistics summarizes cards overall and per category, categories sorted by name.
func CalculateStatistics(cards []deck.Card, now int64) StatisticsResult {
	byCategory := make(map[string]*Summary)
	var overall Summary
	for _, card := range cards {
		overall.add(card, now)
		if byCategory[card.Category] == nil {
			byCategory[card.Category] = &Summary{}
		}
		byCategory[card.Category].add(card, now)
	}

	categories := make([]CategoryStatistics, 0, len(byCategory))
	for category, summary := range byCategory {
		categories = append(categories, CategoryStatistics{Category: category, Summary: *summary})
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Category < categories[j].Category
	})

	return StatisticsResult{
		Summary:    overall,
		Categories: categories,
	}
}

func (s *Summary) add(card deck.Card, now int64) {
	s.Total++
	switch {
	case card.CorrectCount >= LearnedThreshold:
		s.Learned++
	case card.CorrectCount > 0:
		s.InProgress++
	default:
		s.New++
	}
	if card.NextReviewAt <= now {
		s.Due++
	}
}
