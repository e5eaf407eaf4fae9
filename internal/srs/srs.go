// Package srs grades answers and moves cards along the review interval ladder.
package srs

import (
	"math"

	"github.com/at-ishikawa/verbdrill/internal/deck"
	"github.com/at-ishikawa/verbdrill/internal/progress"
)

const (
	CorrectScore = 10

	minute = 60
	day    = 86400

	// maxDoublings is the largest shift of day that still fits in an int64.
	maxDoublings = 46
)

// Interval returns the seconds until the next review after correctCount consecutive correct
// answers: 1 minute, 10 minutes, 1 day, then doubling every further answer until the interval
// stops growing at day<<maxDoublings.
func Interval(correctCount int) int64 {
	switch {
	case correctCount <= 1:
		return minute
	case correctCount == 2:
		return 10 * minute
	default:
		return day << min(correctCount-3, maxDoublings)
	}
}

// reviewAt adds interval to now, saturating at math.MaxInt64.
func reviewAt(now, interval int64) int64 {
	if interval > math.MaxInt64-now {
		return math.MaxInt64
	}
	return now + interval
}

type Outcome string

const (
	OutcomeCorrect   Outcome = "correct"
	OutcomeIncorrect Outcome = "incorrect"
)

// StreakEffect says what an answer does to the session streak.
type StreakEffect string

const (
	StreakIncrement StreakEffect = "increment"
	StreakReset     StreakEffect = "reset"
)

// Result is the outcome of grading one answer.
type Result struct {
	Card         deck.Card
	Outcome      Outcome
	ScoreDelta   int
	StreakEffect StreakEffect
}

// Grade compares answer with the translation of card, exactly and case sensitively, and
// returns the updated card. card itself is not modified.
func Grade(card deck.Card, answer string, now int64) Result {
	reviewedAt := now
	card.LastReviewedAt = &reviewedAt

	if answer != card.Translation {
		card.CorrectCount = 0
		card.NextReviewAt = now
		card.Weight = progress.MaxWeight
		return Result{
			Card:         card,
			Outcome:      OutcomeIncorrect,
			ScoreDelta:   0,
			StreakEffect: StreakReset,
		}
	}

	card.CorrectCount = min(card.CorrectCount+1, progress.MaxCorrectCount)
	card.NextReviewAt = reviewAt(now, Interval(card.CorrectCount))
	card.Weight = max(progress.MinWeight, card.Weight*0.5)
	return Result{
		Card:         card,
		Outcome:      OutcomeCorrect,
		ScoreDelta:   CorrectScore,
		StreakEffect: StreakIncrement,
	}
}
