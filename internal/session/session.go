// Package session runs a drill as an explicit state machine:
//
//	menu --start--> playing --answer--> feedback --advance--> playing
//	menu --stats--> stats --back--> menu
//	playing, feedback --quit--> menu
//
// State is a value owned by the caller. Every transition takes the current state and returns
// the next one.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/at-ishikawa/verbdrill/internal/deck"
	"github.com/at-ishikawa/verbdrill/internal/distractor"
	"github.com/at-ishikawa/verbdrill/internal/progress"
	"github.com/at-ishikawa/verbdrill/internal/random"
	"github.com/at-ishikawa/verbdrill/internal/scheduler"
	"github.com/at-ishikawa/verbdrill/internal/srs"
	"github.com/at-ishikawa/verbdrill/internal/statistics"
)

var ErrInvalidTransition = errors.New("invalid session transition")

type Mode string

const (
	ModeMenu     Mode = "menu"
	ModePlaying  Mode = "playing"
	ModeFeedback Mode = "feedback"
	ModeStats    Mode = "stats"
)

// Feedback describes the graded answer while the session waits to advance.
type Feedback struct {
	Outcome     srs.Outcome `json:"outcome"`
	Answer      string      `json:"answer"`
	Translation string      `json:"translation"`
	ScoreDelta  int         `json:"score_delta"`
}

// State is the ephemeral state of one drill. It is never persisted.
type State struct {
	Mode     Mode
	Current  *deck.Card
	Options  []string
	Score    int
	Streak   int
	Feedback *Feedback
}

// NewState returns a session sitting at the menu.
func NewState() State {
	return State{Mode: ModeMenu}
}

// Clock returns the current time in whole seconds since the epoch.
type Clock func() int64

func SystemClock() int64 {
	return time.Now().Unix()
}

// Engine applies session transitions to a deck and persists every graded card.
type Engine struct {
	deck      *deck.Deck
	store     progress.Store
	scheduler *scheduler.Scheduler
	rng       random.Source
	now       Clock
}

func NewEngine(
	d *deck.Deck,
	store progress.Store,
	sched *scheduler.Scheduler,
	rng random.Source,
	now Clock,
) *Engine {
	if now == nil {
		now = SystemClock
	}
	return &Engine{
		deck:      d,
		store:     store,
		scheduler: sched,
		rng:       rng,
		now:       now,
	}
}

func (e *Engine) Deck() *deck.Deck {
	return e.deck
}

// Start resets score and streak and presents the first card.
// On an empty deck it returns scheduler.ErrEmptyDeck and the state stays at the menu.
func (e *Engine) Start(state State) (State, error) {
	if state.Mode != ModeMenu {
		return state, transitionError(state.Mode, "start")
	}
	next := State{Mode: ModeMenu}
	return e.present(next)
}

// Answer grades answer against the presented card, saves the new review state and moves to
// feedback. While feedback is pending further answers change nothing.
// When saving fails the graded state is still returned together with the error.
func (e *Engine) Answer(ctx context.Context, state State, answer string) (State, error) {
	switch state.Mode {
	case ModeFeedback:
		return state, nil
	case ModePlaying:
	default:
		return state, transitionError(state.Mode, "answer")
	}
	if state.Current == nil {
		return state, fmt.Errorf("no card presented: %w", ErrInvalidTransition)
	}

	card, ok := e.deck.Card(state.Current.ID)
	if !ok {
		return state, fmt.Errorf("card %d: %w", state.Current.ID, deck.ErrUnknownCard)
	}
	result := srs.Grade(card, answer, e.now())
	if err := e.deck.Update(result.Card); err != nil {
		return state, fmt.Errorf("deck.Update() > %w", err)
	}

	next := state
	next.Mode = ModeFeedback
	next.Current = &result.Card
	next.Score += result.ScoreDelta
	switch result.StreakEffect {
	case srs.StreakIncrement:
		next.Streak++
	case srs.StreakReset:
		next.Streak = 0
	}
	next.Feedback = &Feedback{
		Outcome:     result.Outcome,
		Answer:      answer,
		Translation: result.Card.Translation,
		ScoreDelta:  result.ScoreDelta,
	}
	slog.Default().Debug("graded answer",
		"card_id", result.Card.ID,
		"outcome", result.Outcome,
		"correct_count", result.Card.CorrectCount,
		"next_review_at", result.Card.NextReviewAt,
	)

	if err := e.store.Save(ctx, result.Card.ID, result.Card.Progress()); err != nil {
		return next, fmt.Errorf("store.Save(%d) > %w", result.Card.ID, err)
	}
	return next, nil
}

// Advance leaves feedback and presents the next card.
func (e *Engine) Advance(state State) (State, error) {
	if state.Mode != ModeFeedback {
		return state, transitionError(state.Mode, "advance")
	}
	next, err := e.present(state)
	if err != nil {
		return state, err
	}
	return next, nil
}

// ShowStats moves from the menu to the stats screen.
func (e *Engine) ShowStats(state State) (State, error) {
	if state.Mode != ModeMenu {
		return state, transitionError(state.Mode, "stats")
	}
	state.Mode = ModeStats
	return state, nil
}

// Back returns from the stats screen to the menu.
func (e *Engine) Back(state State) (State, error) {
	if state.Mode != ModeStats {
		return state, transitionError(state.Mode, "back")
	}
	state.Mode = ModeMenu
	return state, nil
}

// Quit abandons the current card and returns to the menu. Score and streak are kept until the
// next Start.
func (e *Engine) Quit(state State) (State, error) {
	if state.Mode != ModePlaying && state.Mode != ModeFeedback {
		return state, transitionError(state.Mode, "quit")
	}
	state.Mode = ModeMenu
	state.Current = nil
	state.Options = nil
	state.Feedback = nil
	return state, nil
}

// Statistics summarizes the deck at the current time.
func (e *Engine) Statistics() statistics.StatisticsResult {
	return statistics.CalculateStatistics(e.deck.Cards(), e.now())
}

func (e *Engine) present(state State) (State, error) {
	cards := e.deck.Cards()
	card, err := e.scheduler.SelectNext(cards, e.now())
	if err != nil {
		return state, fmt.Errorf("scheduler.SelectNext() > %w", err)
	}

	state.Mode = ModePlaying
	state.Current = &card
	state.Options = distractor.BuildOptions(card, cards, e.rng)
	state.Feedback = nil
	return state, nil
}

func transitionError(mode Mode, event string) error {
	return fmt.Errorf("%s from %s: %w", event, mode, ErrInvalidTransition)
}
