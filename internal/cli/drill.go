package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/at-ishikawa/verbdrill/internal/scheduler"
	"github.com/at-ishikawa/verbdrill/internal/session"
	"github.com/at-ishikawa/verbdrill/internal/srs"
	"github.com/at-ishikawa/verbdrill/internal/vocabulary"
)

const (
	menuStart = "1"
	menuStats = "2"
	menuAdd   = "3"
	menuQuit  = "4"

	backChoice = "0"
)

// DrillCLI is the interactive terminal front end of a drill session.
type DrillCLI struct {
	*InteractiveCLI
	engine         *session.Engine
	state          session.State
	vocabularyPath string
	entries        []vocabulary.Entry
}

// NewDrillCLI creates a drill CLI. New words are appended to entries and saved to
// vocabularyPath.
func NewDrillCLI(
	engine *session.Engine,
	vocabularyPath string,
	entries []vocabulary.Entry,
	stdin io.Reader,
	stdout io.Writer,
) *DrillCLI {
	return &DrillCLI{
		InteractiveCLI: newInteractiveCLI(stdin, stdout),
		engine:         engine,
		state:          session.NewState(),
		vocabularyPath: vocabularyPath,
		entries:        entries,
	}
}

// Session handles the screen of the current mode.
func (d *DrillCLI) Session(ctx context.Context) error {
	switch d.state.Mode {
	case session.ModeMenu:
		return d.menu()
	case session.ModePlaying:
		return d.play(ctx)
	case session.ModeFeedback:
		return d.feedback()
	case session.ModeStats:
		return d.stats()
	}
	return fmt.Errorf("unknown mode %q", d.state.Mode)
}

func (d *DrillCLI) menu() error {
	d.println()
	_, _ = d.bold.Fprintln(d.stdoutWriter, "=== Verb Drill ===")
	d.println("1) Start")
	d.println("2) Statistics")
	d.println("3) Add word")
	d.println("4) Quit")
	choice, err := d.prompt("Select: ")
	if err != nil {
		return err
	}

	switch choice {
	case menuStart:
		next, err := d.engine.Start(d.state)
		if errors.Is(err, scheduler.ErrEmptyDeck) {
			d.println("Nothing to study. Add some words first.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("engine.Start() > %w", err)
		}
		d.state = next
	case menuStats:
		next, err := d.engine.ShowStats(d.state)
		if err != nil {
			return fmt.Errorf("engine.ShowStats() > %w", err)
		}
		d.state = next
	case menuAdd:
		return d.addWord()
	case menuQuit:
		d.println("Bye!")
		return errEnd
	default:
		d.printf("Unknown choice %q\n", choice)
	}
	return nil
}

func (d *DrillCLI) play(ctx context.Context) error {
	card := d.state.Current
	d.println()
	d.printf("[%s] ", card.Category)
	_, _ = d.bold.Fprintln(d.stdoutWriter, card.Verb)
	for i, option := range d.state.Options {
		d.printf("  %d) %s\n", i+1, option)
	}
	d.printf("  %s) Back to menu\n", backChoice)

	choice, err := d.prompt("Answer: ")
	if err != nil {
		return err
	}
	if choice == backChoice {
		d.state, err = d.engine.Quit(d.state)
		return err
	}
	index, err := strconv.Atoi(choice)
	if err != nil || index < 1 || index > len(d.state.Options) {
		d.printf("Please enter a number between %s and %d\n", backChoice, len(d.state.Options))
		return nil
	}

	next, err := d.engine.Answer(ctx, d.state, d.state.Options[index-1])
	if err != nil {
		if next.Mode != session.ModeFeedback {
			return fmt.Errorf("engine.Answer() > %w", err)
		}
		slog.Default().Warn("failed to save progress", "card_id", card.ID, "error", err)
	}
	d.state = next
	d.printFeedback()
	return nil
}

func (d *DrillCLI) printFeedback() {
	card := d.state.Current
	feedback := d.state.Feedback
	if feedback.Outcome == srs.OutcomeCorrect {
		d.printf("✅ ")
		_, _ = d.green.Fprintf(d.stdoutWriter, "It's correct. %s means %q (+%d)\n",
			d.bold.Sprint(card.Verb), feedback.Translation, feedback.ScoreDelta)
	} else {
		d.printf("❌ ")
		_, _ = d.red.Fprintf(d.stdoutWriter, "It's wrong. %s means %q\n",
			d.bold.Sprint(card.Verb), feedback.Translation)
	}
	if card.ExampleSentence != "" {
		d.printf("   Example: %s\n", d.italic.Sprint(card.ExampleSentence))
	}
	d.printf("Score: %d  Streak: %d\n", d.state.Score, d.state.Streak)
}

func (d *DrillCLI) feedback() error {
	choice, err := d.prompt(fmt.Sprintf("Press Enter to continue (%s to go back): ", backChoice))
	if err != nil {
		return err
	}
	if choice == backChoice {
		d.state, err = d.engine.Quit(d.state)
		return err
	}

	next, err := d.engine.Advance(d.state)
	if err != nil {
		return fmt.Errorf("engine.Advance() > %w", err)
	}
	d.state = next
	return nil
}

func (d *DrillCLI) stats() error {
	d.println()
	WriteStatisticsReport(d.stdoutWriter, d.engine.Statistics())
	if _, err := d.prompt("Press Enter to go back: "); err != nil {
		return err
	}

	next, err := d.engine.Back(d.state)
	if err != nil {
		return fmt.Errorf("engine.Back() > %w", err)
	}
	d.state = next
	return nil
}

func (d *DrillCLI) addWord() error {
	verb, err := d.prompt("Verb: ")
	if err != nil {
		return err
	}
	translation, err := d.prompt("Translation: ")
	if err != nil {
		return err
	}
	category, err := d.prompt(fmt.Sprintf("Category [%s]: ", vocabulary.DefaultCategory))
	if err != nil {
		return err
	}
	exampleSentence, err := d.prompt("Example sentence: ")
	if err != nil {
		return err
	}

	entries, entry, err := vocabulary.AddWord(d.entries, verb, translation, category, exampleSentence)
	if errors.Is(err, vocabulary.ErrDuplicateVerb) || errors.Is(err, vocabulary.ErrEmptyField) {
		_, _ = d.red.Fprintf(d.stdoutWriter, "Cannot add the word: %v\n", err)
		return nil
	}
	if err != nil {
		return fmt.Errorf("vocabulary.AddWord() > %w", err)
	}
	if err := vocabulary.Save(d.vocabularyPath, entries); err != nil {
		return fmt.Errorf("vocabulary.Save() > %w", err)
	}
	if _, err := d.engine.Deck().Add(entry); err != nil {
		return fmt.Errorf("deck.Add() > %w", err)
	}
	d.entries = entries
	_, _ = d.green.Fprintf(d.stdoutWriter, "Added %s (#%d)\n", entry.Verb, entry.ID)
	return nil
}
