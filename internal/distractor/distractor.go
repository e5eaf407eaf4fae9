// Package distractor builds the multiple choice options shown for a card.
package distractor

import (
	"github.com/at-ishikawa/verbdrill/internal/deck"
	"github.com/at-ishikawa/verbdrill/internal/random"
)

// OptionCount is the number of options when the deck has enough distinct translations.
const OptionCount = 4

// BuildOptions returns the correct translation mixed with up to OptionCount-1 other
// translations of the deck, in random order. Option texts never repeat, so decks with few
// distinct translations get fewer options.
func BuildOptions(correct deck.Card, cards []deck.Card, rng random.Source) []string {
	seen := map[string]struct{}{correct.Translation: {}}
	var candidates []string
	for _, card := range cards {
		if card.ID == correct.ID {
			continue
		}
		if _, ok := seen[card.Translation]; ok {
			continue
		}
		seen[card.Translation] = struct{}{}
		candidates = append(candidates, card.Translation)
	}

	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	options := append(candidates[:min(OptionCount-1, len(candidates))], correct.Translation)
	rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options
}
