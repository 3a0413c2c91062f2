// Package deck assembles fetched questions into answerable cards.
package deck

import (
	"math/rand"
	"time"

	"github.com/okoshkin/trivtui/internal/model"
)

// Builder turns question batches into cards with shuffled options.
type Builder struct {
	rnd *rand.Rand
}

// New returns a Builder seeded with the current time.
func New() *Builder {
	return &Builder{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Build produces one card per question. Each card holds the correct answer and
// the incorrect ones in an independently shuffled order; exactly one option is
// tagged correct.
func (b *Builder) Build(questions []model.Question) []model.Card {
	cards := make([]model.Card, 0, len(questions))
	for _, q := range questions {
		options := make([]model.Option, 0, len(q.IncorrectAnswers)+1)
		options = append(options, model.Option{Label: q.CorrectAnswer, Correct: true})
		for _, answer := range q.IncorrectAnswers {
			options = append(options, model.Option{Label: answer})
		}
		b.rnd.Shuffle(len(options), func(i, j int) {
			options[i], options[j] = options[j], options[i]
		})
		cards = append(cards, model.Card{Prompt: q.Prompt, Options: options})
	}
	return cards
}
