// Package model defines shared data structures.
package model

import "time"

// Config defines quiz settings.
type Config struct {
	Amount int
	Type   string
	URL    string
}

// Question is one multiple-choice question as fetched from the question bank.
// Immutable once fetched.
type Question struct {
	Category         string
	Difficulty       string
	Prompt           string
	CorrectAnswer    string
	IncorrectAnswers []string
}

// Option is a single selectable answer on a card.
type Option struct {
	Label   string
	Correct bool
}

// Card is a question prepared for display: prompt plus shuffled options.
// Exactly one option carries Correct=true.
type Card struct {
	Prompt  string
	Options []Option
}

// ScoreEntry records one submitted round. Append-only.
type ScoreEntry struct {
	Username  string
	Score     int
	Total     int
	CreatedAt time.Time
}
