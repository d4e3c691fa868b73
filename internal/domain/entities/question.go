package entities

import "strings"

// OptionLetters are the fixed option slots of a question, in order.
var OptionLetters = []string{"A", "B", "C", "D"}

// Question is a single multiple-choice question with four option slots.
type Question struct {
	ID            int64
	QuizID        int64
	Text          string
	OptionA       string
	OptionB       string
	OptionC       string
	OptionD       string
	CorrectOption string // "A".."D"
	IsDeleted     bool
}

// NewQuestion fills the option slots from options in order. Extra options are
// ignored, missing slots stay empty.
func NewQuestion(quizID int64, text string, options []string, correct string) *Question {
	q := &Question{
		QuizID:        quizID,
		Text:          text,
		CorrectOption: strings.ToUpper(strings.TrimSpace(correct)),
	}

	slots := []*string{&q.OptionA, &q.OptionB, &q.OptionC, &q.OptionD}
	for i, opt := range options {
		if i >= len(slots) {
			break
		}
		*slots[i] = opt
	}

	return q
}

// Options returns the non-empty option slots in A..D order.
func (q *Question) Options() []string {
	options := make([]string, 0, 4)
	for _, opt := range []string{q.OptionA, q.OptionB, q.OptionC, q.OptionD} {
		if opt != "" {
			options = append(options, opt)
		}
	}
	return options
}
