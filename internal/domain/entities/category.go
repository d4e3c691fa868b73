package entities

import "strings"

var quizCategories = []string{
	"General Knowledge",
	"Science",
	"Mathematics",
	"History",
	"Geography",
	"Literature",
	"Technology",
	"Sports",
	"Entertainment",
	"Health & Medicine",
	"Business & Finance",
	"Art & Culture",
	"Language",
	"Philosophy",
	"Psychology",
	"Education",
	"Environment",
	"Food & Cooking",
	"Travel",
	"Music",
}

// Categories returns a copy of the predefined quiz categories.
func Categories() []string {
	out := make([]string, len(quizCategories))
	copy(out, quizCategories)
	return out
}

// IsValidCategory reports whether category is predefined, ignoring case.
func IsValidCategory(category string) bool {
	for _, c := range quizCategories {
		if strings.EqualFold(c, category) {
			return true
		}
	}
	return false
}

// Difficulties are the accepted quiz difficulty levels.
var Difficulties = []string{"Easy", "Medium", "Hard"}

// NormalizeDifficulty maps difficulty to its canonical spelling. It returns
// false when the value is not a known level.
func NormalizeDifficulty(difficulty string) (string, bool) {
	if strings.TrimSpace(difficulty) == "" {
		return DefaultDifficulty, true
	}
	for _, d := range Difficulties {
		if strings.EqualFold(d, strings.TrimSpace(difficulty)) {
			return d, true
		}
	}
	return "", false
}
