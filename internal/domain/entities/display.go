package entities

import (
	"fmt"
	"strings"
)

// gradeBand maps a lower percentage bound to a display value.
type gradeBand struct {
	min   float64
	value string
}

// Bands are ordered from the highest bound down; the first match wins.
var (
	gradeBands = []gradeBand{
		{90, "A+"},
		{80, "A"},
		{70, "B"},
		{60, "C"},
		{50, "D"},
	}
	gradeColorBands = []gradeBand{
		{80, "text-success"},
		{60, "text-warning"},
	}
)

const (
	lowestGrade      = "F"
	lowestGradeColor = "text-danger"
)

var difficultyBadges = map[string]string{
	"easy":   "badge-success",
	"medium": "badge-warning",
	"hard":   "badge-danger",
}

const defaultDifficultyBadge = "badge-secondary"

var categoryIcons = map[string]string{
	"science":    "fas fa-flask",
	"history":    "fas fa-landmark",
	"literature": "fas fa-book",
	"technology": "fas fa-laptop-code",
	"sports":     "fas fa-football-ball",
	"general":    "fas fa-question-circle",
}

const defaultCategoryIcon = "fas fa-puzzle-piece"

func lookupBand(bands []gradeBand, percentage float64, fallback string) string {
	for _, b := range bands {
		if percentage >= b.min {
			return b.value
		}
	}
	return fallback
}

// Grade returns the letter grade for a percentage.
func Grade(percentage float64) string {
	return lookupBand(gradeBands, percentage, lowestGrade)
}

// GradeColor returns the CSS class used to render a grade.
func GradeColor(percentage float64) string {
	return lookupBand(gradeColorBands, percentage, lowestGradeColor)
}

// DifficultyBadge returns the CSS badge class of a difficulty level.
func DifficultyBadge(difficulty string) string {
	if badge, ok := difficultyBadges[strings.ToLower(difficulty)]; ok {
		return badge
	}
	return defaultDifficultyBadge
}

// CategoryIcon returns the icon class of a quiz category.
func CategoryIcon(category string) string {
	if icon, ok := categoryIcons[strings.ToLower(category)]; ok {
		return icon
	}
	return defaultCategoryIcon
}

// FormatTimeSpent renders seconds as m:ss.
func FormatTimeSpent(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// FormatTimeLimit renders a time limit in minutes.
func FormatTimeLimit(minutes int) string {
	return fmt.Sprintf("%d min", minutes)
}
