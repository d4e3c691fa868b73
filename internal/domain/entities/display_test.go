package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrade(t *testing.T) {
	tests := []struct {
		percentage float64
		grade      string
		color      string
	}{
		{100, "A+", "text-success"},
		{90, "A+", "text-success"},
		{89.99, "A", "text-success"},
		{80, "A", "text-success"},
		{79.5, "B", "text-warning"},
		{60, "C", "text-warning"},
		{59.99, "D", "text-danger"},
		{50, "D", "text-danger"},
		{49.9, "F", "text-danger"},
		{0, "F", "text-danger"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.grade, Grade(tt.percentage), "grade for %v", tt.percentage)
		assert.Equal(t, tt.color, GradeColor(tt.percentage), "color for %v", tt.percentage)
	}
}

func TestDifficultyBadge(t *testing.T) {
	assert.Equal(t, "badge-success", DifficultyBadge("Easy"))
	assert.Equal(t, "badge-warning", DifficultyBadge("MEDIUM"))
	assert.Equal(t, "badge-danger", DifficultyBadge("hard"))
	assert.Equal(t, "badge-secondary", DifficultyBadge("Insane"))
}

func TestCategoryIcon(t *testing.T) {
	assert.Equal(t, "fas fa-flask", CategoryIcon("Science"))
	assert.Equal(t, "fas fa-question-circle", CategoryIcon("general"))
	assert.Equal(t, "fas fa-puzzle-piece", CategoryIcon("Music"))
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "0:00", FormatTimeSpent(0))
	assert.Equal(t, "1:05", FormatTimeSpent(65))
	assert.Equal(t, "61:01", FormatTimeSpent(3661))
	assert.Equal(t, "0:00", FormatTimeSpent(-4))
	assert.Equal(t, "30 min", FormatTimeLimit(30))
}

func TestCategories(t *testing.T) {
	assert.True(t, IsValidCategory("science"))
	assert.True(t, IsValidCategory("Health & Medicine"))
	assert.False(t, IsValidCategory("General"))

	d, ok := NormalizeDifficulty("")
	assert.True(t, ok)
	assert.Equal(t, DefaultDifficulty, d)

	d, ok = NormalizeDifficulty(" hard ")
	assert.True(t, ok)
	assert.Equal(t, "Hard", d)

	_, ok = NormalizeDifficulty("brutal")
	assert.False(t, ok)
}
