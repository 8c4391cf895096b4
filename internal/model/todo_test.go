package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriority(t *testing.T) {
	p, err := ParsePriority(" High ")
	require.NoError(t, err)
	assert.Equal(t, PriorityHigh, p)

	_, err = ParsePriority("urgent")
	assert.Error(t, err)

	assert.Equal(t, PriorityMedium, Priority("").OrDefault())
	assert.Equal(t, PriorityLow, PriorityLow.OrDefault())
}

func TestParseFilter(t *testing.T) {
	tests := map[string]Filter{
		"":          FilterAll,
		"all":       FilterAll,
		"ACTIVE":    FilterActive,
		"completed": FilterCompleted,
	}
	for in, want := range tests {
		got, err := ParseFilter(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFilter("done")
	assert.Error(t, err)
}

func TestFilterMatch(t *testing.T) {
	open := Todo{Title: "open"}
	done := Todo{Title: "done", Completed: true}

	assert.True(t, FilterAll.Match(open))
	assert.True(t, FilterAll.Match(done))
	assert.True(t, FilterActive.Match(open))
	assert.False(t, FilterActive.Match(done))
	assert.False(t, FilterCompleted.Match(open))
	assert.True(t, FilterCompleted.Match(done))
}

func TestTodoPatchApply(t *testing.T) {
	due := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	base := Todo{
		ID:          1,
		Title:       "old",
		Description: OptionalString("desc"),
		Priority:    PriorityLow,
		DueDate:     &due,
	}

	title := "  new  "
	got := TodoPatch{Title: &title}.Apply(base)
	assert.Equal(t, "new", got.Title)
	assert.Equal(t, "desc", got.DescriptionText())
	assert.Equal(t, PriorityLow, got.Priority)
	assert.Equal(t, &due, got.DueDate)

	empty := ""
	got = TodoPatch{Description: &empty, ClearDueDate: true}.Apply(base)
	assert.Nil(t, got.Description)
	assert.Nil(t, got.DueDate)

	later := due.AddDate(0, 1, 0)
	got = TodoPatch{DueDate: &later}.Apply(base)
	require.NotNil(t, got.DueDate)
	assert.Equal(t, later, *got.DueDate)
	assert.Equal(t, due, *base.DueDate)
}

func TestParseDueDate(t *testing.T) {
	got, err := ParseDueDate("2024-02-29")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), *got)
	assert.Equal(t, "2024-02-29", FormatDueDate(got))

	got, err = ParseDueDate("   ")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, "", FormatDueDate(nil))

	_, err = ParseDueDate("02/29/2024")
	assert.Error(t, err)
}

func TestIsOverdue(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)
	yesterday := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	today := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	assert.True(t, Todo{DueDate: &yesterday}.IsOverdue(now))
	assert.False(t, Todo{DueDate: &today}.IsOverdue(now))
	assert.False(t, Todo{DueDate: &yesterday, Completed: true}.IsOverdue(now))
	assert.False(t, Todo{}.IsOverdue(now))
}

func TestTheme(t *testing.T) {
	th, err := ParseTheme("Dark")
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, th)
	assert.True(t, th.IsDark())
	assert.Equal(t, ThemeLight, th.Toggle())
	assert.Equal(t, ThemeDark, th.Toggle().Toggle())

	_, err = ParseTheme("solarized")
	assert.Error(t, err)
}
