package store

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/todo/internal/model"
)

func TestEncodeTodosWireFormat(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 678_000_000, time.UTC)
	due := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	raw, err := encodeTodos([]model.Todo{
		{
			ID:        1700000000000,
			Title:     "Buy milk",
			Priority:  model.PriorityHigh,
			CreatedAt: created,
			UpdatedAt: created,
			DueDate:   &due,
		},
		{
			ID:        1,
			Title:     "no due",
			CreatedAt: created,
			UpdatedAt: created,
		},
	})
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &got))
	require.Len(t, got, 2)

	assert.Equal(t, map[string]any{
		"id":          float64(1700000000000),
		"title":       "Buy milk",
		"description": "",
		"completed":   false,
		"priority":    "high",
		"createdAt":   "2024-01-02T03:04:05.678Z",
		"updatedAt":   "2024-01-02T03:04:05.678Z",
		"dueDate":     "2024-01-05T00:00:00.000Z",
	}, got[0])
	assert.NotContains(t, got[1], "dueDate")
	assert.Equal(t, "medium", got[1]["priority"])
}

func TestDecodeTodosLegacyAndLenient(t *testing.T) {
	raw := `[
		{"id":1,"title":"legacy","completed":true,
		 "createdAt":"2023-05-01T10:00:00Z","updatedAt":"2023-05-01T10:00:00Z"},
		{"id":2,"title":"odd","description":"","priority":"urgent",
		 "createdAt":"2023-05-01T10:00:00.5Z","updatedAt":"2023-05-01T10:00:00.5Z",
		 "dueDate":"2023-06-01"},
		{"id":3,"title":"bad due","description":"notes","priority":"low",
		 "createdAt":"2023-05-01T10:00:00Z","updatedAt":"2023-05-01T10:00:00Z",
		 "dueDate":"someday"}
	]`

	todos, err := decodeTodos(raw)
	require.NoError(t, err)
	require.Len(t, todos, 3)

	assert.Equal(t, model.PriorityMedium, todos[0].Priority)
	assert.True(t, todos[0].Completed)
	assert.Nil(t, todos[0].Description)

	assert.Equal(t, model.PriorityMedium, todos[1].Priority)
	assert.Nil(t, todos[1].Description)
	require.NotNil(t, todos[1].DueDate)
	assert.Equal(t, "2023-06-01", model.FormatDueDate(todos[1].DueDate))
	assert.Equal(t, 500*time.Millisecond, todos[1].CreatedAt.Sub(todos[0].CreatedAt))

	assert.Equal(t, "notes", todos[2].DescriptionText())
	assert.Nil(t, todos[2].DueDate)
}

func TestDecodeTodosRejectsMalformed(t *testing.T) {
	for _, raw := range []string{
		`not json`,
		`{"id":1}`,
		`[{"id":1,"title":"x","createdAt":"yesterday","updatedAt":""}]`,
		`[null]`,
		`[{"id":1,"title":"ok","createdAt":"","updatedAt":""},null]`,
		`[{"id":1,"title":"  ","createdAt":"","updatedAt":""}]`,
		`[{"id":1,"createdAt":"","updatedAt":""}]`,
	} {
		_, err := decodeTodos(raw)
		assert.Error(t, err, raw)
	}
}

func TestCodecRoundTrip(t *testing.T) {
	ts := time.Date(2024, 2, 29, 23, 59, 59, 999_000_000, time.UTC)
	due := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	in := []model.Todo{
		{
			ID:          3,
			Title:       "with everything",
			Description: model.OptionalString("line one\nline two"),
			Completed:   true,
			Priority:    model.PriorityLow,
			CreatedAt:   ts,
			UpdatedAt:   ts.Add(time.Hour),
			DueDate:     &due,
		},
		{ID: 2, Title: "bare", Priority: model.PriorityMedium, CreatedAt: ts, UpdatedAt: ts},
	}

	raw, err := encodeTodos(in)
	require.NoError(t, err)
	out, err := decodeTodos(raw)
	require.NoError(t, err)

	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	again, err := encodeTodos(out)
	require.NoError(t, err)
	assert.Equal(t, raw, again)
}
