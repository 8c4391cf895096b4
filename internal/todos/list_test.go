package todos_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/todo/internal/model"
	"github.com/nhle/todo/internal/todos"
	"github.com/nhle/todo/tests/testutil"
)

func newMountedList(t *testing.T) (*todos.List, *testutil.Clock) {
	t.Helper()
	repo, clock := testutil.NewTestRepository(t)
	l := todos.NewList(repo, model.ThemeLight)
	require.NoError(t, l.Mount(context.Background()))
	return l, clock
}

func TestList_MountEmpty(t *testing.T) {
	l, _ := newMountedList(t)

	assert.Empty(t, l.Todos())
	assert.Equal(t, model.ThemeLight, l.Theme())
	assert.Equal(t, model.PriorityMedium, l.Draft.Priority)
}

func TestList_AddPrependsNewest(t *testing.T) {
	ctx := context.Background()
	l, clock := newMountedList(t)

	added, err := l.Add(ctx, "first", model.PriorityLow, nil)
	require.NoError(t, err)
	require.True(t, added)
	clock.Advance(time.Second)
	_, err = l.Add(ctx, "  second  ", model.PriorityHigh, nil)
	require.NoError(t, err)

	got := l.Todos()
	require.Len(t, got, 2)
	assert.Equal(t, "second", got[0].Title)
	assert.Equal(t, model.PriorityHigh, got[0].Priority)
	assert.Equal(t, "first", got[1].Title)
	assert.False(t, got[0].Completed)
	assert.Equal(t, got[0].CreatedAt, got[0].UpdatedAt)
}

func TestList_AddBlankIsNoop(t *testing.T) {
	l, _ := newMountedList(t)

	added, err := l.Add(context.Background(), "   ", model.PriorityHigh, nil)
	require.NoError(t, err)
	assert.False(t, added)
	assert.Empty(t, l.Todos())
}

func TestList_SubmitResetsDraft(t *testing.T) {
	ctx := context.Background()
	l, _ := newMountedList(t)
	due, err := model.ParseDueDate("2024-04-01")
	require.NoError(t, err)

	l.OpenForm()
	l.Draft.Input = "Buy milk"
	l.Draft.Priority = model.PriorityHigh
	l.Draft.DueDate = due

	added, err := l.Submit(ctx)
	require.NoError(t, err)
	require.True(t, added)

	assert.Equal(t, todos.Draft{Priority: model.PriorityMedium}, l.Draft)
	got := l.Todos()
	require.Len(t, got, 1)
	assert.Equal(t, "2024-04-01", model.FormatDueDate(got[0].DueDate))
	assert.Equal(t, model.PriorityHigh, got[0].Priority)
}

func TestList_SubmitBlankKeepsDraft(t *testing.T) {
	l, _ := newMountedList(t)
	l.Draft.Input = "  "
	l.Draft.Priority = model.PriorityLow

	assert.False(t, l.CanSubmit())
	added, err := l.Submit(context.Background())
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, model.PriorityLow, l.Draft.Priority)
}

func TestList_CloseFormKeepsTitle(t *testing.T) {
	l, _ := newMountedList(t)
	l.OpenForm()
	l.Draft.Input = "draft title"
	l.Draft.Priority = model.PriorityHigh
	due := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	l.Draft.DueDate = &due

	l.CloseForm()

	assert.False(t, l.Draft.Expanded)
	assert.Equal(t, "draft title", l.Draft.Input)
	assert.Equal(t, model.PriorityMedium, l.Draft.Priority)
	assert.Nil(t, l.Draft.DueDate)
}

func TestList_ToggleTwiceRestores(t *testing.T) {
	ctx := context.Background()
	l, clock := newMountedList(t)
	_, err := l.Add(ctx, "task", model.PriorityMedium, nil)
	require.NoError(t, err)
	id := l.Todos()[0].ID

	clock.Advance(time.Minute)
	require.NoError(t, l.Toggle(ctx, id))
	assert.True(t, l.Todos()[0].Completed)
	assert.True(t, l.Todos()[0].UpdatedAt.After(l.Todos()[0].CreatedAt))

	require.NoError(t, l.Toggle(ctx, id))
	assert.False(t, l.Todos()[0].Completed)
}

func TestList_UnknownIDIsIgnored(t *testing.T) {
	ctx := context.Background()
	l, _ := newMountedList(t)
	_, err := l.Add(ctx, "task", model.PriorityMedium, nil)
	require.NoError(t, err)
	before := l.Todos()

	require.NoError(t, l.Toggle(ctx, 42))
	require.NoError(t, l.Delete(ctx, 42))

	assert.Equal(t, before, l.Todos())
}

func TestList_DeleteAndClearCompleted(t *testing.T) {
	ctx := context.Background()
	l, clock := newMountedList(t)
	for _, title := range []string{"a", "b", "c"} {
		_, err := l.Add(ctx, title, model.PriorityMedium, nil)
		require.NoError(t, err)
		clock.Advance(time.Millisecond)
	}
	all := l.Todos()
	require.NoError(t, l.Toggle(ctx, all[0].ID))
	require.NoError(t, l.Toggle(ctx, all[1].ID))

	assert.Equal(t, 1, l.ActiveCount())
	assert.Equal(t, 2, l.CompletedCount())

	n, err := l.ClearCompleted(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.Len(t, l.Todos(), 1)
	assert.Equal(t, "a", l.Todos()[0].Title)

	require.NoError(t, l.Delete(ctx, all[2].ID))
	assert.Empty(t, l.Todos())
}

func TestList_FilterPartitions(t *testing.T) {
	ctx := context.Background()
	l, clock := newMountedList(t)
	for _, title := range []string{"a", "b", "c", "d"} {
		_, err := l.Add(ctx, title, model.PriorityMedium, nil)
		require.NoError(t, err)
		clock.Advance(time.Millisecond)
	}
	require.NoError(t, l.Toggle(ctx, l.Todos()[1].ID))

	all := l.Filter(model.FilterAll)
	active := l.Filter(model.FilterActive)
	completed := l.Filter(model.FilterCompleted)

	assert.Equal(t, l.Todos(), all)
	assert.Len(t, active, 3)
	assert.Len(t, completed, 1)
	assert.Equal(t, len(all), len(active)+len(completed))
	assert.Equal(t, "c", completed[0].Title)
	assert.Equal(t, []string{"d", "b", "a"}, titles(active))
}

func TestList_ToggleThemePersists(t *testing.T) {
	ctx := context.Background()
	repo, _ := testutil.NewTestRepository(t)

	l := todos.NewList(repo, model.ThemeLight)
	require.NoError(t, l.Mount(ctx))
	next, err := l.ToggleTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.ThemeDark, next)

	again := todos.NewList(repo, model.ThemeLight)
	require.NoError(t, again.Mount(ctx))
	assert.Equal(t, model.ThemeDark, again.Theme())
}

func TestList_SeesWritesFromOtherControllers(t *testing.T) {
	ctx := context.Background()
	repo, _ := testutil.NewTestRepository(t)

	first := todos.NewList(repo, model.ThemeLight)
	second := todos.NewList(repo, model.ThemeLight)
	require.NoError(t, first.Mount(ctx))
	require.NoError(t, second.Mount(ctx))

	_, err := first.Add(ctx, "from first", model.PriorityMedium, nil)
	require.NoError(t, err)
	_, err = second.Add(ctx, "from second", model.PriorityMedium, nil)
	require.NoError(t, err)

	stored, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func titles(ts []model.Todo) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.Title
	}
	return out
}
