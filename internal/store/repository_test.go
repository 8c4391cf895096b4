package store_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/todo/internal/logging"
	"github.com/nhle/todo/internal/model"
	"github.com/nhle/todo/internal/store"
	"github.com/nhle/todo/tests/testutil"
)

func TestRepository_BuyMilkScenario(t *testing.T) {
	ctx := context.Background()
	repo, _ := testutil.NewTestRepository(t)

	created, todos, err := repo.Add(ctx, "Buy milk", model.PriorityHigh, nil)
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, testutil.DefaultStart.UnixMilli(), created.ID)
	assert.Equal(t, "Buy milk", created.Title)
	assert.False(t, created.Completed)
	assert.Equal(t, model.PriorityHigh, created.Priority)
	assert.Nil(t, created.DueDate)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	toggled, _, err := repo.Toggle(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)

	n, todos, err := repo.ClearCompleted(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Empty(t, todos)
}

func TestRepository_AddRejectsBlankTitle(t *testing.T) {
	repo, _ := testutil.NewTestRepository(t)

	_, _, err := repo.Add(context.Background(), " \t ", model.PriorityMedium, nil)
	require.ErrorIs(t, err, store.ErrEmptyTitle)

	todos, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, todos)
}

func TestRepository_IDsUniqueUnderFrozenClock(t *testing.T) {
	ctx := context.Background()
	repo, _ := testutil.NewTestRepository(t)

	seen := make(map[int64]bool)
	for i := 0; i < 5; i++ {
		created, _, err := repo.Add(ctx, "same instant", model.PriorityMedium, nil)
		require.NoError(t, err)
		assert.False(t, seen[created.ID], "duplicate id %d", created.ID)
		seen[created.ID] = true
	}
}

func TestRepository_RemoveExactlyOne(t *testing.T) {
	ctx := context.Background()
	repo, clock := testutil.NewTestRepository(t)
	var ids []int64
	for _, title := range []string{"a", "b", "c"} {
		created, _, err := repo.Add(ctx, title, model.PriorityMedium, nil)
		require.NoError(t, err)
		ids = append(ids, created.ID)
		clock.Advance(time.Millisecond)
	}

	todos, err := repo.Remove(ctx, ids[1])
	require.NoError(t, err)
	require.Len(t, todos, 2)
	assert.Equal(t, ids[2], todos[0].ID)
	assert.Equal(t, ids[0], todos[1].ID)

	_, err = repo.Remove(ctx, ids[1])
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestRepository_ClearCompletedKeepsActive(t *testing.T) {
	ctx := context.Background()
	repo, clock := testutil.NewTestRepository(t)
	for i, title := range []string{"a", "b", "c", "d"} {
		created, _, err := repo.Add(ctx, title, model.PriorityMedium, nil)
		require.NoError(t, err)
		if i%2 == 0 {
			_, _, err = repo.Toggle(ctx, created.ID)
			require.NoError(t, err)
		}
		clock.Advance(time.Millisecond)
	}

	n, todos, err := repo.ClearCompleted(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.Len(t, todos, 2)
	for _, todo := range todos {
		assert.False(t, todo.Completed)
	}
	assert.Equal(t, "d", todos[0].Title)
	assert.Equal(t, "b", todos[1].Title)
}

func TestRepository_UpdatedAtNeverBeforeCreatedAt(t *testing.T) {
	ctx := context.Background()
	repo, clock := testutil.NewTestRepository(t)
	created, _, err := repo.Add(ctx, "task", model.PriorityMedium, nil)
	require.NoError(t, err)

	clock.Set(testutil.DefaultStart.Add(-time.Hour))
	toggled, _, err := repo.Toggle(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.CreatedAt, toggled.UpdatedAt)
}

func TestRepository_UpdateRejectsBlankTitle(t *testing.T) {
	ctx := context.Background()
	repo, _ := testutil.NewTestRepository(t)
	created, _, err := repo.Add(ctx, "task", model.PriorityMedium, nil)
	require.NoError(t, err)

	blank := "  "
	_, _, err = repo.Update(ctx, created.ID, model.TodoPatch{Title: &blank})
	require.ErrorIs(t, err, store.ErrEmptyTitle)

	_, _, err = repo.Update(ctx, 999, model.TodoPatch{})
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestRepository_ConcurrentAddsAreNotLost(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "todos.json")

	// Two repositories over the same file stand in for two processes.
	newRepo := func() *store.Repository {
		fs, err := store.NewFileStore(path)
		require.NoError(t, err)
		return store.NewRepository(
			store.NewAdapter(fs, logging.Discard()),
			store.WithLocker(store.NewFileLocker(path+".tx.lock")),
			store.WithLogger(logging.Discard()),
		)
	}
	repos := []*store.Repository{newRepo(), newRepo()}

	const perRepo = 10
	var wg sync.WaitGroup
	for _, r := range repos {
		wg.Add(1)
		go func(r *store.Repository) {
			defer wg.Done()
			for i := 0; i < perRepo; i++ {
				_, _, err := r.Add(ctx, "task", model.PriorityMedium, nil)
				assert.NoError(t, err)
			}
		}(r)
	}
	wg.Wait()

	todos, err := repos[0].List(ctx)
	require.NoError(t, err)
	assert.Len(t, todos, 2*perRepo)
}

func TestRepository_Theme(t *testing.T) {
	ctx := context.Background()
	repo, _ := testutil.NewTestRepository(t)

	theme, err := repo.Theme(ctx, model.ThemeLight)
	require.NoError(t, err)
	assert.Equal(t, model.ThemeLight, theme)

	require.NoError(t, repo.SetTheme(ctx, model.ThemeDark))
	theme, err = repo.Theme(ctx, model.ThemeLight)
	require.NoError(t, err)
	assert.Equal(t, model.ThemeDark, theme)
}
