package core_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/memo/pkg/core"
)

// MockKV implements core.KV in memory.
// Setting FailWrites makes every Set fail, to exercise rollback paths.
type MockKV struct {
	values     map[string]string
	FailWrites bool
	FailReads  bool
	Writes     int
}

func NewMockKV() *MockKV {
	return &MockKV{values: make(map[string]string)}
}

func (m *MockKV) Get(ctx context.Context, key string) (string, bool, error) {
	if m.FailReads {
		return "", false, errors.New("read failed")
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MockKV) Set(ctx context.Context, key, value string) error {
	if m.FailWrites {
		return errors.New("disk full")
	}
	m.Writes++
	m.values[key] = value
	return nil
}

func (m *MockKV) Initialize(ctx context.Context) error { return nil }

// fixedClock returns a clock advancing by one second per call.
func fixedClock(start time.Time) func() time.Time {
	t := start
	return func() time.Time {
		cur := t
		t = t.Add(time.Second)
		return cur
	}
}

func newRepo(t *testing.T, kv core.KV) *core.Repository {
	t.Helper()
	store := core.NewStore(kv, nil)
	notes, _ := store.Load(context.TODO())
	return core.NewRepository(store, notes, core.WithClock(fixedClock(time.Date(2024, 1, 5, 14, 3, 7, 0, time.Local))))
}

func TestRepository_CRUD(t *testing.T) {
	kv := NewMockKV()
	repo := newRepo(t, kv)
	ctx := context.TODO()

	// 1. Add
	milk, err := repo.Add(ctx, "  Milk ", " buy milk ")
	require.NoError(t, err)
	assert.Equal(t, "Milk", milk.Title)
	assert.Equal(t, "buy milk", milk.Content)
	assert.Equal(t, "2024/1/5 14:03:07", milk.LastModified)

	gym, err := repo.Add(ctx, "Gym", "leg day")
	require.NoError(t, err)
	assert.NotEqual(t, milk.ID, gym.ID)

	// 2. All keeps insertion order
	all := repo.All()
	require.Len(t, all, 2)
	assert.Equal(t, milk.ID, all[0].ID)
	assert.Equal(t, gym.ID, all[1].ID)

	// 3. Update
	updated, err := repo.Update(ctx, milk.ID, "Oat milk", "buy oat milk")
	require.NoError(t, err)
	assert.Equal(t, milk.ID, updated.ID)
	assert.Equal(t, "Oat milk", updated.Title)
	assert.NotEqual(t, milk.LastModified, updated.LastModified)

	got, ok := repo.Get(milk.ID)
	require.True(t, ok)
	assert.Equal(t, updated, got)

	// 4. Remove
	require.NoError(t, repo.Remove(ctx, milk.ID))
	_, ok = repo.Get(milk.ID)
	assert.False(t, ok)
	assert.Equal(t, 1, repo.Len())

	// 5. Persisted state survives a reload
	fresh := newRepo(t, kv)
	assert.Equal(t, repo.All(), fresh.All())
}

func TestRepository_Validation(t *testing.T) {
	kv := NewMockKV()
	repo := newRepo(t, kv)
	ctx := context.TODO()

	cases := []struct {
		name, title, content, field string
	}{
		{"empty title", "", "x", "title"},
		{"empty content", "x", "", "content"},
		{"blank title", "   ", "x", "title"},
		{"blank content", "x", "\n\t", "content"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := repo.Add(ctx, tc.title, tc.content)
			require.Error(t, err)
			assert.ErrorIs(t, err, core.ErrValidation)

			var verr *core.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
			assert.Empty(t, repo.All())
			assert.Zero(t, kv.Writes)
		})
	}

	t.Run("update keeps note unchanged", func(t *testing.T) {
		n, err := repo.Add(ctx, "a", "b")
		require.NoError(t, err)

		_, err = repo.Update(ctx, n.ID, "", "c")
		assert.ErrorIs(t, err, core.ErrValidation)

		got, _ := repo.Get(n.ID)
		assert.Equal(t, n, got)
	})
}

func TestRepository_NotFound(t *testing.T) {
	repo := newRepo(t, NewMockKV())
	ctx := context.TODO()

	_, err := repo.Update(ctx, 42, "t", "c")
	var nf *core.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, int64(42), nf.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)

	// Removing an unknown id is not an error.
	assert.NoError(t, repo.Remove(ctx, 42))
}

func TestRepository_RollbackOnWriteFailure(t *testing.T) {
	kv := NewMockKV()
	repo := newRepo(t, kv)
	ctx := context.TODO()

	n, err := repo.Add(ctx, "keep", "me")
	require.NoError(t, err)

	kv.FailWrites = true

	_, err = repo.Add(ctx, "lost", "note")
	assert.Error(t, err)
	assert.Equal(t, 1, repo.Len())

	_, err = repo.Update(ctx, n.ID, "changed", "body")
	assert.Error(t, err)
	got, _ := repo.Get(n.ID)
	assert.Equal(t, "keep", got.Title)

	assert.Error(t, repo.Remove(ctx, n.ID))
	assert.Equal(t, 1, repo.Len())
}

func TestRepository_SameMillisecondIDs(t *testing.T) {
	store := core.NewStore(NewMockKV(), nil)
	instant := time.UnixMilli(1700000000000)
	repo := core.NewRepository(store, nil, core.WithClock(func() time.Time { return instant }))
	ctx := context.TODO()

	a, err := repo.Add(ctx, "a", "a")
	require.NoError(t, err)
	b, err := repo.Add(ctx, "b", "b")
	require.NoError(t, err)

	assert.Equal(t, int64(1700000000000), a.ID)
	assert.Equal(t, a.ID+1, b.ID)
}

func TestRepository_AllIsSnapshot(t *testing.T) {
	repo := newRepo(t, NewMockKV())
	_, err := repo.Add(context.TODO(), "t", "c")
	require.NoError(t, err)

	snap := repo.All()
	snap[0].Title = "mutated"

	assert.Equal(t, "t", repo.All()[0].Title)
}

func TestRepository_Reload(t *testing.T) {
	kv := NewMockKV()
	a := newRepo(t, kv)
	b := newRepo(t, kv)
	ctx := context.TODO()

	_, err := a.Add(ctx, "from a", "body")
	require.NoError(t, err)
	assert.Zero(t, b.Len())

	b.Reload(ctx)
	assert.Equal(t, 1, b.Len())
}

func TestRepository_State(t *testing.T) {
	repo := newRepo(t, NewMockKV())
	n, err := repo.Add(context.TODO(), "t", "c")
	require.NoError(t, err)

	state, ok := repo.State().(core.RepositoryState)
	require.True(t, ok)
	assert.Equal(t, 1, state.Notes)
	assert.Equal(t, n.ID, state.LastID)
	assert.Equal(t, "kv", state.Medium)
	assert.Equal(t, "repository", repo.ComponentType())
}
