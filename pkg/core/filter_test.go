package core_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/aretw0/memo/pkg/core"
)

func sampleNotes() []core.Note {
	return []core.Note{
		{ID: 1, Title: "Milk", Content: "buy milk"},
		{ID: 2, Title: "Gym", Content: "leg day"},
	}
}

func TestFilter_Scenario(t *testing.T) {
	notes := sampleNotes()

	milk := core.Filter(notes, "milk")
	require.Len(t, milk, 1)
	assert.Equal(t, int64(1), milk[0].ID)

	day := core.Filter(notes, "day")
	require.Len(t, day, 1)
	assert.Equal(t, int64(2), day[0].ID)

	assert.Empty(t, core.Filter(notes, "z"))
}

func TestFilter_BlankQuery(t *testing.T) {
	notes := sampleNotes()
	assert.Equal(t, notes, core.Filter(notes, ""))
	assert.Equal(t, notes, core.Filter(notes, "   "))
}

func TestFilter_TrimsAndFolds(t *testing.T) {
	notes := sampleNotes()
	got := core.Filter(notes, "  GYM ")
	require.Len(t, got, 1)
	assert.Equal(t, "Gym", got[0].Title)
}

func genNote() *rapid.Generator[core.Note] {
	return rapid.Custom(func(t *rapid.T) core.Note {
		return core.Note{
			ID:      rapid.Int64().Draw(t, "id"),
			Title:   rapid.StringMatching(`[a-zA-Z ]{1,12}`).Draw(t, "title"),
			Content: rapid.StringMatching(`[a-zA-Z ]{1,24}`).Draw(t, "content"),
		}
	})
}

func TestFilter_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		notes := rapid.SliceOf(genNote()).Draw(t, "notes")
		q := rapid.StringMatching(`[a-zA-Z]{0,3}`).Draw(t, "q")

		once := core.Filter(notes, q)

		// Idempotent
		assert.Equal(t, once, core.Filter(once, q))

		// Case-insensitive
		assert.Equal(t, once, core.Filter(notes, strings.ToUpper(q)))

		// Every match contains the query; order is a subsequence of the input
		lq := strings.ToLower(q)
		j := 0
		for _, n := range once {
			assert.True(t,
				strings.Contains(strings.ToLower(n.Title), lq) ||
					strings.Contains(strings.ToLower(n.Content), lq))
			for j < len(notes) && notes[j] != n {
				j++
			}
			if j == len(notes) {
				t.Fatalf("filtered note %v is out of input order", n)
			}
			j++
		}
	})
}

func TestRepository_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		kv := NewMockKV()
		store := core.NewStore(kv, nil)
		repo := core.NewRepository(store, nil)
		ctx := context.TODO()

		titles := rapid.SliceOfN(rapid.StringMatching(`[a-z]{1,8}`), 1, 10).Draw(t, "titles")
		seen := map[int64]bool{}
		for _, title := range titles {
			n, err := repo.Add(ctx, title, title+" body")
			if err != nil {
				t.Fatalf("Add failed: %v", err)
			}
			if seen[n.ID] {
				t.Fatalf("duplicate id %d", n.ID)
			}
			seen[n.ID] = true
		}

		all := repo.All()
		if len(all) != len(titles) {
			t.Fatalf("expected %d notes, got %d", len(titles), len(all))
		}

		victim := all[rapid.IntRange(0, len(all)-1).Draw(t, "victim")]
		if err := repo.Remove(ctx, victim.ID); err != nil {
			t.Fatalf("Remove failed: %v", err)
		}
		for _, n := range repo.All() {
			if n.ID == victim.ID {
				t.Fatalf("removed id %d still present", victim.ID)
			}
		}

		// Persisted state matches memory.
		notes, _ := store.Load(ctx)
		assert.Equal(t, repo.All(), notes)
	})
}
