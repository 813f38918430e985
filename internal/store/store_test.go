package store

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rec struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (r rec) GetID() string { return r.ID }

func TestInsertAndFindByID(t *testing.T) {
	c := NewCollection[rec]("recs")
	c.Insert(rec{ID: "a", Name: "first"})
	c.Insert(rec{ID: "b", Name: "second"})

	got, err := c.FindByID("a")
	require.NoError(t, err)
	assert.Equal(t, rec{ID: "a", Name: "first"}, got)

	_, err = c.FindByID("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListPreservesInsertionOrder(t *testing.T) {
	c := NewCollection[rec]("recs")
	for i := 0; i < 5; i++ {
		c.Insert(rec{ID: fmt.Sprintf("%d", i)})
	}
	list := c.List()
	require.Len(t, list, 5)
	for i, r := range list {
		assert.Equal(t, fmt.Sprintf("%d", i), r.ID)
	}
}

func TestListReturnsCopy(t *testing.T) {
	c := NewCollection[rec]("recs")
	c.Insert(rec{ID: "a"})
	list := c.List()
	list[0].Name = "mutated"

	got, err := c.FindByID("a")
	require.NoError(t, err)
	assert.Empty(t, got.Name)
}

func TestUpdateMergesInPlace(t *testing.T) {
	c := NewCollection[rec]("recs")
	c.Insert(rec{ID: "a", Name: "old"})

	updated, err := c.Update("a", func(r rec) rec {
		r.Name = "new"
		return r
	})
	require.NoError(t, err)
	assert.Equal(t, "new", updated.Name)

	got, _ := c.FindByID("a")
	assert.Equal(t, "new", got.Name)

	_, err = c.Update("missing", func(r rec) rec { return r })
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReplace(t *testing.T) {
	c := NewCollection[rec]("recs")
	c.Insert(rec{ID: "a", Name: "old"})

	require.NoError(t, c.Replace("a", rec{ID: "a", Name: "swapped"}))
	got, _ := c.FindByID("a")
	assert.Equal(t, "swapped", got.Name)

	assert.ErrorIs(t, c.Replace("missing", rec{ID: "missing"}), ErrNotFound)
}

func TestRemoveByIDReturnsSnapshot(t *testing.T) {
	c := NewCollection[rec]("recs")
	c.Insert(rec{ID: "a", Name: "gone"})

	removed, err := c.RemoveByID("a")
	require.NoError(t, err)
	assert.Equal(t, "gone", removed.Name)

	_, err = c.FindByID("a")
	assert.ErrorIs(t, err, ErrNotFound)

	// Removing again must report NotFound, never silently succeed.
	_, err = c.RemoveByID("a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClearReturnsPriorCount(t *testing.T) {
	c := NewCollection[rec]("recs")
	for i := 0; i < 3; i++ {
		c.Insert(rec{ID: fmt.Sprintf("%d", i)})
	}
	assert.Equal(t, 3, c.Clear())
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 0, c.Clear())
}

func TestFilter(t *testing.T) {
	c := NewCollection[rec]("recs")
	c.Insert(rec{ID: "1", Name: "x"})
	c.Insert(rec{ID: "2", Name: "y"})
	c.Insert(rec{ID: "3", Name: "x"})

	got := c.Filter(func(r rec) bool { return r.Name == "x" })
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "3", got[1].ID)
}

func TestConcurrentMutations(t *testing.T) {
	c := NewCollection[rec]("recs")
	for i := 0; i < 50; i++ {
		c.Insert(rec{ID: fmt.Sprintf("%d", i)})
	}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			// Update racing a delete of the same id must either merge
			// or report NotFound, never corrupt the slice.
			_, _ = c.Update(id, func(r rec) rec {
				r.Name = "touched"
				return r
			})
			_, _ = c.RemoveByID(id)
		}(fmt.Sprintf("%d", i))
	}
	wg.Wait()

	assert.Equal(t, 0, c.Len())
}
