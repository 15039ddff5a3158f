package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gqtodo/gqtodo/internal/model"
)

func TestApplyCreateAppendsInOrder(t *testing.T) {
	c := New()
	c.Prime([]model.Todo{{ID: 1, Title: "first", UserID: 9}})

	require.NoError(t, c.ApplyCreate(model.Todo{ID: 2, Title: "x", Done: false, UserID: 9}))

	assert.Equal(t, []model.Todo{
		{ID: 1, Title: "first", UserID: 9},
		{ID: 2, Title: "x", Done: false, UserID: 9},
	}, c.Todos())
}

func TestApplyCreateUnprimed(t *testing.T) {
	c := New()
	err := c.ApplyCreate(model.Todo{ID: 2})
	assert.ErrorIs(t, err, ErrNotPrimed)
	assert.False(t, c.Primed(), "failed reconciliation must not write")
}

func TestApplyDeleteFiltersById(t *testing.T) {
	c := New()
	c.Prime([]model.Todo{{ID: 1}, {ID: 2}})

	require.NoError(t, c.ApplyDelete(1))
	assert.Equal(t, []model.Todo{{ID: 2}}, c.Todos())
}

func TestApplyDeleteNonPresentIsNoop(t *testing.T) {
	c := New()
	c.Prime([]model.Todo{{ID: 1}, {ID: 2}})

	require.NoError(t, c.ApplyDelete(7))
	assert.Equal(t, []model.Todo{{ID: 1}, {ID: 2}}, c.Todos())
}

func TestApplyDeleteTwiceIsNoop(t *testing.T) {
	c := New()
	c.Prime([]model.Todo{{ID: 1}, {ID: 2}})

	require.NoError(t, c.ApplyDelete(1))
	require.NoError(t, c.ApplyDelete(1))
	assert.Equal(t, []model.Todo{{ID: 2}}, c.Todos())
}

func TestApplyDeleteIdZero(t *testing.T) {
	// 0 is a legitimate id: presence, not truthiness
	c := New()
	c.Prime([]model.Todo{{ID: 0, Title: "zero"}, {ID: 1}})

	require.NoError(t, c.ApplyDelete(0))
	assert.Equal(t, []model.Todo{{ID: 1}}, c.Todos())
}

func TestApplyDeleteUnprimed(t *testing.T) {
	c := New()
	assert.ErrorIs(t, c.ApplyDelete(1), ErrNotPrimed)
}

func TestPrimeEmptyIsPrimed(t *testing.T) {
	c := New()
	c.Prime(nil)
	assert.True(t, c.Primed())
	require.NoError(t, c.ApplyCreate(model.Todo{ID: 1}))
	assert.Equal(t, []model.Todo{{ID: 1}}, c.Todos())
}

func TestPrimeOverwritesReconciled(t *testing.T) {
	// a follow-up refetch is the source of truth
	c := New()
	c.Prime([]model.Todo{{ID: 1}})
	require.NoError(t, c.ApplyCreate(model.Todo{ID: 2}))

	c.Prime([]model.Todo{{ID: 3}})
	assert.Equal(t, []model.Todo{{ID: 3}}, c.Todos())
}

func TestApplyUpdateReplacesByIdentity(t *testing.T) {
	c := New()
	c.Prime([]model.Todo{{ID: 1, Title: "a", UserID: 9}, {ID: 2, Title: "b", UserID: 9}})

	c.ApplyUpdate(model.Todo{ID: 1, Title: "a", Done: true})

	assert.Equal(t, []model.Todo{
		{ID: 1, Title: "a", Done: true, UserID: 9},
		{ID: 2, Title: "b", UserID: 9},
	}, c.Todos())
}

func TestApplyUpdateUnknownIdIsNoop(t *testing.T) {
	c := New()
	c.Prime([]model.Todo{{ID: 1}})
	c.ApplyUpdate(model.Todo{ID: 5, Done: true})
	assert.Equal(t, []model.Todo{{ID: 1}}, c.Todos())
}

func TestTodosReturnsCopy(t *testing.T) {
	c := New()
	c.Prime([]model.Todo{{ID: 1, Title: "a"}})

	got := c.Todos()
	got[0].Title = "mutated"
	assert.Equal(t, "a", c.Todos()[0].Title)
}
