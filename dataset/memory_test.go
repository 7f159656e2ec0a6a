package dataset

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct {
	Name  string `cbor:"name"`
	Price int    `cbor:"price"`
}

func TestMemorySet_InsertGetDelete(t *testing.T) {
	ctx := context.Background()
	set := NewMemorySet[widget]("widgets")

	require.NoError(t, set.Insert(ctx, "w1", widget{Name: "Gear", Price: 10}))

	got, err := set.Get(ctx, "w1")
	require.NoError(t, err)
	assert.Equal(t, widget{Name: "Gear", Price: 10}, *got)

	_, err = set.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, set.Delete(ctx, "w1"))
	_, err = set.Get(ctx, "w1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemorySet_InsertIsIdempotent(t *testing.T) {
	ctx := context.Background()
	set := NewMemorySet[widget]("widgets")

	require.NoError(t, set.Insert(ctx, "w1", widget{Name: "Gear", Price: 10}))
	require.NoError(t, set.Insert(ctx, "w1", widget{Name: "Different", Price: 99}))

	got, err := set.Get(ctx, "w1")
	require.NoError(t, err)
	assert.Equal(t, "Gear", got.Name, "insert over an existing id must not overwrite it")
}

func TestMemorySet_Patch(t *testing.T) {
	ctx := context.Background()
	set := NewMemorySet[widget]("widgets")
	require.NoError(t, set.Insert(ctx, "w1", widget{Name: "Gear", Price: 10}))

	require.NoError(t, set.Patch(ctx, "w1", map[string]any{"price": 20}))

	got, err := set.Get(ctx, "w1")
	require.NoError(t, err)
	assert.Equal(t, "Gear", got.Name)
	assert.Equal(t, 20, got.Price)

	err = set.Patch(ctx, "missing", map[string]any{"price": 1})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemorySet_DeleteAllAndList(t *testing.T) {
	ctx := context.Background()
	set := NewMemorySet[widget]("widgets")
	require.NoError(t, set.Insert(ctx, "w1", widget{Name: "Gear"}))
	require.NoError(t, set.Insert(ctx, "w2", widget{Name: "Bolt"}))

	all, err := set.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, set.DeleteAll(ctx))
	all, err = set.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestMemorySet_InsertReturnID(t *testing.T) {
	ctx := context.Background()
	set := NewMemorySet[widget]("widgets")

	id, err := set.InsertReturnID(ctx, widget{Name: "Gear"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	got, err := set.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Gear", got.Name)
}

func TestTableNameFor(t *testing.T) {
	assert.Equal(t, "users", TableNameFor("User"))
	assert.Equal(t, "categories", TableNameFor("Category"))
}

func TestActiveEntitySet_SaveOnlyWhenDirty(t *testing.T) {
	ctx := context.Background()
	backing := NewMemorySet[widget]("widgets")
	require.NoError(t, backing.Insert(ctx, "w1", widget{Name: "Gear", Price: 10}))

	active := NewActiveEntitySet[widget](backing)
	entity, err := active.Get(ctx, "w1")
	require.NoError(t, err)

	dirty, err := entity.Dirty()
	require.NoError(t, err)
	assert.False(t, dirty)

	require.NoError(t, entity.Save(ctx))

	entity.Value.Price = 50
	dirty, err = entity.Dirty()
	require.NoError(t, err)
	assert.True(t, dirty)

	require.NoError(t, entity.Save(ctx))

	got, err := backing.Get(ctx, "w1")
	require.NoError(t, err)
	assert.Equal(t, 50, got.Price)
}
