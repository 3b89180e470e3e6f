package agds_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MaciejGeldon/agds/lib/agds"
	"github.com/MaciejGeldon/agds/lib/containers"
)

func TestSetGetUnset(t *testing.T) {
	store := agds.New[containers.NumericKey[int]](8)
	row := store.NewRow()
	require.True(t, store.HasRow(row))

	v := store.Set(row, "age", containers.NumericKey[int]{Val: 30})
	require.Equal(t, 30, v.Key.Val)
	require.Equal(t, 1, v.Count)

	got, ok := store.Get(row, "age")
	require.True(t, ok)
	require.Same(t, v, got)

	require.True(t, store.Unset(row, "age"))
	_, ok = store.Get(row, "age")
	require.False(t, ok)
	require.False(t, store.Unset(row, "age"))

	_, found := store.Column("age").Search(containers.NumericKey[int]{Val: 30})
	require.Nil(t, found)
}

func TestSetReplacesPriorValue(t *testing.T) {
	store := agds.New[containers.NumericKey[int]](8)
	row := store.NewRow()

	store.Set(row, "age", containers.NumericKey[int]{Val: 30})
	store.Set(row, "age", containers.NumericKey[int]{Val: 31})

	_, found := store.Column("age").Search(containers.NumericKey[int]{Val: 30})
	require.Nil(t, found)

	v, ok := store.Get(row, "age")
	require.True(t, ok)
	require.Equal(t, 31, v.Key.Val)
}

func TestSharedColumnAcrossRows(t *testing.T) {
	store := agds.New[containers.NumericKey[int]](8)
	row1 := store.NewRow()
	row2 := store.NewRow()

	store.Set(row1, "age", containers.NumericKey[int]{Val: 30})
	v2 := store.Set(row2, "age", containers.NumericKey[int]{Val: 30})

	require.Equal(t, 2, v2.Count)
	require.Equal(t, 1, store.Column("age").Len())
}

func TestDeleteRow(t *testing.T) {
	store := agds.New[containers.NumericKey[int]](8)
	row := store.NewRow()
	store.Set(row, "age", containers.NumericKey[int]{Val: 30})
	store.Set(row, "score", containers.NumericKey[int]{Val: 99})

	store.DeleteRow(row)
	require.False(t, store.HasRow(row))
	_, ok := store.Get(row, "age")
	require.False(t, ok)
	require.Equal(t, 0, store.Column("age").Len())
	require.Equal(t, 0, store.Column("score").Len())
}

func TestColumnsSorted(t *testing.T) {
	store := agds.New[containers.NumericKey[int]](8)
	row := store.NewRow()
	store.Set(row, "zeta", containers.NumericKey[int]{Val: 1})
	store.Set(row, "alpha", containers.NumericKey[int]{Val: 2})

	require.Equal(t, []agds.ColumnName{"alpha", "zeta"}, store.Columns())
}

func TestSetOnUnknownRowPanics(t *testing.T) {
	store := agds.New[containers.NumericKey[int]](8)
	require.Panics(t, func() {
		store.Set(agds.RowID{}, "age", containers.NumericKey[int]{Val: 1})
	})
}
