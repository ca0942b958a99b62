package table_test

import (
	"testing"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTable(t *testing.T) *table.Table {
	t.Helper()
	tbl, err := table.NewTable(kernel.NewUUID(), 1, 4)
	require.NoError(t, err)
	return tbl
}

func TestNewTable(t *testing.T) {
	t.Run("should create table in Available status", func(t *testing.T) {
		id := kernel.NewUUID()

		tbl, err := table.NewTable(id, 7, 4)

		require.NoError(t, err)
		assert.True(t, tbl.ID().IsEqual(id))
		assert.Equal(t, 7, tbl.Number())
		assert.Equal(t, 4, tbl.Capacity())
		assert.Equal(t, table.Available, tbl.Status())
		assert.Nil(t, tbl.AssignedWaiter())
		assert.Nil(t, tbl.ActiveOrder())
	})

	t.Run("should reject invalid parameters", func(t *testing.T) {
		_, err := table.NewTable(kernel.UUID{}, 1, 4)
		require.Error(t, err)

		_, err = table.NewTable(kernel.NewUUID(), 0, 4)
		require.Error(t, err)

		_, err = table.NewTable(kernel.NewUUID(), 1, -2)
		require.Error(t, err)
	})
}

func TestTable_Occupy(t *testing.T) {
	t.Run("should occupy an available table", func(t *testing.T) {
		tbl := newTestTable(t)
		waiterID := kernel.NewUUID()
		orderID := kernel.NewUUID()

		require.NoError(t, tbl.Occupy(waiterID, orderID))

		assert.Equal(t, table.Occupied, tbl.Status())
		require.NotNil(t, tbl.AssignedWaiter())
		assert.True(t, tbl.AssignedWaiter().IsEqual(waiterID))
		require.NotNil(t, tbl.ActiveOrder())
		assert.True(t, tbl.ActiveOrder().IsEqual(orderID))
	})

	t.Run("should reject occupying an occupied table", func(t *testing.T) {
		tbl := newTestTable(t)
		require.NoError(t, tbl.Occupy(kernel.NewUUID(), kernel.NewUUID()))

		err := tbl.Occupy(kernel.NewUUID(), kernel.NewUUID())

		require.Error(t, err)
	})

	t.Run("should reject invalid ids", func(t *testing.T) {
		tbl := newTestTable(t)

		require.Error(t, tbl.Occupy(kernel.UUID{}, kernel.NewUUID()))
		require.Error(t, tbl.Occupy(kernel.NewUUID(), kernel.UUID{}))
	})
}

func TestTable_Lifecycle(t *testing.T) {
	t.Run("full service cycle clears assignments", func(t *testing.T) {
		tbl := newTestTable(t)

		require.NoError(t, tbl.Occupy(kernel.NewUUID(), kernel.NewUUID()))
		require.NoError(t, tbl.MarkDirty())

		assert.Equal(t, table.Dirty, tbl.Status())
		assert.Nil(t, tbl.AssignedWaiter())
		assert.Nil(t, tbl.ActiveOrder())

		require.NoError(t, tbl.MarkAvailable())
		assert.Equal(t, table.Available, tbl.Status())
	})

	t.Run("should reject marking an available table dirty", func(t *testing.T) {
		tbl := newTestTable(t)

		require.Error(t, tbl.MarkDirty())
	})

	t.Run("ChangeStatus follows the machine", func(t *testing.T) {
		tbl := newTestTable(t)

		require.Error(t, tbl.ChangeStatus(table.Dirty))
		require.NoError(t, tbl.Occupy(kernel.NewUUID(), kernel.NewUUID()))
		require.NoError(t, tbl.ChangeStatus(table.Dirty))
		require.NoError(t, tbl.ChangeStatus(table.Available))
	})
}

func TestRestoreTable(t *testing.T) {
	t.Run("should restore occupied table", func(t *testing.T) {
		waiterID := kernel.NewUUID()
		orderID := kernel.NewUUID()

		tbl, err := table.RestoreTable(kernel.NewUUID(), 3, 2, table.Occupied, &waiterID, &orderID)

		require.NoError(t, err)
		assert.Equal(t, table.Occupied, tbl.Status())
		assert.NotNil(t, tbl.AssignedWaiter())
	})

	t.Run("should reject waiter on a non-occupied table", func(t *testing.T) {
		waiterID := kernel.NewUUID()

		_, err := table.RestoreTable(kernel.NewUUID(), 3, 2, table.Dirty, &waiterID, nil)

		require.Error(t, err)
	})
}

func TestTable_Validate(t *testing.T) {
	t.Run("constructed table is valid", func(t *testing.T) {
		require.NoError(t, newTestTable(t).Validate())
	})

	t.Run("zero value is invalid", func(t *testing.T) {
		var tbl table.Table

		assert.Equal(t, table.ErrTableIsNotConstructed, tbl.Validate())
	})
}
