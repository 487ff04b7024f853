package expedition_test

import (
	"testing"

	"expedition/internal/core/domain/model/expedition"
	"expedition/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAllocation(t *testing.T) {
	t.Run("should create empty allocation for driver", func(t *testing.T) {
		id := kernel.NewUUID()
		driverID := kernel.NewUUID()

		a, err := expedition.NewAllocation(id, driverID)

		require.NoError(t, err)
		require.NoError(t, a.Validate())
		assert.True(t, a.ID().IsEqual(id))
		assert.True(t, a.DriverID().IsEqual(driverID))
		assert.Nil(t, a.VehicleID())
		assert.Zero(t, a.Boxes())
		assert.Zero(t, a.Weight())
		assert.False(t, a.IsFilled())
	})

	t.Run("should fail with invalid IDs", func(t *testing.T) {
		var invalidID kernel.UUID

		a, err := expedition.NewAllocation(invalidID, invalidID)

		require.Error(t, err)
		assert.Nil(t, a)
	})
}

func TestRestoreAllocation(t *testing.T) {
	t.Run("should restore quantities and vehicle override", func(t *testing.T) {
		vehicleID := kernel.NewUUID()

		a, err := expedition.RestoreAllocation(
			kernel.NewUUID(), kernel.NewUUID(), &vehicleID, 12, 340.5)

		require.NoError(t, err)
		assert.Equal(t, 12.0, a.Boxes())
		assert.Equal(t, 340.5, a.Weight())
		require.NotNil(t, a.VehicleID())
		assert.True(t, a.VehicleID().IsEqual(vehicleID))
		assert.True(t, a.IsFilled())
	})

	t.Run("should fail with negative quantities", func(t *testing.T) {
		a, err := expedition.RestoreAllocation(
			kernel.NewUUID(), kernel.NewUUID(), nil, -1, 0)

		require.Error(t, err)
		assert.Nil(t, a)
	})
}

func TestAllocation_SetQuantities(t *testing.T) {
	t.Run("should accept non-negative quantities", func(t *testing.T) {
		a, _ := expedition.NewAllocation(kernel.NewUUID(), kernel.NewUUID())

		require.NoError(t, a.SetQuantities(3, 0))

		assert.Equal(t, 3.0, a.Boxes())
		assert.Zero(t, a.Weight())
		assert.True(t, a.IsFilled())
	})

	t.Run("should count weight-only share as filled", func(t *testing.T) {
		a, _ := expedition.NewAllocation(kernel.NewUUID(), kernel.NewUUID())

		require.NoError(t, a.SetQuantities(0, 120))

		assert.True(t, a.IsFilled())
	})

	t.Run("should reject negative boxes", func(t *testing.T) {
		a, _ := expedition.NewAllocation(kernel.NewUUID(), kernel.NewUUID())

		err := a.SetQuantities(-1, 10)

		require.Error(t, err)
		assert.ErrorIs(t, err, expedition.ErrBoxesIsOutOfRange)
	})

	t.Run("should reject negative weight", func(t *testing.T) {
		a, _ := expedition.NewAllocation(kernel.NewUUID(), kernel.NewUUID())

		err := a.SetQuantities(1, -10)

		require.Error(t, err)
		assert.ErrorIs(t, err, expedition.ErrWeightIsOutOfRange)
	})
}

func TestAllocation_SetVehicle(t *testing.T) {
	t.Run("should set and clear the override", func(t *testing.T) {
		a, _ := expedition.NewAllocation(kernel.NewUUID(), kernel.NewUUID())
		vehicleID := kernel.NewUUID()

		require.NoError(t, a.SetVehicle(&vehicleID))
		require.NotNil(t, a.VehicleID())

		require.NoError(t, a.SetVehicle(nil))
		assert.Nil(t, a.VehicleID())
	})

	t.Run("should reject invalid vehicle", func(t *testing.T) {
		a, _ := expedition.NewAllocation(kernel.NewUUID(), kernel.NewUUID())
		var invalidID kernel.UUID

		err := a.SetVehicle(&invalidID)

		require.Error(t, err)
	})
}

func TestAllocation_Validate(t *testing.T) {
	t.Run("should fail validation for nil allocation", func(t *testing.T) {
		var a *expedition.Allocation

		err := a.Validate()

		require.Error(t, err)
		assert.Equal(t, expedition.ErrAllocationIsNotConstructed, err)
	})

	t.Run("should fail validation for zero value", func(t *testing.T) {
		var a expedition.Allocation

		err := a.Validate()

		require.Error(t, err)
	})
}
