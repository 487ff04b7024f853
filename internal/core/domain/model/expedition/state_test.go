package expedition_test

import (
	"testing"

	"expedition/internal/core/domain/model/expedition"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateFromString(t *testing.T) {
	t.Run("should parse every lifecycle state", func(t *testing.T) {
		cases := map[string]expedition.State{
			"planned":    expedition.Planned,
			"preparing":  expedition.Preparing,
			"ready":      expedition.Ready,
			"loaded":     expedition.Loaded,
			"dispatched": expedition.Dispatched,
			"delivered":  expedition.Delivered,
			"done":       expedition.Done,
			"hold":       expedition.Hold,
		}

		for str, want := range cases {
			got, err := expedition.StateFromString(str)

			require.NoError(t, err)
			assert.Equal(t, want, got)
			assert.Equal(t, str, got.String())
		}
	})

	t.Run("should fail on unknown string", func(t *testing.T) {
		got, err := expedition.StateFromString("flying")

		require.Error(t, err)
		assert.Equal(t, expedition.Unknown, got)
		assert.Contains(t, err.Error(), "not a valid state")
	})

	t.Run("should fail on empty string", func(t *testing.T) {
		got, err := expedition.StateFromString("")

		require.Error(t, err)
		assert.Equal(t, expedition.Unknown, got)
	})
}

func TestState_Validate(t *testing.T) {
	t.Run("should accept all defined states", func(t *testing.T) {
		for _, s := range []expedition.State{
			expedition.Planned, expedition.Preparing, expedition.Ready,
			expedition.Loaded, expedition.Dispatched, expedition.Delivered,
			expedition.Done, expedition.Hold,
		} {
			assert.NoError(t, s.Validate())
		}
	})

	t.Run("should reject unknown and out-of-range states", func(t *testing.T) {
		assert.Error(t, expedition.Unknown.Validate())
		assert.Error(t, expedition.State(-1).Validate())
		assert.Error(t, expedition.State(100).Validate())
	})
}

func TestState_IsLocked(t *testing.T) {
	t.Run("should lock from loaded onwards", func(t *testing.T) {
		assert.True(t, expedition.Loaded.IsLocked())
		assert.True(t, expedition.Dispatched.IsLocked())
		assert.True(t, expedition.Delivered.IsLocked())
		assert.True(t, expedition.Done.IsLocked())
	})

	t.Run("should not lock early states and hold", func(t *testing.T) {
		assert.False(t, expedition.Planned.IsLocked())
		assert.False(t, expedition.Preparing.IsLocked())
		assert.False(t, expedition.Ready.IsLocked())
		assert.False(t, expedition.Hold.IsLocked())
	})
}

func TestState_Previous(t *testing.T) {
	t.Run("should walk the forward flow backwards", func(t *testing.T) {
		cases := map[expedition.State]expedition.State{
			expedition.Preparing:  expedition.Planned,
			expedition.Ready:      expedition.Preparing,
			expedition.Loaded:     expedition.Ready,
			expedition.Dispatched: expedition.Loaded,
			expedition.Delivered:  expedition.Dispatched,
			expedition.Done:       expedition.Delivered,
		}

		for from, want := range cases {
			got, ok := from.Previous()

			assert.True(t, ok)
			assert.Equal(t, want, got)
		}
	})

	t.Run("should have no predecessor for planned", func(t *testing.T) {
		_, ok := expedition.Planned.Previous()

		assert.False(t, ok)
	})

	t.Run("should have no fixed predecessor for hold", func(t *testing.T) {
		_, ok := expedition.Hold.Previous()

		assert.False(t, ok)
	})
}

func TestState_IsForward(t *testing.T) {
	t.Run("should exclude hold from the forward flow", func(t *testing.T) {
		assert.True(t, expedition.Planned.IsForward())
		assert.True(t, expedition.Done.IsForward())
		assert.False(t, expedition.Hold.IsForward())
		assert.False(t, expedition.Unknown.IsForward())
	})
}
