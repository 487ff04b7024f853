package kernel_test

import (
	"testing"
	"time"

	"expedition/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDate(t *testing.T) {
	t.Run("should create a valid date", func(t *testing.T) {
		d, err := kernel.NewDate(2026, time.February, 10)

		require.NoError(t, err)
		assert.NoError(t, d.Validate())
		assert.Equal(t, "2026-02-10", d.String())
	})

	t.Run("should normalize to midnight UTC", func(t *testing.T) {
		d, err := kernel.NewDate(2026, time.February, 10)

		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC), d.Time())
	})
}

func TestDateFromTime(t *testing.T) {
	t.Run("should discard time of day", func(t *testing.T) {
		morning := time.Date(2026, time.February, 10, 8, 15, 0, 0, time.UTC)
		evening := time.Date(2026, time.February, 10, 23, 59, 59, 0, time.UTC)

		d1, err := kernel.DateFromTime(morning)
		require.NoError(t, err)
		d2, err := kernel.DateFromTime(evening)
		require.NoError(t, err)

		assert.True(t, d1.IsEqual(d2))
	})

	t.Run("should reject zero time", func(t *testing.T) {
		_, err := kernel.DateFromTime(time.Time{})

		require.Error(t, err)
	})
}

func TestDateFromString(t *testing.T) {
	t.Run("should parse canonical form", func(t *testing.T) {
		d, err := kernel.DateFromString("2026-02-10")

		require.NoError(t, err)
		assert.Equal(t, "2026-02-10", d.String())
	})

	t.Run("should reject malformed input", func(t *testing.T) {
		_, err := kernel.DateFromString("10.02.2026")

		require.Error(t, err)
	})
}

func TestDate_AddDays(t *testing.T) {
	d, err := kernel.NewDate(2026, time.February, 28)
	require.NoError(t, err)

	assert.Equal(t, "2026-03-01", d.AddDays(1).String())
	assert.Equal(t, "2026-02-27", d.AddDays(-1).String())
}

func TestDate_Validate(t *testing.T) {
	t.Run("zero value is invalid", func(t *testing.T) {
		var d kernel.Date

		require.Error(t, d.Validate())
	})
}
