package queries_test

import (
	"testing"

	"expedition/internal/core/application/usecases/queries"
	"expedition/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetExpeditionQuery_Valid(t *testing.T) {
	query, err := queries.NewGetExpeditionQuery(kernel.NewUUID())
	require.NoError(t, err)
	require.NoError(t, query.Validate())
}

func TestNewGetExpeditionQuery_EmptyID(t *testing.T) {
	_, err := queries.NewGetExpeditionQuery(kernel.UUID{})
	require.Error(t, err)
}

func TestGetExpeditionQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetExpeditionQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetExpeditionQueryIsNotConstructed)
}
