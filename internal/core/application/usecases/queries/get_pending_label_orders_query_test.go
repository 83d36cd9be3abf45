package queries_test

import (
	"testing"

	"quickship/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetPendingLabelOrdersQuery_Valid(t *testing.T) {
	query := queries.NewGetPendingLabelOrdersQuery()
	err := query.Validate()
	require.NoError(t, err)
}

func TestGetPendingLabelOrdersQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetPendingLabelOrdersQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetPendingLabelOrdersQueryIsNotConstructed)
}
