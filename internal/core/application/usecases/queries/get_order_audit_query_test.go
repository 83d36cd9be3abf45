package queries_test

import (
	"testing"

	"quickship/internal/core/application/usecases/queries"
	"quickship/internal/core/domain/model/kernel"
	"quickship/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrderAuditQuery_Valid(t *testing.T) {
	orderID := kernel.NewUUID()

	query, err := queries.NewGetOrderAuditQuery(orderID)

	require.NoError(t, err)
	assert.Equal(t, orderID, query.OrderID())
	require.NoError(t, query.Validate())
}

func TestNewGetOrderAuditQuery_EmptyOrderID_ReturnsError(t *testing.T) {
	_, err := queries.NewGetOrderAuditQuery(kernel.UUID{})

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestGetOrderAuditQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetOrderAuditQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetOrderAuditQueryIsNotConstructed)
}
