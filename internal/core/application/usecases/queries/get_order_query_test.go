package queries_test

import (
	"testing"

	"saleedit/internal/core/application/usecases/queries"
	"saleedit/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrderQuery_Valid(t *testing.T) {
	id := kernel.NewUUID()

	query, err := queries.NewGetOrderQuery(id)

	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, id, query.OrderID())
}

func TestNewGetOrderQuery_RejectsZeroID(t *testing.T) {
	_, err := queries.NewGetOrderQuery(kernel.UUID{})

	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestGetOrderQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetOrderQuery{}

	err := query.Validate()

	require.ErrorIs(t, err, queries.ErrGetOrderQueryIsNotConstructed)
}
