package guard_test

import (
	"errors"
	"testing"

	"saleedit/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expected := errors.New("line write not constructed")

		err := g.Validate(expected)

		require.Error(t, err)
		assert.Equal(t, expected, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.ErrorIs(t, err, guard.ErrDefaultConstructorGuard)
	})
}

// TestConstructorGuard_EmbeddedInValueObject shows the guard used the way the
// command and domain packages use it.
func TestConstructorGuard_EmbeddedInValueObject(t *testing.T) {
	type shipmentRef struct {
		number string
		guard  guard.ConstructorGuard
	}

	errNotConstructed := errors.New("shipmentRef must be created via newShipmentRef")

	newShipmentRef := func(number string) (shipmentRef, error) {
		if number == "" {
			return shipmentRef{}, errors.New("number is required")
		}
		return shipmentRef{number: number, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructed_value_validates", func(t *testing.T) {
		ref, err := newShipmentRef("OUT-0001")

		require.NoError(t, err)
		require.NoError(t, ref.guard.Validate(errNotConstructed))
		assert.Equal(t, "OUT-0001", ref.number)
	})

	t.Run("zero_value_fails", func(t *testing.T) {
		var ref shipmentRef

		assert.Equal(t, errNotConstructed, ref.guard.Validate(errNotConstructed))
	})

	t.Run("constructor_rejects_invalid_input", func(t *testing.T) {
		_, err := newShipmentRef("")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "number is required")
	})
}
