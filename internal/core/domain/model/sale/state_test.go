package sale_test

import (
	"testing"

	"saleedit/internal/core/domain/model/sale"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseState(t *testing.T) {
	t.Run("should parse every known state", func(t *testing.T) {
		for _, s := range []sale.State{
			sale.StateDraft, sale.StateQuotation, sale.StateConfirmed,
			sale.StateProcessing, sale.StateDone, sale.StateCancelled,
		} {
			parsed, err := sale.ParseState(s.String())

			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("should reject unknown", func(t *testing.T) {
		_, err := sale.ParseState("unknown")
		require.Error(t, err)

		_, err = sale.ParseState("shipped")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"shipped" is not a valid state`)
	})
}

func TestState_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		from    sale.State
		apply   func(sale.State) (sale.State, error)
		want    sale.State
		wantErr bool
	}{
		{"quote draft", sale.StateDraft, sale.State.Quote, sale.StateQuotation, false},
		{"quote confirmed", sale.StateConfirmed, sale.State.Quote, sale.StateUnknown, true},
		{"confirm quotation", sale.StateQuotation, sale.State.Confirm, sale.StateConfirmed, false},
		{"confirm draft", sale.StateDraft, sale.State.Confirm, sale.StateUnknown, true},
		{"process confirmed", sale.StateConfirmed, sale.State.Process, sale.StateProcessing, false},
		{"process processing", sale.StateProcessing, sale.State.Process, sale.StateProcessing, false},
		{"process done", sale.StateDone, sale.State.Process, sale.StateUnknown, true},
		{"done processing", sale.StateProcessing, sale.State.Done, sale.StateDone, false},
		{"cancel quotation", sale.StateQuotation, sale.State.Cancel, sale.StateCancelled, false},
		{"cancel processing", sale.StateProcessing, sale.State.Cancel, sale.StateUnknown, true},
		{"draft cancelled", sale.StateCancelled, sale.State.Draft, sale.StateDraft, false},
		{"draft done", sale.StateDone, sale.State.Draft, sale.StateUnknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.apply(tt.from)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "cannot go from")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestState_IsFinal(t *testing.T) {
	assert.True(t, sale.StateDone.IsFinal())
	assert.True(t, sale.StateCancelled.IsFinal())
	assert.False(t, sale.StateProcessing.IsFinal())
	assert.False(t, sale.StateDraft.IsFinal())
}
