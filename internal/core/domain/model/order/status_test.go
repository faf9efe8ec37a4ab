package order_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Transition(t *testing.T) {
	allowed := map[order.Status]map[order.Action]order.Status{
		order.Pending:                     {order.Cancel: order.Cancelled},
		order.AwaitingPaymentConfirmation: {order.Cancel: order.Cancelled},
		order.Confirmed:                   {order.Cancel: order.Cancelled, order.Dispatch: order.Dispatched},
		order.Dispatched:                  {order.Deliver: order.Delivered, order.ReturnCancel: order.Cancelled},
	}

	for _, from := range append(order.Statuses(), order.Unknown) {
		for _, action := range append(order.Actions(), order.ActionUnknown) {
			t.Run(from.String()+"/"+action.String(), func(t *testing.T) {
				next, err := from.Transition(action)

				if want, ok := allowed[from][action]; ok {
					require.NoError(t, err)
					assert.Equal(t, want, next)
					return
				}

				require.ErrorIs(t, err, errs.ErrInvalidTransition)
				assert.Equal(t, from, next, "status must be unchanged")

				var transitionErr *errs.InvalidTransitionError
				require.ErrorAs(t, err, &transitionErr)
				assert.Equal(t, from.String(), transitionErr.From)
				assert.Equal(t, action.String(), transitionErr.Action)
			})
		}
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	for _, s := range order.Statuses() {
		terminal := s == order.Delivered || s == order.Cancelled
		assert.Equal(t, terminal, s.IsTerminal(), s.String())
		if terminal {
			assert.Empty(t, s.AllowedActions(), s.String())
		}
	}
}

func TestStatus_AllowedActions(t *testing.T) {
	assert.Equal(t, []order.Action{order.Cancel}, order.Pending.AllowedActions())
	assert.Equal(t, []order.Action{order.Cancel, order.Dispatch}, order.Confirmed.AllowedActions())
	assert.Equal(t, []order.Action{order.Deliver, order.ReturnCancel}, order.Dispatched.AllowedActions())
}

func TestAction_AttachSignedInvoice(t *testing.T) {
	assert.Equal(t, "signed-invoice", order.AttachSignedInvoice.String())
	assert.NotContains(t, order.Actions(), order.AttachSignedInvoice)
	assert.ErrorIs(t, order.Dispatched.ValidateTransition(order.AttachSignedInvoice), errs.ErrInvalidTransition)
}

func TestStatus_IsPreDispatch(t *testing.T) {
	assert.True(t, order.Pending.IsPreDispatch())
	assert.True(t, order.AwaitingPaymentConfirmation.IsPreDispatch())
	assert.True(t, order.Confirmed.IsPreDispatch())
	assert.False(t, order.Dispatched.IsPreDispatch())
	assert.False(t, order.Delivered.IsPreDispatch())
}

func TestParseStatus(t *testing.T) {
	cases := map[string]order.Status{
		"Pending":                       order.Pending,
		"awaiting_payment_confirmation": order.AwaitingPaymentConfirmation,
		"Awaiting Payment Confirmation": order.AwaitingPaymentConfirmation,
		"CONFIRMED":                     order.Confirmed,
		"dispatched":                    order.Dispatched,
		"Delivered":                     order.Delivered,
		"canceled":                      order.Cancelled,
		"Cancelled":                     order.Cancelled,
	}
	for in, want := range cases {
		got, err := order.ParseStatus(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	got, err := order.ParseStatus("Shipped")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Equal(t, order.Unknown, got)
}

func TestStatus_Validate(t *testing.T) {
	for _, s := range order.Statuses() {
		require.NoError(t, s.Validate())
	}
	require.ErrorIs(t, order.Unknown.Validate(), errs.ErrValueIsInvalid)
	require.ErrorIs(t, order.Status(42).Validate(), errs.ErrValueIsInvalid)
	assert.Equal(t, "Unknown", order.Status(42).String())
}
