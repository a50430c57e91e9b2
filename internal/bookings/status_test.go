package bookings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoomTransitions(t *testing.T) {
	allowed := []struct{ from, to Status }{
		{StatusPending, StatusConfirmed},
		{StatusPending, StatusCancelled},
		{StatusConfirmed, StatusCheckedIn},
		{StatusConfirmed, StatusCancelled},
		{StatusCheckedIn, StatusCheckedOut},
		{StatusCheckedIn, StatusCancelled},
	}
	for _, tc := range allowed {
		assert.True(t, CanTransition("ROOM", tc.from, tc.to), "%s -> %s should be allowed", tc.from, tc.to)
	}

	denied := []struct{ from, to Status }{
		{StatusPending, StatusCheckedIn},
		{StatusPending, StatusCheckedOut},
		{StatusConfirmed, StatusCheckedOut},
		{StatusConfirmed, StatusCompleted},
		{StatusCheckedOut, StatusCheckedIn},
		{StatusCheckedOut, StatusCancelled},
		{StatusCancelled, StatusConfirmed},
		{StatusCheckedIn, StatusConfirmed},
	}
	for _, tc := range denied {
		assert.False(t, CanTransition("ROOM", tc.from, tc.to), "%s -> %s should be denied", tc.from, tc.to)
	}
}

func TestVenueTransitions(t *testing.T) {
	for _, category := range []string{"BANQUET", "TABLE"} {
		assert.True(t, CanTransition(category, StatusPending, StatusConfirmed))
		assert.True(t, CanTransition(category, StatusPending, StatusCancelled))
		assert.True(t, CanTransition(category, StatusConfirmed, StatusCompleted))
		assert.True(t, CanTransition(category, StatusConfirmed, StatusCancelled))

		// No check-in flow outside rooms
		assert.False(t, CanTransition(category, StatusConfirmed, StatusCheckedIn))
		assert.False(t, CanTransition(category, StatusCompleted, StatusCancelled))
		assert.False(t, CanTransition(category, StatusCancelled, StatusConfirmed))
	}
}

func TestStatusPredicates(t *testing.T) {
	assert.True(t, StatusPending.IsActive())
	assert.True(t, StatusConfirmed.IsActive())
	assert.True(t, StatusCheckedIn.IsActive())
	assert.False(t, StatusCheckedOut.IsActive())
	assert.False(t, StatusCompleted.IsActive())
	assert.False(t, StatusCancelled.IsActive())

	assert.True(t, StatusPending.CanBeCancelled())
	assert.True(t, StatusConfirmed.CanBeCancelled())
	assert.False(t, StatusCheckedIn.CanBeCancelled())
	assert.False(t, StatusCancelled.CanBeCancelled())

	assert.True(t, StatusCheckedOut.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())

	assert.False(t, Status("UNKNOWN").IsValid())
	assert.True(t, StatusCheckedIn.IsValid())
}

func TestPaymentTransitions(t *testing.T) {
	assert.True(t, CanTransitionPayment(PaymentPending, PaymentCompleted))
	assert.True(t, CanTransitionPayment(PaymentPending, PaymentFailed))
	assert.True(t, CanTransitionPayment(PaymentCompleted, PaymentRefunded))

	assert.False(t, CanTransitionPayment(PaymentPending, PaymentRefunded))
	assert.False(t, CanTransitionPayment(PaymentCompleted, PaymentPending))
	assert.False(t, CanTransitionPayment(PaymentFailed, PaymentCompleted))
	assert.False(t, CanTransitionPayment(PaymentRefunded, PaymentPending))
}
