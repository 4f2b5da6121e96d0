package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatusValid(t *testing.T) {
	for _, s := range []BookingStatus{
		BookingPending, BookingConfirmed, BookingDeclined,
		BookingCompleted, BookingCancelled, BookingNoShow,
	} {
		assert.True(t, s.Valid(), "%s should be a known status", s)
	}

	assert.False(t, BookingStatus("").Valid())
	assert.False(t, BookingStatus("ARCHIVED").Valid())
	assert.False(t, BookingStatus("pending").Valid(), "statuses are case sensitive")
}

func TestBookingStatusTerminal(t *testing.T) {
	assert.False(t, BookingPending.Terminal())
	assert.False(t, BookingConfirmed.Terminal())

	for _, s := range []BookingStatus{BookingDeclined, BookingCompleted, BookingCancelled, BookingNoShow} {
		assert.True(t, s.Terminal(), "%s should be terminal", s)
	}
}

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to BookingStatus }{
		{BookingPending, BookingConfirmed},
		{BookingPending, BookingDeclined},
		{BookingPending, BookingCancelled},
		{BookingConfirmed, BookingCompleted},
		{BookingConfirmed, BookingNoShow},
		{BookingConfirmed, BookingCancelled},
	}
	for _, tc := range allowed {
		assert.True(t, CanTransition(tc.from, tc.to), "%s -> %s should be allowed", tc.from, tc.to)
	}

	denied := []struct{ from, to BookingStatus }{
		{BookingPending, BookingCompleted},
		{BookingPending, BookingNoShow},
		{BookingConfirmed, BookingDeclined},
		{BookingConfirmed, BookingPending},
		{BookingCancelled, BookingCancelled},
		{BookingCancelled, BookingConfirmed},
		{BookingDeclined, BookingPending},
		{BookingCompleted, BookingNoShow},
		{BookingNoShow, BookingCompleted},
	}
	for _, tc := range denied {
		assert.False(t, CanTransition(tc.from, tc.to), "%s -> %s should be rejected", tc.from, tc.to)
	}
}

func TestBlocksSlot(t *testing.T) {
	for _, s := range []BookingStatus{BookingPending, BookingConfirmed, BookingCompleted, BookingNoShow} {
		assert.True(t, s.BlocksSlot(), "%s should block its window", s)
	}
	assert.False(t, BookingCancelled.BlocksSlot())
	assert.False(t, BookingDeclined.BlocksSlot())
}
