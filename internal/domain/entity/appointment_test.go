package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppointmentStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    AppointmentStatus
		to      AppointmentStatus
		allowed bool
	}{
		{"pending to confirmed", AppointmentStatusPending, AppointmentStatusConfirmed, true},
		{"pending to cancelled", AppointmentStatusPending, AppointmentStatusCancelled, true},
		{"pending to completed", AppointmentStatusPending, AppointmentStatusCompleted, false},
		{"confirmed to completed", AppointmentStatusConfirmed, AppointmentStatusCompleted, true},
		{"confirmed to cancelled", AppointmentStatusConfirmed, AppointmentStatusCancelled, true},
		{"confirmed to pending", AppointmentStatusConfirmed, AppointmentStatusPending, false},
		{"cancelled to pending", AppointmentStatusCancelled, AppointmentStatusPending, false},
		{"cancelled to confirmed", AppointmentStatusCancelled, AppointmentStatusConfirmed, false},
		{"cancelled to cancelled", AppointmentStatusCancelled, AppointmentStatusCancelled, false},
		{"completed to pending", AppointmentStatusCompleted, AppointmentStatusPending, false},
		{"completed to cancelled", AppointmentStatusCompleted, AppointmentStatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestAppointmentStatusTerminal(t *testing.T) {
	assert.False(t, AppointmentStatusPending.IsTerminal())
	assert.False(t, AppointmentStatusConfirmed.IsTerminal())
	assert.True(t, AppointmentStatusCancelled.IsTerminal())
	assert.True(t, AppointmentStatusCompleted.IsTerminal())
}

func TestAppointmentStatusIsValid(t *testing.T) {
	assert.True(t, AppointmentStatusPending.IsValid())
	assert.True(t, AppointmentStatusCompleted.IsValid())
	assert.False(t, AppointmentStatus("rescheduled").IsValid())
	assert.False(t, AppointmentStatus("").IsValid())
}

func TestCanReschedule(t *testing.T) {
	a := &Appointment{Status: AppointmentStatusPending}
	assert.True(t, a.CanReschedule())

	a.Status = AppointmentStatusConfirmed
	assert.True(t, a.CanReschedule())

	a.Status = AppointmentStatusCancelled
	assert.False(t, a.CanReschedule())

	a.Status = AppointmentStatusCompleted
	assert.False(t, a.CanReschedule())
}
