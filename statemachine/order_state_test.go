package statemachine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus-canteen-api/models"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name  string
		from  models.OrderStatus
		to    models.OrderStatus
		actor string
		ok    bool
	}{
		{"owner starts cooking", models.StatusConfirmed, models.StatusCooking, "owner", true},
		{"owner marks ready", models.StatusCooking, models.StatusReadyForPickup, "owner", true},
		{"owner completes", models.StatusReadyForPickup, models.StatusCompleted, "owner", true},
		{"owner cancels confirmed", models.StatusConfirmed, models.StatusCancelled, "owner", true},
		{"owner cancels cooking", models.StatusCooking, models.StatusCancelled, "owner", true},
		{"student cancels confirmed", models.StatusConfirmed, models.StatusCancelled, "student", true},

		{"student cancels cooking", models.StatusCooking, models.StatusCancelled, "student", false},
		{"student starts cooking", models.StatusConfirmed, models.StatusCooking, "student", false},
		{"skip to ready", models.StatusConfirmed, models.StatusReadyForPickup, "owner", false},
		{"skip to completed", models.StatusConfirmed, models.StatusCompleted, "owner", false},
		{"backwards", models.StatusCooking, models.StatusConfirmed, "owner", false},
		{"cancel when ready", models.StatusReadyForPickup, models.StatusCancelled, "owner", false},
		{"cancel when completed", models.StatusCompleted, models.StatusCancelled, "owner", false},
		{"revive cancelled", models.StatusCancelled, models.StatusConfirmed, "owner", false},
		{"advance completed", models.StatusCompleted, models.StatusCooking, "owner", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanTransition(tt.from, tt.to, tt.actor)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidTransition)
			}
		})
	}
}

func TestValidTransitionsFrom(t *testing.T) {
	nexts := ValidTransitionsFrom(models.StatusConfirmed)
	assert.ElementsMatch(t, []models.OrderStatus{models.StatusCooking, models.StatusCancelled}, nexts)

	assert.Empty(t, ValidTransitionsFrom(models.StatusCompleted))
	assert.Empty(t, ValidTransitionsFrom(models.StatusCancelled))
}

// The union across actors must be exactly the five allowed moves.
func TestAllowedTransitionSet(t *testing.T) {
	type pair struct{ from, to models.OrderStatus }
	got := map[pair]bool{}
	for _, tr := range GetAllTransitions() {
		got[pair{tr.From, tr.To}] = true
	}

	want := []pair{
		{models.StatusConfirmed, models.StatusCooking},
		{models.StatusCooking, models.StatusReadyForPickup},
		{models.StatusReadyForPickup, models.StatusCompleted},
		{models.StatusConfirmed, models.StatusCancelled},
		{models.StatusCooking, models.StatusCancelled},
	}
	require.Len(t, got, len(want))
	for _, p := range want {
		assert.True(t, got[p], "missing transition %s -> %s", p.from, p.to)
	}
}

func TestCanDecide(t *testing.T) {
	assert.NoError(t, CanDecide(models.RegistrationSubmitted, models.RegistrationApproved))
	assert.NoError(t, CanDecide(models.RegistrationSubmitted, models.RegistrationRejected))

	assert.ErrorIs(t, CanDecide(models.RegistrationApproved, models.RegistrationRejected), ErrInvalidTransition)
	assert.ErrorIs(t, CanDecide(models.RegistrationRejected, models.RegistrationApproved), ErrInvalidTransition)
	assert.ErrorIs(t, CanDecide(models.RegistrationApproved, models.RegistrationSubmitted), ErrInvalidTransition)
}

func TestRegistrationTerminal(t *testing.T) {
	assert.False(t, RegistrationTerminal(models.RegistrationSubmitted))
	assert.True(t, RegistrationTerminal(models.RegistrationApproved))
	assert.True(t, RegistrationTerminal(models.RegistrationRejected))
}
