package statemachine

import "campus-canteen-api/models"

// Registration requests settle exactly once: SUBMITTED → APPROVED or
// SUBMITTED → REJECTED. Both outcomes are terminal.
var registrationTransitions = map[models.RegistrationStatus][]models.RegistrationStatus{
	models.RegistrationSubmitted: {models.RegistrationApproved, models.RegistrationRejected},
}

// CanDecide checks whether a registration request may move between states.
func CanDecide(from, to models.RegistrationStatus) error {
	for _, next := range registrationTransitions[from] {
		if next == to {
			return nil
		}
	}
	return ErrInvalidTransition
}

// RegistrationTerminal reports whether a status admits no further transitions.
func RegistrationTerminal(status models.RegistrationStatus) bool {
	return len(registrationTransitions[status]) == 0
}
