package statemachine

import (
	"errors"

	"campus-canteen-api/models"
)

// ErrInvalidTransition is returned for any move outside the allowed state
// graph, for both order and registration lifecycles.
var ErrInvalidTransition = errors.New("invalid state transition")

// Transition defines a valid state change and who can perform it
type Transition struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor string // "owner", "student"
}

// validTransitions is the authoritative state machine definition. The
// fulfillment sequence is forward-only; cancellation is a side exit allowed
// only before the food is ready.
var validTransitions = []Transition{
	// Owner moves the order through the kitchen
	{From: models.StatusConfirmed, To: models.StatusCooking, Actor: "owner"},
	{From: models.StatusCooking, To: models.StatusReadyForPickup, Actor: "owner"},
	{From: models.StatusReadyForPickup, To: models.StatusCompleted, Actor: "owner"},
	// Owner may cancel before the order is ready
	{From: models.StatusConfirmed, To: models.StatusCancelled, Actor: "owner"},
	{From: models.StatusCooking, To: models.StatusCancelled, Actor: "owner"},
	// Student may cancel only while the order is still just confirmed
	{From: models.StatusConfirmed, To: models.StatusCancelled, Actor: "student"},
}

// transitionKey is used to look up valid transitions quickly
type transitionKey struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor string
}

// Build a lookup map for O(1) validation
var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	seen := map[models.OrderStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks if a given actor can move an order from one state to another
func CanTransition(from, to models.OrderStatus, actor string) error {
	if transitionMap[transitionKey{From: from, To: to, Actor: actor}] {
		return nil
	}
	return ErrInvalidTransition
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}
