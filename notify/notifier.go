package notify

import (
	"log"

	"campus-canteen-api/models"
)

// Notifier is the boundary to the external notification collaborator.
// Dispatch is best-effort: implementations must never fail in a way that
// rolls back an already-committed state change, so the methods return nothing.
type Notifier interface {
	OrderCreated(order *models.Order, student *models.User)
	OrderStatusChanged(order *models.Order, student *models.User, from, to models.OrderStatus)
}

// LogNotifier writes notifications to the process log, honoring the
// student's notification preferences.
type LogNotifier struct{}

func (LogNotifier) OrderCreated(order *models.Order, student *models.User) {
	if student == nil || !student.EmailNotifications {
		return
	}
	log.Printf("notify: order #%d confirmed for %s, pickup at %s",
		order.ID, student.Email, order.PickupTime.Format("15:04"))
}

func (LogNotifier) OrderStatusChanged(order *models.Order, student *models.User, from, to models.OrderStatus) {
	if student == nil || !student.EmailNotifications || !student.OrderUpdates {
		return
	}
	log.Printf("notify: order #%d for %s moved %s -> %s", order.ID, student.Email, from, to)
}

// Discard drops every notification. Used in tests.
type Discard struct{}

func (Discard) OrderCreated(*models.Order, *models.User) {}

func (Discard) OrderStatusChanged(*models.Order, *models.User, models.OrderStatus, models.OrderStatus) {
}
