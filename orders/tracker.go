package orders

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"campus-canteen-api/models"
	"campus-canteen-api/notify"
	"campus-canteen-api/statemachine"
)

// Tracker exposes and advances the lifecycle of durable orders.
type Tracker struct {
	DB       *gorm.DB
	Notifier notify.Notifier
}

func NewTracker(db *gorm.DB, notifier notify.Notifier) *Tracker {
	return &Tracker{DB: db, Notifier: notifier}
}

// Advance moves an order to next if the state machine allows that actor to do
// so, and records the transition in the history table.
func (t *Tracker) Advance(ctx context.Context, orderID uint, next models.OrderStatus, actor string, actorID uint, note string) (*models.Order, error) {
	var order models.Order
	if err := t.DB.WithContext(ctx).First(&order, orderID).Error; err != nil {
		return nil, err
	}

	if err := statemachine.CanTransition(order.Status, next, actor); err != nil {
		return nil, err
	}

	prev := order.Status
	err := t.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&order).Update("status", next).Error; err != nil {
			return err
		}
		history := models.OrderStatusHistory{
			OrderID:    order.ID,
			FromStatus: prev,
			ToStatus:   next,
			ChangedBy:  actorID,
			Note:       note,
		}
		return tx.Create(&history).Error
	})
	if err != nil {
		return nil, fmt.Errorf("advance order %d to %s: %w", orderID, next, err)
	}
	order.Status = next

	var student models.User
	if err := t.DB.WithContext(ctx).First(&student, order.StudentID).Error; err == nil {
		t.Notifier.OrderStatusChanged(&order, &student, prev, next)
	}

	return &order, nil
}

// ListForStudent returns the student's orders, most recent first. Each call
// re-queries the store, so the result reflects current state.
func (t *Tracker) ListForStudent(ctx context.Context, studentID uint) ([]models.Order, error) {
	var list []models.Order
	err := t.DB.WithContext(ctx).
		Preload("Items").Preload("Cafeteria").
		Where("student_id = ?", studentID).
		Order("created_at desc").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("list orders for student %d: %w", studentID, err)
	}
	return list, nil
}

// ListForCafeteria returns a cafeteria's orders, optionally filtered by
// status, most recent first.
func (t *Tracker) ListForCafeteria(ctx context.Context, cafeteriaID uint, status models.OrderStatus) ([]models.Order, error) {
	query := t.DB.WithContext(ctx).
		Preload("Items").Preload("Student").
		Where("cafeteria_id = ?", cafeteriaID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var list []models.Order
	if err := query.Order("created_at desc").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list orders for cafeteria %d: %w", cafeteriaID, err)
	}
	return list, nil
}

// Get loads one order with its items and history.
func (t *Tracker) Get(ctx context.Context, orderID uint) (*models.Order, error) {
	var order models.Order
	err := t.DB.WithContext(ctx).
		Preload("Items").Preload("Cafeteria").Preload("StatusHistory").
		First(&order, orderID).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}
