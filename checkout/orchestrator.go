package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"campus-canteen-api/cart"
	"campus-canteen-api/models"
	"campus-canteen-api/notify"
)

var (
	ErrEmptyCart         = errors.New("cart has no items")
	ErrInvalidPickupTime = errors.New("pickup time must be in the future")
	ErrCafeteriaClosed   = errors.New("cafeteria is currently closed")
)

// Orchestrator turns a cart snapshot into a durable order. It is the only
// write boundary between the ephemeral cart and durable order state.
type Orchestrator struct {
	DB       *gorm.DB
	Notifier notify.Notifier
}

func NewOrchestrator(db *gorm.DB, notifier notify.Notifier) *Orchestrator {
	return &Orchestrator{DB: db, Notifier: notifier}
}

// Checkout creates one CONFIRMED order from the snapshot, capturing its item
// lines and pickup time verbatim. The order, its items, and the initial
// history row are written in a single transaction; nothing is persisted on
// failure. Not safe to blindly retry on an unknown outcome: a second call
// would place a second order.
func (o *Orchestrator) Checkout(ctx context.Context, studentID uint, snap cart.Snapshot) (*models.Order, error) {
	if len(snap.Lines) == 0 {
		return nil, ErrEmptyCart
	}
	if !snap.PickupTime.After(time.Now()) {
		return nil, ErrInvalidPickupTime
	}
	for _, line := range snap.Lines {
		if line.Quantity < 1 {
			return nil, cart.ErrBadQuantity
		}
	}

	var caf models.Cafeteria
	if err := o.DB.WithContext(ctx).First(&caf, snap.CafeteriaID).Error; err != nil {
		return nil, err
	}
	if !caf.IsOpen {
		return nil, ErrCafeteriaClosed
	}

	var total float64
	items := make([]models.OrderItem, 0, len(snap.Lines))
	for _, line := range snap.Lines {
		total += line.Price * float64(line.Quantity)
		items = append(items, models.OrderItem{
			MenuItemID: line.MenuItemID,
			Name:       line.Name,
			Price:      line.Price,
			Quantity:   line.Quantity,
		})
	}

	order := models.Order{
		StudentID:   studentID,
		CafeteriaID: snap.CafeteriaID,
		Status:      models.StatusConfirmed,
		TotalPrice:  total,
		PickupTime:  snap.PickupTime,
		Notes:       snap.Notes,
		Items:       items,
	}

	err := o.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		history := models.OrderStatusHistory{
			OrderID:   order.ID,
			ToStatus:  models.StatusConfirmed,
			ChangedBy: studentID,
			Note:      "Order placed by student",
		}
		return tx.Create(&history).Error
	})
	if err != nil {
		return nil, fmt.Errorf("checkout for student %d: %w", studentID, err)
	}

	// Fired only after the commit; a lost notification never unwinds the order.
	var student models.User
	if err := o.DB.WithContext(ctx).First(&student, studentID).Error; err == nil {
		o.Notifier.OrderCreated(&order, &student)
	}

	return &order, nil
}
