package models

import "time"

// OrderStatus represents all possible states of a pre-order
type OrderStatus string

const (
	StatusConfirmed      OrderStatus = "CONFIRMED"
	StatusCooking        OrderStatus = "COOKING"
	StatusReadyForPickup OrderStatus = "READY_FOR_PICKUP"
	StatusCompleted      OrderStatus = "COMPLETED"
	StatusCancelled      OrderStatus = "CANCELLED"
)

// Order is a confirmed pre-order. The item snapshot and pickup time are fixed
// at checkout; only the status moves afterwards.
type Order struct {
	ID            uint                 `json:"id" gorm:"primaryKey"`
	StudentID     uint                 `json:"student_id" gorm:"not null;index"`
	Student       User                 `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	CafeteriaID   uint                 `json:"cafeteria_id" gorm:"not null;index"`
	Cafeteria     Cafeteria            `json:"cafeteria,omitempty" gorm:"foreignKey:CafeteriaID"`
	Status        OrderStatus          `json:"status" gorm:"not null;default:'CONFIRMED'"`
	TotalPrice    float64              `json:"total_price"`
	PickupTime    time.Time            `json:"pickup_time" gorm:"not null"`
	Notes         string               `json:"notes"`
	Items         []OrderItem          `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	StatusHistory []OrderStatusHistory `json:"status_history,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

type OrderItem struct {
	ID         uint    `json:"id" gorm:"primaryKey"`
	OrderID    uint    `json:"order_id" gorm:"not null"`
	MenuItemID uint    `json:"menu_item_id" gorm:"not null"`
	Quantity   int     `json:"quantity" gorm:"not null"`
	Price      float64 `json:"price" gorm:"not null"` // snapshot price at time of order
	Name       string  `json:"name"`                  // snapshot name
}

// OrderStatusHistory tracks every status change
type OrderStatusHistory struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	OrderID    uint        `json:"order_id" gorm:"not null"`
	FromStatus OrderStatus `json:"from_status"`
	ToStatus   OrderStatus `json:"to_status" gorm:"not null"`
	ChangedBy  uint        `json:"changed_by"` // user ID who triggered the transition
	Note       string      `json:"note"`
	CreatedAt  time.Time   `json:"created_at"`
}
