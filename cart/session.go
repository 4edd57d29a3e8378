package cart

import (
	"errors"
	"time"

	"campus-canteen-api/models"
)

var (
	// ErrCrossVendor is returned when an item from a different cafeteria is
	// added to a session bound to another one.
	ErrCrossVendor = errors.New("menu item belongs to a different cafeteria")
	ErrBadQuantity = errors.New("quantity must be at least 1")
)

// Line is one selected menu item with its quantity and price snapshot.
type Line struct {
	MenuItemID uint
	Name       string
	Price      float64
	Quantity   int
}

// Snapshot is the immutable result of a session, consumed by checkout.
// The session that produced it is discarded afterwards.
type Snapshot struct {
	CafeteriaID uint
	Lines       []Line
	PickupTime  time.Time
	Notes       string
}

// Session is an in-progress order draft bound to a single cafeteria. It lives
// entirely on the client side of the checkout boundary and is never persisted.
type Session struct {
	cafeteriaID uint
	lines       []Line
	pickupTime  time.Time
	notes       string
}

func New(cafeteriaID uint) *Session {
	return &Session{cafeteriaID: cafeteriaID}
}

func (s *Session) CafeteriaID() uint { return s.cafeteriaID }

// AddItem adds qty of a menu item. Adding the same item again increases its
// quantity. Items from any other cafeteria are rejected.
func (s *Session) AddItem(item models.MenuItem, qty int) error {
	if item.CafeteriaID != s.cafeteriaID {
		return ErrCrossVendor
	}
	if qty < 1 {
		return ErrBadQuantity
	}
	for i := range s.lines {
		if s.lines[i].MenuItemID == item.ID {
			s.lines[i].Quantity += qty
			return nil
		}
	}
	s.lines = append(s.lines, Line{
		MenuItemID: item.ID,
		Name:       item.Name,
		Price:      item.Price,
		Quantity:   qty,
	})
	return nil
}

// RemoveItem drops a menu item from the session entirely. Removing an item
// that was never added is a no-op.
func (s *Session) RemoveItem(menuItemID uint) {
	for i := range s.lines {
		if s.lines[i].MenuItemID == menuItemID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return
		}
	}
}

func (s *Session) SetPickupTime(t time.Time) {
	s.pickupTime = t
}

func (s *Session) SetNotes(notes string) {
	s.notes = notes
}

func (s *Session) Len() int { return len(s.lines) }

// Snapshot copies the session state into an immutable value. Later mutations
// of the session do not leak into a snapshot already taken.
func (s *Session) Snapshot() Snapshot {
	lines := make([]Line, len(s.lines))
	copy(lines, s.lines)
	return Snapshot{
		CafeteriaID: s.cafeteriaID,
		Lines:       lines,
		PickupTime:  s.pickupTime,
		Notes:       s.notes,
	}
}
