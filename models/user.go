package models

import (
	"time"
)

// UserRole defines allowed roles in the system
type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleOwner   UserRole = "owner"
	RoleAdmin   UserRole = "admin"
)

// User is the durable profile record. Role is flipped to owner only by an
// approved registration request, never by the user directly.
type User struct {
	ID           uint     `json:"id" gorm:"primaryKey"`
	Name         string   `json:"name" gorm:"not null"`
	Email        string   `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string   `json:"-" gorm:"not null"`
	Role         UserRole `json:"role" gorm:"not null;default:'student'"`
	Phone        string   `json:"phone"`
	AvatarURL    string   `json:"avatar_url"`

	// Notification preferences
	EmailNotifications bool `json:"email_notifications" gorm:"default:true"`
	OrderUpdates       bool `json:"order_updates" gorm:"default:true"`
	Promotions         bool `json:"promotions" gorm:"default:false"`

	// Dietary preferences
	DietaryType         string   `json:"dietary_type"`
	SpiceLevel          string   `json:"spice_level"`
	FavouriteCategories []string `json:"favourite_categories" gorm:"serializer:json"`
	FavouriteCafeterias []uint   `json:"favourite_cafeterias" gorm:"serializer:json"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
