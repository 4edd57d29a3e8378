package models

import "time"

// RegistrationStatus represents the states of a vendor application
type RegistrationStatus string

const (
	RegistrationSubmitted RegistrationStatus = "SUBMITTED"
	RegistrationApproved  RegistrationStatus = "APPROVED"
	RegistrationRejected  RegistrationStatus = "REJECTED"
)

// RegistrationRequest is a vendor's application to open a cafeteria. The
// cafeteria itself is not created until the request is approved. There is at
// most one row per user: resubmitting replaces the previous application.
type RegistrationRequest struct {
	ID              uint               `json:"id" gorm:"primaryKey"`
	UserID          uint               `json:"user_id" gorm:"not null;index"`
	User            User               `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Email           string             `json:"email"`
	BusinessName    string             `json:"business_name" gorm:"not null"`
	BusinessAddress string             `json:"business_address" gorm:"not null"`
	ContactNumber   string             `json:"contact_number" gorm:"not null"`
	DocURL          string             `json:"doc_url"`
	Status          RegistrationStatus `json:"status" gorm:"not null;default:'SUBMITTED'"`
	ReviewedBy      *uint              `json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time         `json:"reviewed_at,omitempty"`
	RejectReason    string             `json:"reject_reason,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}
