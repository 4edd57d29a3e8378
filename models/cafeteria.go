package models

import "time"

type Cafeteria struct {
	ID                     uint       `json:"id" gorm:"primaryKey"`
	OwnerID                uint       `json:"owner_id" gorm:"not null;index"`
	Owner                  User       `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Name                   string     `json:"name" gorm:"not null"`
	Description            string     `json:"description"`
	Category               string     `json:"category"`
	IsOpen                 bool       `json:"is_open" gorm:"default:true"`
	OwnerIdentificationURL string     `json:"owner_identification_url"`
	MenuItems              []MenuItem `json:"menu_items,omitempty" gorm:"foreignKey:CafeteriaID"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
}

type MenuItem struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	CafeteriaID uint      `json:"cafeteria_id" gorm:"not null"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	Price       float64   `json:"price" gorm:"not null"`
	Category    string    `json:"category"`
	IsAvailable bool      `json:"is_available" gorm:"default:true"`
	IsVeg       bool      `json:"is_veg" gorm:"default:false"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
