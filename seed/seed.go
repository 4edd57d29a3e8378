package seed

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"campus-canteen-api/identity"
	"campus-canteen-api/models"
)

// Run provisions the admin account plus a demo student, owner, and cafeteria
// with a small menu. Skips anything that already exists, so it is safe to run
// on every startup.
func Run(db *gorm.DB) {
	provider := identity.NewLocalProvider(db)

	admin := ensureAccount(db, provider, "admin@campus.edu", "admin123", "Canteen Admin", models.RoleAdmin)
	student := ensureAccount(db, provider, "student@campus.edu", "student123", "Demo Student", models.RoleStudent)
	owner := ensureAccount(db, provider, "owner@campus.edu", "owner123", "Demo Owner", models.RoleOwner)
	if admin == nil || student == nil || owner == nil {
		return
	}

	var caf models.Cafeteria
	err := db.Where("owner_id = ?", owner.ID).First(&caf).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		caf = models.Cafeteria{
			OwnerID:     owner.ID,
			Name:        "North Block Canteen",
			Description: "Snacks and thalis between lectures",
			Category:    "South Indian",
			IsOpen:      true,
			MenuItems: []models.MenuItem{
				{Name: "Masala Dosa", Price: 60, Category: "Breakfast", IsAvailable: true, IsVeg: true},
				{Name: "Veg Thali", Price: 90, Category: "Lunch", IsAvailable: true, IsVeg: true},
				{Name: "Chicken Roll", Price: 80, Category: "Snacks", IsAvailable: true},
			},
		}
		if err := db.Create(&caf).Error; err != nil {
			log.Println("seed: failed to create demo cafeteria:", err)
			return
		}
		req := models.RegistrationRequest{
			UserID:          owner.ID,
			Email:           owner.Email,
			BusinessName:    caf.Name,
			BusinessAddress: "North Block, Main Campus",
			ContactNumber:   "9876543210",
			Status:          models.RegistrationApproved,
		}
		if err := db.Create(&req).Error; err != nil {
			log.Println("seed: failed to create demo registration:", err)
		}
	}

	log.Println("🌱 Seeded demo accounts (admin/student/owner @campus.edu)")
}

func ensureAccount(db *gorm.DB, provider identity.Provider, email, password, name string, role models.UserRole) *models.User {
	var existing models.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		return &existing
	}
	user, err := provider.CreateAccount(email, password, name, role)
	if err != nil {
		log.Printf("seed: failed to create %s: %v", email, err)
		return nil
	}
	return user
}
