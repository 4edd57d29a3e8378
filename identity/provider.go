package identity

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"campus-canteen-api/models"
)

// Provider is the identity-provider contract consumed by onboarding
// utilities only; the live workflow never calls it.
type Provider interface {
	CreateAccount(email, password, name string, role models.UserRole) (*models.User, error)
	ListAccounts() ([]models.User, error)
	UpdateCredentials(email, newPassword string) error
}

// localProvider backs accounts with the users table and bcrypt.
type localProvider struct {
	db *gorm.DB
}

func NewLocalProvider(db *gorm.DB) Provider {
	return &localProvider{db: db}
}

func (p *localProvider) CreateAccount(email, password, name string, role models.UserRole) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password for %s: %w", email, err)
	}
	user := models.User{
		Name:               name,
		Email:              email,
		PasswordHash:       string(hash),
		Role:               role,
		EmailNotifications: true,
		OrderUpdates:       true,
	}
	if err := p.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("create account %s: %w", email, err)
	}
	return &user, nil
}

func (p *localProvider) ListAccounts() ([]models.User, error) {
	var users []models.User
	if err := p.db.Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return users, nil
}

func (p *localProvider) UpdateCredentials(email, newPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password for %s: %w", email, err)
	}
	result := p.db.Model(&models.User{}).Where("email = ?", email).
		Update("password_hash", string(hash))
	if result.Error != nil {
		return fmt.Errorf("update credentials for %s: %w", email, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
