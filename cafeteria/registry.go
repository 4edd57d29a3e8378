package cafeteria

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"campus-canteen-api/models"
)

// Defaults carries the initial storefront attributes used when a cafeteria is
// provisioned for a freshly approved owner.
type Defaults struct {
	Name        string
	Description string
	Category    string
	DocURL      string
}

// Registry is the durable catalog of vendor storefronts.
type Registry struct {
	DB *gorm.DB
}

func NewRegistry(db *gorm.DB) *Registry {
	return &Registry{DB: db}
}

// ProvisionIfAbsent creates a cafeteria for ownerID unless one already
// exists. The owner ID is the idempotency key, so re-running after a crash
// between approval and provisioning is safe. The check and the insert are two
// steps, not one atomic unit: concurrent callers racing on the lookup can
// both observe "absent" and both insert. A unique index on owner_id at the
// store level would close that hole; this code does not assume one.
func (r *Registry) ProvisionIfAbsent(ctx context.Context, ownerID uint, defaults Defaults) (*models.Cafeteria, error) {
	var existing models.Cafeteria
	err := r.DB.WithContext(ctx).Where("owner_id = ?", ownerID).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup cafeteria for owner %d: %w", ownerID, err)
	}

	caf := models.Cafeteria{
		OwnerID:                ownerID,
		Name:                   defaults.Name,
		Description:            defaults.Description,
		Category:               defaults.Category,
		OwnerIdentificationURL: defaults.DocURL,
		IsOpen:                 true,
	}
	if err := r.DB.WithContext(ctx).Create(&caf).Error; err != nil {
		return nil, fmt.Errorf("provision cafeteria for owner %d: %w", ownerID, err)
	}
	return &caf, nil
}

// GetByOwner returns the cafeteria owned by ownerID.
func (r *Registry) GetByOwner(ctx context.Context, ownerID uint) (*models.Cafeteria, error) {
	var caf models.Cafeteria
	if err := r.DB.WithContext(ctx).Preload("MenuItems").Where("owner_id = ?", ownerID).First(&caf).Error; err != nil {
		return nil, err
	}
	return &caf, nil
}

// SetOpen flips the storefront open/closed. Owner-only; orders already
// confirmed are not touched.
func (r *Registry) SetOpen(ctx context.Context, cafeteriaID, ownerID uint, open bool) error {
	result := r.DB.WithContext(ctx).Model(&models.Cafeteria{}).
		Where("id = ? AND owner_id = ?", cafeteriaID, ownerID).
		Update("is_open", open)
	if result.Error != nil {
		return fmt.Errorf("set cafeteria %d open=%t: %w", cafeteriaID, open, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
