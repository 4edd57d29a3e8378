package registration

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"campus-canteen-api/cafeteria"
	"campus-canteen-api/models"
	"campus-canteen-api/statemachine"
)

// ErrValidation is returned when a required application field is blank.
// The caller's input is at fault; the operation is never retried.
var ErrValidation = errors.New("missing required field")

// SubmitInput is a vendor's application payload.
type SubmitInput struct {
	BusinessName    string
	BusinessAddress string
	ContactNumber   string
	DocURL          string
}

// Processor accepts vendor applications and settles them. Approval is the
// single trigger that turns a user into an owner and provisions their
// cafeteria.
type Processor struct {
	DB       *gorm.DB
	Registry *cafeteria.Registry
}

func NewProcessor(db *gorm.DB, registry *cafeteria.Registry) *Processor {
	return &Processor{DB: db, Registry: registry}
}

// Submit files a vendor application for userID with status SUBMITTED. Any
// earlier application by the same user is replaced, so there is never more
// than one row per user. An APPROVED application cannot be replaced: deleting
// it would leave the user an owner with no approved request backing the role.
// Safe to retry.
func (p *Processor) Submit(ctx context.Context, userID uint, email string, in SubmitInput) (*models.RegistrationRequest, error) {
	if strings.TrimSpace(in.BusinessName) == "" {
		return nil, fmt.Errorf("%w: business_name", ErrValidation)
	}
	if strings.TrimSpace(in.BusinessAddress) == "" {
		return nil, fmt.Errorf("%w: business_address", ErrValidation)
	}
	if strings.TrimSpace(in.ContactNumber) == "" {
		return nil, fmt.Errorf("%w: contact_number", ErrValidation)
	}

	req := models.RegistrationRequest{
		UserID:          userID,
		Email:           email,
		BusinessName:    in.BusinessName,
		BusinessAddress: in.BusinessAddress,
		ContactNumber:   in.ContactNumber,
		DocURL:          in.DocURL,
		Status:          models.RegistrationSubmitted,
	}

	// Delete-then-insert in one transaction keeps exactly one row per user
	// even across resubmissions. The status check lives in the same
	// transaction so an approval landing in between cannot be wiped out.
	err := p.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.RegistrationRequest
		err := tx.Where("user_id = ?", userID).First(&existing).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err == nil && existing.Status == models.RegistrationApproved {
			return statemachine.ErrInvalidTransition
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.RegistrationRequest{}).Error; err != nil {
			return err
		}
		return tx.Create(&req).Error
	})
	if errors.Is(err, statemachine.ErrInvalidTransition) {
		return nil, statemachine.ErrInvalidTransition
	}
	if err != nil {
		return nil, fmt.Errorf("submit registration for user %d: %w", userID, err)
	}
	return &req, nil
}

// GetForUser returns the user's current application, if any.
func (p *Processor) GetForUser(ctx context.Context, userID uint) (*models.RegistrationRequest, error) {
	var req models.RegistrationRequest
	if err := p.DB.WithContext(ctx).Where("user_id = ?", userID).First(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

// Decide settles a submitted application. Approval flips the applicant's role
// to owner in the same logical operation and then provisions their cafeteria.
// Re-issuing the same approved outcome is tolerated as an idempotent re-run:
// it re-triggers provisioning (the crash-remediation path) and creates
// nothing new. Every other move out of a terminal state fails with
// statemachine.ErrInvalidTransition.
func (p *Processor) Decide(ctx context.Context, requestID uint, outcome models.RegistrationStatus, reviewerID uint, reason string) (*models.RegistrationRequest, error) {
	if outcome != models.RegistrationApproved && outcome != models.RegistrationRejected {
		return nil, fmt.Errorf("%w: outcome must be APPROVED or REJECTED", ErrValidation)
	}

	var req models.RegistrationRequest
	if err := p.DB.WithContext(ctx).First(&req, requestID).Error; err != nil {
		return nil, err
	}

	if req.Status != outcome {
		if err := statemachine.CanDecide(req.Status, outcome); err != nil {
			return nil, err
		}
	} else if req.Status != models.RegistrationApproved {
		// Re-issuing REJECTED has no remediation to re-run.
		return nil, statemachine.ErrInvalidTransition
	}

	if req.Status == models.RegistrationSubmitted {
		now := time.Now()
		err := p.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			updates := map[string]interface{}{
				"status":      outcome,
				"reviewed_by": reviewerID,
				"reviewed_at": now,
			}
			if outcome == models.RegistrationRejected {
				updates["reject_reason"] = reason
			}
			if err := tx.Model(&models.RegistrationRequest{}).Where("id = ?", req.ID).Updates(updates).Error; err != nil {
				return err
			}
			if outcome == models.RegistrationApproved {
				// Role and request status move together so the two never drift.
				if err := tx.Model(&models.User{}).Where("id = ?", req.UserID).
					Update("role", models.RoleOwner).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("decide registration %d: %w", req.ID, err)
		}
		req.Status = outcome
		req.ReviewedBy = &reviewerID
		req.ReviewedAt = &now
		if outcome == models.RegistrationRejected {
			req.RejectReason = reason
		}
	}

	// Provisioning is a separate write, not part of the decision transaction.
	// A crash after approval leaves an approved request with no cafeteria;
	// re-running Decide(APPROVED) lands here again and repairs it.
	if outcome == models.RegistrationApproved {
		if _, err := p.Registry.ProvisionIfAbsent(ctx, req.UserID, cafeteria.Defaults{
			Name:        req.BusinessName,
			Description: "Pre-orders at " + req.BusinessAddress,
			DocURL:      req.DocURL,
		}); err != nil {
			return nil, err
		}
	}

	return &req, nil
}
