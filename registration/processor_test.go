package registration_test

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"campus-canteen-api/cafeteria"
	"campus-canteen-api/config"
	"campus-canteen-api/models"
	"campus-canteen-api/registration"
	"campus-canteen-api/statemachine"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, config.Migrate(db))
	return db
}

func newProcessor(t *testing.T) (*registration.Processor, *gorm.DB) {
	db := newTestDB(t)
	return registration.NewProcessor(db, cafeteria.NewRegistry(db)), db
}

func createStudent(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := models.User{Name: "Test Student", Email: email, PasswordHash: "x", Role: models.RoleStudent}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func validInput() registration.SubmitInput {
	return registration.SubmitInput{
		BusinessName:    "Test Cafeteria",
		BusinessAddress: "Block A, Main Campus",
		ContactNumber:   "9876543210",
	}
}

func TestSubmitValidation(t *testing.T) {
	p, _ := newProcessor(t)
	ctx := context.Background()

	for _, in := range []registration.SubmitInput{
		{BusinessAddress: "addr", ContactNumber: "123"},
		{BusinessName: "name", ContactNumber: "123"},
		{BusinessName: "name", BusinessAddress: "addr"},
		{BusinessName: "   ", BusinessAddress: "addr", ContactNumber: "123"},
	} {
		_, err := p.Submit(ctx, 1, "u@campus.edu", in)
		assert.ErrorIs(t, err, registration.ErrValidation)
	}
}

func TestSubmitCreatesSingleRow(t *testing.T) {
	p, db := newProcessor(t)
	ctx := context.Background()
	user := createStudent(t, db, "u@campus.edu")

	req, err := p.Submit(ctx, user.ID, user.Email, validInput())
	require.NoError(t, err)
	assert.Equal(t, models.RegistrationSubmitted, req.Status)

	var count int64
	db.Model(&models.RegistrationRequest{}).Where("user_id = ?", user.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

// Resubmitting replaces the previous application: never zero rows, never more
// than one.
func TestResubmitReplacesPrior(t *testing.T) {
	p, db := newProcessor(t)
	ctx := context.Background()
	user := createStudent(t, db, "u@campus.edu")

	_, err := p.Submit(ctx, user.ID, user.Email, validInput())
	require.NoError(t, err)

	in := validInput()
	in.BusinessName = "Renamed Cafeteria"
	_, err = p.Submit(ctx, user.ID, user.Email, in)
	require.NoError(t, err)

	var rows []models.RegistrationRequest
	db.Where("user_id = ?", user.ID).Find(&rows)
	require.Len(t, rows, 1)
	assert.Equal(t, "Renamed Cafeteria", rows[0].BusinessName)
	assert.Equal(t, models.RegistrationSubmitted, rows[0].Status)
}

// An approved application cannot be replaced: wiping it would leave the user
// an owner with no approved request backing the role.
func TestResubmitAfterApprovalRejected(t *testing.T) {
	p, db := newProcessor(t)
	ctx := context.Background()
	user := createStudent(t, db, "u@campus.edu")

	req, err := p.Submit(ctx, user.ID, user.Email, validInput())
	require.NoError(t, err)
	_, err = p.Decide(ctx, req.ID, models.RegistrationApproved, 99, "")
	require.NoError(t, err)

	in := validInput()
	in.BusinessName = "Second Venture"
	_, err = p.Submit(ctx, user.ID, user.Email, in)
	assert.ErrorIs(t, err, statemachine.ErrInvalidTransition)

	// Role and request still agree: owner iff the request is APPROVED
	var rows []models.RegistrationRequest
	db.Where("user_id = ?", user.ID).Find(&rows)
	require.Len(t, rows, 1)
	assert.Equal(t, models.RegistrationApproved, rows[0].Status)
	assert.Equal(t, "Test Cafeteria", rows[0].BusinessName)

	var fresh models.User
	require.NoError(t, db.First(&fresh, user.ID).Error)
	assert.Equal(t, models.RoleOwner, fresh.Role)
}

// A rejected application may be refiled; the replacement starts over as
// SUBMITTED and the role stays student throughout.
func TestResubmitAfterRejectionAllowed(t *testing.T) {
	p, db := newProcessor(t)
	ctx := context.Background()
	user := createStudent(t, db, "u@campus.edu")

	req, err := p.Submit(ctx, user.ID, user.Email, validInput())
	require.NoError(t, err)
	_, err = p.Decide(ctx, req.ID, models.RegistrationRejected, 99, "incomplete documents")
	require.NoError(t, err)

	in := validInput()
	in.BusinessName = "Second Attempt"
	refiled, err := p.Submit(ctx, user.ID, user.Email, in)
	require.NoError(t, err)
	assert.Equal(t, models.RegistrationSubmitted, refiled.Status)

	var rows []models.RegistrationRequest
	db.Where("user_id = ?", user.ID).Find(&rows)
	require.Len(t, rows, 1)
	assert.Equal(t, "Second Attempt", rows[0].BusinessName)

	var fresh models.User
	require.NoError(t, db.First(&fresh, user.ID).Error)
	assert.Equal(t, models.RoleStudent, fresh.Role)
}

func TestDecideApprove(t *testing.T) {
	p, db := newProcessor(t)
	ctx := context.Background()
	user := createStudent(t, db, "u@campus.edu")

	req, err := p.Submit(ctx, user.ID, user.Email, validInput())
	require.NoError(t, err)

	decided, err := p.Decide(ctx, req.ID, models.RegistrationApproved, 99, "")
	require.NoError(t, err)
	assert.Equal(t, models.RegistrationApproved, decided.Status)
	require.NotNil(t, decided.ReviewedBy)
	assert.EqualValues(t, 99, *decided.ReviewedBy)

	// Role flipped together with the request status
	var fresh models.User
	require.NoError(t, db.First(&fresh, user.ID).Error)
	assert.Equal(t, models.RoleOwner, fresh.Role)

	// Exactly one cafeteria provisioned for the new owner
	var cafes []models.Cafeteria
	db.Where("owner_id = ?", user.ID).Find(&cafes)
	require.Len(t, cafes, 1)
	assert.Equal(t, "Test Cafeteria", cafes[0].Name)
	assert.True(t, cafes[0].IsOpen)
}

// Re-running the same approval is an idempotent remediation path: it must not
// create a second cafeteria.
func TestDecideApproveIdempotent(t *testing.T) {
	p, db := newProcessor(t)
	ctx := context.Background()
	user := createStudent(t, db, "u@campus.edu")

	req, err := p.Submit(ctx, user.ID, user.Email, validInput())
	require.NoError(t, err)

	_, err = p.Decide(ctx, req.ID, models.RegistrationApproved, 99, "")
	require.NoError(t, err)
	_, err = p.Decide(ctx, req.ID, models.RegistrationApproved, 99, "")
	require.NoError(t, err)

	var count int64
	db.Model(&models.Cafeteria{}).Where("owner_id = ?", user.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

// Approval repairs a crash that happened between role update and
// provisioning: the request is already APPROVED but no cafeteria exists.
func TestDecideApproveRepairsMissingCafeteria(t *testing.T) {
	p, db := newProcessor(t)
	ctx := context.Background()
	user := createStudent(t, db, "u@campus.edu")

	req := models.RegistrationRequest{
		UserID:          user.ID,
		Email:           user.Email,
		BusinessName:    "Crashed Cafeteria",
		BusinessAddress: "Block B",
		ContactNumber:   "123",
		Status:          models.RegistrationApproved,
	}
	require.NoError(t, db.Create(&req).Error)

	_, err := p.Decide(ctx, req.ID, models.RegistrationApproved, 99, "")
	require.NoError(t, err)

	var count int64
	db.Model(&models.Cafeteria{}).Where("owner_id = ?", user.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestDecideReject(t *testing.T) {
	p, db := newProcessor(t)
	ctx := context.Background()
	user := createStudent(t, db, "u@campus.edu")

	req, err := p.Submit(ctx, user.ID, user.Email, validInput())
	require.NoError(t, err)

	decided, err := p.Decide(ctx, req.ID, models.RegistrationRejected, 99, "incomplete documents")
	require.NoError(t, err)
	assert.Equal(t, models.RegistrationRejected, decided.Status)
	assert.Equal(t, "incomplete documents", decided.RejectReason)

	// No role change, no cafeteria
	var fresh models.User
	require.NoError(t, db.First(&fresh, user.ID).Error)
	assert.Equal(t, models.RoleStudent, fresh.Role)

	var count int64
	db.Model(&models.Cafeteria{}).Where("owner_id = ?", user.ID).Count(&count)
	assert.Zero(t, count)
}

func TestDecideTerminalStates(t *testing.T) {
	p, db := newProcessor(t)
	ctx := context.Background()
	user := createStudent(t, db, "u@campus.edu")

	req, err := p.Submit(ctx, user.ID, user.Email, validInput())
	require.NoError(t, err)
	_, err = p.Decide(ctx, req.ID, models.RegistrationApproved, 99, "")
	require.NoError(t, err)

	// Approved cannot become rejected
	_, err = p.Decide(ctx, req.ID, models.RegistrationRejected, 99, "changed my mind")
	assert.ErrorIs(t, err, statemachine.ErrInvalidTransition)

	// Rejected cannot be re-rejected or approved
	user2 := createStudent(t, db, "v@campus.edu")
	req2, err := p.Submit(ctx, user2.ID, user2.Email, validInput())
	require.NoError(t, err)
	_, err = p.Decide(ctx, req2.ID, models.RegistrationRejected, 99, "no")
	require.NoError(t, err)
	_, err = p.Decide(ctx, req2.ID, models.RegistrationRejected, 99, "still no")
	assert.ErrorIs(t, err, statemachine.ErrInvalidTransition)
	_, err = p.Decide(ctx, req2.ID, models.RegistrationApproved, 99, "")
	assert.ErrorIs(t, err, statemachine.ErrInvalidTransition)
}

func TestDecideBadOutcome(t *testing.T) {
	p, db := newProcessor(t)
	ctx := context.Background()
	user := createStudent(t, db, "u@campus.edu")

	req, err := p.Submit(ctx, user.ID, user.Email, validInput())
	require.NoError(t, err)

	_, err = p.Decide(ctx, req.ID, models.RegistrationSubmitted, 99, "")
	assert.ErrorIs(t, err, registration.ErrValidation)
}
