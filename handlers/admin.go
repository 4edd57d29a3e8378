package handlers

import (
	"net/http"

	"campus-canteen-api/config"
	"campus-canteen-api/middleware"
	"campus-canteen-api/models"

	"github.com/gin-gonic/gin"
)

// AdminListRegistrations returns vendor applications, optionally filtered by status
func AdminListRegistrations(c *gin.Context) {
	var requests []models.RegistrationRequest
	query := config.DB.Preload("User")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	query.Order("created_at desc").Find(&requests)
	c.JSON(http.StatusOK, gin.H{"count": len(requests), "registrations": requests})
}

type DecideRegistrationRequest struct {
	Outcome models.RegistrationStatus `json:"outcome" binding:"required"`
	Reason  string                    `json:"reason"`
}

// AdminDecideRegistration approves or rejects a vendor application. Approval
// makes the applicant an owner and provisions their cafeteria.
func AdminDecideRegistration(c *gin.Context) {
	adminID := middleware.GetUserID(c)

	var req DecideRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	decided, err := processor().Decide(c.Request.Context(), parseID(c, "id"), req.Outcome, adminID, req.Reason)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Registration " + string(decided.Status),
		"registration": decided,
	})
}

// AdminListUsers returns all users — admin only
func AdminListUsers(c *gin.Context) {
	var users []models.User
	query := config.DB
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	query.Find(&users)
	c.JSON(http.StatusOK, gin.H{"count": len(users), "users": users})
}

// AdminListCafeterias returns all cafeterias — admin only
func AdminListCafeterias(c *gin.Context) {
	var cafeterias []models.Cafeteria
	config.DB.Preload("Owner").Preload("MenuItems").Find(&cafeterias)
	c.JSON(http.StatusOK, gin.H{"count": len(cafeterias), "cafeterias": cafeterias})
}

// AdminListOrders returns all orders with full detail — admin only
func AdminListOrders(c *gin.Context) {
	var list []models.Order
	query := config.DB.Preload("Items").Preload("Student").Preload("Cafeteria").Preload("StatusHistory")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if studentID := c.Query("student_id"); studentID != "" {
		query = query.Where("student_id = ?", studentID)
	}
	if cafeteriaID := c.Query("cafeteria_id"); cafeteriaID != "" {
		query = query.Where("cafeteria_id = ?", cafeteriaID)
	}

	query.Order("created_at desc").Find(&list)

	// Admin dashboard: aggregate by status
	summary := map[string]int{}
	var totalRevenue float64
	for _, o := range list {
		summary[string(o.Status)]++
		if o.Status == models.StatusCompleted {
			totalRevenue += o.TotalPrice
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"order_summary": summary,
		"total_revenue": totalRevenue,
		"count":         len(list),
		"orders":        list,
	})
}
