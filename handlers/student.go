package handlers

import (
	"net/http"
	"time"

	"campus-canteen-api/cart"
	"campus-canteen-api/config"
	"campus-canteen-api/middleware"
	"campus-canteen-api/models"
	"campus-canteen-api/registration"

	"github.com/gin-gonic/gin"
)

// ── Vendor application ──────────────────────────────────────────────────────

type SubmitRegistrationRequest struct {
	BusinessName    string `json:"business_name" binding:"required"`
	BusinessAddress string `json:"business_address" binding:"required"`
	ContactNumber   string `json:"contact_number" binding:"required"`
	DocURL          string `json:"doc_url"`
}

// SubmitRegistration files (or refiles) the caller's vendor application
func SubmitRegistration(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req SubmitRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := processor().Submit(c.Request.Context(), userID, middleware.GetEmail(c), registration.SubmitInput{
		BusinessName:    req.BusinessName,
		BusinessAddress: req.BusinessAddress,
		ContactNumber:   req.ContactNumber,
		DocURL:          req.DocURL,
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Registration submitted. You will be notified once it is reviewed.",
		"registration": created,
	})
}

// GetMyRegistration returns the caller's current vendor application
func GetMyRegistration(c *gin.Context) {
	userID := middleware.GetUserID(c)
	req, err := processor().GetForUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No registration found for your account"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"registration": req})
}

// ── Checkout ────────────────────────────────────────────────────────────────

type CheckoutRequest struct {
	CafeteriaID uint      `json:"cafeteria_id" binding:"required"`
	PickupTime  time.Time `json:"pickup_time" binding:"required"`
	Notes       string    `json:"notes"`
	Items       []struct {
		MenuItemID uint `json:"menu_item_id" binding:"required"`
		Quantity   int  `json:"quantity" binding:"required,min=1"`
	} `json:"items" binding:"required,min=1"`
}

// Checkout builds a cart session from the payload and converts it into a
// confirmed order
func Checkout(c *gin.Context) {
	studentID := middleware.GetUserID(c)

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session := cart.New(req.CafeteriaID)
	for _, reqItem := range req.Items {
		var menuItem models.MenuItem
		if err := config.DB.First(&menuItem, reqItem.MenuItemID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Menu item not found"})
			return
		}
		if !menuItem.IsAvailable {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Menu item '" + menuItem.Name + "' is not available"})
			return
		}
		if err := session.AddItem(menuItem, reqItem.Quantity); err != nil {
			fail(c, err)
			return
		}
	}
	session.SetPickupTime(req.PickupTime)
	session.SetNotes(req.Notes)

	order, err := orchestrator().Checkout(c.Request.Context(), studentID, session.Snapshot())
	if err != nil {
		fail(c, err)
		return
	}

	// Reload with associations for the response; the order is already
	// committed, so on failure fall back to the snapshot we hold.
	var placed models.Order
	if err := config.DB.Preload("Items").Preload("Cafeteria").First(&placed, order.ID).Error; err == nil {
		order = &placed
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"order":   order,
	})
}

// ── Order tracking ──────────────────────────────────────────────────────────

// GetMyOrders returns all orders for the logged-in student, newest first
func GetMyOrders(c *gin.Context) {
	studentID := middleware.GetUserID(c)
	list, err := tracker().ListForStudent(c.Request.Context(), studentID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(list), "orders": list})
}

// GetOrderDetail returns a single order's full detail with history
func GetOrderDetail(c *gin.Context) {
	studentID := middleware.GetUserID(c)

	order, err := tracker().Get(c.Request.Context(), parseID(c, "id"))
	if err != nil {
		fail(c, err)
		return
	}
	if order.StudentID != studentID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
		return
	}

	elapsed := time.Since(order.CreatedAt).Minutes()
	c.JSON(http.StatusOK, gin.H{
		"order":           order,
		"minutes_elapsed": int(elapsed),
	})
}

// CancelOrder cancels an order (students can cancel while still CONFIRMED)
func CancelOrder(c *gin.Context) {
	studentID := middleware.GetUserID(c)
	orderID := parseID(c, "id")

	order, err := tracker().Get(c.Request.Context(), orderID)
	if err != nil {
		fail(c, err)
		return
	}
	if order.StudentID != studentID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
		return
	}

	updated, err := tracker().Advance(c.Request.Context(), orderID, models.StatusCancelled,
		"student", studentID, "Order cancelled by student")
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled successfully", "order_id": updated.ID})
}
