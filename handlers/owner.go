package handlers

import (
	"net/http"

	"campus-canteen-api/config"
	"campus-canteen-api/middleware"
	"campus-canteen-api/models"

	"github.com/gin-gonic/gin"
)

// ── Cafeteria management ────────────────────────────────────────────────────

// GetMyCafeteria fetches the cafeteria owned by the logged-in user
func GetMyCafeteria(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	caf, err := registry().GetByOwner(c.Request.Context(), ownerID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No cafeteria found for your account"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cafeteria": caf})
}

// UpdateCafeteria updates storefront details
func UpdateCafeteria(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	caf, err := registry().GetByOwner(c.Request.Context(), ownerID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cafeteria not found"})
		return
	}
	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// Only allow safe fields
	allowed := map[string]bool{"name": true, "description": true, "category": true}
	update := map[string]interface{}{}
	for k, v := range req {
		if allowed[k] {
			update[k] = v
		}
	}
	config.DB.Model(caf).Updates(update)
	c.JSON(http.StatusOK, gin.H{"message": "Cafeteria updated", "cafeteria": caf})
}

type SetOpenRequest struct {
	IsOpen *bool `json:"is_open" binding:"required"`
}

// SetCafeteriaOpen flips the storefront open or closed
func SetCafeteriaOpen(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	caf, err := registry().GetByOwner(c.Request.Context(), ownerID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cafeteria not found"})
		return
	}

	var req SetOpenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := registry().SetOpen(c.Request.Context(), caf.ID, ownerID, *req.IsOpen); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cafeteria updated", "is_open": *req.IsOpen})
}

// ── Menu management ─────────────────────────────────────────────────────────

type CreateMenuItemRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Category    string  `json:"category"`
	IsVeg       bool    `json:"is_veg"`
}

// AddMenuItem adds a new item to the cafeteria's menu
func AddMenuItem(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	caf, err := registry().GetByOwner(c.Request.Context(), ownerID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No cafeteria found for your account"})
		return
	}

	var req CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item := models.MenuItem{
		CafeteriaID: caf.ID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		IsVeg:       req.IsVeg,
		IsAvailable: true,
	}
	if err := config.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add menu item"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Menu item added", "item": item})
}

// UpdateMenuItem updates a menu item (only by the owner)
func UpdateMenuItem(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	itemID := c.Param("itemId")

	var item models.MenuItem
	if err := config.DB.First(&item, itemID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}

	// Verify ownership
	var caf models.Cafeteria
	if err := config.DB.Where("id = ? AND owner_id = ?", item.CafeteriaID, ownerID).First(&caf).Error; err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't own this menu item"})
		return
	}

	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	allowed := map[string]bool{
		"name": true, "description": true, "price": true,
		"category": true, "is_available": true, "is_veg": true,
	}
	update := map[string]interface{}{}
	for k, v := range req {
		if allowed[k] {
			update[k] = v
		}
	}
	config.DB.Model(&item).Updates(update)
	c.JSON(http.StatusOK, gin.H{"message": "Menu item updated", "item": item})
}

// DeleteMenuItem removes a menu item
func DeleteMenuItem(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	itemID := c.Param("itemId")

	var item models.MenuItem
	if err := config.DB.First(&item, itemID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}
	var caf models.Cafeteria
	if err := config.DB.Where("id = ? AND owner_id = ?", item.CafeteriaID, ownerID).First(&caf).Error; err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't own this menu item"})
		return
	}
	config.DB.Delete(&item)
	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted"})
}

// ── Order management ────────────────────────────────────────────────────────

// GetCafeteriaOrders returns all orders for the owner's cafeteria
func GetCafeteriaOrders(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	caf, err := registry().GetByOwner(c.Request.Context(), ownerID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No cafeteria found for your account"})
		return
	}

	list, err := tracker().ListForCafeteria(c.Request.Context(), caf.ID, models.OrderStatus(c.Query("status")))
	if err != nil {
		fail(c, err)
		return
	}

	// Dashboard summary: counts grouped by status
	summary := map[string]int{}
	for _, o := range list {
		summary[string(o.Status)]++
	}

	c.JSON(http.StatusOK, gin.H{
		"cafeteria":     caf.Name,
		"order_summary": summary,
		"count":         len(list),
		"orders":        list,
	})
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
	Note   string             `json:"note"`
}

// UpdateOrderStatus handles the owner's state transitions
func UpdateOrderStatus(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	orderID := parseID(c, "id")

	caf, err := registry().GetByOwner(c.Request.Context(), ownerID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No cafeteria found for your account"})
		return
	}

	order, err := tracker().Get(c.Request.Context(), orderID)
	if err != nil {
		fail(c, err)
		return
	}
	if order.CafeteriaID != caf.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to your cafeteria"})
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prev := order.Status
	updated, err := tracker().Advance(c.Request.Context(), orderID, req.Status, "owner", ownerID, req.Note)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Order status updated",
		"order_id":        updated.ID,
		"previous_status": prev,
		"current_status":  updated.Status,
	})
}
