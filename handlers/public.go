package handlers

import (
	"net/http"

	"campus-canteen-api/config"
	"campus-canteen-api/models"
	"campus-canteen-api/statemachine"

	"github.com/gin-gonic/gin"
)

// ListCafeterias returns all cafeterias (public)
func ListCafeterias(c *gin.Context) {
	var cafeterias []models.Cafeteria
	query := config.DB

	if category := c.Query("category"); category != "" {
		query = query.Where("category LIKE ?", "%"+category+"%")
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}
	if open := c.Query("open"); open == "true" {
		query = query.Where("is_open = ?", true)
	}

	query.Find(&cafeterias)
	c.JSON(http.StatusOK, gin.H{
		"count":      len(cafeterias),
		"cafeterias": cafeterias,
	})
}

// GetCafeteria returns a single cafeteria
func GetCafeteria(c *gin.Context) {
	var caf models.Cafeteria
	if err := config.DB.Preload("MenuItems").First(&caf, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cafeteria not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cafeteria": caf})
}

// GetMenu returns the menu for a specific cafeteria (public)
func GetMenu(c *gin.Context) {
	cafeteriaID := c.Param("id")
	var caf models.Cafeteria
	if err := config.DB.First(&caf, cafeteriaID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cafeteria not found"})
		return
	}

	var items []models.MenuItem
	query := config.DB.Where("cafeteria_id = ?", cafeteriaID)

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if isVeg := c.Query("is_veg"); isVeg == "true" {
		query = query.Where("is_veg = ?", true)
	}
	query.Find(&items)

	c.JSON(http.StatusOK, gin.H{
		"cafeteria": caf.Name,
		"is_open":   caf.IsOpen,
		"count":     len(items),
		"menu":      items,
	})
}

// GetStateMachineInfo returns the order lifecycle for informational purposes
func GetStateMachineInfo(c *gin.Context) {
	var info []gin.H
	for _, t := range statemachine.GetAllTransitions() {
		info = append(info, gin.H{"from": t.From, "to": t.To, "actor": t.Actor})
	}
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   info,
		"terminal_states": []models.OrderStatus{models.StatusCompleted, models.StatusCancelled},
		"description":     "Campus Canteen Pre-Order Lifecycle State Machine",
	})
}
