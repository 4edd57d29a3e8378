package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"campus-canteen-api/cafeteria"
	"campus-canteen-api/cart"
	"campus-canteen-api/checkout"
	"campus-canteen-api/config"
	"campus-canteen-api/notify"
	"campus-canteen-api/orders"
	"campus-canteen-api/registration"
	"campus-canteen-api/statemachine"
)

func registry() *cafeteria.Registry {
	return cafeteria.NewRegistry(config.DB)
}

func processor() *registration.Processor {
	return registration.NewProcessor(config.DB, registry())
}

func orchestrator() *checkout.Orchestrator {
	return checkout.NewOrchestrator(config.DB, notify.LogNotifier{})
}

func tracker() *orders.Tracker {
	return orders.NewTracker(config.DB, notify.LogNotifier{})
}

// parseID reads a numeric path parameter. Unparseable values come back as 0,
// which no row ever has, so lookups fall through to a 404.
func parseID(c *gin.Context, param string) uint {
	id, _ := strconv.ParseUint(c.Param(param), 10, 64)
	return uint(id)
}

// fail maps domain errors onto HTTP codes: caller mistakes are 400, moves
// outside a state graph are 422, missing rows 404, everything else is a
// store-side 500.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, registration.ErrValidation),
		errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, checkout.ErrInvalidPickupTime),
		errors.Is(err, checkout.ErrCafeteriaClosed),
		errors.Is(err, cart.ErrCrossVendor),
		errors.Is(err, cart.ErrBadQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, statemachine.ErrInvalidTransition):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
	}
}
