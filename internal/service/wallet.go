package service

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/deevxcoder/kinggames-api/cmd/db"
	"github.com/deevxcoder/kinggames-api/internal/middleware"
	"github.com/deevxcoder/kinggames-api/internal/models"
	"github.com/deevxcoder/kinggames-api/pkg/logger"
)

// GetBalance returns the caller's wallet balance in paise. Clients format
// rupees for display; the API never carries fractional currency.
func GetBalance(c *gin.Context) {
	userID, err := middleware.GetUserIDFromGinContext(c)
	if err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	var balance int64
	err = db.DB.Model(&models.User{}).
		Select("balance_paise").
		Where("id = ?", userID).
		Scan(&balance).Error
	if err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	c.JSON(200, gin.H{"balance_paise": balance})
}

// GetStatement returns the caller's ledger, paginated with page/limit
// query parameters.
func GetStatement(c *gin.Context) {
	userID, err := middleware.GetUserIDFromGinContext(c)
	if err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	entries, err := models.GetUserStatement(userID, limit, (page-1)*limit)
	if err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	if len(entries) == 0 {
		c.String(404, "[]")
		return
	}

	c.JSON(200, entries)
}
