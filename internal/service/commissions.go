package service

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/deevxcoder/kinggames-api/cmd/db"
	"github.com/deevxcoder/kinggames-api/internal/models"
	"github.com/deevxcoder/kinggames-api/internal/payout"
	"github.com/deevxcoder/kinggames-api/pkg/logger"
)

type setCommissionInput struct {
	SubadminID      *int64 `json:"subadmin_id"`
	GameType        string `json:"game_type"`
	RateBasisPoints int64  `json:"rate_basis_points" validate:"min=0,max=10000"`
}

func (i *setCommissionInput) Validate() error {
	return validate.Struct(i)
}

// SetCommission stores a facilitation rate in basis points, either for
// one subadmin or as the game-type global default (subadmin_id omitted).
func SetCommission(c *gin.Context) {
	var input setCommissionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": "Unable to unmarshal body"})
		return
	}

	if err := input.Validate(); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	if input.GameType == "" {
		input.GameType = GameTypeSatamatka
	}

	if input.SubadminID != nil {
		role, err := models.GetUserRole(*input.SubadminID)
		if err != nil {
			logger.Error("%v", err)
			c.Status(500)
			return
		}
		if role != models.RoleSubadmin {
			c.JSON(404, gin.H{"error": "Subadmin not found"})
			return
		}
	}

	commission := models.Commission{
		SubadminID:      input.SubadminID,
		GameType:        input.GameType,
		RateBasisPoints: input.RateBasisPoints,
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		return models.UpsertCommission(tx, &commission)
	})
	if err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	c.JSON(200, commission)
}

// ListCommissions returns configured commission rows for the admin screen.
func ListCommissions(c *gin.Context) {
	var rows []models.Commission
	err := db.DB.Order("game_type, subadmin_id nulls first").Find(&rows).Error
	if err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	c.JSON(200, rows)
}

// PreviewCommission shows what a given handled amount would earn at a
// subadmin's effective rate. Advisory only.
func PreviewCommission(c *gin.Context) {
	var input struct {
		SubadminID  int64  `json:"subadmin_id" binding:"required"`
		GameType    string `json:"game_type"`
		AmountPaise int64  `json:"amount_paise" binding:"required,min=0"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	if input.GameType == "" {
		input.GameType = GameTypeSatamatka
	}

	rate, err := models.GetCommissionRate(nil, input.SubadminID, input.GameType)
	if err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	c.JSON(200, gin.H{
		"rate_basis_points": rate,
		"commission_paise":  payout.CommissionAmount(input.AmountPaise, rate),
	})
}
