package service

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/deevxcoder/kinggames-api/cmd/db"
	"github.com/deevxcoder/kinggames-api/internal/middleware"
	"github.com/deevxcoder/kinggames-api/internal/models"
	"github.com/deevxcoder/kinggames-api/pkg/logger"
)

func GetUser(c *gin.Context) {
	var user models.User
	var err error

	user.ID, err = middleware.GetUserIDFromGinContext(c)
	if err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	err = db.DB.First(&user, user.ID).Error
	if err != nil && errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(404, gin.H{"error": "User not found"})
		return
	} else if err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	c.JSON(200, user)
}

// ListUsers returns players and subadmins for the admin screen. A
// subadmin sees only their own players.
func ListUsers(c *gin.Context) {
	callerID, err := middleware.GetUserIDFromGinContext(c)
	if err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	role, err := models.GetUserRole(callerID)
	if err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	query := db.DB.Order("created_at desc")
	if role == models.RoleSubadmin {
		query = query.Where("subadmin_id = ?", callerID)
	}

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	c.JSON(200, users)
}

type blockUserInput struct {
	Blocked bool `json:"blocked"`
}

func SetUserBlocked(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid user id"})
		return
	}

	var input blockUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": "Unable to unmarshal body"})
		return
	}

	result := db.DB.Model(&models.User{}).
		Where("id = ? AND role = ?", userID, models.RolePlayer).
		Update("blocked", input.Blocked)
	if result.Error != nil {
		logger.Error("%v", result.Error)
		c.Status(500)
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(404, gin.H{"error": "Player not found"})
		return
	}

	c.JSON(200, gin.H{"blocked": input.Blocked})
}

type adjustBalanceInput struct {
	AmountPaise int64  `json:"amount_paise" validate:"required"`
	Note        string `json:"note" validate:"required,max=200"`
}

func (i *adjustBalanceInput) Validate() error {
	return validate.Struct(i)
}

// AdjustBalance credits or debits a player's wallet manually, writing an
// adjustment ledger row. A debit may not take the balance negative.
func AdjustBalance(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid user id"})
		return
	}

	var input adjustBalanceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": "Unable to unmarshal body"})
		return
	}

	if err := input.Validate(); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&user, userID).Error; err != nil {
			return logger.WrapError(err, "")
		}

		if user.BalancePaise+input.AmountPaise < 0 {
			return ErrInsufficientBalance
		}

		if err := models.CreditBalance(tx, userID, input.AmountPaise); err != nil {
			return logger.WrapError(err, "")
		}

		return models.RecordTransaction(tx, &models.Transaction{
			UserID:      userID,
			Type:        models.TxAdjustment,
			AmountPaise: input.AmountPaise,
			Note:        input.Note,
		})
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(404, gin.H{"error": "User not found"})
			return
		}
		if errors.Is(err, ErrInsufficientBalance) {
			c.JSON(402, gin.H{"error": err.Error()})
			return
		}
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	c.Status(200)
}
