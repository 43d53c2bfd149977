package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/deevxcoder/kinggames-api/cmd/db"
	"github.com/deevxcoder/kinggames-api/internal/middleware"
	"github.com/deevxcoder/kinggames-api/internal/models"
	"github.com/deevxcoder/kinggames-api/pkg/logger"
)

// DepositRequirementError is returned when a player asks to withdraw
// before meeting the lifetime deposit minimum.
type DepositRequirementError struct {
	RequiredPaise int64
	CurrentPaise  int64
}

func (e *DepositRequirementError) Error() string {
	return fmt.Sprintf("total deposits of %d paise required before withdrawal, have %d",
		e.RequiredPaise, e.CurrentPaise)
}

type withdrawalInput struct {
	AmountPaise int64  `json:"amount_paise" validate:"required,min=1"`
	Method      string `json:"method" validate:"required"`
}

func (i *withdrawalInput) Validate() error {
	return validate.Struct(i)
}

// RequestWithdrawal reserves the amount out of the player's balance and
// creates a pending request for admin review. Rejection refunds through
// Withdrawal.Rollback.
func RequestWithdrawal(c *gin.Context) {
	userID, err := middleware.GetUserIDFromGinContext(c)
	if err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	var input withdrawalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": "Unable to unmarshal body"})
		return
	}

	if err := input.Validate(); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	if _, ok := allowedPaymentMethods[input.Method]; !ok {
		c.JSON(400, gin.H{"error": "payment method not supported"})
		return
	}

	var withdrawal models.Withdrawal

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		totalDeposit, err := models.GetUserTotalDeposit(tx, userID)
		if err != nil {
			return logger.WrapError(err, "")
		}

		if totalDeposit < models.MinDepositSumToWithdrawalPaise {
			return &DepositRequirementError{
				RequiredPaise: models.MinDepositSumToWithdrawalPaise,
				CurrentPaise:  totalDeposit,
			}
		}

		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&user, userID).Error; err != nil {
			return logger.WrapError(err, "")
		}

		if user.BalancePaise < input.AmountPaise {
			return ErrInsufficientBalance
		}

		if err := models.CreditBalance(tx, userID, -input.AmountPaise); err != nil {
			return logger.WrapError(err, "")
		}

		withdrawal = models.Withdrawal{
			UserID:      userID,
			AmountPaise: input.AmountPaise,
			Method:      input.Method,
			OrderID:     fmt.Sprintf("wd-%d-%d", userID, time.Now().UnixNano()),
			Status:      models.RequestPending,
		}
		if err := tx.Create(&withdrawal).Error; err != nil {
			return logger.WrapError(err, "")
		}

		return models.RecordTransaction(tx, &models.Transaction{
			UserID:      userID,
			Type:        models.TxWithdrawal,
			AmountPaise: -input.AmountPaise,
			Reference:   withdrawal.OrderID,
			Note:        "withdrawal via " + input.Method,
		})
	})
	if err != nil {
		var depErr *DepositRequirementError
		if errors.As(err, &depErr) {
			c.JSON(402, gin.H{"error": depErr.Error()})
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

	c.JSON(200, withdrawal)
}

func GetUserWithdrawals(c *gin.Context) {
	userID, err := middleware.GetUserIDFromGinContext(c)
	if err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	var withdrawals []models.Withdrawal
	err = db.DB.Find(&withdrawals, "user_id = ?", userID).Error
	if err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	if len(withdrawals) == 0 {
		c.String(404, "[]")
		return
	}

	c.JSON(200, withdrawals)
}

// ReviewWithdrawal approves or rejects a pending withdrawal. The amount
// was reserved at request time, so approval only flips the status and
// rejection refunds it.
func ReviewWithdrawal(c *gin.Context) {
	withdrawalID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid withdrawal id"})
		return
	}

	var input reviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": "Unable to unmarshal body"})
		return
	}

	reviewerID, err := middleware.GetUserIDFromGinContext(c)
	if err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	var withdrawal models.Withdrawal

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&withdrawal, withdrawalID).Error; err != nil {
			return logger.WrapError(err, "")
		}

		if withdrawal.Status != models.RequestPending {
			return errAlreadyReviewed
		}

		if !input.Approve {
			return withdrawal.Rollback(tx, reviewerID)
		}

		now := time.Now()
		withdrawal.Status = models.RequestApproved
		withdrawal.ReviewedAt = &now
		withdrawal.ReviewerID = &reviewerID
		if err := tx.Save(&withdrawal).Error; err != nil {
			return logger.WrapError(err, "")
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(404, gin.H{"error": "Withdrawal not found"})
			return
		}
		if errors.Is(err, errAlreadyReviewed) {
			c.JSON(409, gin.H{"error": err.Error()})
			return
		}
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	c.JSON(200, withdrawal)
}
