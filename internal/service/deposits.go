package service

import (
	"errors"
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

var allowedPaymentMethods = map[string]bool{
	"imps": true,
	"neft": true,
	"rtgs": true,
	"upi":  true,
}

type depositInput struct {
	AmountPaise int64  `json:"amount_paise" validate:"required,min=1"`
	Method      string `json:"method" validate:"required"`
	OrderID     string `json:"order_id" validate:"required,max=64"`
}

func (i *depositInput) Validate() error {
	return validate.Struct(i)
}

// RequestDeposit records a player top-up request. The balance changes
// only when an admin approves.
func RequestDeposit(c *gin.Context) {
	userID, err := middleware.GetUserIDFromGinContext(c)
	if err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	var input depositInput
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

	if input.AmountPaise < models.MinDepositPaise {
		c.JSON(400, gin.H{"error": "deposit below minimum"})
		return
	}

	exists, err := models.CheckIfDepositOrderExists(input.OrderID)
	if err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}
	if exists {
		c.JSON(409, gin.H{"error": "deposit with this order id already exists"})
		return
	}

	deposit := models.Deposit{
		UserID:      userID,
		OrderID:     input.OrderID,
		AmountPaise: input.AmountPaise,
		Method:      input.Method,
		Status:      models.RequestPending,
	}

	if err := db.DB.Create(&deposit).Error; err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	c.JSON(200, deposit)
}

func GetUserDeposits(c *gin.Context) {
	userID, err := middleware.GetUserIDFromGinContext(c)
	if err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	var deposits []models.Deposit
	err = db.DB.Find(&deposits, "user_id = ?", userID).Error
	if err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	if len(deposits) == 0 {
		c.String(404, "[]")
		return
	}

	c.JSON(200, deposits)
}

type reviewInput struct {
	Approve bool `json:"approve"`
}

// ReviewDeposit approves or rejects a pending deposit request. Approval
// credits the balance and writes the ledger row in one transaction;
// reviewing a non-pending request is a conflict, so a request can only
// ever be applied once.
func ReviewDeposit(c *gin.Context) {
	depositID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid deposit id"})
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

	var deposit models.Deposit

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&deposit, depositID).Error; err != nil {
			return logger.WrapError(err, "")
		}

		if deposit.Status != models.RequestPending {
			return errAlreadyReviewed
		}

		now := time.Now()
		deposit.ReviewedAt = &now
		deposit.ReviewerID = &reviewerID

		if !input.Approve {
			deposit.Status = models.RequestRejected
			if err := tx.Save(&deposit).Error; err != nil {
				return logger.WrapError(err, "")
			}
			return nil
		}

		deposit.Status = models.RequestApproved
		if err := tx.Save(&deposit).Error; err != nil {
			return logger.WrapError(err, "")
		}

		if err := models.CreditBalance(tx, deposit.UserID, deposit.AmountPaise); err != nil {
			return logger.WrapError(err, "")
		}

		return models.RecordTransaction(tx, &models.Transaction{
			UserID:      deposit.UserID,
			Type:        models.TxDeposit,
			AmountPaise: deposit.AmountPaise,
			Reference:   deposit.OrderID,
			Note:        "deposit via " + deposit.Method,
		})
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(404, gin.H{"error": "Deposit not found"})
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

	c.JSON(200, deposit)
}

var errAlreadyReviewed = errors.New("request already reviewed")
