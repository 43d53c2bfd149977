package models

import (
	"database/sql"
	"time"

	"gorm.io/gorm"

	"github.com/deevxcoder/kinggames-api/cmd/db"
	"github.com/deevxcoder/kinggames-api/pkg/logger"
)

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

const MinDepositPaise = 50000 // 500 rupees

// Deposit is a player top-up request. Funds reach the balance only when
// an admin approves; OrderID keeps gateway postbacks idempotent.
type Deposit struct {
	ID          int64         `json:"id" gorm:"primaryKey,autoIncrement"`
	UserID      int64         `json:"user_id" gorm:"index;not null;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	OrderID     string        `json:"order_id" gorm:"index"`
	AmountPaise int64         `json:"amount_paise"`
	Method      string        `json:"method"`
	Status      RequestStatus `json:"status" gorm:"index;default:pending"`
	CreatedAt   time.Time     `json:"created_at"`
	ReviewedAt  *time.Time    `json:"reviewed_at"`
	ReviewerID  *int64        `json:"reviewer_id"`
}

// GetUserTotalDeposit sums the user's approved deposits, used by the
// withdrawal gate.
func GetUserTotalDeposit(tx *gorm.DB, userID int64) (int64, error) {
	if tx == nil {
		tx = db.DB
	}

	var sum sql.NullInt64
	if err := tx.Model(&Deposit{}).
		Where("user_id = ? AND status = ?", userID, RequestApproved).
		Select("SUM(amount_paise)").
		Scan(&sum).Error; err != nil {
		return 0, logger.WrapError(err, "")
	}

	if sum.Valid {
		return sum.Int64, nil
	}

	return 0, nil
}

// CheckIfDepositOrderExists guards against replayed gateway postbacks.
func CheckIfDepositOrderExists(orderID string) (bool, error) {
	var exists bool
	err := db.DB.Model(&Deposit{}).
		Select("count(*) > 0").
		Where("order_id = ?", orderID).
		Scan(&exists).Error
	if err != nil {
		return true, logger.WrapError(err, "")
	}

	return exists, nil
}
