package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/deevxcoder/kinggames-api/cmd/db"
	"github.com/deevxcoder/kinggames-api/pkg/logger"
)

// Players must have deposited at least this much (approved, lifetime)
// before the first withdrawal is allowed.
const MinDepositSumToWithdrawalPaise = 1300000 // 13,000 rupees

// Withdrawal is a player cash-out request. The amount is debited from the
// balance when the request is created and refunded if an admin rejects it.
type Withdrawal struct {
	ID          int64         `json:"id" gorm:"primaryKey,autoIncrement"`
	UserID      int64         `json:"user_id" gorm:"index;not null;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	AmountPaise int64         `json:"amount_paise"`
	Method      string        `json:"method"`
	OrderID     string        `json:"order_id" gorm:"index"`
	Status      RequestStatus `json:"status" gorm:"index;default:pending"`
	CreatedAt   time.Time     `json:"created_at"`
	ReviewedAt  *time.Time    `json:"reviewed_at"`
	ReviewerID  *int64        `json:"reviewer_id"`
}

// Rollback refunds the reserved amount and marks the request rejected.
// Runs inside the reviewer's transaction.
func (w *Withdrawal) Rollback(tx *gorm.DB, reviewerID int64) error {
	if tx == nil {
		tx = db.DB
	}
	if w.UserID == 0 || w.AmountPaise == 0 {
		return nil
	}

	if err := CreditBalance(tx, w.UserID, w.AmountPaise); err != nil {
		return logger.WrapError(err, "")
	}

	now := time.Now()
	w.Status = RequestRejected
	w.ReviewedAt = &now
	w.ReviewerID = &reviewerID
	if err := tx.Save(w).Error; err != nil {
		return logger.WrapError(err, "")
	}

	if err := RecordTransaction(tx, &Transaction{
		UserID:      w.UserID,
		Type:        TxWithdrawal,
		AmountPaise: w.AmountPaise,
		Reference:   w.OrderID,
		Note:        "withdrawal rejected, funds returned",
	}); err != nil {
		return logger.WrapError(err, "")
	}

	logger.Debug("Withdrawal rolled back. Order id: %s", w.OrderID)

	return nil
}
