package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/deevxcoder/kinggames-api/cmd/db"
	"github.com/deevxcoder/kinggames-api/pkg/logger"
)

type TransactionType string

const (
	TxDeposit    TransactionType = "deposit"
	TxWithdrawal TransactionType = "withdrawal"
	TxBet        TransactionType = "bet"
	TxPayout     TransactionType = "payout"
	TxCommission TransactionType = "commission"
	TxAdjustment TransactionType = "adjustment"
)

// Transaction is one ledger row per balance movement. AmountPaise is
// signed: debits negative, credits positive.
type Transaction struct {
	ID          int64           `json:"id" gorm:"primaryKey,autoIncrement"`
	UserID      int64           `json:"user_id" gorm:"index;not null;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Type        TransactionType `json:"type" gorm:"index"`
	AmountPaise int64           `json:"amount_paise"`
	Reference   string          `json:"reference"`
	Note        string          `json:"note"`
	CreatedAt   time.Time       `json:"created_at"`
}

// RecordTransaction appends a ledger row inside the caller's transaction.
// Every balance mutation goes through here so the statement always
// reconciles with the balance column.
func RecordTransaction(tx *gorm.DB, entry *Transaction) error {
	if tx == nil {
		tx = db.DB
	}

	if err := tx.Create(entry).Error; err != nil {
		return logger.WrapError(err, "")
	}

	return nil
}

// GetUserStatement returns a page of the user's ledger, newest first.
func GetUserStatement(userID int64, limit, offset int) ([]Transaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var entries []Transaction
	err := db.DB.
		Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error
	if err != nil {
		return nil, logger.WrapError(err, "")
	}

	return entries, nil
}
