package models

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/deevxcoder/kinggames-api/cmd/db"
	"github.com/deevxcoder/kinggames-api/pkg/logger"
)

type WagerStatus string

const (
	WagerPending WagerStatus = "pending"
	WagerWin     WagerStatus = "win"
	WagerLoss    WagerStatus = "loss"
)

// Stake bounds in paise, enforced at placement.
const (
	MinStakePaise = 10
	MaxStakePaise = 10000
)

// Wager is a single Satamatka bet. Multiplier is snapshotted in
// hundredths at placement so later odds edits never change what an open
// wager pays; settlement only flips pending rows.
type Wager struct {
	ID          int64       `json:"id" gorm:"primaryKey,autoIncrement"`
	UserID      int64       `json:"user_id" gorm:"index;not null;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	MarketID    int64       `json:"market_id" gorm:"index;not null;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	GameMode    string      `json:"game_mode" gorm:"index"`
	Prediction  string      `json:"prediction"`
	StakePaise  int64       `json:"stake_paise"`
	Multiplier  int64       `json:"multiplier"`
	Status      WagerStatus `json:"status" gorm:"index;default:pending"`
	PayoutPaise int64       `json:"payout_paise"`
	CreatedAt   time.Time   `json:"created_at"`
	SettledAt   *time.Time  `json:"settled_at"`
}

// GetPendingWagersForUpdate locks every pending wager of a market for the
// settlement transaction.
func GetPendingWagersForUpdate(tx *gorm.DB, marketID int64) ([]Wager, error) {
	var wagers []Wager
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("market_id = ? AND status = ?", marketID, WagerPending).
		Find(&wagers).Error
	if err != nil {
		return nil, logger.WrapError(err, "")
	}

	return wagers, nil
}

// GetUserWagers returns a page of the user's bet history, newest first.
func GetUserWagers(userID int64, limit, offset int) ([]Wager, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var wagers []Wager
	err := db.DB.
		Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&wagers).Error
	if err != nil {
		return nil, logger.WrapError(err, "")
	}

	return wagers, nil
}
