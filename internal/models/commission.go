package models

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/deevxcoder/kinggames-api/cmd/db"
	"github.com/deevxcoder/kinggames-api/pkg/logger"
)

// Commission is a per-subadmin facilitation rate in basis points,
// independent of payout multipliers. A row with SubadminID nil is the
// global default for the game type.
type Commission struct {
	ID              int64     `json:"id" gorm:"primaryKey,autoIncrement"`
	SubadminID      *int64    `json:"subadmin_id" gorm:"uniqueIndex:idx_commissions_key"`
	GameType        string    `json:"game_type" gorm:"uniqueIndex:idx_commissions_key"`
	RateBasisPoints int64     `json:"rate_basis_points"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// GetCommissionRate resolves the rate for a subadmin and game type:
// subadmin row, then global row, then 0 (no commission configured).
func GetCommissionRate(tx *gorm.DB, subadminID int64, gameType string) (int64, error) {
	if tx == nil {
		tx = db.DB
	}

	var commission Commission
	err := tx.Where("subadmin_id = ? AND game_type = ?", subadminID, gameType).
		First(&commission).Error
	if err == nil {
		return commission.RateBasisPoints, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, logger.WrapError(err, "")
	}

	err = tx.Where("subadmin_id IS NULL AND game_type = ?", gameType).
		First(&commission).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	} else if err != nil {
		return 0, logger.WrapError(err, "")
	}

	return commission.RateBasisPoints, nil
}

// UpsertCommission writes one rate row, keyed by (subadmin_id, game_type).
func UpsertCommission(tx *gorm.DB, commission *Commission) error {
	if tx == nil {
		tx = db.DB
	}

	var existing Commission
	query := tx.Where("game_type = ?", commission.GameType)
	if commission.SubadminID == nil {
		query = query.Where("subadmin_id IS NULL")
	} else {
		query = query.Where("subadmin_id = ?", *commission.SubadminID)
	}

	err := query.First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := tx.Create(commission).Error; err != nil {
			return logger.WrapError(err, "")
		}
		return nil
	} else if err != nil {
		return logger.WrapError(err, "")
	}

	existing.RateBasisPoints = commission.RateBasisPoints
	if err := tx.Save(&existing).Error; err != nil {
		return logger.WrapError(err, "")
	}
	commission.ID = existing.ID

	return nil
}
