package models

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/deevxcoder/kinggames-api/cmd/db"
	"github.com/deevxcoder/kinggames-api/internal/payout"
	"github.com/deevxcoder/kinggames-api/pkg/logger"
)

// GameOdd is one operator-configured payout multiplier, in hundredths
// ("250" means 2.50x). A row with SubadminID set overrides the global row
// for that subadmin's players.
type GameOdd struct {
	ID         int64     `json:"id" gorm:"primaryKey,autoIncrement"`
	GameType   string    `json:"game_type" gorm:"uniqueIndex:idx_game_odds_key"`
	GameMode   string    `json:"game_mode" gorm:"uniqueIndex:idx_game_odds_key"`
	SubadminID *int64    `json:"subadmin_id" gorm:"uniqueIndex:idx_game_odds_key"`
	OddValue   int64     `json:"odd_value"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// GetOddsTable builds the effective multiplier table for a game type:
// global rows first, then the subadmin's overrides on top. Modes missing
// from the table fall back to payout's built-in defaults at lookup time,
// so an empty or unreachable odds store never blocks play or settlement.
func GetOddsTable(tx *gorm.DB, gameType string, subadminID *int64) (payout.OddsTable, error) {
	if tx == nil {
		tx = db.DB
	}

	var rows []GameOdd
	if err := tx.Where("game_type = ? AND subadmin_id IS NULL", gameType).
		Find(&rows).Error; err != nil {
		return nil, logger.WrapError(err, "")
	}

	table := make(payout.OddsTable, len(rows))
	for _, row := range rows {
		table[payout.GameMode(row.GameMode)] = row.OddValue
	}

	if subadminID != nil {
		var overrides []GameOdd
		if err := tx.Where("game_type = ? AND subadmin_id = ?", gameType, *subadminID).
			Find(&overrides).Error; err != nil {
			return nil, logger.WrapError(err, "")
		}
		for _, row := range overrides {
			table[payout.GameMode(row.GameMode)] = row.OddValue
		}
	}

	return table, nil
}

// UpsertGameOdd writes one multiplier row, keyed by
// (game_type, game_mode, subadmin_id).
func UpsertGameOdd(tx *gorm.DB, odd *GameOdd) error {
	if tx == nil {
		tx = db.DB
	}

	var existing GameOdd
	query := tx.Where("game_type = ? AND game_mode = ?", odd.GameType, odd.GameMode)
	if odd.SubadminID == nil {
		query = query.Where("subadmin_id IS NULL")
	} else {
		query = query.Where("subadmin_id = ?", *odd.SubadminID)
	}

	err := query.First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := tx.Create(odd).Error; err != nil {
			return logger.WrapError(err, "")
		}
		return nil
	} else if err != nil {
		return logger.WrapError(err, "")
	}

	existing.OddValue = odd.OddValue
	if err := tx.Save(&existing).Error; err != nil {
		return logger.WrapError(err, "")
	}
	odd.ID = existing.ID

	return nil
}
