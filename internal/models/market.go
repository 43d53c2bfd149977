package models

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/deevxcoder/kinggames-api/cmd/db"
	"github.com/deevxcoder/kinggames-api/pkg/logger"
)

var ErrMarketClosed = errors.New("market is not accepting wagers")

type MarketStatus string

const (
	MarketWaiting  MarketStatus = "waiting"
	MarketOpen     MarketStatus = "open"
	MarketClosed   MarketStatus = "closed"
	MarketResulted MarketStatus = "resulted"
)

// Market is a single Satamatka draw window. Wagers attach to a market
// while it is open; the declared two-digit result settles them.
type Market struct {
	ID         int64        `json:"id" gorm:"primaryKey,autoIncrement"`
	Name       string       `json:"name"`
	GameType   string       `json:"game_type" gorm:"index;default:satamatka"`
	OpenTime   time.Time    `json:"open_time"`
	CloseTime  time.Time    `json:"close_time"`
	Status     MarketStatus `json:"status" gorm:"index;default:waiting"`
	Result     string       `json:"result"`
	CreatedAt  time.Time    `json:"created_at"`
	ResultedAt *time.Time   `json:"resulted_at"`
}

// GetMarketForPlay loads a market and checks it accepts wagers right now:
// status open and the wall clock inside [open_time, close_time).
func GetMarketForPlay(tx *gorm.DB, marketID int64) (*Market, error) {
	if tx == nil {
		tx = db.DB
	}

	var market Market
	if err := tx.First(&market, marketID).Error; err != nil {
		return nil, logger.WrapError(err, "")
	}

	now := time.Now()
	if market.Status != MarketOpen || now.Before(market.OpenTime) || !now.Before(market.CloseTime) {
		return &market, ErrMarketClosed
	}

	return &market, nil
}

// ListActiveMarkets returns markets a player may currently see: open ones
// first, then waiting, newest close time last.
func ListActiveMarkets() ([]Market, error) {
	var markets []Market
	err := db.DB.
		Where("status IN ?", []MarketStatus{MarketOpen, MarketWaiting}).
		Order("close_time asc").
		Find(&markets).Error
	if err != nil {
		return nil, logger.WrapError(err, "")
	}

	return markets, nil
}
