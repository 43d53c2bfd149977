package service

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/deevxcoder/kinggames-api/cmd/db"
	"github.com/deevxcoder/kinggames-api/internal/models"
	"github.com/deevxcoder/kinggames-api/pkg/logger"
)

type createMarketInput struct {
	Name      string    `json:"name" validate:"required,min=2,max=64"`
	GameType  string    `json:"game_type"`
	OpenTime  time.Time `json:"open_time" validate:"required"`
	CloseTime time.Time `json:"close_time" validate:"required"`
}

func (i *createMarketInput) Validate() error {
	if err := validate.Struct(i); err != nil {
		return err
	}
	if !i.OpenTime.Before(i.CloseTime) {
		return errors.New("open_time must be before close_time")
	}
	return nil
}

func CreateMarket(c *gin.Context) {
	var input createMarketInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": "Unable to unmarshal body"})
		return
	}

	if err := input.Validate(); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	if input.GameType == "" {
		input.GameType = GameTypeSatamatka
	}

	market := models.Market{
		Name:      input.Name,
		GameType:  input.GameType,
		OpenTime:  input.OpenTime,
		CloseTime: input.CloseTime,
		Status:    models.MarketWaiting,
	}

	if err := db.DB.Create(&market).Error; err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	c.JSON(200, market)
}

// Legal transitions only: waiting -> open -> closed. Resulted markets
// are terminal and only the result endpoint moves a market there.
var marketTransitions = map[models.MarketStatus]models.MarketStatus{
	models.MarketOpen:   models.MarketWaiting,
	models.MarketClosed: models.MarketOpen,
}

func SetMarketStatus(c *gin.Context) {
	marketID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid market id"})
		return
	}

	var input struct {
		Status models.MarketStatus `json:"status" binding:"required,oneof=open closed"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	var market models.Market
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&market, marketID).Error; err != nil {
			return logger.WrapError(err, "")
		}

		if marketTransitions[input.Status] != market.Status {
			return errBadTransition
		}

		market.Status = input.Status
		if err := tx.Save(&market).Error; err != nil {
			return logger.WrapError(err, "")
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(404, gin.H{"error": "Market not found"})
			return
		}
		if errors.Is(err, errBadTransition) {
			c.JSON(409, gin.H{"error": err.Error()})
			return
		}
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	c.JSON(200, market)
}

var errBadTransition = errors.New("market status transition not allowed")

// GetActiveMarkets lists markets players can currently bet on or are
// about to open.
func GetActiveMarkets(c *gin.Context) {
	markets, err := models.ListActiveMarkets()
	if err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	if len(markets) == 0 {
		c.String(404, "[]")
		return
	}

	c.JSON(200, markets)
}

// GetAllMarkets is the admin listing, newest first.
func GetAllMarkets(c *gin.Context) {
	var markets []models.Market
	if err := db.DB.Order("created_at desc").Limit(100).Find(&markets).Error; err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	c.JSON(200, markets)
}
