package service

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/deevxcoder/kinggames-api/cmd/db"
	"github.com/deevxcoder/kinggames-api/internal/middleware"
	"github.com/deevxcoder/kinggames-api/internal/models"
	"github.com/deevxcoder/kinggames-api/internal/payout"
	"github.com/deevxcoder/kinggames-api/pkg/logger"
)

type satamatkaBetInput struct {
	MarketID   int64  `json:"market_id" validate:"required"`
	GameMode   string `json:"game_mode" validate:"required,oneof=jodi harf crossing odd_even"`
	Prediction string `json:"prediction" validate:"required,max=4"`
	StakePaise int64  `json:"stake_paise" validate:"required,min=10,max=10000"`
}

func (i *satamatkaBetInput) Validate() error {
	return validate.Struct(i)
}

// PlaceSatamatkaBet handles POST requests to place a wager on an open
// market. The effective multiplier is snapshotted onto the wager row so
// settlement pays exactly what the pre-commit preview showed.
func PlaceSatamatkaBet(c *gin.Context) {
	var input satamatkaBetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": "Unable to unmarshal body"})
		return
	}

	if err := input.Validate(); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	mode := payout.GameMode(input.GameMode)
	if err := payout.ValidatePrediction(mode, input.Prediction); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	userID, err := middleware.GetUserIDFromGinContext(c)
	if err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	var wager models.Wager

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&user, userID).Error; err != nil {
			return logger.WrapError(err, "")
		}

		if user.Blocked {
			return errUserBlocked
		}

		market, err := models.GetMarketForPlay(tx, input.MarketID)
		if err != nil {
			return err
		}

		if user.BalancePaise < input.StakePaise {
			return ErrInsufficientBalance
		}

		table := effectiveOddsTable(c.Request.Context(), tx, market.GameType, user.SubadminID)
		multiplier := table.Multiplier(mode)

		if err := models.CreditBalance(tx, userID, -input.StakePaise); err != nil {
			return logger.WrapError(err, "")
		}

		wager = models.Wager{
			UserID:     userID,
			MarketID:   market.ID,
			GameMode:   input.GameMode,
			Prediction: input.Prediction,
			StakePaise: input.StakePaise,
			Multiplier: multiplier,
			Status:     models.WagerPending,
		}
		if err := tx.Create(&wager).Error; err != nil {
			return logger.WrapError(err, "")
		}

		return models.RecordTransaction(tx, &models.Transaction{
			UserID:      userID,
			Type:        models.TxBet,
			AmountPaise: -input.StakePaise,
			Reference:   strconv.FormatInt(wager.ID, 10),
			Note:        "satamatka " + input.GameMode,
		})
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInsufficientBalance):
			c.JSON(402, gin.H{"error": err.Error()})
		case errors.Is(err, models.ErrMarketClosed):
			c.JSON(409, gin.H{"error": err.Error()})
		case errors.Is(err, errUserBlocked):
			c.JSON(403, gin.H{"error": err.Error()})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(404, gin.H{"error": "Market not found"})
		default:
			logger.Error("%v", err)
			c.Status(500)
		}
		return
	}

	c.JSON(200, gin.H{
		"wager":         wager,
		"potential_win": payout.Payout(wager.StakePaise, wager.Multiplier),
		"multiplier":    payout.FormatMultiplier(wager.Multiplier),
	})
}

// GetPotentialWin is the advisory pre-commit preview. It runs the same
// formula settlement uses, over the caller's effective odds.
func GetPotentialWin(c *gin.Context) {
	userID, err := middleware.GetUserIDFromGinContext(c)
	if err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	mode := payout.GameMode(c.Query("game_mode"))
	stake, err := strconv.ParseInt(c.Query("stake_paise"), 10, 64)
	if err != nil || stake < 0 {
		c.JSON(400, gin.H{"error": "stake_paise must be a non-negative integer"})
		return
	}

	gameType := c.DefaultQuery("game_type", GameTypeSatamatka)

	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	table := effectiveOddsTable(c.Request.Context(), nil, gameType, user.SubadminID)
	multiplier := table.Multiplier(mode)

	c.JSON(200, gin.H{
		"game_mode":     string(mode),
		"stake_paise":   stake,
		"multiplier":    payout.FormatMultiplier(multiplier),
		"potential_win": payout.Payout(stake, multiplier),
	})
}

// GetUserSatamatkaBets returns the caller's bet history, paginated with
// page/limit query parameters.
func GetUserSatamatkaBets(c *gin.Context) {
	userID, err := middleware.GetUserIDFromGinContext(c)
	if err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	wagers, err := models.GetUserWagers(userID, limit, (page-1)*limit)
	if err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	if len(wagers) == 0 {
		c.String(404, "[]")
		return
	}

	c.JSON(200, wagers)
}
