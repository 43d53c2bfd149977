package service

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/deevxcoder/kinggames-api/cmd/db"
	"github.com/deevxcoder/kinggames-api/internal/middleware"
	"github.com/deevxcoder/kinggames-api/internal/models"
	"github.com/deevxcoder/kinggames-api/internal/payout"
	"github.com/deevxcoder/kinggames-api/pkg/logger"
)

type gameOddView struct {
	GameMode   string `json:"game_mode"`
	OddValue   int64  `json:"odd_value"`
	Multiplier string `json:"multiplier"`
}

// GetGameOdds returns the effective multiplier per mode for the caller:
// their subadmin's overrides when assigned, global rows otherwise,
// built-in defaults for anything unconfigured.
func GetGameOdds(c *gin.Context) {
	userID, err := middleware.GetUserIDFromGinContext(c)
	if err != nil {
		logger.Error("%v", err)
		c.Status(500)
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

	views := make([]gameOddView, 0, 4)
	for _, mode := range payout.Modes() {
		multiplier := table.Multiplier(mode)
		views = append(views, gameOddView{
			GameMode:   string(mode),
			OddValue:   multiplier,
			Multiplier: payout.FormatMultiplier(multiplier),
		})
	}

	c.JSON(200, views)
}

type setGameOddInput struct {
	GameType   string `json:"game_type"`
	GameMode   string `json:"game_mode" validate:"required,oneof=jodi harf crossing odd_even"`
	Multiplier string `json:"multiplier" validate:"required"`
	SubadminID *int64 `json:"subadmin_id"`
}

func (i *setGameOddInput) Validate() error {
	return validate.Struct(i)
}

// SetGameOdds stores one operator-submitted multiplier. Admins may set
// global rows or any subadmin's rows; the multiplier is a decimal string
// parsed to hundredths, never a float.
func SetGameOdds(c *gin.Context) {
	var input setGameOddInput
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

	oddValue, err := payout.ParseMultiplier(input.Multiplier)
	if err != nil {
		c.JSON(400, gin.H{"error": "multiplier must be a non-negative decimal like 4.50"})
		return
	}

	if input.SubadminID != nil {
		role, err := models.GetUserRole(*input.SubadminID)
		if err != nil {
			logger.Error("%v", err)
			c.Status(500)
			return
		}
		if role != models.RoleSubadmin {
			c.JSON(404, gin.H{"error": "Subadmin not found"})
			return
		}
	}

	odd := models.GameOdd{
		GameType:   input.GameType,
		GameMode:   input.GameMode,
		SubadminID: input.SubadminID,
		OddValue:   oddValue,
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		return models.UpsertGameOdd(tx, &odd)
	})
	if err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	invalidateOddsCache(c.Request.Context(), input.GameType)

	c.JSON(200, gameOddView{
		GameMode:   odd.GameMode,
		OddValue:   odd.OddValue,
		Multiplier: payout.FormatMultiplier(odd.OddValue),
	})
}

// ListConfiguredOdds returns the raw configured rows for the admin odds
// screen, including subadmin overrides.
func ListConfiguredOdds(c *gin.Context) {
	gameType := c.DefaultQuery("game_type", GameTypeSatamatka)

	var rows []models.GameOdd
	err := db.DB.Where("game_type = ?", gameType).
		Order("subadmin_id nulls first, game_mode").
		Find(&rows).Error
	if err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	c.JSON(200, rows)
}
