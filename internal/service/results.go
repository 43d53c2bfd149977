package service

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/deevxcoder/kinggames-api/cmd/db"
	"github.com/deevxcoder/kinggames-api/internal/middleware"
	"github.com/deevxcoder/kinggames-api/internal/models"
	"github.com/deevxcoder/kinggames-api/internal/payout"
	"github.com/deevxcoder/kinggames-api/pkg/logger"
)

var errAlreadyResulted = errors.New("market already resulted")

type declareResultInput struct {
	Result string `json:"result" validate:"required,len=2"`
}

func (i *declareResultInput) Validate() error {
	if err := validate.Struct(i); err != nil {
		return err
	}
	if !payout.ValidResult(i.Result) {
		return errors.New("result must be two digits, 00-99")
	}
	return nil
}

// DeclareMarketResult handles POST requests declaring the two-digit draw
// for a market. Settlement of every pending wager happens in the same
// database transaction: each wager is decided with the multiplier
// snapshotted at placement, winners are credited, subadmin commissions
// accrue on the handled stakes, and the market becomes terminal. A second
// declaration attempt is rejected, so no wager can settle twice.
func DeclareMarketResult(c *gin.Context) {
	marketID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid market id"})
		return
	}

	var input declareResultInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": "Unable to unmarshal body"})
		return
	}

	if err := input.Validate(); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	adminID, err := middleware.GetUserIDFromGinContext(c)
	if err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	var market models.Market
	var summary settlementSummary

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&market, marketID).Error; err != nil {
			return logger.WrapError(err, "")
		}

		if market.Status == models.MarketResulted {
			return errAlreadyResulted
		}

		now := time.Now()
		market.Result = input.Result
		market.Status = models.MarketResulted
		market.ResultedAt = &now
		if err := tx.Save(&market).Error; err != nil {
			return logger.WrapError(err, "")
		}

		summary, err = settleMarket(tx, &market)
		if err != nil {
			return logger.WrapError(err, "")
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(404, gin.H{"error": "Market not found"})
			return
		}
		if errors.Is(err, errAlreadyResulted) {
			c.JSON(409, gin.H{"error": err.Error()})
			return
		}
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	logger.Info("Market %d resulted %s by admin %d: %d wagers, %d winners, %d paise paid",
		market.ID, market.Result, adminID, summary.Settled, summary.Winners, summary.PaidPaise)

	publishMarketResult(c.Request.Context(), &market)

	c.JSON(200, gin.H{
		"market":      market,
		"settled":     summary.Settled,
		"winners":     summary.Winners,
		"paid_paise":  summary.PaidPaise,
		"commissions": summary.CommissionPaise,
	})
}

type settlementSummary struct {
	Settled         int
	Winners         int
	PaidPaise       int64
	CommissionPaise int64
}

// settleMarket flips every pending wager of the market to win or loss and
// credits payouts and commissions. Caller holds the market row lock.
func settleMarket(tx *gorm.DB, market *models.Market) (settlementSummary, error) {
	var summary settlementSummary

	wagers, err := models.GetPendingWagersForUpdate(tx, market.ID)
	if err != nil {
		return summary, logger.WrapError(err, "")
	}

	now := time.Now()
	handledBySubadmin := make(map[int64]int64)

	for i := range wagers {
		wager := &wagers[i]

		var user models.User
		if err := tx.Select("id", "subadmin_id").First(&user, wager.UserID).Error; err != nil {
			return summary, logger.WrapError(err, "")
		}

		won := payout.IsWinner(payout.GameMode(wager.GameMode), wager.Prediction, market.Result)
		wager.SettledAt = &now

		if won {
			wager.Status = models.WagerWin
			wager.PayoutPaise = payout.Payout(wager.StakePaise, wager.Multiplier)

			if err := models.CreditBalance(tx, wager.UserID, wager.PayoutPaise); err != nil {
				return summary, logger.WrapError(err, "")
			}
			if err := models.RecordTransaction(tx, &models.Transaction{
				UserID:      wager.UserID,
				Type:        models.TxPayout,
				AmountPaise: wager.PayoutPaise,
				Reference:   strconv.FormatInt(wager.ID, 10),
				Note:        "satamatka " + wager.GameMode + " " + market.Result,
			}); err != nil {
				return summary, logger.WrapError(err, "")
			}

			summary.Winners++
			summary.PaidPaise += wager.PayoutPaise
		} else {
			wager.Status = models.WagerLoss
		}

		if err := tx.Save(wager).Error; err != nil {
			return summary, logger.WrapError(err, "")
		}

		if user.SubadminID != nil {
			handledBySubadmin[*user.SubadminID] += wager.StakePaise
		}

		summary.Settled++
	}

	for subadminID, handledPaise := range handledBySubadmin {
		rate, err := models.GetCommissionRate(tx, subadminID, market.GameType)
		if err != nil {
			return summary, logger.WrapError(err, "")
		}

		commission := payout.CommissionAmount(handledPaise, rate)
		if commission == 0 {
			continue
		}

		if err := models.CreditBalance(tx, subadminID, commission); err != nil {
			return summary, logger.WrapError(err, "")
		}
		if err := models.RecordTransaction(tx, &models.Transaction{
			UserID:      subadminID,
			Type:        models.TxCommission,
			AmountPaise: commission,
			Reference:   strconv.FormatInt(market.ID, 10),
			Note:        "commission on market " + market.Name,
		}); err != nil {
			return summary, logger.WrapError(err, "")
		}

		summary.CommissionPaise += commission
	}

	return summary, nil
}
