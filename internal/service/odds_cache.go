package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/deevxcoder/kinggames-api/internal/models"
	"github.com/deevxcoder/kinggames-api/internal/payout"
	"github.com/deevxcoder/kinggames-api/pkg/logger"
	"github.com/deevxcoder/kinggames-api/pkg/redis"
)

// OddsCacheService is a read-through Redis cache in front of the game
// odds table. Every failure path degrades to the built-in default
// multipliers: an odds-store outage must never block play or settlement.
type OddsCacheService struct {
	redisService *redis.RedisService
}

var oddsCache *OddsCacheService

const oddsCacheTTL = 5 * time.Minute

func InitOddsCache(redisService *redis.RedisService) {
	oddsCache = &OddsCacheService{redisService: redisService}
}

func oddsCacheKey(gameType string, subadminID *int64) string {
	if subadminID == nil {
		return fmt.Sprintf("game_odds:%s:global", gameType)
	}
	return fmt.Sprintf("game_odds:%s:%d", gameType, *subadminID)
}

// effectiveOddsTable resolves the multiplier table for a game type and
// optional subadmin: Redis cache, then database, then nil. A nil table
// is safe; payout falls back to the default multipliers per mode.
func effectiveOddsTable(ctx context.Context, tx *gorm.DB, gameType string, subadminID *int64) payout.OddsTable {
	key := oddsCacheKey(gameType, subadminID)

	if oddsCache != nil {
		if data, err := oddsCache.redisService.GetKey(ctx, key); err == nil {
			var table payout.OddsTable
			if err := json.Unmarshal([]byte(data), &table); err == nil {
				return table
			}
			logger.Warn("corrupt odds cache entry %s, dropping", key)
			_ = oddsCache.redisService.DeleteKey(ctx, key)
		} else if !redis.IsNil(err) {
			logger.Warn("odds cache read failed: %v", err)
		}
	}

	table, err := models.GetOddsTable(tx, gameType, subadminID)
	if err != nil {
		logger.Error("odds lookup failed, using default multipliers: %v", err)
		return nil
	}

	if oddsCache != nil {
		if data, err := json.Marshal(table); err == nil {
			if err := oddsCache.redisService.SetKey(ctx, key, data, oddsCacheTTL); err != nil {
				logger.Warn("odds cache write failed: %v", err)
			}
		}
	}

	return table
}

// invalidateOddsCache drops every cached table for a game type after an
// operator edit. Subadmin tables layer on top of the global rows, so a
// global edit invalidates them all.
func invalidateOddsCache(ctx context.Context, gameType string) {
	if oddsCache == nil {
		return
	}

	keys, err := oddsCache.redisService.Client().
		Keys(ctx, fmt.Sprintf("game_odds:%s:*", gameType)).Result()
	if err != nil {
		logger.Warn("odds cache invalidation failed: %v", err)
		return
	}

	for _, key := range keys {
		if err := oddsCache.redisService.DeleteKey(ctx, key); err != nil {
			logger.Warn("odds cache invalidation failed: %v", err)
		}
	}
}
