package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/deevxcoder/kinggames-api/internal/models"
	"github.com/deevxcoder/kinggames-api/pkg/logger"
	"github.com/deevxcoder/kinggames-api/pkg/redis"
)

const recentResultTTL = 48 * time.Hour

// MarketResultData is one declared result as shown on the live ticker.
type MarketResultData struct {
	MarketID   int64  `json:"market_id"`
	MarketName string `json:"market_name"`
	GameType   string `json:"game_type"`
	Result     string `json:"result"`
	Timestamp  int64  `json:"timestamp"`
}

// ResultsWebsocketService streams declared market results to connected
// clients and serves the recent-results endpoint from Redis.
type ResultsWebsocketService struct {
	redisService *redis.RedisService
}

var resultsWS *ResultsWebsocketService

func InitResultsWebsocketService(redisService *redis.RedisService) *ResultsWebsocketService {
	resultsWS = &ResultsWebsocketService{redisService: redisService}
	return resultsWS
}

// publishMarketResult stores a declared result for the live feed. Runs
// after the settlement transaction committed; a Redis failure only costs
// the ticker entry, never the settlement.
func publishMarketResult(ctx context.Context, market *models.Market) {
	if resultsWS == nil {
		return
	}

	data := MarketResultData{
		MarketID:   market.ID,
		MarketName: market.Name,
		GameType:   market.GameType,
		Result:     market.Result,
		Timestamp:  time.Now().Unix(),
	}

	payload, err := json.Marshal(data)
	if err != nil {
		logger.Error("%v", err)
		return
	}

	key := fmt.Sprintf("satamatka:result:%d:%d", data.Timestamp, market.ID)
	if err := resultsWS.redisService.SetKey(ctx, key, payload, recentResultTTL); err != nil {
		logger.Warn("failed to store result for live feed: %v", err)
	}
}

// GetRecentResults handles GET requests for the latest declared results.
func (s *ResultsWebsocketService) GetRecentResults(c *gin.Context) {
	results, err := s.fetchRecentResults(c.Request.Context(), 10)
	if err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}
	if len(results) < 1 {
		c.String(404, "[]")
		return
	}
	c.JSON(200, results)
}

// LiveResultsWebsocketHandler pushes each newly declared result to the
// connected client.
func (s *ResultsWebsocketService) LiveResultsWebsocketHandler(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Error("%v", err)
		return
	}
	defer conn.Close()

	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	var lastTimestamp int64

	for range ticker.C {
		results, err := s.fetchRecentResults(c.Request.Context(), 1)
		if err != nil {
			logger.Error("%v", err)
			return
		}

		if len(results) > 0 {
			latest := results[0]
			if latest.Timestamp > lastTimestamp {
				if err := conn.WriteJSON(latest); err != nil {
					logger.Error("%v", err)
					return
				}
				lastTimestamp = latest.Timestamp
			}
		}
	}
}

// fetchRecentResults retrieves up to limit declared results from Redis,
// newest first.
func (s *ResultsWebsocketService) fetchRecentResults(ctx context.Context, limit int) ([]MarketResultData, error) {
	keys, err := s.redisService.Client().Keys(ctx, "satamatka:result:*").Result()
	if err != nil {
		return nil, logger.WrapError(err, "")
	}

	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	if len(keys) > limit {
		keys = keys[:limit]
	}

	var results []MarketResultData
	for _, key := range keys {
		data, err := s.redisService.GetKey(ctx, key)
		if err != nil {
			if redis.IsNil(err) {
				continue
			}
			return nil, logger.WrapError(err, "")
		}

		var result MarketResultData
		if err := json.Unmarshal([]byte(data), &result); err != nil {
			return nil, logger.WrapError(err, "")
		}

		results = append(results, result)
	}

	return results, nil
}
