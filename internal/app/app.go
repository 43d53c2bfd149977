package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	_ "github.com/deevxcoder/kinggames-api/cmd/db"
	"github.com/deevxcoder/kinggames-api/internal/middleware"
	"github.com/deevxcoder/kinggames-api/internal/models"
	"github.com/deevxcoder/kinggames-api/internal/service"
	"github.com/deevxcoder/kinggames-api/pkg/logger"
	"github.com/deevxcoder/kinggames-api/pkg/redis"
)

const apiPrefix = "api/"

func Start() {
	gin.DisableConsoleColor()

	router := gin.Default()
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.BlockBadActorsMiddleware())

	authorized := router.Group("/", middleware.AuthMiddleware())
	admin := authorized.Group("/", middleware.RequireRole(models.RoleAdmin))
	staff := authorized.Group("/", middleware.RequireRole(models.RoleAdmin, models.RoleSubadmin))

	redisAddr, ok := os.LookupEnv("REDIS_ADDR")
	if !ok {
		redisAddr = "redis:6379"
	}
	redisService := redis.NewRedisService(redisAddr, "")

	service.InitOddsCache(redisService)
	resultsWS := service.InitResultsWebsocketService(redisService)

	// router
	{
		// auth
		router.POST(apiPrefix+"users/auth/signup", service.SignUp)
		router.POST(apiPrefix+"users/auth/login", service.Login)

		// live results
		router.GET(apiPrefix+"ws/satamatka/results", resultsWS.LiveResultsWebsocketHandler)
		router.GET(apiPrefix+"satamatka/results/recent", resultsWS.GetRecentResults)
	}

	// authorized
	{
		// users
		authorized.GET(apiPrefix+"users", service.GetUser)

		// wallet
		authorized.GET(apiPrefix+"wallet/balance", service.GetBalance)
		authorized.GET(apiPrefix+"wallet/statement", service.GetStatement)

		// deposits
		authorized.POST(apiPrefix+"payments/deposit", service.RequestDeposit)
		authorized.GET(apiPrefix+"users/deposits", service.GetUserDeposits)

		// withdrawals
		authorized.POST(apiPrefix+"payments/withdrawal", service.RequestWithdrawal)
		authorized.GET(apiPrefix+"users/withdrawals", service.GetUserWithdrawals)

		// satamatka
		authorized.GET(apiPrefix+"satamatka/markets", service.GetActiveMarkets)
		authorized.POST(apiPrefix+"satamatka/play", service.PlaceSatamatkaBet)
		authorized.GET(apiPrefix+"satamatka/potential-win", service.GetPotentialWin)
		authorized.GET(apiPrefix+"satamatka/bets", service.GetUserSatamatkaBets)

		// odds
		authorized.GET(apiPrefix+"game-odds", service.GetGameOdds)
	}

	// staff (admin and subadmin)
	{
		staff.GET(apiPrefix+"admin/users", service.ListUsers)
	}

	// admin
	{
		// markets
		admin.GET(apiPrefix+"admin/satamatka/markets", service.GetAllMarkets)
		admin.POST(apiPrefix+"admin/satamatka/markets", service.CreateMarket)
		admin.PATCH(apiPrefix+"admin/satamatka/markets/:id/status", service.SetMarketStatus)
		admin.POST(apiPrefix+"admin/satamatka/markets/:id/result", service.DeclareMarketResult)

		// odds
		admin.GET(apiPrefix+"admin/game-odds", service.ListConfiguredOdds)
		admin.POST(apiPrefix+"admin/game-odds", service.SetGameOdds)

		// commissions
		admin.GET(apiPrefix+"admin/commissions", service.ListCommissions)
		admin.POST(apiPrefix+"admin/commissions", service.SetCommission)
		admin.POST(apiPrefix+"admin/commissions/preview", service.PreviewCommission)

		// users
		admin.PATCH(apiPrefix+"admin/users/:id/block", service.SetUserBlocked)
		admin.POST(apiPrefix+"admin/users/:id/balance", service.AdjustBalance)

		// payment review
		admin.POST(apiPrefix+"admin/deposits/:id/review", service.ReviewDeposit)
		admin.POST(apiPrefix+"admin/withdrawals/:id/review", service.ReviewWithdrawal)
	}

	srv := &http.Server{
		Addr:    ":8080",
		Handler: router.Handler(),
	}

	go func() {
		// service connections
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with
	// a timeout of 5 seconds.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutdown Server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server Shutdown: %v", err)
	}

	<-ctx.Done()
	logger.Info("Server exiting")
}
