package main

import (
	"os"

	"github.com/deevxcoder/kinggames-api/cmd/db"
	"github.com/deevxcoder/kinggames-api/internal/middleware"
	"github.com/deevxcoder/kinggames-api/internal/models"
	"github.com/deevxcoder/kinggames-api/internal/payout"
	"github.com/deevxcoder/kinggames-api/pkg/logger"
)

func main() {
	// dropTables()
	createTables()
	seedGameOdds()
	seedAdminUser()

	logger.Info("Migrated.")
}

func dropTables() {
	db.DB.Migrator().DropTable(
		&models.User{},
		&models.Market{},
		&models.Wager{},
		&models.GameOdd{},
		&models.Commission{},
		&models.Deposit{},
		&models.Withdrawal{},
		&models.Transaction{},
	)
}

func createTables() {
	err := db.DB.AutoMigrate(
		&models.User{},
		&models.Market{},
		&models.Wager{},
		&models.GameOdd{},
		&models.Commission{},
		&models.Deposit{},
		&models.Withdrawal{},
		&models.Transaction{},
	)
	if err != nil {
		logger.Fatal("%v", err)
	}
}

// seedGameOdds writes the built-in default multipliers as explicit global
// rows so the admin odds screen starts populated.
func seedGameOdds() {
	for mode, multiplier := range payout.DefaultOdds() {
		odd := models.GameOdd{
			GameType: "satamatka",
			GameMode: string(mode),
			OddValue: multiplier,
		}
		if err := models.UpsertGameOdd(nil, &odd); err != nil {
			logger.Fatal("%v", err)
		}
	}
}

func seedAdminUser() {
	username, ok := os.LookupEnv("ADMIN_USERNAME")
	if !ok {
		username = "admin"
	}
	password, ok := os.LookupEnv("ADMIN_PASSWORD")
	if !ok {
		logger.Fatal("unable to get admin password from environment")
	}

	exists, err := models.CheckIfUserExistsByUsername(username)
	if err != nil {
		logger.Fatal("%v", err)
	}
	if exists {
		return
	}

	hash, err := middleware.HashPassword(password)
	if err != nil {
		logger.Fatal("%v", err)
	}

	admin := models.User{
		Username: username,
		Password: hash,
		Role:     models.RoleAdmin,
	}
	if err := db.DB.Create(&admin).Error; err != nil {
		logger.Fatal("%v", err)
	}
}
