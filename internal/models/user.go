package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/deevxcoder/kinggames-api/cmd/db"
	"github.com/deevxcoder/kinggames-api/pkg/logger"
)

type UserRole string

const (
	RolePlayer   UserRole = "player"
	RoleSubadmin UserRole = "subadmin"
	RoleAdmin    UserRole = "admin"
)

type User struct {
	ID           int64     `json:"id" gorm:"primaryKey,autoIncrement"`
	Username     string    `json:"username" gorm:"unique"`
	Mobile       string    `json:"mobile"`
	Password     string    `json:"-"`
	Role         UserRole  `json:"role" gorm:"index;default:player"`
	BalancePaise int64     `json:"balance_paise"`
	Blocked      bool      `json:"blocked"`
	SubadminID   *int64    `json:"subadmin_id" gorm:"index"`
	CreatedAt    time.Time `json:"created_at"`
}

func CheckIfUserExistsByID(userID int64) (bool, error) {
	var exists bool
	err := db.DB.Model(&User{}).
		Select("count(*) > 0").
		Where("id = ?", userID).
		Scan(&exists).Error
	if err != nil {
		return true, logger.WrapError(err, "")
	}

	return exists, nil
}

func CheckIfUserExistsByUsername(username string) (bool, error) {
	var exists bool
	err := db.DB.Model(&User{}).
		Select("count(*) > 0").
		Where("username = ?", username).
		Scan(&exists).Error
	if err != nil {
		return true, logger.WrapError(err, "")
	}

	return exists, nil
}

func GetUserWithPassword(username string) (*User, error) {
	var user User

	err := db.DB.
		Where("username = ?", username).
		First(&user).Error
	if err != nil {
		return nil, logger.WrapError(err, "")
	}

	return &user, nil
}

// GetUserRole reads only the role column, used by the role middleware on
// every admin request.
func GetUserRole(userID int64) (UserRole, error) {
	var role UserRole
	err := db.DB.Model(&User{}).
		Select("role").
		Where("id = ?", userID).
		Scan(&role).Error
	if err != nil {
		return "", logger.WrapError(err, "")
	}

	return role, nil
}

// CreditBalance adds amountPaise to the user balance inside tx. Negative
// amounts debit; callers must have verified funds under a row lock.
func CreditBalance(tx *gorm.DB, userID int64, amountPaise int64) error {
	if tx == nil {
		tx = db.DB
	}

	err := tx.Model(&User{}).
		Where("id = ?", userID).
		Update("balance_paise", gorm.Expr("balance_paise + ?", amountPaise)).Error
	if err != nil {
		return logger.WrapError(err, "")
	}

	return nil
}
