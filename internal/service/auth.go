package service

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/deevxcoder/kinggames-api/cmd/db"
	"github.com/deevxcoder/kinggames-api/internal/middleware"
	"github.com/deevxcoder/kinggames-api/internal/models"
	"github.com/deevxcoder/kinggames-api/pkg/logger"
)

const AccessExpirationHours = 10

type Token struct {
	AccessToken string `json:"access_token"`
}

type signUpInput struct {
	Username string `json:"username" validate:"required,min=3,max=32"`
	Mobile   string `json:"mobile" validate:"required,min=10,max=15"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

func (i *signUpInput) Validate() error {
	return validate.Struct(i)
}

func SignUp(c *gin.Context) {
	var input signUpInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": "Unable to unmarshal body"})
		return
	}

	if err := input.Validate(); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	exists, err := models.CheckIfUserExistsByUsername(input.Username)
	if err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}
	if exists {
		c.JSON(409, gin.H{"error": "User with this username already exists"})
		return
	}

	hash, err := middleware.HashPassword(input.Password)
	if err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	user := models.User{
		Username: input.Username,
		Mobile:   input.Mobile,
		Password: hash,
		Role:     models.RolePlayer,
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return logger.WrapError(err, "")
		}
		return nil
	})
	if err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	issueToken(c, user.ID)
}

type loginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (i *loginInput) Validate() error {
	return validate.Struct(i)
}

func Login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": "Unable to unmarshal body"})
		return
	}

	if err := input.Validate(); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	user, err := models.GetUserWithPassword(input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(401, gin.H{"error": "Invalid credentials"})
			return
		}
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	if !middleware.ComparePasswords(user.Password, input.Password) {
		c.JSON(401, gin.H{"error": "Invalid credentials"})
		return
	}

	if user.Blocked {
		c.JSON(403, gin.H{"error": "Account is blocked"})
		return
	}

	issueToken(c, user.ID)
}

func issueToken(c *gin.Context, userID int64) {
	expiresAt := time.Now().Unix() + int64(AccessExpirationHours*60*60)

	access, err := middleware.TokenNew(userID, expiresAt, middleware.TokenAccess)
	if err != nil {
		logger.Error("%v", err)
		c.AbortWithStatus(500)
		return
	}

	c.JSON(200, Token{AccessToken: access})
}
