package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"github.com/deevxcoder/kinggames-api/internal/models"
	"github.com/deevxcoder/kinggames-api/pkg/logger"
)

const ContextUserIDKey = "user_id"

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := GetTokenFromAuthorizationHeader(c)
		if err != nil {
			c.JSON(401, gin.H{"error": "User not authorized"})
			c.Abort()
			return
		}

		userID, tokenType, err := TokenCheck(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				c.AbortWithStatus(401)
				return
			}
			c.AbortWithStatus(400)
			return
		}

		if tokenType != TokenAccess {
			c.AbortWithStatus(401)
			return
		}

		// check if user in database
		exists, err := models.CheckIfUserExistsByID(userID)
		if err != nil {
			logger.Error("%v", err)
			c.AbortWithStatus(500)
			return
		}

		if !exists {
			c.JSON(401, gin.H{"error": "User not authorized"})
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}

// RequireRole allows the request through only when the authenticated
// user holds one of the given roles. Runs after AuthMiddleware.
func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := GetUserIDFromGinContext(c)
		if err != nil {
			logger.Error("%v", err)
			c.AbortWithStatus(500)
			return
		}

		role, err := models.GetUserRole(userID)
		if err != nil {
			logger.Error("%v", err)
			c.AbortWithStatus(500)
			return
		}

		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		c.JSON(403, gin.H{"error": "Forbidden"})
		c.Abort()
	}
}

func GetUserIDFromGinContext(c *gin.Context) (int64, error) {
	userIDAny, ok := c.Get(ContextUserIDKey)
	if !ok {
		return 0, logger.WrapError(errors.New("user_id not in GIN context"), "")
	}

	userID, ok := userIDAny.(int64)
	if !ok {
		return 0, logger.WrapError(errors.New("unable to cast user_id value to int"), "")
	}

	return userID, nil
}
