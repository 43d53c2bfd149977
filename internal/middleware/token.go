package middleware

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"github.com/deevxcoder/kinggames-api/pkg/logger"
)

const (
	TokenAccess  = "TokenAccess"
	TokenRefresh = "TokenRefresh"
)

var jwtKey string

func init() {
	var ok bool
	jwtKey, ok = os.LookupEnv("JWT_SECRET")
	if !ok {
		logger.Fatal("unable to get JWT secret from environment")
	}
}

type tokenClaims struct {
	UserID    int64  `json:"user_id"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenNew issues a signed token for the user, expiring at the unix
// timestamp expiresAt.
func TokenNew(userID int64, expiresAt int64, tokenType string) (string, error) {
	claims := tokenClaims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Unix(expiresAt, 0)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(jwtKey))
	if err != nil {
		return "", logger.WrapError(err, "")
	}

	return signed, nil
}

// TokenCheck validates a signed token and returns the user id and token
// type. Expired tokens surface jwt.ErrTokenExpired for the caller to map
// to 401.
func TokenCheck(tokenString string) (int64, string, error) {
	var claims tokenClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected token signing method")
		}
		return []byte(jwtKey), nil
	})
	if err != nil {
		return 0, "", err
	}

	if !token.Valid || claims.UserID == 0 {
		return 0, "", errors.New("invalid token")
	}

	return claims.UserID, claims.TokenType, nil
}

// GetTokenFromAuthorizationHeader extracts the bearer token. WebSocket
// upgrade requests carry the token in the access_token query parameter
// because browsers cannot set headers on WebSocket handshakes.
func GetTokenFromAuthorizationHeader(c *gin.Context) (string, error) {
	if c.IsWebsocket() {
		if token := c.Query("access_token"); token != "" {
			return token, nil
		}
	}

	header := c.GetHeader("Authorization")
	if header == "" {
		return "", errors.New("missing Authorization header")
	}

	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return "", errors.New("malformed Authorization header")
	}

	return token, nil
}
