package service

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"
)

// Default game type for the numbers game; markets may carry variants
// like "dishawar" or "gali" but share the Satamatka mode set.
const GameTypeSatamatka = "satamatka"

var (
	ErrInsufficientBalance = errors.New("insufficient balance")

	errUserBlocked = errors.New("account is blocked")
)

var validate = validator.New()

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}
