// Package httpx renders the response envelope used by every endpoint:
// {"statusCode": ..., "message": ..., "data": ...}.
package httpx

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salabibne/Attire-Threads-Backend/apperrors"
)

func OK(c *gin.Context, message string, data interface{}) {
	respond(c, http.StatusOK, message, data)
}

func Created(c *gin.Context, message string, data interface{}) {
	respond(c, http.StatusCreated, message, data)
}

func respond(c *gin.Context, status int, message string, data interface{}) {
	body := gin.H{"statusCode": status, "message": message}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

// Error maps a domain error to its HTTP status. Unrecognized errors are
// logged and collapsed to a fixed 500 message so internal detail never
// reaches the client.
func Error(c *gin.Context, err error) {
	var insufficient *apperrors.InsufficientStockError
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		respond(c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, apperrors.ErrConflict):
		respond(c, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		// A racing insert can slip past a check-then-create; the store's
		// unique constraint still reports it as a conflict, not a 500.
		respond(c, http.StatusConflict, "already exists", nil)
	case errors.As(err, &insufficient):
		respond(c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, apperrors.ErrEmptyCart):
		respond(c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, apperrors.ErrUnauthorized):
		respond(c, http.StatusUnauthorized, "Invalid credentials", nil)
	default:
		log.Printf("storage failure: %v", err)
		respond(c, http.StatusInternalServerError, "Something went wrong, please try again", nil)
	}
}
