package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imrishuroy/go-appointment-flow/internal/apperrors"
)

// APIResponse is the envelope of every JSON response.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func respondError(c *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)
	if status == http.StatusBadRequest {
		c.JSON(status, APIResponse{Error: "Validation failed", Message: apperrors.Message(err)})
		return
	}
	c.JSON(status, APIResponse{Error: apperrors.Message(err)})
}
