package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"yasmin-alsham-backend/internal/database"
	"yasmin-alsham-backend/internal/models"
	"yasmin-alsham-backend/internal/store"
	"yasmin-alsham-backend/internal/supabase"
)

// respondError maps store and backend errors onto HTTP statuses.
func respondError(c *gin.Context, msg string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, database.ErrNotFound), errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, store.ErrNoIdentity), errors.Is(err, supabase.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, store.ErrWorkerMismatch):
		status = http.StatusConflict
	}
	c.JSON(status, models.ErrorResponse{Error: msg, Message: err.Error()})
}

func badRequest(c *gin.Context, msg string, err error) {
	resp := models.ErrorResponse{Error: msg}
	if err != nil {
		resp.Message = err.Error()
	}
	c.JSON(http.StatusBadRequest, resp)
}

func notFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, models.ErrorResponse{Error: msg})
}
