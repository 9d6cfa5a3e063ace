package handlers

import (
	"errors"
	"log"
	"net/http"

	"coparent/models"

	"github.com/gin-gonic/gin"
)

// Response is the error payload returned by all endpoints. Code is a stable
// machine-readable string; Error is for humans.
type Response struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

var errorCodes = []struct {
	err    error
	status int
	code   string
}{
	{models.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
	{models.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
	{models.ErrConflict, http.StatusConflict, "CONFLICT"},
	{models.ErrExpired, http.StatusGone, "EXPIRED"},
	{models.ErrAlreadyProcessed, http.StatusConflict, "ALREADY_PROCESSED"},
	{models.ErrEmailTaken, http.StatusConflict, "EMAIL_TAKEN"},
	{models.ErrEmailMismatch, http.StatusBadRequest, "INVITATION_EMAIL_MISMATCH"},
	{models.ErrInvalidAction, http.StatusBadRequest, "VALIDATION_ERROR"},
}

// fail maps a models error to its HTTP status and stable code. Unexpected
// errors are logged and surfaced as a generic internal error.
func fail(c *gin.Context, err error) {
	for _, entry := range errorCodes {
		if errors.Is(err, entry.err) {
			c.JSON(entry.status, Response{Error: entry.err.Error(), Code: entry.code})
			return
		}
	}
	log.Printf("Internal error on %s: %v", c.FullPath(), err)
	c.JSON(http.StatusInternalServerError, Response{Error: "internal error", Code: "INTERNAL"})
}

func failValidation(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, Response{Error: err.Error(), Code: "VALIDATION_ERROR"})
}
