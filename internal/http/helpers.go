package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gatehouse/identity/internal/auth"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse is a standard success response.
type SuccessResponse struct {
	Message string `json:"message"`
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// respondUnauthorized sends a 401 Unauthorized response.
func respondUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, ErrorResponse{Error: message})
}

// respondInternalError logs the error and sends a 500 Internal Server Error
// response. The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "unexpected error"})
}

// --- Success Response Helpers ---

// respondSuccess sends a 200 OK response with a message.
func respondSuccess(c *gin.Context, message string) {
	c.JSON(http.StatusOK, SuccessResponse{Message: message})
}

// respondCreated sends a 201 Created response with a message.
func respondCreated(c *gin.Context, message string) {
	c.JSON(http.StatusCreated, SuccessResponse{Message: message})
}

// respondServiceError maps an auth service error onto the HTTP status
// contract. Incorrect credentials and invalid tokens share a 401 so a
// caller cannot distinguish an unknown account from a wrong password.
func respondServiceError(c *gin.Context, err error, context string) {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		respondBadRequest(c, "invalid credentials")
	case errors.Is(err, auth.ErrMissingToken):
		respondBadRequest(c, "missing auth token")
	case errors.Is(err, auth.ErrIncorrectCredentials):
		respondUnauthorized(c, "incorrect credentials")
	case errors.Is(err, auth.ErrInvalidToken):
		respondUnauthorized(c, "invalid auth token")
	case errors.Is(err, auth.ErrUserExists):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "user already exists"})
	default:
		respondInternalError(c, err, context)
	}
}
