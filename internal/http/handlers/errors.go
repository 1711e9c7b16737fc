package handlers

import (
	"net/http"

	"backend/internal/domain"
	"backend/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// respondError sends the standard error payload with request_id included.
// "error" always carries the wire code the client matches on.
func respondError(c *gin.Context, status int, code, message string) {
	payload := gin.H{"error": code}
	if message != "" && message != code {
		payload["message"] = message
	}
	if reqID := middleware.GetRequestID(c); reqID != "" {
		payload["request_id"] = reqID
	}
	c.JSON(status, payload)
}

// RespondDomainError maps domain errors to HTTP responses. Coded errors keep
// their code verbatim; everything else collapses to the generic trio.
func RespondDomainError(c *gin.Context, err error) {
	if code := domain.CodeOf(err); code != "" {
		respondError(c, statusForCode(err, code), code, err.Error())
		return
	}
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error())
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "terjadi kesalahan")
	}
}

func statusForCode(err error, code string) int {
	if domain.IsUnsupportedEndpoint(err) {
		return http.StatusNotFound
	}
	switch code {
	case domain.CodeHotelNotFound, domain.CodeTourNotFound, domain.CodeRouteNotFound,
		domain.CodeBikeNotFound, domain.CodeOrderNotFound:
		return http.StatusNotFound
	case domain.CodeSeatAlreadyBooked, domain.CodeInsufficientBikeStock:
		return http.StatusConflict
	case domain.CodeAuthRequired:
		return http.StatusUnauthorized
	case domain.CodeAuthIdentityMismatch:
		return http.StatusForbidden
	}
	return http.StatusBadRequest
}
