package handlers

import (
	"net/http"

	"github.com/davidmesa/ventrack/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// handleDomainError maps domain errors onto HTTP status codes: validation
// failures are the caller's fault, missing references are 404, anything
// else is a 500.
func handleDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case domain.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// parseDateRange reads the optional from/to query params as YYYY-MM-DD.
func parseDateRange(c *gin.Context) (domain.DateRange, error) {
	var rng domain.DateRange

	if raw := c.Query("from"); raw != "" {
		from, err := domain.ParseDate(raw)
		if err != nil {
			return rng, domain.NewValidation("%s", err)
		}
		rng.From = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := domain.ParseDate(raw)
		if err != nil {
			return rng, domain.NewValidation("%s", err)
		}
		rng.To = &to
	}
	if rng.From != nil && rng.To != nil && rng.To.Time.Before(rng.From.Time) {
		return rng, domain.NewValidation("to date %s is before from date %s", rng.To, rng.From)
	}
	return rng, nil
}
