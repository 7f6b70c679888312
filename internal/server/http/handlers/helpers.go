package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/server/http/dto"
)

const (
	kindValidation   = "validation failed"
	kindNotFound     = "not found"
	kindBusinessRule = "business rule violated"
	kindConflict     = "conflict"
	kindInvalidBody  = "invalid body"
	kindInternal     = "internal error"
	kindUnavailable  = "unavailable"
)

func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, dto.DataResponse{Data: data})
}

func respondProblems(c *gin.Context, status int, kind string, problems ...string) {
	if problems == nil {
		problems = []string{}
	}
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Error: kind, Problems: problems})
}

func respondInvalidBody(c *gin.Context) {
	respondProblems(c, http.StatusBadRequest, kindInvalidBody, "invalid JSON body")
}

// respondError maps domain errors to HTTP statuses. resource names the entity in not found problems.
func respondError(c *gin.Context, err error, resource string) {
	if verr, ok := domainErrors.IsValidation(err); ok {
		respondProblems(c, http.StatusBadRequest, kindValidation, verr.Problems...)
		return
	}
	if rule, ok := domainErrors.IsBusinessRule(err); ok {
		respondProblems(c, http.StatusBadRequest, kindBusinessRule, rule.Rule)
		return
	}
	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		respondProblems(c, http.StatusNotFound, kindNotFound, resource+" not found")
	case errors.Is(err, domainErrors.ErrProductInUse):
		respondProblems(c, http.StatusConflict, kindConflict, "product is referenced by an active order")
	case errors.Is(err, domainErrors.ErrIdempotencyInFlight):
		respondProblems(c, http.StatusConflict, kindConflict, "request with this idempotency key is still in progress")
	default:
		_ = c.Error(err)
		respondProblems(c, http.StatusInternalServerError, kindInternal, "internal server error")
	}
}
