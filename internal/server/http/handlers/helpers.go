package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gradovikov/storefront/internal/server/http/middleware"
	"github.com/gradovikov/storefront/internal/usecase"
)

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) uuid.UUID {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return uuid.Nil
	}
	id, _ := val.(uuid.UUID)
	return id
}

// pageParams reads page/limit query parameters with the documented defaults.
// The limit is clamped here so the response meta reports the limit the query
// actually ran with.
func pageParams(c *gin.Context) (page, limit int) {
	page, limit = 1, usecase.DefaultPageSize
	if v := c.Query("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > usecase.MaxPageSize {
		limit = usecase.MaxPageSize
	}
	return page, limit
}
