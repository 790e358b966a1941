package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/you/blogsvc/domain"
	"github.com/you/blogsvc/internal/http/middleware"
)

// currentUser returns the user attached by the role middleware, if any.
func currentUser(c *gin.Context) *domain.User {
	val, ok := c.Get(middleware.ContextUserKey)
	if !ok {
		return nil
	}
	user, ok := val.(*domain.User)
	if !ok {
		return nil
	}
	return user
}

// paramID parses the :id path parameter.
func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// queryInt reads a positive integer query parameter with a fallback.
func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// queryUint reads an unsigned cursor parameter; zero means "from the start".
func queryUint(c *gin.Context, name string) uint {
	n, err := strconv.ParseUint(c.Query(name), 10, 64)
	if err != nil {
		return 0
	}
	return uint(n)
}

// queryUints parses a repeated numeric query parameter such as ?category=1&category=2.
func queryUints(c *gin.Context, name string) []uint {
	var out []uint
	for _, raw := range c.QueryArray(name) {
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			continue
		}
		out = append(out, uint(n))
	}
	return out
}
