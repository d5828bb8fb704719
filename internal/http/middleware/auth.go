package middleware

import (
	"net/http"
	"strings"

	"travel/internal/domain"

	"github.com/gin-gonic/gin"
)

const operatorKey = "operator"

// TokenParser verifies a bearer token.
type TokenParser func(raw string) (domain.RequestContext, error)

// AuthOptional lets every request through; used when auth is disabled.
func AuthOptional() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
	}
}

// AuthRequired rejects requests without a valid bearer token.
func AuthRequired(parse TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			abortUnauthorized(c, "missing bearer token")
			return
		}
		op, err := parse(strings.TrimSpace(raw))
		if err != nil {
			abortUnauthorized(c, "invalid token")
			return
		}
		c.Set(operatorKey, op)
		c.Next()
	}
}

// GetOperator returns the authenticated operator, if any.
func GetOperator(c *gin.Context) (domain.RequestContext, bool) {
	v, ok := c.Get(operatorKey)
	if !ok {
		return domain.RequestContext{}, false
	}
	op, ok := v.(domain.RequestContext)
	return op, ok
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":      msg,
		"code":       "unauthorized",
		"message":    msg,
		"request_id": GetRequestID(c),
	})
}

// RequireRoles only lets operators with one of allowed through. It must run
// after AuthRequired.
func RequireRoles(allowed ...domain.Role) gin.HandlerFunc {
	set := make(map[domain.Role]struct{}, len(allowed))
	for _, r := range allowed {
		set[domain.Role(strings.ToLower(strings.TrimSpace(string(r))))] = struct{}{}
	}

	return func(c *gin.Context) {
		op, ok := GetOperator(c)
		if !ok {
			abortUnauthorized(c, "operator not authenticated")
			return
		}
		role := domain.Role(strings.ToLower(strings.TrimSpace(string(op.Role))))
		if _, ok := set[role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":      "role not allowed",
				"code":       "forbidden",
				"message":    "role not allowed",
				"request_id": GetRequestID(c),
			})
			return
		}
		c.Next()
	}
}
