// internal/middleware/auth.go
package middleware

import (
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/eshopx/eshop-backend/internal/config"
	"github.com/eshopx/eshop-backend/internal/utils"
)

// exceptionRule exempts requests matching both the path pattern and one
// of the listed methods from token authentication.
type exceptionRule struct {
	pattern *regexp.Regexp
	methods []string
}

func (r exceptionRule) matches(method, path string) bool {
	if !r.pattern.MatchString(path) {
		return false
	}
	for _, m := range r.methods {
		if m == method {
			return true
		}
	}
	return false
}

// AuthGate guards every route behind it. Requests are let through when
// they hit the exact allow-list or an exception rule; everything else
// needs a valid bearer token whose payload asserts admin privilege.
// Non-admin tokens are treated as revoked.
func AuthGate(cfg *config.Config) gin.HandlerFunc {
	base := regexp.QuoteMeta(strings.TrimSuffix(cfg.API.BasePath, "/"))

	allowedPaths := map[string]struct{}{
		cfg.API.BasePath + "/users/login":    {},
		cfg.API.BasePath + "/users/register": {},
	}

	exceptionRules := []exceptionRule{
		{regexp.MustCompile(`^` + base + `/products(/|$)`), []string{"GET"}},
		{regexp.MustCompile(`^` + base + `/category(/|$)`), []string{"GET"}},
		{regexp.MustCompile(`^/public/uploads(/|$)`), []string{"GET"}},
		{regexp.MustCompile(`^` + base + `/users/register(/|$)`), []string{"POST"}},
		{regexp.MustCompile(`^` + base + `/users/login(/|$)`), []string{"POST"}},
		{regexp.MustCompile(`^/health$`), []string{"GET"}},
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path

		if _, ok := allowedPaths[path]; ok {
			c.Next()
			return
		}

		for _, rule := range exceptionRules {
			if rule.matches(c.Request.Method, path) {
				c.Next()
				return
			}
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.UnauthorizedResponse(c, "Authentication required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.UnauthorizedResponse(c, "Invalid authorization header")
			c.Abort()
			return
		}

		claims, err := utils.ValidateJWT(parts[1])
		if err != nil {
			utils.UnauthorizedResponse(c, "Invalid or expired token")
			c.Abort()
			return
		}

		// Revocation check: only admin tokens are accepted.
		if !claims.IsAdmin {
			utils.UnauthorizedResponse(c, "Token has been revoked")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("is_admin", claims.IsAdmin)
		c.Next()
	}
}
