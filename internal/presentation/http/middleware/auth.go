package middleware

import (
	"strings"

	"github.com/Shrey0428/ExoticBill/internal/domain/entity"
	"github.com/Shrey0428/ExoticBill/internal/domain/enum"
	"github.com/Shrey0428/ExoticBill/internal/presentation/http/dto/response"
	"github.com/Shrey0428/ExoticBill/pkg/utils"
	"github.com/gin-gonic/gin"
)

// principalKey is the gin context key holding the authenticated *entity.Principal
const principalKey = "principal"

// PrincipalResolver maps validated token claims to a known principal
type PrincipalResolver interface {
	PrincipalFromClaims(claims *utils.JWTClaims) (*entity.Principal, error)
}

// AuthMiddleware creates a JWT authentication middleware
func AuthMiddleware(jwtManager *utils.JWTManager, resolver PrincipalResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		// a token for an account removed from configuration is no longer honoured
		principal, err := resolver.PrincipalFromClaims(claims)
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		SetPrincipal(c, principal)
		c.Next()
	}
}

// SetPrincipal stores the authenticated principal on the request
func SetPrincipal(c *gin.Context, principal *entity.Principal) {
	c.Set(principalKey, principal)
}

// GetPrincipal returns the authenticated principal, or nil on public routes
func GetPrincipal(c *gin.Context) *entity.Principal {
	v, exists := c.Get(principalKey)
	if !exists {
		return nil
	}
	principal, _ := v.(*entity.Principal)
	return principal
}

// RequireRole creates a middleware that requires one of roles
func RequireRole(roles ...enum.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := GetPrincipal(c)
		if principal == nil {
			response.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		for _, role := range roles {
			if principal.Role == role {
				c.Next()
				return
			}
		}

		response.Forbidden(c, "Insufficient role privileges")
		c.Abort()
	}
}

// RequireAdmin restricts a route group to the back-office account
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(enum.RoleAdmin)
}
