package middleware

import (
	"net/http"
	"strings"

	"github.com/edutrack/backend/internal/dto"
	"github.com/edutrack/backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const identityKey = "caller_identity"

// RequireAuth validates the Authorization bearer token and stores the caller's
// identity in the request context.
func RequireAuth(authService service.AuthService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if header == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Authorization header is required"})
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Authorization header must be 'Bearer <token>'"})
			return
		}

		identity, err := authService.ParseToken(parts[1])
		if err != nil {
			log.Debug().Err(err).Msg("rejected bearer token")
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Invalid or expired token"})
			return
		}

		ctx.Set(identityKey, *identity)
		ctx.Next()
	}
}

// RequireRole restricts a route group to the given roles. Must run after
// RequireAuth.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		identity, ok := CallerIdentity(ctx)
		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Authentication required"})
			return
		}
		for _, role := range roles {
			if identity.Role == role {
				ctx.Next()
				return
			}
		}
		ctx.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Message: "Insufficient permissions"})
	}
}

// CallerIdentity returns the identity stored by RequireAuth.
func CallerIdentity(ctx *gin.Context) (service.Identity, bool) {
	value, exists := ctx.Get(identityKey)
	if !exists {
		return service.Identity{}, false
	}
	identity, ok := value.(service.Identity)
	return identity, ok
}
