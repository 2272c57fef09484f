package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"

	"github.com/courtwala/courtwala-backend/internal/auth"
	"github.com/courtwala/courtwala-backend/internal/user"
)

// Guard enforces role requirements on top of auth.AuthRequired. Accounts are
// re-checked against the database rather than trusting the role claim alone,
// so blocking a user takes effect before their token expires. Lookups are
// cached briefly to keep the per-request cost down.
type Guard struct {
	users user.Service
	cache *cache.Cache
}

func NewGuard(users user.Service) *Guard {
	return &Guard{
		users: users,
		cache: cache.New(time.Minute, 5*time.Minute),
	}
}

func (g *Guard) lookup(ctx context.Context, id string) (*user.User, error) {
	if cached, ok := g.cache.Get(id); ok {
		return cached.(*user.User), nil
	}

	u, err := g.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	g.cache.Set(id, u, cache.DefaultExpiration)
	return u, nil
}

// Require returns middleware that only lets active accounts with one of the
// given roles through. It MUST run after auth.AuthRequired.
func (g *Guard) Require(roles ...user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := auth.GetUserID(c)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		u, err := g.lookup(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}

		if u.Status != user.StatusActive {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "account is not active"})
			return
		}

		for _, role := range roles {
			if u.Role == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
	}
}
