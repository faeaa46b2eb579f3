package httpapi

import (
	"campaignhub/pkg/errutil"
	"campaignhub/services/identity"

	"github.com/gin-gonic/gin"
)

// requireAuth gates a route on an active identity session and stores the
// user snapshot on the context for the handler.
func (h *Handler) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := h.identity.Snapshot()
		if !ok {
			c.Error(errutil.Unauthorized("login required"))
			c.Abort()
			return
		}
		c.Set("user", user)
		c.Next()
	}
}

// requireRole gates a route on an active session holding the given role.
func (h *Handler) requireRole(role identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := h.identity.Snapshot()
		if !ok {
			c.Error(errutil.Unauthorized("login required"))
			c.Abort()
			return
		}

		switch user.Role {
		case identity.RoleParticipant, identity.RoleBrand:
			if user.Role != role {
				c.Error(errutil.Forbidden("requires " + string(role) + " role"))
				c.Abort()
				return
			}
		default:
			c.Error(errutil.Forbidden("unknown role"))
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Next()
	}
}

func currentUser(c *gin.Context) identity.User {
	if v, ok := c.Get("user"); ok {
		if user, ok := v.(identity.User); ok {
			return user
		}
	}
	return identity.User{}
}
