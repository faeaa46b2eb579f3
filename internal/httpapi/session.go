package httpapi

import (
	"net/http"

	"campaignhub/pkg/errutil"
	"campaignhub/services/identity"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Role        string `json:"role"`
	DisplayName string `json:"display_name"`
}

func (h *Handler) getSession(c *gin.Context) {
	user, ok := h.identity.Snapshot()
	if !ok {
		c.Error(errutil.Unauthorized("no active session"))
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errutil.BadRequest("invalid request body", errutil.WithErr(err)))
		return
	}

	role, err := identity.ParseRole(req.Role)
	if err != nil {
		c.Error(err)
		return
	}

	user, err := h.identity.Login(role, req.DisplayName)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *Handler) logout(c *gin.Context) {
	h.identity.Logout()
	c.Status(http.StatusNoContent)
}
