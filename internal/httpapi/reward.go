package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) listRewards(c *gin.Context) {
	rewards, err := h.reward.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rewards": rewards})
}

func (h *Handler) redeemReward(c *gin.Context) {
	red, err := h.reward.Redeem(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, red)
}

func (h *Handler) listRedemptions(c *gin.Context) {
	user := currentUser(c)
	reds, err := h.reward.ListRedemptions(c.Request.Context(), user.WalletAddress)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"redemptions": reds})
}
