package httpapi

import (
	"net/http"
	"strconv"

	"campaignhub/services/leaderboard"

	"github.com/gin-gonic/gin"
)

func (h *Handler) getLeaderboard(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	entries, err := h.leaderboard.Top(c.Request.Context(), limit)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries":     entries,
		"mean_points": leaderboard.MeanPoints(entries),
	})
}
