package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) getWallet(c *gin.Context) {
	c.JSON(http.StatusOK, h.wallet.Snapshot())
}

func (h *Handler) connectWallet(c *gin.Context) {
	if err := h.wallet.Connect(c.Request.Context()); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, h.wallet.Snapshot())
}

func (h *Handler) disconnectWallet(c *gin.Context) {
	h.wallet.Disconnect()
	c.JSON(http.StatusOK, h.wallet.Snapshot())
}
