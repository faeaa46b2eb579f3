package httpapi

import (
	"net/http"
	"time"

	"campaignhub/internal/config"
	"campaignhub/pkg/health"
	"campaignhub/pkg/middleware"
	"campaignhub/services/campaign"
	"campaignhub/services/identity"
	"campaignhub/services/leaderboard"
	"campaignhub/services/reward"
	"campaignhub/services/submission"
	"campaignhub/services/wallet"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("httpapi",
	fx.Provide(NewHandler),
)

// Handler owns the REST surface. Every route dispatches into a domain
// service; no business rule lives here.
type Handler struct {
	wallet      *wallet.Session
	identity    *identity.Session
	campaign    *campaign.Service
	submission  *submission.Service
	reward      *reward.Service
	leaderboard *leaderboard.Service
	health      health.HealthService
}

type HandlerParams struct {
	fx.In

	Cfg         *config.Config
	Wallet      *wallet.Session
	Identity    *identity.Session
	Campaign    *campaign.Service
	Submission  *submission.Service
	Reward      *reward.Service
	Leaderboard *leaderboard.Service
	Health      health.HealthService
}

func NewHandler(p HandlerParams) http.Handler {
	if p.Cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	h := &Handler{
		wallet:      p.Wallet,
		identity:    p.Identity,
		campaign:    p.Campaign,
		submission:  p.Submission,
		reward:      p.Reward,
		leaderboard: p.Leaderboard,
		health:      p.Health,
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLog(), middleware.Error())
	h.register(r)
	return r
}

func (h *Handler) register(r *gin.Engine) {
	r.GET("/healthz", h.health.Liveness)
	r.GET("/readyz", h.health.Readiness)

	v1 := r.Group("/api/v1")

	w := v1.Group("/wallet")
	{
		w.GET("", h.getWallet)
		w.POST("/connect", h.connectWallet)
		w.POST("/disconnect", h.disconnectWallet)
	}

	s := v1.Group("/session")
	{
		s.GET("", h.getSession)
		s.POST("/login", h.login)
		s.POST("/logout", h.logout)
	}

	c := v1.Group("/campaigns")
	{
		c.GET("", h.listCampaigns)
		c.GET("/summary", h.requireRole(identity.RoleBrand), h.campaignSummary)
		c.GET("/:id", h.getCampaign)
		c.POST("", h.requireRole(identity.RoleBrand), h.createCampaign)
		c.POST("/:id/submissions", h.requireRole(identity.RoleParticipant), h.createSubmission)
	}

	sub := v1.Group("/submissions")
	{
		sub.GET("", h.requireAuth(), h.listSubmissions)
		sub.POST("/:id/review", h.requireRole(identity.RoleBrand), h.reviewSubmission)
	}

	rw := v1.Group("/rewards")
	{
		rw.GET("", h.listRewards)
		rw.POST("/:id/redeem", h.requireRole(identity.RoleParticipant), h.redeemReward)
	}

	v1.GET("/redemptions", h.requireRole(identity.RoleParticipant), h.listRedemptions)

	v1.GET("/leaderboard", h.getLeaderboard)
}

func requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		zap.L().Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
