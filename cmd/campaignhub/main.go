package main

import (
	"log"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"campaignhub/internal/config"
	"campaignhub/internal/httpapi"
	"campaignhub/internal/server"
	"campaignhub/pkg/db"
	"campaignhub/pkg/gen"
	"campaignhub/pkg/health"
	"campaignhub/pkg/logger"
	"campaignhub/pkg/notify"
	"campaignhub/pkg/redis"
	"campaignhub/pkg/sequence"
	"campaignhub/services/bootstrap"
	"campaignhub/services/campaign"
	"campaignhub/services/identity"
	"campaignhub/services/leaderboard"
	"campaignhub/services/reward"
	"campaignhub/services/submission"
	"campaignhub/services/wallet"
)

func main() {
	opts := []fx.Option{
		config.Module,
		logger.Module,
		db.Module,
		redis.Module,
		gen.Module,
		sequence.Module,
		notify.Module,
		health.Module,
		fx.Invoke(db.Otel),
		wallet.Module,
		identity.Module,
		campaign.Module,
		submission.Module,
		reward.Module,
		leaderboard.Module,
		bootstrap.Module,
		httpapi.Module,
		server.Module,
		fxLogger,
	}

	if err := fx.ValidateApp(opts...); err != nil {
		log.Fatalf("fx validation failed: %v", err)
	}

	fx.New(opts...).Run()
}

var fxLogger = fx.WithLogger(func(cfg *config.Config, logger *zap.Logger) fxevent.Logger {
	return fxevent.NopLogger
})
