package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/ohadbenami/gaya-daily-reports/infrastructure/integrator/anthropic"
	"github.com/ohadbenami/gaya-daily-reports/infrastructure/integrator/monday"
	"github.com/ohadbenami/gaya-daily-reports/infrastructure/integrator/msgraph"
	"github.com/ohadbenami/gaya-daily-reports/infrastructure/integrator/priority"
	"github.com/ohadbenami/gaya-daily-reports/infrastructure/integrator/timelines"
	"github.com/ohadbenami/gaya-daily-reports/internal/api"
	"github.com/ohadbenami/gaya-daily-reports/internal/config"
	"github.com/ohadbenami/gaya-daily-reports/internal/scheduler"
	"github.com/ohadbenami/gaya-daily-reports/internal/usecases/containers"
	"github.com/ohadbenami/gaya-daily-reports/internal/usecases/deliveries"
	"github.com/ohadbenami/gaya-daily-reports/internal/usecases/emaildigest"
	"github.com/ohadbenami/gaya-daily-reports/internal/usecases/uninvoiced"
	"github.com/ohadbenami/gaya-daily-reports/pkg/log"
)

// reportd runs every report on its cron schedule and serves the admin API.
// The one-shot binaries under cmd/ stay the primary deployment; this daemon
// is the always-on alternative.
func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}
	log.Setup(cfg.App.LogLevel)

	if err := config.Require(map[string]string{
		"MONDAY_API_TOKEN":    cfg.Monday.Token,
		"PRIORITY_API_USER":   cfg.Priority.User,
		"PRIORITY_API_PASS":   cfg.Priority.Password,
		"MS365_CLIENT_ID":     cfg.MSGraph.ClientID,
		"MS365_CLIENT_SECRET": cfg.MSGraph.ClientSecret,
		"MS365_TENANT_ID":     cfg.MSGraph.TenantID,
		"MS365_USER_EMAIL":    cfg.MSGraph.UserEmail,
		"ANTHROPIC_API_KEY":   cfg.Anthropic.APIKey,
		"TIMELINES_API_KEY":   cfg.Timelines.Token,
	}); err != nil {
		logrus.Fatal(err)
	}

	relay := timelines.NewClient(cfg.Timelines)
	erp := priority.NewClient(cfg.Priority)

	sched := scheduler.NewReportScheduler(cfg,
		deliveries.NewService(cfg, monday.NewClient(cfg.Monday), relay),
		uninvoiced.NewService(cfg, erp, relay),
		containers.NewService(cfg, erp, relay),
		emaildigest.NewService(cfg, msgraph.NewClient(cfg.MSGraph), anthropic.NewClient(cfg.Anthropic), relay),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := sched.Start(ctx); err != nil {
		logrus.WithError(err).Fatal("failed to start report scheduler")
	}

	server, err := api.New(cfg, sched)
	if err != nil {
		logrus.WithError(err).Fatal("failed to build admin API server")
	}

	if err := server.Run(ctx); err != nil {
		logrus.WithError(err).Fatal("admin API server error")
	}
}
