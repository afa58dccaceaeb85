package main

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/ohadbenami/gaya-daily-reports/infrastructure/integrator/anthropic"
	"github.com/ohadbenami/gaya-daily-reports/infrastructure/integrator/msgraph"
	"github.com/ohadbenami/gaya-daily-reports/infrastructure/integrator/timelines"
	"github.com/ohadbenami/gaya-daily-reports/internal/config"
	"github.com/ohadbenami/gaya-daily-reports/internal/usecases/emaildigest"
	"github.com/ohadbenami/gaya-daily-reports/pkg/log"
	"github.com/ohadbenami/gaya-daily-reports/pkg/utils"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}
	log.Setup(cfg.App.LogLevel)

	if err := config.Require(map[string]string{
		"MS365_CLIENT_ID":     cfg.MSGraph.ClientID,
		"MS365_CLIENT_SECRET": cfg.MSGraph.ClientSecret,
		"MS365_TENANT_ID":     cfg.MSGraph.TenantID,
		"MS365_USER_EMAIL":    cfg.MSGraph.UserEmail,
		"ANTHROPIC_API_KEY":   cfg.Anthropic.APIKey,
		"TIMELINES_API_KEY":   cfg.Timelines.Token,
	}); err != nil {
		logrus.Fatal(err)
	}

	targetDate, err := utils.TargetDate(os.Args[1:])
	if err != nil {
		logrus.Fatalf("invalid date argument %q, expected YYYY-MM-DD", os.Args[1])
	}

	service := emaildigest.NewService(cfg,
		msgraph.NewClient(cfg.MSGraph),
		anthropic.NewClient(cfg.Anthropic),
		timelines.NewClient(cfg.Timelines),
	)

	summary := service.Run(context.Background(), targetDate)
	logrus.WithFields(logrus.Fields{
		"fetch":     summary.Fetch.Status,
		"messages":  summary.Totals.Rows,
		"delivered": summary.Delivered(),
	}).Info("email digest done")
}
