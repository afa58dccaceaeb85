package main

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/ohadbenami/gaya-daily-reports/infrastructure/integrator/monday"
	"github.com/ohadbenami/gaya-daily-reports/infrastructure/integrator/timelines"
	"github.com/ohadbenami/gaya-daily-reports/internal/config"
	"github.com/ohadbenami/gaya-daily-reports/internal/usecases/deliveries"
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
		"MONDAY_API_TOKEN":  cfg.Monday.Token,
		"TIMELINES_API_KEY": cfg.Timelines.Token,
	}); err != nil {
		logrus.Fatal(err)
	}

	targetDate, err := utils.TargetDate(os.Args[1:])
	if err != nil {
		logrus.Fatalf("invalid date argument %q, expected YYYY-MM-DD", os.Args[1])
	}

	service := deliveries.NewService(cfg,
		monday.NewClient(cfg.Monday),
		timelines.NewClient(cfg.Timelines),
	)

	summary := service.Run(context.Background(), targetDate)
	logrus.WithFields(logrus.Fields{
		"fetch":     summary.Fetch.Status,
		"rows":      summary.Totals.Rows,
		"delivered": summary.Delivered(),
	}).Info("deliveries report done")
}
