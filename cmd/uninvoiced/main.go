package main

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/ohadbenami/gaya-daily-reports/infrastructure/integrator/priority"
	"github.com/ohadbenami/gaya-daily-reports/infrastructure/integrator/timelines"
	"github.com/ohadbenami/gaya-daily-reports/internal/config"
	"github.com/ohadbenami/gaya-daily-reports/internal/usecases/uninvoiced"
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
		"PRIORITY_API_USER": cfg.Priority.User,
		"PRIORITY_API_PASS": cfg.Priority.Password,
		"TIMELINES_API_KEY": cfg.Timelines.Token,
	}); err != nil {
		logrus.Fatal(err)
	}

	targetDate, err := utils.TargetDate(os.Args[1:])
	if err != nil {
		logrus.Fatalf("invalid date argument %q, expected YYYY-MM-DD", os.Args[1])
	}

	service := uninvoiced.NewService(cfg,
		priority.NewClient(cfg.Priority),
		timelines.NewClient(cfg.Timelines),
	)

	summary := service.Run(context.Background(), targetDate)
	logrus.WithFields(logrus.Fields{
		"fetch":     summary.Fetch.Status,
		"rows":      summary.Totals.Rows,
		"delivered": summary.Delivered(),
	}).Info("uninvoiced report done")
}
