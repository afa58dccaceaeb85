// Package containers builds the port-dwell dashboard from the ERP: open
// purchase orders with a container at or en route to the port, banded by
// days since ETA and fanned out to multiple recipients.
package containers

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ohadbenami/gaya-daily-reports/infrastructure/integrator/priority"
	"github.com/ohadbenami/gaya-daily-reports/infrastructure/integrator/timelines"
	"github.com/ohadbenami/gaya-daily-reports/internal/config"
	"github.com/ohadbenami/gaya-daily-reports/internal/domain"
	"github.com/ohadbenami/gaya-daily-reports/internal/report"
	"github.com/ohadbenami/gaya-daily-reports/pkg/log"
	"github.com/ohadbenami/gaya-daily-reports/pkg/utils"
)

type Runner interface {
	Run(ctx context.Context, targetDate time.Time) report.Summary
}

type Service struct {
	cfg       *config.Config
	erp       priority.Client
	deliverer *report.Deliverer
	targets   []domain.DeliveryTarget

	// now is swappable for tests; days-in-port depends on it.
	now func() time.Time
}

func NewService(cfg *config.Config, erp priority.Client, relay timelines.Client) Runner {
	return &Service{
		cfg:       cfg,
		erp:       erp,
		deliverer: report.NewDeliverer(relay),
		targets:   config.ParseRecipients(cfg.Reports.ContainersRecipients),
		now:       func() time.Time { return time.Now().In(utils.Israel()) },
	}
}

// Run executes one cycle. Rows sort by days in port descending, so the
// severity bands come out worst first; an empty port sends nothing.
func (s *Service) Run(ctx context.Context, targetDate time.Time) report.Summary {
	runID, _ := utils.GenerateID()
	logger := log.ForRun("containers", runID)

	orders, err := s.erp.GetOpenContainers(ctx)
	if err != nil {
		logger.WithError(err).Error("ERP fetch failed, nothing to deliver")
		return report.Summary{Fetch: domain.FetchResult{Status: domain.FetchFailed, Reason: err.Error()}}
	}

	now := s.now()
	rows := normalizeOrders(orders, now)
	report.SortRows(rows, func(a, b domain.Row) bool { return a.Quantity > b.Quantity })
	logger.WithField("containers", len(rows)).Info("container orders normalized")

	rep := domain.Report{
		Title:       "דשבורד מכולות",
		TargetDate:  targetDate,
		GeneratedAt: now,
		Groups:      report.GroupRows(rows, report.OrderFirstSeen),
	}

	if len(rows) == 0 {
		logger.Info("no open containers, skipping delivery")
		return report.Summary{Fetch: domain.FetchResult{Status: domain.FetchEmpty}}
	}

	critical := 0
	for _, r := range rows {
		if int(r.Quantity) > 30 {
			critical++
		}
	}

	var artifact *report.Artifact
	data, err := renderWorkbook(rep, critical)
	if err != nil {
		logger.WithError(err).Error("workbook rendering failed, delivering caption only")
	} else {
		artifact = &report.Artifact{Filename: filename(rep), Data: data}
	}

	outcomes := s.deliverer.Deliver(ctx, s.targets, digest(rep), artifact)
	logger.WithFields(logrus.Fields{
		"targets":   len(s.targets),
		"critical":  critical,
		"delivered": report.SentCount(outcomes),
	}).Info("containers report run finished")

	return report.Summary{
		Fetch:    domain.FetchResult{Status: domain.FetchOK, Records: len(rows)},
		Totals:   rep.Totals(),
		Outcomes: outcomes,
	}
}
