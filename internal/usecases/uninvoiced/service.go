// Package uninvoiced builds the open delivery-notes report from the ERP:
// notes invoiced as 'N' over the lookback window, rendered to a workbook
// with status coloring and sent with a short caption.
package uninvoiced

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
	cfg          *config.Config
	erp          priority.Client
	deliverer    *report.Deliverer
	statusColors map[string]string
	targets      []domain.DeliveryTarget
}

func NewService(cfg *config.Config, erp priority.Client, relay timelines.Client) Runner {
	return &Service{
		cfg:          cfg,
		erp:          erp,
		deliverer:    report.NewDeliverer(relay),
		statusColors: config.ParseLabelColors(cfg.Reports.StatusColorList),
		targets:      config.ParseRecipients(cfg.Reports.UninvoicedRecipients),
	}
}

// Run executes one cycle. An empty window sends nothing: an all-invoiced
// day needs no reminder, unlike the deliveries report.
func (s *Service) Run(ctx context.Context, targetDate time.Time) report.Summary {
	runID, _ := utils.GenerateID()
	logger := log.ForRun("uninvoiced", runID)

	since := targetDate.AddDate(0, 0, -s.cfg.Reports.UninvoicedLookbackDays)
	notes, err := s.erp.GetUninvoicedDeliveryNotes(ctx, since)
	if err != nil {
		logger.WithError(err).Error("ERP fetch failed, nothing to deliver")
		return report.Summary{Fetch: domain.FetchResult{Status: domain.FetchFailed, Reason: err.Error()}}
	}

	rows := normalizeNotes(notes)
	logger.WithField("notes", len(rows)).Info("delivery notes normalized")

	rep := domain.Report{
		Title:       "תעודות משלוח פתוחות",
		TargetDate:  targetDate,
		GeneratedAt: time.Now().In(utils.Israel()),
		Groups:      report.GroupRows(rows, report.OrderFirstSeen),
	}

	if len(rows) == 0 {
		logger.Info("no uninvoiced delivery notes, skipping delivery")
		return report.Summary{Fetch: domain.FetchResult{Status: domain.FetchEmpty}}
	}

	var artifact *report.Artifact
	data, err := renderWorkbook(rep, rows, s.statusColors)
	if err != nil {
		logger.WithError(err).Error("workbook rendering failed, delivering caption only")
	} else {
		artifact = &report.Artifact{Filename: filename(rep), Data: data}
	}

	outcomes := s.deliverer.Deliver(ctx, s.targets, digest(rep), artifact)
	logger.WithFields(logrus.Fields{
		"targets":   len(s.targets),
		"delivered": report.SentCount(outcomes),
	}).Info("uninvoiced report run finished")

	return report.Summary{
		Fetch:    domain.FetchResult{Status: domain.FetchOK, Records: len(rows)},
		Totals:   rep.Totals(),
		Outcomes: outcomes,
	}
}
