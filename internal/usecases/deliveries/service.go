// Package deliveries builds the daily distribution report from the work
// board: stops grouped per driver, a styled workbook and a WhatsApp digest.
package deliveries

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ohadbenami/gaya-daily-reports/infrastructure/integrator/monday"
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
	board        monday.Client
	deliverer    *report.Deliverer
	driverLabels map[int]string
	driverColors map[string]string
	targets      []domain.DeliveryTarget
}

func NewService(cfg *config.Config, board monday.Client, relay timelines.Client) Runner {
	return &Service{
		cfg:          cfg,
		board:        board,
		deliverer:    report.NewDeliverer(relay),
		driverLabels: config.ParseIndexLabels(cfg.Reports.DriverLabelList),
		driverColors: config.ParseLabelColors(cfg.Reports.DriverColorList),
		targets:      config.ParseRecipients(cfg.Reports.DeliveriesRecipients),
	}
}

// Run executes one fetch-to-delivery cycle for the target date. Errors are
// absorbed into the summary; an empty day still sends a "no deliveries"
// message so the recipients know the report ran.
func (s *Service) Run(ctx context.Context, targetDate time.Time) report.Summary {
	runID, _ := utils.GenerateID()
	logger := log.ForRun("deliveries", runID)

	items, err := s.board.GetBoardItems(ctx, s.cfg.Monday.BoardID)
	if err != nil {
		logger.WithError(err).Error("board fetch failed, nothing to deliver")
		return report.Summary{Fetch: domain.FetchResult{Status: domain.FetchFailed, Reason: err.Error()}}
	}

	rows := normalizeItems(items, s.cfg.Monday.Columns, s.driverLabels, targetDate)
	logger.WithField("deliveries", len(rows)).Info("board items normalized")

	rep := domain.Report{
		Title:       "הפצות",
		TargetDate:  targetDate,
		GeneratedAt: time.Now().In(utils.Israel()),
		Groups:      report.GroupRows(rows, report.OrderAlphabetical),
	}

	fetch := domain.FetchResult{Status: domain.FetchOK, Records: len(rows)}
	if len(rows) == 0 {
		fetch.Status = domain.FetchEmpty
	}

	text := report.BuildDigest(rep, digestFormat(rep))

	var artifact *report.Artifact
	if !rep.Empty() {
		data, err := renderWorkbook(rep, s.driverColors)
		if err != nil {
			logger.WithError(err).Error("workbook rendering failed, delivering digest only")
		} else {
			artifact = &report.Artifact{Filename: filename(rep), Data: data}
		}
	}

	outcomes := s.deliverer.Deliver(ctx, s.targets, text, artifact)
	logger.WithFields(logrus.Fields{
		"targets":   len(s.targets),
		"delivered": report.SentCount(outcomes),
	}).Info("deliveries report run finished")

	return report.Summary{Fetch: fetch, Totals: rep.Totals(), Outcomes: outcomes}
}
