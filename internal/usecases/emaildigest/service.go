// Package emaildigest builds the morning mailbox digest: overnight messages
// categorized by topic, summarized by the model with a deterministic
// fallback, and sent as a WhatsApp text.
package emaildigest

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ohadbenami/gaya-daily-reports/infrastructure/integrator/anthropic"
	"github.com/ohadbenami/gaya-daily-reports/infrastructure/integrator/msgraph"
	"github.com/ohadbenami/gaya-daily-reports/infrastructure/integrator/timelines"
	"github.com/ohadbenami/gaya-daily-reports/internal/config"
	"github.com/ohadbenami/gaya-daily-reports/internal/domain"
	"github.com/ohadbenami/gaya-daily-reports/internal/report"
	"github.com/ohadbenami/gaya-daily-reports/pkg/log"
	"github.com/ohadbenami/gaya-daily-reports/pkg/utils"
)

// windowStartHour is when yesterday's coverage window opens, Israel time.
const windowStartHour = 19

type Runner interface {
	Run(ctx context.Context, targetDate time.Time) report.Summary
}

type Service struct {
	cfg        *config.Config
	mailbox    msgraph.Client
	summarizer anthropic.Client
	deliverer  *report.Deliverer
	targets    []domain.DeliveryTarget

	now func() time.Time
}

func NewService(cfg *config.Config, mailbox msgraph.Client, summarizer anthropic.Client, relay timelines.Client) Runner {
	return &Service{
		cfg:        cfg,
		mailbox:    mailbox,
		summarizer: summarizer,
		deliverer:  report.NewDeliverer(relay),
		targets:    config.ParseRecipients(cfg.Reports.DigestRecipients),
		now:        func() time.Time { return time.Now().In(utils.Israel()) },
	}
}

// windowStart returns 19:00 Israel time on the day before the target date.
func windowStart(targetDate time.Time) time.Time {
	loc := utils.Israel()
	yesterday := targetDate.In(loc).AddDate(0, 0, -1)
	return time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), windowStartHour, 0, 0, 0, loc)
}

// Run executes one digest cycle. A model failure degrades to the
// deterministic fallback; an empty mailbox still sends a message.
func (s *Service) Run(ctx context.Context, targetDate time.Time) report.Summary {
	runID, _ := utils.GenerateID()
	logger := log.ForRun("emaildigest", runID)

	messages, err := s.mailbox.ListMessagesSince(ctx, windowStart(targetDate))
	if err != nil {
		logger.WithError(err).Error("mailbox fetch failed, nothing to deliver")
		return report.Summary{Fetch: domain.FetchResult{Status: domain.FetchFailed, Reason: err.Error()}}
	}

	now := s.now()

	if len(messages) == 0 {
		logger.Info("no overnight messages, sending empty inbox note")
		outcomes := s.deliverer.Deliver(ctx, s.targets, emptyInboxMessage(now), nil)
		return report.Summary{
			Fetch:    domain.FetchResult{Status: domain.FetchEmpty},
			Outcomes: outcomes,
		}
	}

	buckets := categorizeAll(messages)
	logger.WithFields(logrus.Fields{
		"messages": len(messages),
		"urgent":   len(buckets[CategoryUrgent]),
		"finance":  len(buckets[CategoryFinance]),
		"orders":   len(buckets[CategoryOrders]),
	}).Info("messages categorized")

	text, err := s.summarizer.Complete(ctx, buildPrompt(messages, buckets))
	if err != nil || text == "" {
		logger.WithError(err).Warn("model summarization failed, using fallback summary")
		text = fallbackSummary(messages, buckets, now)
	}

	outcomes := s.deliverer.Deliver(ctx, s.targets, text, nil)
	logger.WithFields(logrus.Fields{
		"targets":   len(s.targets),
		"delivered": report.SentCount(outcomes),
	}).Info("email digest run finished")

	return report.Summary{
		Fetch:    domain.FetchResult{Status: domain.FetchOK, Records: len(messages)},
		Totals:   domain.GrandTotals{Rows: len(messages), Groups: len(buckets)},
		Outcomes: outcomes,
	}
}
