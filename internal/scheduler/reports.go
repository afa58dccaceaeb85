package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ohadbenami/gaya-daily-reports/internal/config"
	"github.com/ohadbenami/gaya-daily-reports/internal/report"
	"github.com/ohadbenami/gaya-daily-reports/pkg/utils"
)

// Job names accepted by the admin API and used as status keys.
const (
	JobDeliveries = "deliveries"
	JobUninvoiced = "uninvoiced"
	JobContainers = "containers"
	JobDigest     = "emaildigest"
)

// Runner is the single-run contract every report service satisfies. The
// scheduler never sees report internals, only the run summary.
type Runner interface {
	Run(ctx context.Context, targetDate time.Time) report.Summary
}

// reportJob wraps one report service with its schedule and run bookkeeping.
// The mutex guards the running flag so an overlapping cron tick or a manual
// trigger during a run is skipped instead of stacking.
type reportJob struct {
	name            string
	cronSchedule    string
	enabled         bool
	runner          Runner
	mutex           sync.Mutex
	running         bool
	lastStartedAt   time.Time
	lastCompletedAt time.Time
	lastFetchStatus string
	lastRecords     int
	lastDelivered   int
}

// ReportScheduler runs the four report services on their cron schedules and
// exposes manual triggering and status for the admin API. Each tick executes
// the same single-run pipeline the one-shot binaries do, with the target date
// taken at tick time.
type ReportScheduler struct {
	scheduler *gocron.Scheduler
	jobs      map[string]*reportJob
	order     []string
}

func NewReportScheduler(cfg *config.Config, deliveries, uninvoiced, containers, digest Runner) *ReportScheduler {
	jobs := []*reportJob{
		{name: JobDeliveries, cronSchedule: cfg.Reports.DeliveriesCron, enabled: cfg.Reports.DeliveriesEnabled, runner: deliveries},
		{name: JobUninvoiced, cronSchedule: cfg.Reports.UninvoicedCron, enabled: cfg.Reports.UninvoicedEnabled, runner: uninvoiced},
		{name: JobContainers, cronSchedule: cfg.Reports.ContainersCron, enabled: cfg.Reports.ContainersEnabled, runner: containers},
		{name: JobDigest, cronSchedule: cfg.Reports.DigestCron, enabled: cfg.Reports.DigestEnabled, runner: digest},
	}

	s := &ReportScheduler{
		scheduler: gocron.NewScheduler(utils.Israel()),
		jobs:      make(map[string]*reportJob, len(jobs)),
		order:     make([]string, 0, len(jobs)),
	}
	for _, job := range jobs {
		s.jobs[job.name] = job
		s.order = append(s.order, job.name)

		logrus.WithFields(logrus.Fields{
			"job":     job.name,
			"cron":    job.cronSchedule,
			"enabled": job.enabled,
		}).Info("report job configured")
	}

	return s
}

// Start schedules every enabled job and runs the scheduler until ctx is
// cancelled. Disabled jobs stay registered so they can still be triggered
// manually.
func (s *ReportScheduler) Start(ctx context.Context) error {
	for _, name := range s.order {
		job := s.jobs[name]
		if !job.enabled {
			logrus.WithField("job", job.name).Info("report job disabled, not scheduling")
			continue
		}

		j := job
		if _, err := s.scheduler.Cron(job.cronSchedule).Do(func() {
			s.runJob(j)
		}); err != nil {
			return errors.Wrapf(err, "scheduling report job %s", job.name)
		}
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("stopping report scheduler")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *ReportScheduler) runJob(job *reportJob) {
	job.mutex.Lock()
	if job.running {
		job.mutex.Unlock()
		logrus.WithField("job", job.name).Info("report job already running, skipping")
		return
	}
	job.running = true
	job.mutex.Unlock()

	defer func() {
		job.mutex.Lock()
		job.running = false
		job.mutex.Unlock()
	}()

	startedAt := time.Now()
	job.mutex.Lock()
	job.lastStartedAt = startedAt
	job.mutex.Unlock()
	targetDate := time.Now().In(utils.Israel())

	logrus.WithFields(logrus.Fields{
		"job":         job.name,
		"target_date": targetDate.Format(time.DateOnly),
	}).Info("report job starting")

	summary := job.runner.Run(context.Background(), targetDate)

	job.mutex.Lock()
	job.lastCompletedAt = time.Now()
	job.lastFetchStatus = string(summary.Fetch.Status)
	job.lastRecords = summary.Fetch.Records
	job.lastDelivered = summary.Delivered()
	job.mutex.Unlock()

	logrus.WithFields(logrus.Fields{
		"job":          job.name,
		"duration":     time.Since(startedAt).String(),
		"fetch_status": summary.Fetch.Status,
		"records":      summary.Fetch.Records,
		"delivered":    summary.Delivered(),
	}).Info("report job finished")
}

// TriggerManualRun starts the named job in the background. An unknown name is
// an error; a job already in flight is skipped by the running guard.
func (s *ReportScheduler) TriggerManualRun(name string) error {
	job, ok := s.jobs[name]
	if !ok {
		return errors.Errorf("unknown report job %q", name)
	}

	logrus.WithField("job", name).Info("manual report job run requested")
	go s.runJob(job)

	return nil
}

// JobNames returns the known job names in registration order.
func (s *ReportScheduler) JobNames() []string {
	names := make([]string, len(s.order))
	copy(names, s.order)
	return names
}

// GetStatus returns per-job scheduling state and last-run bookkeeping.
func (s *ReportScheduler) GetStatus() map[string]any {
	status := make(map[string]any, len(s.jobs))
	for _, name := range s.order {
		job := s.jobs[name]
		job.mutex.Lock()
		status[name] = map[string]any{
			"enabled":           job.enabled,
			"cron":              job.cronSchedule,
			"running":           job.running,
			"last_started_at":   job.lastStartedAt,
			"last_completed_at": job.lastCompletedAt,
			"last_fetch_status": job.lastFetchStatus,
			"last_records":      job.lastRecords,
			"last_delivered":    job.lastDelivered,
		}
		job.mutex.Unlock()
	}
	return status
}
