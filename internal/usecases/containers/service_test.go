package containers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/ohadbenami/gaya-daily-reports/infrastructure/integrator/priority"
	prioritymocks "github.com/ohadbenami/gaya-daily-reports/infrastructure/integrator/priority/mocks"
	timelinesmocks "github.com/ohadbenami/gaya-daily-reports/infrastructure/integrator/timelines/mocks"
	"github.com/ohadbenami/gaya-daily-reports/internal/config"
	"github.com/ohadbenami/gaya-daily-reports/internal/domain"
	"github.com/ohadbenami/gaya-daily-reports/internal/report"
)

var testNow = time.Date(2025, 3, 12, 8, 0, 0, 0, time.UTC)

func testService(erp priority.Client, relay *timelinesmocks.MockClient) *Service {
	cfg := &config.Config{}
	cfg.Reports.ContainersRecipients = "יובל:972505267110,אוהד:972528012869"

	return &Service{
		cfg:       cfg,
		erp:       erp,
		deliverer: report.NewDeliverer(relay),
		targets:   config.ParseRecipients(cfg.Reports.ContainersRecipients),
		now:       func() time.Time { return testNow },
	}
}

func etaDaysAgo(days int) string {
	return testNow.AddDate(0, 0, -days).Format(time.RFC3339)
}

func TestBand(t *testing.T) {
	tests := []struct {
		days     int
		expected string
	}{
		{0, BandOK},
		{14, BandOK},
		{15, BandWarning},
		{30, BandWarning},
		{31, BandCritical},
		{100, BandCritical},
		{101, BandStuck},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, band(tt.days), "days=%d", tt.days)
	}
}

func TestDaysInPort(t *testing.T) {
	t.Run("counts full days since ETA", func(t *testing.T) {
		assert.Equal(t, 20, daysInPort(etaDaysAgo(20), testNow))
	})

	t.Run("future ETA floors at zero", func(t *testing.T) {
		assert.Equal(t, 0, daysInPort(etaDaysAgo(-3), testNow))
	})

	t.Run("missing or malformed ETA counts as zero", func(t *testing.T) {
		assert.Equal(t, 0, daysInPort("", testNow))
		assert.Equal(t, 0, daysInPort("not a date", testNow))
	})
}

func TestContainerRef(t *testing.T) {
	t.Run("prefers the container number", func(t *testing.T) {
		ref := containerRef(priority.ContainerOrder{Container: "MSCU1234567", ImportFile: "IMP-9"})
		assert.Equal(t, "MSCU1234567", ref)
	})

	t.Run("falls back to the import file number", func(t *testing.T) {
		ref := containerRef(priority.ContainerOrder{ImportFile: "IMP-9"})
		assert.Equal(t, "IMP-9", ref)
	})
}

func TestService_Run(t *testing.T) {
	orders := []priority.ContainerOrder{
		{OrderName: "PO100", Container: "MSCU1111111", ETA: etaDaysAgo(5), Price: 50000},
		{OrderName: "PO101", Container: "MSCU2222222", ETA: etaDaysAgo(45), Price: 80000},
		{OrderName: "PO102", Container: "MSCU3333333", ETA: etaDaysAgo(20), Price: 30000},
	}

	t.Run("sorts worst first and delivers to every recipient", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		erp := prioritymocks.NewMockClient(ctrl)
		relay := timelinesmocks.NewMockClient(ctrl)

		erp.EXPECT().GetOpenContainers(gomock.Any()).Return(orders, nil)
		relay.EXPECT().
			UploadFile(gomock.Any(), "דוח_מכולות_כנמ_2025-03-12.xlsx", gomock.Any()).
			Return("uid-1", nil)
		relay.EXPECT().
			SendMessage(gomock.Any(), "972505267110", gomock.Any(), "uid-1").
			Return(nil)
		relay.EXPECT().
			SendMessage(gomock.Any(), "972528012869", gomock.Any(), "uid-1").
			Return(nil)

		summary := testService(erp, relay).Run(context.Background(), testNow)

		assert.Equal(t, domain.FetchOK, summary.Fetch.Status)
		assert.Equal(t, 3, summary.Totals.Rows)
		assert.Equal(t, 160000.0, summary.Totals.Amount)
		assert.Equal(t, 2, summary.Delivered())
	})

	t.Run("one failed recipient does not abort the other", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		erp := prioritymocks.NewMockClient(ctrl)
		relay := timelinesmocks.NewMockClient(ctrl)

		erp.EXPECT().GetOpenContainers(gomock.Any()).Return(orders, nil)
		relay.EXPECT().UploadFile(gomock.Any(), gomock.Any(), gomock.Any()).Return("uid-1", nil)
		relay.EXPECT().
			SendMessage(gomock.Any(), "972505267110", gomock.Any(), "uid-1").
			Return(assert.AnError)
		relay.EXPECT().
			SendMessage(gomock.Any(), "972528012869", gomock.Any(), "uid-1").
			Return(nil)

		summary := testService(erp, relay).Run(context.Background(), testNow)

		assert.Len(t, summary.Outcomes, 2)
		assert.False(t, summary.Outcomes[0].Sent)
		assert.True(t, summary.Outcomes[1].Sent)
		assert.Equal(t, 1, summary.Delivered())
	})

	t.Run("empty port skips delivery", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		erp := prioritymocks.NewMockClient(ctrl)
		relay := timelinesmocks.NewMockClient(ctrl)

		erp.EXPECT().GetOpenContainers(gomock.Any()).Return(nil, nil)

		summary := testService(erp, relay).Run(context.Background(), testNow)

		assert.Equal(t, domain.FetchEmpty, summary.Fetch.Status)
		assert.Empty(t, summary.Outcomes)
	})
}
