package uninvoiced

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
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Reports.UninvoicedRecipients = "אוהד:972528012869"
	cfg.Reports.StatusColorList = "סופית:E2EFDA,ממתין לחן:FCE4D6"
	cfg.Reports.UninvoicedLookbackDays = 90
	return cfg
}

func testNotes() []priority.DeliveryNote {
	return []priority.DeliveryNote{
		{
			DocumentNumber: "DC250101",
			CustomerName:   "סופר הצפון",
			Date:           "2025-03-10T00:00:00+02:00",
			Price:          12500,
			Status:         "סופית",
			Lines: []priority.DeliveryLine{
				{PartName: "P-1", Quantity: 40},
				{PartName: "P-2", Quantity: 24},
			},
		},
		{
			DocumentNumber: "DC250102",
			CustomerName:   "מעדני הדרום",
			Date:           "2025-03-09T00:00:00+02:00",
			Price:          8000,
			Status:         "ממתין לחן",
			Lines:          []priority.DeliveryLine{{PartName: "P-3", Quantity: 12}},
		},
	}
}

func TestService_Run(t *testing.T) {
	targetDate := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)

	t.Run("builds and delivers the workbook", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		erp := prioritymocks.NewMockClient(ctrl)
		relay := timelinesmocks.NewMockClient(ctrl)

		erp.EXPECT().
			GetUninvoicedDeliveryNotes(gomock.Any(), targetDate.AddDate(0, 0, -90)).
			Return(testNotes(), nil)
		relay.EXPECT().
			UploadFile(gomock.Any(), gomock.Any(), gomock.Any()).
			Return("uid-1", nil)
		relay.EXPECT().
			SendMessage(gomock.Any(), "972528012869", gomock.Any(), "uid-1").
			DoAndReturn(func(_ context.Context, _, text, _ string) error {
				assert.Contains(t, text, "2 תעודות")
				assert.Contains(t, text, "3 משטחים")
				return nil
			})

		summary := NewService(testConfig(), erp, relay).Run(context.Background(), targetDate)

		assert.Equal(t, domain.FetchOK, summary.Fetch.Status)
		assert.Equal(t, 2, summary.Totals.Rows)
		assert.Equal(t, 3.0, summary.Totals.Quantity)
		assert.Equal(t, 20500.0, summary.Totals.Amount)
		assert.Equal(t, 1, summary.Delivered())
	})

	t.Run("empty window skips delivery", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		erp := prioritymocks.NewMockClient(ctrl)
		relay := timelinesmocks.NewMockClient(ctrl)

		erp.EXPECT().
			GetUninvoicedDeliveryNotes(gomock.Any(), gomock.Any()).
			Return(nil, nil)

		summary := NewService(testConfig(), erp, relay).Run(context.Background(), targetDate)

		assert.Equal(t, domain.FetchEmpty, summary.Fetch.Status)
		assert.Empty(t, summary.Outcomes)
	})

	t.Run("fetch failure is distinguished from empty", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		erp := prioritymocks.NewMockClient(ctrl)
		relay := timelinesmocks.NewMockClient(ctrl)

		erp.EXPECT().
			GetUninvoicedDeliveryNotes(gomock.Any(), gomock.Any()).
			Return(nil, assert.AnError)

		summary := NewService(testConfig(), erp, relay).Run(context.Background(), targetDate)

		assert.Equal(t, domain.FetchFailed, summary.Fetch.Status)
		assert.NotEmpty(t, summary.Fetch.Reason)
	})
}

func TestNormalizeNote(t *testing.T) {
	t.Run("pallets and cartons derive from subform lines", func(t *testing.T) {
		row := normalizeNote(testNotes()[0])

		assert.Equal(t, "DC250101", row.ID)
		assert.Equal(t, "סופית", row.GroupKey)
		assert.Equal(t, 2.0, row.Quantity)
		assert.Equal(t, "64", row.Field("cartons"))
		assert.Equal(t, 12500.0, row.Amount)
	})

	t.Run("a note without lines yields zero aggregates", func(t *testing.T) {
		row := normalizeNote(priority.DeliveryNote{DocumentNumber: "DC1"})

		assert.Equal(t, 0.0, row.Quantity)
		assert.Equal(t, "0", row.Field("cartons"))
	})
}
