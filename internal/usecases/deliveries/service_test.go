package deliveries

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/ohadbenami/gaya-daily-reports/infrastructure/integrator/monday"
	mondaymocks "github.com/ohadbenami/gaya-daily-reports/infrastructure/integrator/monday/mocks"
	timelinesmocks "github.com/ohadbenami/gaya-daily-reports/infrastructure/integrator/timelines/mocks"
	"github.com/ohadbenami/gaya-daily-reports/internal/config"
	"github.com/ohadbenami/gaya-daily-reports/internal/domain"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Monday.BoardID = "5089475109"
	cfg.Monday.Columns = testColumns
	cfg.Reports.DeliveriesRecipients = "אוהד:972528012869"
	cfg.Reports.DriverLabelList = "0:שי,1:אורי"
	cfg.Reports.DriverColorList = "שי:E8F4FD,אורי:FFF3E8"
	return cfg
}

func TestService_Run(t *testing.T) {
	targetDate := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)

	t.Run("happy path sends digest with workbook", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		board := mondaymocks.NewMockClient(ctrl)
		relay := timelinesmocks.NewMockClient(ctrl)

		board.EXPECT().
			GetBoardItems(gomock.Any(), "5089475109").
			Return([]monday.Item{
				boardItem("1", "2025-03-12", `{"index":0}`, "", "3"),
				boardItem("2", "2025-03-12", `{"index":1}`, "", "2"),
			}, nil)
		relay.EXPECT().
			UploadFile(gomock.Any(), "הפצות_12_03_2025.xlsx", gomock.Any()).
			Return("uid-1", nil)
		relay.EXPECT().
			SendMessage(gomock.Any(), "972528012869", gomock.Any(), "uid-1").
			Return(nil)

		summary := NewService(testConfig(), board, relay).Run(context.Background(), targetDate)

		assert.Equal(t, domain.FetchOK, summary.Fetch.Status)
		assert.Equal(t, 2, summary.Fetch.Records)
		assert.Equal(t, 2, summary.Totals.Rows)
		assert.Equal(t, 5.0, summary.Totals.Quantity)
		assert.Equal(t, 1, summary.Delivered())
	})

	t.Run("empty day sends a no-deliveries message without a file", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		board := mondaymocks.NewMockClient(ctrl)
		relay := timelinesmocks.NewMockClient(ctrl)

		board.EXPECT().
			GetBoardItems(gomock.Any(), gomock.Any()).
			Return([]monday.Item{
				boardItem("1", "2025-03-20", `{"index":0}`, "", "3"),
			}, nil)
		relay.EXPECT().
			SendMessage(gomock.Any(), "972528012869", gomock.Any(), "").
			DoAndReturn(func(_ context.Context, _, text, _ string) error {
				assert.Contains(t, text, "אין הפצות מתוכננות")
				return nil
			})

		summary := NewService(testConfig(), board, relay).Run(context.Background(), targetDate)

		assert.Equal(t, domain.FetchEmpty, summary.Fetch.Status)
		assert.Equal(t, 1, summary.Delivered())
	})

	t.Run("fetch failure delivers nothing and records the reason", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		board := mondaymocks.NewMockClient(ctrl)
		relay := timelinesmocks.NewMockClient(ctrl)

		board.EXPECT().
			GetBoardItems(gomock.Any(), gomock.Any()).
			Return(nil, assert.AnError)

		summary := NewService(testConfig(), board, relay).Run(context.Background(), targetDate)

		assert.Equal(t, domain.FetchFailed, summary.Fetch.Status)
		assert.NotEmpty(t, summary.Fetch.Reason)
		assert.Empty(t, summary.Outcomes)
	})
}
