package emaildigest

import (
	"context"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	anthropicmocks "github.com/ohadbenami/gaya-daily-reports/infrastructure/integrator/anthropic/mocks"
	"github.com/ohadbenami/gaya-daily-reports/infrastructure/integrator/msgraph"
	msgraphmocks "github.com/ohadbenami/gaya-daily-reports/infrastructure/integrator/msgraph/mocks"
	timelinesmocks "github.com/ohadbenami/gaya-daily-reports/infrastructure/integrator/timelines/mocks"
	"github.com/ohadbenami/gaya-daily-reports/internal/config"
	"github.com/ohadbenami/gaya-daily-reports/internal/domain"
	"github.com/ohadbenami/gaya-daily-reports/internal/report"
)

var testNow = time.Date(2025, 3, 12, 8, 5, 0, 0, time.UTC)

func message(subject, preview, importance, sender string) msgraph.Message {
	return msgraph.Message{
		Subject:     subject,
		BodyPreview: preview,
		Importance:  importance,
		From: msgraph.Sender{
			EmailAddress: msgraph.EmailAddress{Name: "שולח", Address: sender},
		},
	}
}

func testService(mailbox msgraph.Client, summarizer *anthropicmocks.MockClient, relay *timelinesmocks.MockClient) *Service {
	cfg := &config.Config{}
	cfg.Reports.DigestRecipients = "אוהד:972528012869"

	return &Service{
		cfg:        cfg,
		mailbox:    mailbox,
		summarizer: summarizer,
		deliverer:  report.NewDeliverer(relay),
		targets:    config.ParseRecipients(cfg.Reports.DigestRecipients),
		now:        func() time.Time { return testNow },
	}
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		name     string
		msg      msgraph.Message
		expected string
	}{
		{
			name:     "high importance is urgent regardless of content",
			msg:      message("weekly recap", "", "high", "x@y.com"),
			expected: CategoryUrgent,
		},
		{
			name:     "urgent keyword in subject",
			msg:      message("דחוף: אישור הזמנה", "", "normal", "x@y.com"),
			expected: CategoryUrgent,
		},
		{
			name:     "finance keyword in preview",
			msg:      message("מסמכים", "מצורפת חשבונית לחודש מרץ", "normal", "x@y.com"),
			expected: CategoryFinance,
		},
		{
			name:     "order keyword",
			msg:      message("shipment update", "", "normal", "x@y.com"),
			expected: CategoryOrders,
		},
		{
			name:     "company sender is internal",
			msg:      message("עדכון צוות", "", "normal", "ohad@gaya-foods.com"),
			expected: CategoryInternal,
		},
		{
			name:     "everything else is other",
			msg:      message("newsletter", "", "normal", "news@example.com"),
			expected: CategoryOther,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, categorize(tt.msg))
		})
	}
}

func TestFallbackSummary(t *testing.T) {
	messages := []msgraph.Message{
		message("דחוף: תשלום לספק", "", "high", "a@b.com"),
		message("חשבונית מרץ", "", "normal", "a@b.com"),
		message("הזמנה חדשה", "", "normal", "a@b.com"),
	}
	buckets := categorizeAll(messages)

	out := fallbackSummary(messages, buckets, testNow)

	assert.Contains(t, out, "3 מיילים")
	assert.Contains(t, out, "1 דחופים")
	assert.Contains(t, out, "⚡ דחוף:")
	assert.Contains(t, out, "💰 כספים (1)")
	assert.Contains(t, out, "📦 הזמנות (1)")
	assert.LessOrEqual(t, utf8.RuneCountInString(out), fallbackMaxChars)
}

func TestService_Run(t *testing.T) {
	t.Run("summarizes with the model and sends", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mailbox := msgraphmocks.NewMockClient(ctrl)
		summarizer := anthropicmocks.NewMockClient(ctrl)
		relay := timelinesmocks.NewMockClient(ctrl)

		mailbox.EXPECT().
			ListMessagesSince(gomock.Any(), gomock.Any()).
			Return([]msgraph.Message{
				message("הזמנה חדשה", "", "normal", "a@b.com"),
			}, nil)
		summarizer.EXPECT().
			Complete(gomock.Any(), gomock.Any()).
			Return("☀️ סיכום בוקר", nil)
		relay.EXPECT().
			SendMessage(gomock.Any(), "972528012869", "☀️ סיכום בוקר", "").
			Return(nil)

		summary := testService(mailbox, summarizer, relay).Run(context.Background(), testNow)

		assert.Equal(t, domain.FetchOK, summary.Fetch.Status)
		assert.Equal(t, 1, summary.Delivered())
	})

	t.Run("model failure degrades to the fallback summary", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mailbox := msgraphmocks.NewMockClient(ctrl)
		summarizer := anthropicmocks.NewMockClient(ctrl)
		relay := timelinesmocks.NewMockClient(ctrl)

		mailbox.EXPECT().
			ListMessagesSince(gomock.Any(), gomock.Any()).
			Return([]msgraph.Message{
				message("חשבונית", "", "normal", "a@b.com"),
			}, nil)
		summarizer.EXPECT().
			Complete(gomock.Any(), gomock.Any()).
			Return("", assert.AnError)
		relay.EXPECT().
			SendMessage(gomock.Any(), "972528012869", gomock.Any(), "").
			DoAndReturn(func(_ context.Context, _, text, _ string) error {
				assert.Contains(t, text, "בוקר טוב")
				assert.Contains(t, text, "1 מיילים")
				return nil
			})

		summary := testService(mailbox, summarizer, relay).Run(context.Background(), testNow)

		assert.Equal(t, 1, summary.Delivered())
	})

	t.Run("empty mailbox sends the empty inbox note", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mailbox := msgraphmocks.NewMockClient(ctrl)
		summarizer := anthropicmocks.NewMockClient(ctrl)
		relay := timelinesmocks.NewMockClient(ctrl)

		mailbox.EXPECT().
			ListMessagesSince(gomock.Any(), gomock.Any()).
			Return(nil, nil)
		relay.EXPECT().
			SendMessage(gomock.Any(), "972528012869", gomock.Any(), "").
			DoAndReturn(func(_ context.Context, _, text, _ string) error {
				assert.Contains(t, text, "אין מיילים חדשים")
				return nil
			})

		summary := testService(mailbox, summarizer, relay).Run(context.Background(), testNow)

		assert.Equal(t, domain.FetchEmpty, summary.Fetch.Status)
		assert.Equal(t, 1, summary.Delivered())
	})

	t.Run("mailbox failure delivers nothing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mailbox := msgraphmocks.NewMockClient(ctrl)
		summarizer := anthropicmocks.NewMockClient(ctrl)
		relay := timelinesmocks.NewMockClient(ctrl)

		mailbox.EXPECT().
			ListMessagesSince(gomock.Any(), gomock.Any()).
			Return(nil, assert.AnError)

		summary := testService(mailbox, summarizer, relay).Run(context.Background(), testNow)

		assert.Equal(t, domain.FetchFailed, summary.Fetch.Status)
		assert.Empty(t, summary.Outcomes)
	})
}

func TestWindowStart(t *testing.T) {
	start := windowStart(testNow)

	assert.Equal(t, 19, start.Hour())
	assert.True(t, start.Before(testNow))
	// The window opens on the previous calendar day.
	assert.Equal(t, testNow.In(start.Location()).AddDate(0, 0, -1).Day(), start.Day())
}
