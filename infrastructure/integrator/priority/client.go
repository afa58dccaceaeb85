// Package priority queries the Priority ERP OData service.
package priority

import (
	"context"
	"net/http"
	"time"

	"github.com/ohadbenami/gaya-daily-reports/internal/config"
	"github.com/ohadbenami/gaya-daily-reports/pkg/utils"
)

type Client interface {
	GetUninvoicedDeliveryNotes(ctx context.Context, since time.Time) ([]DeliveryNote, error)
	GetOpenContainers(ctx context.Context) ([]ContainerOrder, error)
}

type PriorityClient struct {
	httpClient *http.Client
	retry      utils.RetryPolicy
	cfg        config.Priority
}

func NewClient(cfg config.Priority) Client {
	return &PriorityClient{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		retry: utils.DefaultRetryPolicy,
		cfg:   cfg,
	}
}
