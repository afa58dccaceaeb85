package priority

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ohadbenami/gaya-daily-reports/pkg/utils"
)

// GetUninvoicedDeliveryNotes fetches delivery notes without an invoice since
// the given date, newest first, with their transfer-order lines expanded.
func (c *PriorityClient) GetUninvoicedDeliveryNotes(ctx context.Context, since time.Time) ([]DeliveryNote, error) {
	params := url.Values{}
	params.Set("$filter", fmt.Sprintf("IVALL eq 'N' and CURDATE ge %s and QPRICE gt 0",
		since.Format("2006-01-02T15:04:05-07:00")))
	params.Set("$expand", "TRANSORDER_D_SUBFORM($select=PARTNAME,TQUANT)")
	params.Set("$orderby", "CURDATE desc")

	var envelope odataEnvelope[DeliveryNote]
	if err := c.get(ctx, "/DOCUMENTS_D", params, &envelope); err != nil {
		return nil, errors.Wrap(err, "priority: fetching uninvoiced delivery notes")
	}

	logrus.WithField("records", len(envelope.Value)).Debug("priority: delivery notes fetched")
	return envelope.Value, nil
}

// get issues an authenticated OData GET with bounded retry on transient
// server errors and timeouts.
func (c *PriorityClient) get(ctx context.Context, entity string, params url.Values, out any) error {
	endpoint := c.cfg.BaseURL + entity + "?" + params.Encode()

	resp, err := utils.DoWithRetry(c.httpClient, c.retry, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.SetBasicAuth(c.cfg.User, c.cfg.Password)
		req.Header.Set("Accept", "application/json")
		return req, nil
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return errors.Errorf("unexpected status %s: %s", resp.Status, truncateBody(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "decoding response")
	}

	return nil
}

func truncateBody(body []byte) string {
	const limit = 512
	if len(body) > limit {
		return string(body[:limit]) + "..."
	}
	return string(body)
}
