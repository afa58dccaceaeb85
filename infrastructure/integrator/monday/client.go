// Package monday queries the monday.com GraphQL API.
package monday

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ohadbenami/gaya-daily-reports/internal/config"
	"github.com/ohadbenami/gaya-daily-reports/pkg/utils"
)

type Client interface {
	GetBoardItems(ctx context.Context, boardID string) ([]Item, error)
}

// ColumnValue is one cell of a board item. Value carries the raw JSON the
// board stores (e.g. a status index); Text is the rendered display value.
type ColumnValue struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Value string `json:"value"`
}

type Item struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	ColumnValues []ColumnValue `json:"column_values"`
}

// Columns returns the item's cells indexed by column ID.
func (i Item) Columns() map[string]ColumnValue {
	columns := make(map[string]ColumnValue, len(i.ColumnValues))
	for _, cv := range i.ColumnValues {
		columns[cv.ID] = cv
	}
	return columns
}

const boardItemsQuery = `
query ($boardId: [ID!]!) {
    boards(ids: $boardId) {
        items_page(limit: 500) {
            items {
                id
                name
                column_values {
                    id
                    text
                    value
                }
            }
        }
    }
}`

type MondayClient struct {
	httpClient *http.Client
	retry      utils.RetryPolicy
	cfg        config.Monday
}

func NewClient(cfg config.Monday) Client {
	return &MondayClient{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		retry: utils.DefaultRetryPolicy,
		cfg:   cfg,
	}
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type boardItemsResponse struct {
	Data struct {
		Boards []struct {
			ItemsPage struct {
				Items []Item `json:"items"`
			} `json:"items_page"`
		} `json:"boards"`
	} `json:"data"`
	Errors []graphqlError `json:"errors"`
}

// GetBoardItems fetches every item of a board with its column values. Date
// filtering happens client-side: the board stays small and the API offers no
// stable server-side date predicate across column types.
func (c *MondayClient) GetBoardItems(ctx context.Context, boardID string) ([]Item, error) {
	payload, err := json.Marshal(graphqlRequest{
		Query:     boardItemsQuery,
		Variables: map[string]any{"boardId": []string{boardID}},
	})
	if err != nil {
		return nil, errors.Wrap(err, "monday: encoding query")
	}

	resp, err := utils.DoWithRetry(c.httpClient, c.retry, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", c.cfg.Token)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("API-Version", c.cfg.APIVersion)
		return req, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "monday: querying board")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, errors.Errorf("monday: unexpected status %s: %s", resp.Status, body)
	}

	var response boardItemsResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, errors.Wrap(err, "monday: decoding response")
	}

	if len(response.Errors) > 0 {
		return nil, errors.Errorf("monday: API error: %s", response.Errors[0].Message)
	}

	if len(response.Data.Boards) == 0 {
		return nil, errors.Errorf("monday: board %s not found", boardID)
	}

	items := response.Data.Boards[0].ItemsPage.Items
	logrus.WithFields(logrus.Fields{
		"board_id": boardID,
		"items":    len(items),
	}).Debug("monday: board items fetched")

	return items, nil
}
