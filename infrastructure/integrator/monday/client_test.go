package monday

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ohadbenami/gaya-daily-reports/internal/config"
	"github.com/ohadbenami/gaya-daily-reports/pkg/utils"
)

func newTestClient(server *httptest.Server) *MondayClient {
	return &MondayClient{
		httpClient: server.Client(),
		retry:      utils.RetryPolicy{Attempts: 3, Backoff: time.Millisecond},
		cfg: config.Monday{
			URL:        server.URL,
			Token:      "monday-token",
			APIVersion: "2024-10",
		},
	}
}

func TestGetBoardItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "monday-token", r.Header.Get("Authorization"))
		assert.Equal(t, "2024-10", r.Header.Get("API-Version"))

		var payload struct {
			Query     string         `json:"query"`
			Variables map[string]any `json:"variables"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Contains(t, payload.Query, "items_page")
		assert.Equal(t, []any{"5089475109"}, payload.Variables["boardId"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"boards":[{"items_page":{"items":[
			{"id":"1","name":"הזמנה 1","column_values":[
				{"id":"date4","text":"2025-06-10","value":"{\"date\":\"2025-06-10\"}"},
				{"id":"status_driver","text":"","value":"{\"index\":2}"}
			]}
		]}}]}}`))
	}))
	defer server.Close()

	items, err := newTestClient(server).GetBoardItems(context.Background(), "5089475109")
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, "הזמנה 1", items[0].Name)
	columns := items[0].Columns()
	assert.Equal(t, "2025-06-10", columns["date4"].Text)
	assert.JSONEq(t, `{"index":2}`, columns["status_driver"].Value)
}

func TestGetBoardItems_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"errors":[{"message":"Board not accessible"}]}`))
	}))
	defer server.Close()

	_, err := newTestClient(server).GetBoardItems(context.Background(), "123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Board not accessible")
}

func TestGetBoardItems_MissingBoard(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"boards":[]}}`))
	}))
	defer server.Close()

	_, err := newTestClient(server).GetBoardItems(context.Background(), "123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "board 123 not found")
}
