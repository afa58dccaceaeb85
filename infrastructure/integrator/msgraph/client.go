// Package msgraph reads a mailbox through the Microsoft Graph API using
// client-credential OAuth.
package msgraph

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ohadbenami/gaya-daily-reports/internal/config"
)

const (
	graphBaseURL = "https://graph.microsoft.com/v1.0"
	loginBaseURL = "https://login.microsoftonline.com"
)

type Client interface {
	ListMessagesSince(ctx context.Context, since time.Time) ([]Message, error)
}

type EmailAddress struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

type Sender struct {
	EmailAddress EmailAddress `json:"emailAddress"`
}

type Message struct {
	ID               string `json:"id"`
	Subject          string `json:"subject"`
	From             Sender `json:"from"`
	ReceivedDateTime string `json:"receivedDateTime"`
	Importance       string `json:"importance"`
	IsRead           bool   `json:"isRead"`
	BodyPreview      string `json:"bodyPreview"`
	HasAttachments   bool   `json:"hasAttachments"`
}

type GraphClient struct {
	httpClient *http.Client
	cfg        config.MSGraph
	baseURL    string
	loginURL   string
}

func NewClient(cfg config.MSGraph) Client {
	return &GraphClient{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		cfg:      cfg,
		baseURL:  graphBaseURL,
		loginURL: loginBaseURL,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// acquireToken performs the client-credentials grant. Tokens are not cached:
// one run issues a single listing call, so a fresh token per run is fine.
func (c *GraphClient) acquireToken(ctx context.Context) (string, error) {
	endpoint := fmt.Sprintf("%s/%s/oauth2/v2.0/token", c.loginURL, c.cfg.TenantID)

	form := url.Values{}
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)
	form.Set("scope", "https://graph.microsoft.com/.default")
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", errors.Wrap(err, "building token request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "requesting token")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", errors.Errorf("token request failed with status %s: %s", resp.Status, body)
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", errors.Wrap(err, "decoding token response")
	}
	if token.AccessToken == "" {
		return "", errors.New("token response contained no access_token")
	}

	return token.AccessToken, nil
}

type messagesResponse struct {
	Value []Message `json:"value"`
}

// ListMessagesSince returns mailbox messages received at or after the given
// instant, newest first, limited to the digest's display fields.
func (c *GraphClient) ListMessagesSince(ctx context.Context, since time.Time) ([]Message, error) {
	token, err := c.acquireToken(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "msgraph: acquiring token")
	}

	params := url.Values{}
	params.Set("$filter", fmt.Sprintf("receivedDateTime ge %s", since.UTC().Format("2006-01-02T15:04:05Z")))
	params.Set("$orderby", "receivedDateTime desc")
	params.Set("$top", "50")
	params.Set("$select", "id,subject,from,receivedDateTime,importance,isRead,bodyPreview,hasAttachments")

	endpoint := fmt.Sprintf("%s/users/%s/messages?%s", c.baseURL, c.cfg.UserEmail, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "msgraph: building messages request")
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "msgraph: listing messages")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, errors.Errorf("msgraph: unexpected status %s: %s", resp.Status, body)
	}

	var response messagesResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, errors.Wrap(err, "msgraph: decoding messages")
	}

	logrus.WithField("messages", len(response.Value)).Debug("msgraph: messages fetched")
	return response.Value, nil
}
