// Package timelines talks to the TimelinesAI messaging relay: file uploads
// and WhatsApp message sends to phone-identified recipients.
package timelines

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ohadbenami/gaya-daily-reports/internal/config"
	"github.com/ohadbenami/gaya-daily-reports/pkg/utils"
)

type Client interface {
	UploadFile(ctx context.Context, filename string, data []byte) (string, error)
	SendMessage(ctx context.Context, phone, text, fileUID string) error
}

type TimelinesClient struct {
	httpClient *http.Client
	retry      utils.RetryPolicy
	cfg        config.Timelines
}

func NewClient(cfg config.Timelines) Client {
	return &TimelinesClient{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		retry: utils.RetryPolicy{Attempts: 3, Backoff: 2 * time.Second},
		cfg:   cfg,
	}
}

// uploadResponse covers both envelope variants the relay has been observed
// returning: {"data":{"uid":...}} and a top-level {"uid":...}.
type uploadResponse struct {
	UID  string `json:"uid"`
	Data struct {
		UID string `json:"uid"`
	} `json:"data"`
}

func (r uploadResponse) fileUID() string {
	if r.Data.UID != "" {
		return r.Data.UID
	}
	return r.UID
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// UploadFile pushes an artifact to the relay and returns its opaque file UID.
func (c *TimelinesClient) UploadFile(ctx context.Context, filename string, data []byte) (string, error) {
	resp, err := utils.DoWithRetry(c.httpClient, c.retry, func() (*http.Request, error) {
		var body bytes.Buffer
		writer := multipart.NewWriter(&body)
		part, err := writer.CreateFormFile("file", filename)
		if err != nil {
			return nil, err
		}
		if _, err := part.Write(data); err != nil {
			return nil, err
		}
		if err := writer.Close(); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/files_upload", &body)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		return req, nil
	})
	if err != nil {
		return "", errors.Wrap(err, "timelines: uploading file")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", errors.Errorf("timelines: upload failed with status %s: %s", resp.Status, body)
	}

	var response uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", errors.Wrap(err, "timelines: decoding upload response")
	}

	uid := response.fileUID()
	if uid == "" {
		return "", errors.New("timelines: upload response contained no file uid")
	}

	logrus.WithFields(logrus.Fields{
		"filename": filename,
		"file_uid": uid,
		"bytes":    len(data),
	}).Info("timelines: file uploaded")

	return uid, nil
}

type sendRequest struct {
	Phone   string `json:"phone"`
	Text    string `json:"text,omitempty"`
	FileUID string `json:"file_uid,omitempty"`
}

// SendMessage delivers text and/or a previously uploaded file to one phone.
// Transient failures are retried a bounded number of times.
func (c *TimelinesClient) SendMessage(ctx context.Context, phone, text, fileUID string) error {
	payload, err := json.Marshal(sendRequest{Phone: phone, Text: text, FileUID: fileUID})
	if err != nil {
		return errors.Wrap(err, "timelines: encoding message")
	}

	resp, err := utils.DoWithRetry(c.httpClient, c.retry, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/messages", bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	})
	if err != nil {
		return errors.Wrap(err, "timelines: sending message")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return errors.Errorf("timelines: send failed with status %s: %s", resp.Status, body)
	}

	logrus.WithFields(logrus.Fields{
		"phone":    phone,
		"has_file": fileUID != "",
	}).Info("timelines: message sent")

	return nil
}
