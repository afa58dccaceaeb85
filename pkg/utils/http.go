package utils

import (
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// RetryPolicy bounds the re-attempt loop around a single HTTP call.
type RetryPolicy struct {
	Attempts int
	Backoff  time.Duration
}

// DefaultRetryPolicy matches the scripts' observed behavior: three attempts
// with a linear backoff between them.
var DefaultRetryPolicy = RetryPolicy{Attempts: 3, Backoff: 2 * time.Second}

// retryableStatus reports whether a response status is worth re-attempting.
func retryableStatus(code int) bool {
	switch code {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// DoWithRetry executes an HTTP request built by newReq, retrying transport
// errors, timeouts and transient 5xx statuses. The request is rebuilt for
// every attempt so bodies are re-readable. The last response or error wins;
// non-retryable statuses return immediately.
func DoWithRetry(client *http.Client, policy RetryPolicy, newReq func() (*http.Request, error)) (*http.Response, error) {
	if policy.Attempts < 1 {
		policy.Attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= policy.Attempts; attempt++ {
		req, err := newReq()
		if err != nil {
			return nil, errors.Wrap(err, "building request")
		}

		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			if netErr, ok := err.(net.Error); ok && !netErr.Timeout() {
				// Non-timeout transport failures are retried too; the
				// distinction only matters for logging.
				logrus.WithError(err).WithField("attempt", attempt).Warn("http: transport error")
			} else {
				logrus.WithError(err).WithField("attempt", attempt).Warn("http: request timed out")
			}
		} else if retryableStatus(resp.StatusCode) {
			resp.Body.Close()
			lastErr = errors.Errorf("transient status %s", resp.Status)
			logrus.WithFields(logrus.Fields{
				"status":  resp.StatusCode,
				"attempt": attempt,
			}).Warn("http: transient server error")
		} else {
			return resp, nil
		}

		if attempt < policy.Attempts {
			time.Sleep(policy.Backoff * time.Duration(attempt))
		}
	}

	return nil, errors.Wrapf(lastErr, "giving up after %d attempts", policy.Attempts)
}
