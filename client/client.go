// Package client forwards scrape requests to the downstream scrape API.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/use-agent/scrape-mcp/config"
	"github.com/use-agent/scrape-mcp/models"
)

// unknownError is reported when the API signals failure without saying why.
const unknownError = "Unknown error"

// Client calls the scrape API. It holds configuration only, so one Client
// may serve any number of concurrent calls.
type Client struct {
	endpoint string
	timeout  time.Duration
	logger   *slog.Logger
}

// New creates a Client for the configured endpoint.
func New(cfg config.DownstreamConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		endpoint: cfg.Endpoint,
		timeout:  cfg.Timeout,
		logger:   logger,
	}
}

// Call performs exactly one POST of params and returns its outcome.
//
// Every failure, whether transport, HTTP status, undecodable body or an
// API-reported error, is returned as a failed ScrapeResult; Call never
// returns a Go error. Cancellation of ctx is ignored: only the configured
// timeout abandons a call.
func (c *Client) Call(ctx context.Context, params *models.ScrapeRequestParams) models.ScrapeResult {
	start := time.Now()
	doc, err := c.do(context.WithoutCancel(ctx), params)
	elapsed := time.Since(start)

	if err != nil {
		c.logger.Warn("scrape call failed",
			"url", params.URL,
			"code", err.Code,
			"error", err.Message,
			"elapsed", elapsed,
		)
		return models.Failed(err)
	}

	result := models.Succeeded(doc)
	c.logger.Debug("scrape call succeeded",
		"url", params.URL,
		"links", len(result.Data.Links),
		"elapsed", elapsed,
	)
	return result
}

func (c *Client) do(ctx context.Context, params *models.ScrapeRequestParams) (*models.Document, *models.ScrapeError) {
	// A fresh client, and with it a fresh connection pool, per call.
	rc := resty.New().
		SetTimeout(c.timeout).
		SetRetryCount(0).
		SetLogger(restyLogger{c.logger}).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	defer rc.GetClient().CloseIdleConnections()

	c.logger.Debug("scrape call", "endpoint", c.endpoint, "url", params.URL)

	resp, err := rc.R().
		SetContext(ctx).
		SetBody(params).
		Post(c.endpoint)
	if err != nil {
		code := models.ErrCodeTransport
		if isTimeout(err) {
			code = models.ErrCodeTimeout
		}
		return nil, models.NewScrapeError(code, err.Error(), err)
	}

	if !resp.IsSuccess() {
		msg := fmt.Sprintf("%s error '%s' for url '%s'", statusClass(resp.StatusCode()), resp.Status(), c.endpoint)
		return nil, models.NewScrapeError(models.ErrCodeHTTPStatus, msg, nil)
	}

	var payload models.ScrapeResponse
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, models.NewScrapeError(models.ErrCodeInvalidResponse, err.Error(), err)
	}

	if !payload.Success {
		msg, ok := payload.ErrorMessage()
		if !ok {
			msg = unknownError
		}
		return nil, models.NewScrapeError(models.ErrCodeScrapeFailed, msg, nil)
	}

	return payload.Data, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func statusClass(code int) string {
	switch {
	case code >= http.StatusInternalServerError:
		return "Server"
	case code >= http.StatusBadRequest:
		return "Client"
	case code >= http.StatusMultipleChoices:
		return "Redirect"
	default:
		return "Informational"
	}
}

// restyLogger routes resty's own diagnostics through slog instead of its
// default stderr logger.
type restyLogger struct {
	logger *slog.Logger
}

func (l restyLogger) Errorf(format string, v ...interface{}) {
	l.logger.Debug("resty: "+fmt.Sprintf(format, v...))
}

func (l restyLogger) Warnf(format string, v ...interface{}) {
	l.logger.Debug("resty: "+fmt.Sprintf(format, v...))
}

func (l restyLogger) Debugf(format string, v ...interface{}) {
	l.logger.Debug("resty: "+fmt.Sprintf(format, v...))
}
