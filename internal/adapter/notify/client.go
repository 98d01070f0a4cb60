package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/roomcraft/referral/internal/domain/model"
)

// Client announces pending payout requests to the payout operator.
type Client interface {
	Announce(ctx context.Context, request model.PayoutRequest) error
}

// HTTPClient implements Client via a webhook POST.
type HTTPClient struct {
	webhookURL *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// payload mirrors the JSON body the operator webhook expects.
type payload struct {
	RequestID int64     `json:"request_id"`
	AccountID int64     `json:"account_id"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// NewHTTPClient creates webhook notifier client with default timeout.
func NewHTTPClient(webhookURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(webhookURL)
	if err != nil {
		return nil, fmt.Errorf("parse webhook url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("webhook url must be absolute")
	}
	return &HTTPClient{
		webhookURL: parsed,
		logger:     logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Announce posts the payout request to the operator webhook. Any non-2xx
// response is treated as a delivery failure so the request stays queued.
func (c *HTTPClient) Announce(ctx context.Context, request model.PayoutRequest) error {
	body, err := json.Marshal(payload{
		RequestID: request.ID,
		AccountID: request.AccountID,
		Amount:    request.Amount,
		CreatedAt: request.CreatedAt,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL.String(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		respBody, _ := io.ReadAll(resp.Body)
		c.logger.Error("payout announcement failed",
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(respBody)))
		return fmt.Errorf("webhook error: %s", resp.Status)
	}
	return nil
}
