package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/akeeper/go-account-keeper/internal/config"
	"github.com/akeeper/go-account-keeper/internal/logger"
	"github.com/go-resty/resty/v2"
)

// mailMessage is the JSON payload accepted by the mail relay's send endpoint.
type mailMessage struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// mailRelayClient is the HTTP implementation of [Mailer]. It talks to a
// mail relay service that accepts JSON messages on POST /api/send and
// authenticates callers with a bearer API key.
type mailRelayClient struct {
	client *resty.Client
	sender string
	logger *logger.Logger
}

// NewMailRelayClient constructs a [Mailer] backed by the configured mail
// relay. It normalises and validates the base URL from cfg.Address and
// configures the underlying HTTP client with the resolved base URL, request
// timeout, and API key.
//
// Returns an error if cfg.Address is empty or cannot be parsed as a valid URL.
func NewMailRelayClient(cfg config.Mailer, logger *logger.Logger) (Mailer, error) {
	baseURL, err := normalizeBaseURL(cfg.Address)
	if err != nil {
		return nil, fmt.Errorf("invalid mail relay address: %w", err)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout)

	if cfg.APIKey != "" {
		client.SetAuthToken(cfg.APIKey)
	}

	logger.Debug().Str("relay", baseURL).Msg("creating mail relay client")
	return &mailRelayClient{client: client, sender: cfg.Sender, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Send implements [Mailer]. It POSTs the message to POST /api/send. Returns
// [ErrDispatchFailed] (wrapped) if the request fails or the relay responds
// with a non-2xx status.
func (m *mailRelayClient) Send(ctx context.Context, to string, subject string, html string) error {
	resp, err := m.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(mailMessage{
			From:    m.sender,
			To:      to,
			Subject: subject,
			HTML:    html,
		}).
		Post("/api/send")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDispatchFailed, err)
	}

	if resp.IsError() {
		m.logger.Error().
			Int("status", resp.StatusCode()).
			Str("func", "*mailRelayClient.Send").
			Msg("mail relay rejected message")
		return fmt.Errorf("%w: relay returned status %d", ErrDispatchFailed, resp.StatusCode())
	}

	return nil
}
