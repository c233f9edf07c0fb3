// Package flutterwave is the payment gateway adapter. It creates hosted
// checkout links, verifies transactions by id and decodes webhook events.
package flutterwave

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"church-cms/config"
	"church-cms/internal/core/ports"

	"github.com/shopspring/decimal"
)

const (
	defaultBaseURL = "https://api.flutterwave.com"
	defaultTimeout = 15 * time.Second
	paymentOptions = "card,ussd,banktransfer,account"
	maxBodyBytes   = 1 << 20
)

// ErrCredentialsRejected means the gateway refused our API key. It says
// nothing about the payment, so callers treat it like a transport fault.
var ErrCredentialsRejected = errors.New("flutterwave: credentials rejected")

// HTTPClient is satisfied by *http.Client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client implements ports.PaymentGateway against the Flutterwave v3 API.
type Client struct {
	baseURL    string
	publicKey  string
	secretKey  string
	httpClient HTTPClient
}

// New creates a Client. A nil httpClient gets one bounded by cfg.Timeout.
func New(cfg config.GatewayConfig, httpClient HTTPClient) *Client {
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = defaultBaseURL
	}
	return &Client{
		baseURL:    base,
		publicKey:  cfg.PublicKey,
		secretKey:  cfg.SecretKey,
		httpClient: httpClient,
	}
}

// Configured reports whether both API keys are present.
func (c *Client) Configured() bool {
	return c.publicKey != "" && c.secretKey != ""
}

type envelope[T any] struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

type customer struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type customizations struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Logo        string `json:"logo,omitempty"`
}

type paymentRequest struct {
	TxRef          string            `json:"tx_ref"`
	Amount         decimal.Decimal   `json:"amount"`
	Currency       string            `json:"currency"`
	RedirectURL    string            `json:"redirect_url"`
	PaymentOptions string            `json:"payment_options"`
	Customer       customer          `json:"customer"`
	Customizations customizations    `json:"customizations"`
	Meta           map[string]string `json:"meta,omitempty"`
}

type paymentData struct {
	Link string `json:"link"`
}

// CreatePaymentLink asks the gateway for a hosted checkout URL.
func (c *Client) CreatePaymentLink(ctx context.Context, req ports.PaymentLinkRequest) (*ports.PaymentLink, error) {
	body := paymentRequest{
		TxRef:          req.Reference,
		Amount:         req.Amount,
		Currency:       req.Currency,
		RedirectURL:    req.RedirectURL,
		PaymentOptions: paymentOptions,
		Customer:       customer{Email: req.Email, Name: req.Name},
		Customizations: customizations{Title: req.Title, Description: req.Description, Logo: req.Logo},
		Meta:           req.Meta,
	}

	var env envelope[paymentData]
	if err := c.do(ctx, http.MethodPost, "/v3/payments", body, &env); err != nil {
		return nil, err
	}
	if env.Status != "success" || env.Data.Link == "" {
		return nil, &ports.GatewayError{Message: messageOr(env.Message, "payment initialization failed")}
	}
	return &ports.PaymentLink{URL: env.Data.Link}, nil
}

type transactionData struct {
	ID                json.Number     `json:"id"`
	TxRef             string          `json:"tx_ref"`
	FlwRef            string          `json:"flw_ref"`
	Amount            decimal.Decimal `json:"amount"`
	Currency          string          `json:"currency"`
	Status            string          `json:"status"`
	PaymentType       string          `json:"payment_type"`
	ProcessorResponse string          `json:"processor_response"`
}

// VerifyTransaction fetches the gateway's view of paymentID.
func (c *Client) VerifyTransaction(ctx context.Context, paymentID string) (*ports.GatewayTransaction, error) {
	var env envelope[*transactionData]
	path := "/v3/transactions/" + url.PathEscape(paymentID) + "/verify"
	if err := c.do(ctx, http.MethodGet, path, nil, &env); err != nil {
		return nil, err
	}
	if env.Status != "success" || env.Data == nil {
		return nil, &ports.GatewayError{Message: messageOr(env.Message, "transaction verification failed")}
	}

	d := env.Data
	return &ports.GatewayTransaction{
		ID:                d.ID.String(),
		Reference:         d.TxRef,
		GatewayReference:  d.FlwRef,
		Amount:            d.Amount,
		Currency:          d.Currency,
		Status:            d.Status,
		PaymentType:       d.PaymentType,
		ProcessorResponse: d.ProcessorResponse,
	}, nil
}

type webhookPayload struct {
	Event string `json:"event"`
	Data  struct {
		ID    json.RawMessage `json:"id"`
		TxRef string          `json:"tx_ref"`
	} `json:"data"`
}

// ParseEvent decodes a webhook body. Unknown event types are returned with
// Type GatewayEventOther rather than as an error.
func (c *Client) ParseEvent(payload []byte) (*ports.GatewayEvent, error) {
	var p webhookPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, fmt.Errorf("decode webhook payload: %w", err)
	}

	ev := &ports.GatewayEvent{
		Type:      ports.GatewayEventOther,
		RawType:   p.Event,
		Reference: p.Data.TxRef,
		PaymentID: strings.Trim(string(p.Data.ID), `"`),
	}
	switch p.Event {
	case "charge.completed", "charge.completed.redirect":
		ev.Type = ports.GatewayEventChargeCompleted
	}
	if ev.PaymentID == "null" {
		ev.PaymentID = ""
	}
	return ev, nil
}

// do sends a JSON request. 4xx answers decode into out so the caller sees
// the gateway's message; 401/403 and 5xx answers are transport-class errors.
func (c *Client) do(ctx context.Context, method, path string, in any, out any) error {
	var reader io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("flutterwave: encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("flutterwave: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("flutterwave: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("flutterwave: read response: %w", err)
	}

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("flutterwave: %s %s: upstream status %d", method, path, resp.StatusCode)
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %s %s: status %d", ErrCredentialsRejected, method, path, resp.StatusCode)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return &ports.GatewayError{Message: fmt.Sprintf("status %d", resp.StatusCode)}
		}
		return fmt.Errorf("flutterwave: decode response: %w", err)
	}
	return nil
}

func messageOr(msg, fallback string) string {
	if msg == "" {
		return fallback
	}
	return msg
}
