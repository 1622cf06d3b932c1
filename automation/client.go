// Package automation calls the external report-generation webhooks. One
// webhook exists per intake kind; each call posts the intake form as JSON
// and returns the generated report text.
package automation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/giygas/medreview-api/interfaces"
	"github.com/giygas/medreview-api/logging"
	"github.com/giygas/medreview-api/metrics"
	"github.com/giygas/medreview-api/models"
	"github.com/sony/gobreaker"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"
)

var _ interfaces.ReportGenerator = (*Client)(nil)

// ErrUnavailable is returned when the circuit breaker rejects a call
var ErrUnavailable = errors.New("report generation is temporarily unavailable")

// maxResponseBytes caps how much of a webhook response is read
const maxResponseBytes = 4 << 20

// reportFields are the JSON fields a webhook may wrap the report in, by priority
var reportFields = []string{"report", "result", "content", "generatedContent"}

// Config configures a Client
type Config struct {
	PublicURL   string
	HospitalURL string
	Timeout     time.Duration

	// Consecutive failures before the breaker opens, and how long it stays open
	FailureThreshold uint32
	OpenTimeout      time.Duration
}

// Client posts intake forms to the automation webhooks
type Client struct {
	urls       map[models.Kind]string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
}

// NewClient creates a webhook client with its own circuit breaker
func NewClient(cfg Config) *Client {
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = 3
	}
	if cfg.OpenTimeout == 0 {
		cfg.OpenTimeout = time.Minute
	}

	threshold := cfg.FailureThreshold
	settings := gobreaker.Settings{
		Name:        "automation-webhook",
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn("Circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
		IsSuccessful: func(err error) bool {
			// Caller cancellations say nothing about the webhook's health
			return err == nil || errors.Is(err, context.Canceled)
		},
	}

	return &Client{
		urls: map[models.Kind]string{
			models.KindPublic:   cfg.PublicURL,
			models.KindHospital: cfg.HospitalURL,
		},
		httpClient: &http.Client{Timeout: cfg.Timeout},
		breaker:    gobreaker.NewCircuitBreaker(settings),
	}
}

// State returns the breaker state: closed, half-open or open
func (c *Client) State() string {
	return c.breaker.State().String()
}

// Generate sends the form to the webhook of kind and returns the report text
func (c *Client) Generate(ctx context.Context, kind models.Kind, form models.IntakeForm) (string, error) {
	url, ok := c.urls[kind]
	if !ok || url == "" {
		return "", fmt.Errorf("no webhook configured for kind %q", kind)
	}

	start := time.Now()
	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.post(ctx, url, form)
	})
	metrics.WebhookDuration.WithLabelValues(string(kind)).Observe(time.Since(start).Seconds())

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.WebhookRequestsTotal.WithLabelValues(string(kind), "rejected").Inc()
			return "", ErrUnavailable
		}
		metrics.WebhookRequestsTotal.WithLabelValues(string(kind), "error").Inc()
		logging.Error("Webhook call failed", "kind", kind, "error", err)
		return "", err
	}

	metrics.WebhookRequestsTotal.WithLabelValues(string(kind), "success").Inc()
	return result.(string), nil
}

func (c *Client) post(ctx context.Context, url string, form models.IntakeForm) (string, error) {
	payload, err := json.Marshal(form)
	if err != nil {
		return "", fmt.Errorf("encode intake form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/plain, text/markdown")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("webhook request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("read webhook response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("webhook responded with status %d", resp.StatusCode)
	}

	return ExtractReport(body), nil
}

// ExtractReport turns a webhook response body into report text. JSON objects
// carrying one of the known report fields are unwrapped; anything else is
// taken as the report itself. Bytes that are not valid UTF-8 are decoded as
// ISO-8859-1, and the result is NFC-normalized so accented words compare
// equal however the webhook composed them.
func ExtractReport(body []byte) string {
	if !utf8.Valid(body) {
		if decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(body); err == nil {
			body = decoded
		}
	}

	text := string(body)
	trimmed := strings.TrimSpace(text)

	if strings.HasPrefix(trimmed, "{") {
		var wrapper map[string]json.RawMessage
		if err := json.Unmarshal([]byte(trimmed), &wrapper); err == nil {
			for _, field := range reportFields {
				var s string
				if raw, ok := wrapper[field]; ok && json.Unmarshal(raw, &s) == nil && s != "" {
					text = s
					break
				}
			}
		}
	} else if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal([]byte(trimmed), &s); err == nil {
			text = s
		}
	}

	return norm.NFC.String(text)
}
