package actuator

import (
	"context"
	"fmt"
	"io"
	"leatherinspection/internal/logger"
	"leatherinspection/internal/metrics"
	"leatherinspection/internal/model"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultTimeout bounds a single notification request.
	DefaultTimeout = 2 * time.Second
	// maxReplyLog limits how much of the device reply ends up in the log.
	maxReplyLog = 256
)

// Notifier reports verdicts to the LED controller (ESP32) with a single
// best-effort GET. Failures are logged and counted, never returned.
type Notifier struct {
	endpoint string
	client   *http.Client
	logger   *logger.Logger
	metrics  *metrics.Metrics
}

// NewNotifier creates a notifier for the device at baseURL, e.g.
// "http://192.168.4.1". A bare host is treated as http. An empty baseURL
// disables notifications.
func NewNotifier(baseURL string, timeout time.Duration, logger *logger.Logger, m *metrics.Metrics) *Notifier {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	endpoint := ""
	if baseURL != "" {
		if !strings.Contains(baseURL, "://") {
			baseURL = "http://" + baseURL
		}
		endpoint = strings.TrimRight(baseURL, "/") + "/led"
	}

	return &Notifier{
		endpoint: endpoint,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: timeout,
				}).DialContext,
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger:  logger,
		metrics: m,
	}
}

// Enabled reports whether a device endpoint is configured.
func (n *Notifier) Enabled() bool {
	return n.endpoint != ""
}

// Notify sends the color for verdict. It never fails the caller.
func (n *Notifier) Notify(ctx context.Context, verdict model.Verdict) {
	if !n.Enabled() {
		return
	}
	color := verdict.Color()
	if color == "" {
		return
	}

	reply, err := n.send(ctx, color)
	if err != nil {
		n.logger.Warning("Actuator notification (%s) failed: %v", color, err)
		n.metrics.Notification(false)
		return
	}

	n.logger.Info("Actuator trigger (%s): %s", color, reply)
	n.metrics.Notification(true)
}

func (n *Notifier) send(ctx context.Context, color string) (string, error) {
	target := n.endpoint + "?status=" + url.QueryEscape(color)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxReplyLog))
	if err != nil {
		return "", fmt.Errorf("read reply: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return strings.TrimSpace(string(body)), nil
}
