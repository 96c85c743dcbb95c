// Package discord posts notices to a Discord webhook as embeds.
package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/bnema/dvrsweep/internal/config"
	"github.com/bnema/dvrsweep/internal/ports"
)

const sendTimeout = 5 * time.Second

var embedColors = map[ports.NoticeKind]int{
	ports.NoticeInfo:    0x3498db,
	ports.NoticeSuccess: 0x2ecc71,
	ports.NoticeError:   0xe74c3c,
	ports.NoticeStartup: 0x9b59b6,
}

const fallbackColor = 0x95a5a6

type Notifier struct {
	webhookURL string
	settings   config.Discord
	http       *http.Client
	clock      ports.Clock
	logger     zerolog.Logger
}

var _ ports.Notifier = (*Notifier)(nil)

// New builds a webhook notifier. Returns a NopNotifier when notifications
// are disabled or no webhook URL is configured, so callers never need to
// special-case the disabled path.
func New(webhookURL string, settings config.Discord, clock ports.Clock, logger zerolog.Logger) ports.Notifier {
	if !settings.Enabled || webhookURL == "" {
		return ports.NopNotifier{}
	}

	return &Notifier{
		webhookURL: webhookURL,
		settings:   settings,
		http:       &http.Client{Timeout: sendTimeout},
		clock:      clock,
		logger:     logger,
	}
}

type embed struct {
	Description string `json:"description"`
	Color       int    `json:"color"`
	Timestamp   string `json:"timestamp"`
}

type payload struct {
	Embeds []embed `json:"embeds"`
}

// Send posts one embed. Notice kinds muted by the settings are dropped
// silently; transport failures are debug-logged and returned, but callers
// treat them as best-effort.
func (n *Notifier) Send(ctx context.Context, kind ports.NoticeKind, message string) error {
	if n.muted(kind) {
		return nil
	}

	color, ok := embedColors[kind]
	if !ok {
		color = fallbackColor
	}

	body, err := json.Marshal(payload{Embeds: []embed{{
		Description: message,
		Color:       color,
		Timestamp:   n.clock.Now().UTC().Format(time.RFC3339),
	}}})
	if err != nil {
		return fmt.Errorf("encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := n.http.Do(req)
	if err != nil {
		n.logger.Debug().Err(err).Msg("discord notification failed")
		return fmt.Errorf("post webhook: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		n.logger.Debug().Int("status", res.StatusCode).Msg("discord notification rejected")
		return fmt.Errorf("post webhook: HTTP %d", res.StatusCode)
	}

	return nil
}

func (n *Notifier) muted(kind ports.NoticeKind) bool {
	switch kind {
	case ports.NoticeStartup:
		return !n.settings.NotifyOnStartup
	case ports.NoticeError:
		return !n.settings.NotifyOnError
	default:
		return !n.settings.NotifyOnCleanup
	}
}
