// Package hdhr talks to the HDHomeRun DVR engine's HTTP API.
package hdhr

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/bnema/dvrsweep/internal/domain"
	"github.com/bnema/dvrsweep/internal/ports"
)

const requestTimeout = 5 * time.Second

type Client struct {
	base     string
	http     *http.Client
	notifier ports.Notifier
	logger   zerolog.Logger
}

var (
	_ ports.InventorySource  = (*Client)(nil)
	_ ports.RecordingDeleter = (*Client)(nil)
)

// NewClient builds a client for the device at addr (host:port, scheme
// optional). The notifier receives a notice for each series whose episode
// fetch fails; nil disables those notices.
func NewClient(addr string, notifier ports.Notifier, logger zerolog.Logger) *Client {
	base := strings.TrimRight(addr, "/")
	if !strings.Contains(base, "://") {
		base = "http://" + base
	}
	if notifier == nil {
		notifier = ports.NopNotifier{}
	}

	return &Client{
		base:     base,
		http:     &http.Client{Timeout: requestTimeout},
		notifier: notifier,
		logger:   logger,
	}
}

type seriesEntry struct {
	SeriesID    string `json:"SeriesID"`
	Title       string `json:"Title"`
	EpisodesURL string `json:"EpisodesURL"`
}

type episodeEntry struct {
	Title        string `json:"Title"`
	EpisodeTitle string `json:"EpisodeTitle"`
	StartTime    int64  `json:"StartTime"`
	CmdURL       string `json:"CmdURL"`
	PlayURL      string `json:"PlayURL"`
	FileID       string `json:"FileID"`
}

// Recordings flattens the device's two-level inventory (series, then
// episodes per series) into one slice. A series whose episode fetch fails is
// logged and skipped; the rest of the inventory still loads. Recordings
// without an extractable identifier are returned with an empty ID.
func (c *Client) Recordings(ctx context.Context) ([]domain.Recording, error) {
	var series []seriesEntry
	if err := c.getJSON(ctx, c.base+"/recorded_files.json", &series); err != nil {
		return nil, fmt.Errorf("fetch recorded files: %w", err)
	}

	var recordings []domain.Recording
	for _, s := range series {
		if s.EpisodesURL == "" {
			continue
		}

		var episodes []episodeEntry
		if err := c.getJSON(ctx, c.episodesURL(s.EpisodesURL), &episodes); err != nil {
			c.logger.Warn().Err(err).Str("series", s.Title).Msg("failed to load episodes for series")
			if nerr := c.notifier.Send(ctx, ports.NoticeError, fmt.Sprintf("Failed to get episodes for %s: %v", s.Title, err)); nerr != nil {
				c.logger.Debug().Err(nerr).Msg("notification failed")
			}
			continue
		}

		for _, ep := range episodes {
			recordings = append(recordings, c.toRecording(s, ep))
		}
	}

	c.logger.Info().
		Int("episodes", len(recordings)).
		Int("series", len(series)).
		Msg("inventory fetched")

	return recordings, nil
}

// Delete issues the device's delete command for one recording. The API
// accepts POST only.
func (c *Client) Delete(ctx context.Context, rec domain.Recording) error {
	if rec.ID == "" {
		return fmt.Errorf("%s - %s: %w", rec.ShowTitle, rec.EpisodeTitle, domain.ErrMissingIdentifier)
	}

	deleteURL := fmt.Sprintf("%s/recorded/cmd?cmd=delete&id=%s", c.base, url.QueryEscape(rec.ID))
	c.logger.Debug().Str("url", deleteURL).Msg("deleting recording")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, deleteURL, nil)
	if err != nil {
		return fmt.Errorf("build delete request: %w", err)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("delete recording %s: %w", rec.ID, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("delete recording %s: HTTP %d: %w", rec.ID, res.StatusCode, domain.ErrDeleteRejected)
	}

	return nil
}

func (c *Client) toRecording(s seriesEntry, ep episodeEntry) domain.Recording {
	showTitle := ep.Title
	if showTitle == "" {
		showTitle = s.Title
	}

	id := ExtractRecordingID(ep.CmdURL, ep.PlayURL, ep.FileID)
	if id == "" {
		c.logger.Warn().
			Str("show", showTitle).
			Str("episode", ep.EpisodeTitle).
			Msg("could not extract recording identifier")
	}
	if ep.StartTime == 0 {
		c.logger.Warn().
			Str("show", showTitle).
			Str("episode", ep.EpisodeTitle).
			Msg("recording has no start time")
	}

	return domain.Recording{
		ID:           id,
		ShowTitle:    showTitle,
		EpisodeTitle: ep.EpisodeTitle,
		StartTime:    time.Unix(ep.StartTime, 0).UTC(),
	}
}

// episodesURL resolves the EpisodesURL field, which the device reports as an
// absolute URL; relative values are joined onto the client base.
func (c *Client) episodesURL(raw string) string {
	if strings.Contains(raw, "://") {
		return raw
	}
	return c.base + "/" + strings.TrimLeft(raw, "/")
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: HTTP %d", rawURL, res.StatusCode)
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", rawURL, err)
	}

	return nil
}
