package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/bnema/dvrsweep/internal/domain"
	"github.com/bnema/dvrsweep/internal/ports"
)

// notifyEpisodeLimit caps how many deleted episode titles a per-show notice
// lists before collapsing the rest into a count.
const notifyEpisodeLimit = 5

// CleanupService runs fetch-plan-execute passes against the DVR. It holds
// no state between passes; every pass starts from fresh inventory.
type CleanupService struct {
	inventory ports.InventorySource
	deleter   ports.RecordingDeleter
	notifier  ports.Notifier
	policy    domain.RetentionPolicy
	logger    zerolog.Logger
}

// PassOptions are the per-invocation inputs: an optional run-wide keep-count
// override and an optional case-insensitive show filter.
type PassOptions struct {
	RunOverride *int
	ShowFilter  string
}

func NewCleanupService(
	inventory ports.InventorySource,
	deleter ports.RecordingDeleter,
	notifier ports.Notifier,
	policy domain.RetentionPolicy,
	logger zerolog.Logger,
) *CleanupService {
	if notifier == nil {
		notifier = ports.NopNotifier{}
	}

	return &CleanupService{
		inventory: inventory,
		deleter:   deleter,
		notifier:  notifier,
		policy:    policy,
		logger:    logger,
	}
}

// Shows fetches the inventory and returns it grouped by show title, for
// listing.
func (s *CleanupService) Shows(ctx context.Context) ([]domain.ShowGroup, error) {
	recordings, err := s.inventory.Recordings(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch recordings: %w", err)
	}

	return domain.GroupByShow(recordings), nil
}

// RunPass executes one complete cleanup pass. A fetch failure aborts the
// pass; a failure local to one recording or one show never does. Failed
// deletions are not retried within the pass — the recording is still in
// inventory on the next one.
func (s *CleanupService) RunPass(ctx context.Context, opts PassOptions) (domain.RunSummary, error) {
	recordings, err := s.inventory.Recordings(ctx)
	if err != nil {
		s.notify(ctx, ports.NoticeError, fmt.Sprintf("Failed to get recordings from DVR: %v", err))
		return domain.RunSummary{}, fmt.Errorf("fetch recordings: %w", err)
	}

	if len(recordings) == 0 {
		s.logger.Info().Msg("no recordings found")
		return domain.RunSummary{}, nil
	}

	plans, err := domain.BuildPlans(recordings, domain.PlanOptions{
		Policy:      s.policy,
		RunOverride: opts.RunOverride,
		ShowFilter:  opts.ShowFilter,
	})
	if err != nil {
		s.notify(ctx, ports.NoticeError, fmt.Sprintf("No show found matching %q", opts.ShowFilter))
		return domain.RunSummary{}, err
	}

	if opts.ShowFilter != "" && len(plans) > 1 {
		titles := make([]string, 0, len(plans))
		for _, plan := range plans {
			titles = append(titles, plan.ShowTitle)
		}
		s.logger.Info().
			Str("filter", opts.ShowFilter).
			Strs("shows", titles).
			Msg("filter matched multiple shows")
	}

	var summary domain.RunSummary
	showsCleaned := 0

	for _, plan := range plans {
		summary.Considered += len(plan.Delete) + len(plan.Keep)

		if len(plan.Delete) == 0 {
			s.logger.Debug().
				Str("show", plan.ShowTitle).
				Int("recordings", len(plan.Keep)).
				Int("keep", plan.KeepCount).
				Msg("no cleanup needed")
			continue
		}

		s.logger.Info().
			Str("show", plan.ShowTitle).
			Int("recordings", len(plan.Delete)+len(plan.Keep)).
			Int("keep", plan.KeepCount).
			Msg("trimming show")

		deleted := s.executePlan(ctx, plan, &summary)
		if len(deleted) > 0 {
			showsCleaned++
			s.notify(ctx, ports.NoticeSuccess, showNotice(plan, deleted))
		}
	}

	if summary.Succeeded > 0 {
		s.notify(ctx, ports.NoticeInfo, fmt.Sprintf(
			"Cleanup complete: processed %d show(s), deleted %d recording(s)",
			showsCleaned, summary.Succeeded,
		))
	}

	return summary, nil
}

// executePlan attempts every deletion in the plan's order. One failure never
// blocks siblings; each item is tallied independently. Returns the episode
// titles that were actually deleted.
func (s *CleanupService) executePlan(ctx context.Context, plan domain.CleanupPlan, summary *domain.RunSummary) []string {
	var deleted []string

	for _, rec := range plan.Delete {
		if ctx.Err() != nil {
			break
		}

		summary.Attempted++

		if err := s.deleter.Delete(ctx, rec); err != nil {
			summary.Failed++
			s.logger.Warn().Err(err).
				Str("show", rec.ShowTitle).
				Str("episode", rec.EpisodeTitle).
				Str("id", rec.ID).
				Msg("failed to delete recording")
			continue
		}

		summary.Succeeded++
		deleted = append(deleted, rec.EpisodeTitle)
		s.logger.Info().
			Str("show", rec.ShowTitle).
			Str("episode", rec.EpisodeTitle).
			Str("id", rec.ID).
			Msg("deleted recording")
	}

	s.logger.Info().
		Str("show", plan.ShowTitle).
		Int("deleted", len(deleted)).
		Int("planned", len(plan.Delete)).
		Msg("show cleanup finished")

	return deleted
}

func (s *CleanupService) notify(ctx context.Context, kind ports.NoticeKind, message string) {
	if err := s.notifier.Send(ctx, kind, message); err != nil {
		s.logger.Debug().Err(err).Msg("notification failed")
	}
}

func showNotice(plan domain.CleanupPlan, deleted []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\nDeleted %d of %d recordings (keeping %d)\n",
		plan.ShowTitle, len(deleted), len(plan.Delete), plan.KeepCount)

	for i, episode := range deleted {
		if i == notifyEpisodeLimit {
			fmt.Fprintf(&b, "...and %d more\n", len(deleted)-notifyEpisodeLimit)
			break
		}
		fmt.Fprintf(&b, "- %s\n", episode)
	}

	return strings.TrimRight(b.String(), "\n")
}
