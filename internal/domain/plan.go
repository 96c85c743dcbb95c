package domain

import (
	"fmt"
	"slices"
	"strings"
)

// CleanupPlan is the deletion decision for one show group: the oldest
// recordings beyond the resolved keep-count, in deletion order (oldest
// first), plus the retained remainder. A satisfied group still yields a
// plan with an empty Delete set.
type CleanupPlan struct {
	ShowTitle string
	KeepCount int
	Delete    []Recording
	Keep      []Recording
}

// RunSummary aggregates one fetch-plan-execute pass.
type RunSummary struct {
	Considered int
	Attempted  int
	Succeeded  int
	Failed     int
}

// PlanOptions carries the run-level inputs to the planner. RunOverride, when
// non-nil, replaces every resolved keep-count; ShowFilter restricts planning
// to shows whose title contains it case-insensitively.
type PlanOptions struct {
	Policy      RetentionPolicy
	RunOverride *int
	ShowFilter  string
}

// BuildPlans partitions recordings into show groups, applies the retention
// policy, and returns one plan per retained group, ordered by show title.
//
// Within a group, recordings are sorted by StartTime ascending; recordings
// with equal StartTime keep their inventory order, so repeated runs over
// unchanged data select the same deletion set. Returns ErrNoShowMatch when
// a non-empty filter matches no group.
func BuildPlans(recordings []Recording, opts PlanOptions) ([]CleanupPlan, error) {
	groups := GroupByShow(recordings)

	if opts.ShowFilter != "" {
		filter := strings.ToLower(opts.ShowFilter)
		matched := groups[:0:0]
		for _, group := range groups {
			if strings.Contains(strings.ToLower(group.Title), filter) {
				matched = append(matched, group)
			}
		}
		if len(matched) == 0 {
			return nil, fmt.Errorf("%q: %w", opts.ShowFilter, ErrNoShowMatch)
		}
		groups = matched
	}

	plans := make([]CleanupPlan, 0, len(groups))
	for _, group := range groups {
		keepCount := opts.Policy.Resolve(group.Title, opts.RunOverride)

		ordered := slices.Clone(group.Recordings)
		slices.SortStableFunc(ordered, func(a, b Recording) int {
			return a.StartTime.Compare(b.StartTime)
		})

		cut := len(ordered) - keepCount
		if cut < 0 {
			cut = 0
		}

		plans = append(plans, CleanupPlan{
			ShowTitle: group.Title,
			KeepCount: keepCount,
			Delete:    ordered[:cut],
			Keep:      ordered[cut:],
		})
	}

	return plans, nil
}
