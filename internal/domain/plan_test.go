package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(show, episode string, start time.Time) Recording {
	return Recording{
		ID:           show + "/" + episode,
		ShowTitle:    show,
		EpisodeTitle: episode,
		StartTime:    start,
	}
}

func at(hour int) time.Time {
	return time.Date(2026, 8, 1, hour, 0, 0, 0, time.UTC)
}

func TestBuildPlansKeepsNewestRecordings(t *testing.T) {
	recordings := []Recording{
		rec("News", "e3", at(3)),
		rec("News", "e1", at(1)),
		rec("News", "e4", at(4)),
		rec("News", "e2", at(2)),
	}

	plans, err := BuildPlans(recordings, PlanOptions{Policy: RetentionPolicy{DefaultKeep: 2}})
	require.NoError(t, err)
	require.Len(t, plans, 1)

	plan := plans[0]
	assert.Equal(t, "News", plan.ShowTitle)
	assert.Equal(t, 2, plan.KeepCount)

	require.Len(t, plan.Delete, 2)
	assert.Equal(t, "e1", plan.Delete[0].EpisodeTitle)
	assert.Equal(t, "e2", plan.Delete[1].EpisodeTitle)

	require.Len(t, plan.Keep, 2)
	assert.Equal(t, "e3", plan.Keep[0].EpisodeTitle)
	assert.Equal(t, "e4", plan.Keep[1].EpisodeTitle)
}

func TestBuildPlansSatisfiedGroupHasEmptyDeleteSet(t *testing.T) {
	recordings := []Recording{
		rec("News", "e1", at(1)),
		rec("News", "e2", at(2)),
	}

	plans, err := BuildPlans(recordings, PlanOptions{Policy: RetentionPolicy{DefaultKeep: 5}})
	require.NoError(t, err)
	require.Len(t, plans, 1)

	assert.Empty(t, plans[0].Delete)
	assert.Len(t, plans[0].Keep, 2)
}

func TestBuildPlansZeroKeepCountDeletesWholeGroup(t *testing.T) {
	recordings := []Recording{
		rec("Infomercial", "e1", at(1)),
		rec("Infomercial", "e2", at(2)),
		rec("Infomercial", "e3", at(3)),
	}

	plans, err := BuildPlans(recordings, PlanOptions{Policy: RetentionPolicy{DefaultKeep: 0}})
	require.NoError(t, err)
	require.Len(t, plans, 1)

	assert.Len(t, plans[0].Delete, 3)
	assert.Empty(t, plans[0].Keep)
}

func TestBuildPlansStableTieBreakOnEqualStartTimes(t *testing.T) {
	recordings := []Recording{
		rec("News", "first", at(1)),
		rec("News", "second", at(1)),
		rec("News", "newest", at(2)),
	}
	opts := PlanOptions{Policy: RetentionPolicy{DefaultKeep: 1}}

	for range 5 {
		plans, err := BuildPlans(recordings, opts)
		require.NoError(t, err)
		require.Len(t, plans, 1)

		require.Len(t, plans[0].Delete, 2)
		assert.Equal(t, "first", plans[0].Delete[0].EpisodeTitle)
		assert.Equal(t, "second", plans[0].Delete[1].EpisodeTitle)
	}
}

func TestBuildPlansFilterIsCaseInsensitiveSubstring(t *testing.T) {
	recordings := []Recording{
		rec("The Price is Right", "e1", at(1)),
		rec("News", "e1", at(1)),
	}

	plans, err := BuildPlans(recordings, PlanOptions{
		Policy:     RetentionPolicy{DefaultKeep: 5},
		ShowFilter: "price",
	})
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, "The Price is Right", plans[0].ShowTitle)
}

func TestBuildPlansFilterWithoutMatchReturnsError(t *testing.T) {
	recordings := []Recording{
		rec("News", "e1", at(1)),
	}

	_, err := BuildPlans(recordings, PlanOptions{
		Policy:     RetentionPolicy{DefaultKeep: 5},
		ShowFilter: "zzz",
	})
	require.ErrorIs(t, err, ErrNoShowMatch)
	assert.Contains(t, err.Error(), `"zzz"`)
}

func TestBuildPlansRunOverrideAppliesToEveryShow(t *testing.T) {
	recordings := []Recording{
		rec("A", "e1", at(1)),
		rec("A", "e2", at(2)),
		rec("B", "e1", at(1)),
		rec("B", "e2", at(2)),
	}

	plans, err := BuildPlans(recordings, PlanOptions{
		Policy:      RetentionPolicy{DefaultKeep: 5, ShowOverrides: map[string]int{"A": 3}},
		RunOverride: intPtr(1),
	})
	require.NoError(t, err)
	require.Len(t, plans, 2)

	for _, plan := range plans {
		assert.Equal(t, 1, plan.KeepCount)
		assert.Len(t, plan.Delete, 1)
	}
}

func TestBuildPlansOrdersPlansByShowTitle(t *testing.T) {
	recordings := []Recording{
		rec("Zebra", "e1", at(1)),
		rec("Alpha", "e1", at(1)),
		rec("Mango", "e1", at(1)),
	}

	plans, err := BuildPlans(recordings, PlanOptions{Policy: RetentionPolicy{DefaultKeep: 5}})
	require.NoError(t, err)
	require.Len(t, plans, 3)

	assert.Equal(t, "Alpha", plans[0].ShowTitle)
	assert.Equal(t, "Mango", plans[1].ShowTitle)
	assert.Equal(t, "Zebra", plans[2].ShowTitle)
}

func TestBuildPlansJeopardyScenario(t *testing.T) {
	recordings := make([]Recording, 0, 5)
	for i := 1; i <= 5; i++ {
		recordings = append(recordings, rec("Jeopardy!", "e"+string(rune('0'+i)), at(i)))
	}

	plans, err := BuildPlans(recordings, PlanOptions{
		Policy: RetentionPolicy{
			DefaultKeep:   5,
			ShowOverrides: map[string]int{"Jeopardy!": 2},
		},
	})
	require.NoError(t, err)
	require.Len(t, plans, 1)

	plan := plans[0]
	require.Len(t, plan.Delete, 3)
	assert.Equal(t, []string{"e1", "e2", "e3"}, episodeTitles(plan.Delete))
	assert.Equal(t, []string{"e4", "e5"}, episodeTitles(plan.Keep))
}

func episodeTitles(recordings []Recording) []string {
	titles := make([]string, 0, len(recordings))
	for _, r := range recordings {
		titles = append(titles, r.EpisodeTitle)
	}
	return titles
}

func TestGroupByShowSortsGroupsAndPreservesInventoryOrder(t *testing.T) {
	recordings := []Recording{
		rec("B", "b1", at(2)),
		rec("A", "a1", at(3)),
		rec("B", "b2", at(1)),
	}

	groups := GroupByShow(recordings)
	require.Len(t, groups, 2)

	assert.Equal(t, "A", groups[0].Title)
	assert.Equal(t, 1, groups[0].Count())

	assert.Equal(t, "B", groups[1].Title)
	assert.Equal(t, []string{"b1", "b2"}, episodeTitles(groups[1].Recordings))
}
