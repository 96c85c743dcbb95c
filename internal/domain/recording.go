package domain

import (
	"sort"
	"time"
)

// Recording is one captured episode on the DVR. ID is extracted from the
// device's command/play URLs and may be empty when extraction failed; such
// recordings still count toward their show group but cannot be deleted.
type Recording struct {
	ID           string
	ShowTitle    string
	EpisodeTitle string
	StartTime    time.Time
}

// ShowGroup collects the recordings sharing one show title. It is rebuilt
// from fresh inventory on every pass and never persisted.
type ShowGroup struct {
	Title      string
	Recordings []Recording
}

func (g ShowGroup) Count() int {
	return len(g.Recordings)
}

// GroupByShow partitions recordings by show title. Groups are ordered by
// title; recordings inside a group keep their inventory order.
func GroupByShow(recordings []Recording) []ShowGroup {
	byTitle := make(map[string][]Recording)
	titles := make([]string, 0)

	for _, rec := range recordings {
		if _, ok := byTitle[rec.ShowTitle]; !ok {
			titles = append(titles, rec.ShowTitle)
		}
		byTitle[rec.ShowTitle] = append(byTitle[rec.ShowTitle], rec)
	}

	sort.Strings(titles)

	groups := make([]ShowGroup, 0, len(titles))
	for _, title := range titles {
		groups = append(groups, ShowGroup{Title: title, Recordings: byTitle[title]})
	}

	return groups
}
