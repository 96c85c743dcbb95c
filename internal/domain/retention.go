package domain

import "fmt"

// DefaultKeepCount is the last-resort keep-count when no configuration is
// available at all.
const DefaultKeepCount = 5

// RetentionPolicy holds the configured retention rules for one run.
// DefaultKeep applies to every show without an exact-match override; a value
// of 0 is a deliberate "delete everything" policy, not an error.
type RetentionPolicy struct {
	DefaultKeep   int
	ShowOverrides map[string]int
}

// Resolve returns the keep-count for a show. Precedence, highest first:
// the run-wide override, an exact-match (case-sensitive) show override,
// then DefaultKeep.
func (p RetentionPolicy) Resolve(showTitle string, runOverride *int) int {
	if runOverride != nil {
		return *runOverride
	}
	if keep, ok := p.ShowOverrides[showTitle]; ok {
		return keep
	}
	return p.DefaultKeep
}

// Validate rejects negative retention values. Called at configuration load
// time so Resolve never sees an invalid policy.
func (p RetentionPolicy) Validate() error {
	if p.DefaultKeep < 0 {
		return fmt.Errorf("default_episodes %d: %w", p.DefaultKeep, ErrInvalidRetention)
	}
	for show, keep := range p.ShowOverrides {
		if keep < 0 {
			return fmt.Errorf("show_overrides[%q] %d: %w", show, keep, ErrInvalidRetention)
		}
	}
	return nil
}
