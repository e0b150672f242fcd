package hint

import (
	"time"

	"github.com/snaphunt/snaphunt/internal/model"
)

// Scheduler computes lazy hint reveals. There is no background timer: the
// number of visible hints is derived from elapsed wall-clock time whenever a
// caller reads or mutates round state, and persisted only when it increases.
type Scheduler struct{}

// NewScheduler creates a new hint Scheduler
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Due returns how many hints should be visible after the given elapsed time.
// The first hint is visible immediately at elapsed zero; one more becomes due
// per interval, clamped to the total. Zero totals yield zero.
func (s *Scheduler) Due(elapsed, interval time.Duration, total int) int {
	if total <= 0 {
		return 0
	}
	if interval <= 0 {
		return total
	}
	due := int(elapsed/interval) + 1
	if due > total {
		due = total
	}
	return due
}

// Apply brings the round's reveal state up to what now implies and returns
// whether anything changed. Reveal count never decreases, so concurrent or
// duplicate reads applying the same instant are no-ops after the first.
// Only a hunter turn with a reference photo reveals hints.
func (s *Scheduler) Apply(round *model.Round, interval time.Duration, now time.Time) bool {
	if round.Status != model.RoundStatusHunterTurn || round.ReferencePhotoID == "" {
		return false
	}

	due := s.Due(round.Elapsed(now), interval, len(round.Hints))
	if due <= round.RevealedHints {
		return false
	}

	for i := 0; i < due; i++ {
		round.Hints[i].Revealed = true
	}
	round.RevealedHints = due

	if due < len(round.Hints) {
		round.NextHintAt = round.TurnStartedAt.Add(time.Duration(due) * interval)
	} else {
		round.NextHintAt = time.Time{}
	}
	return true
}
