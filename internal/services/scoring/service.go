package scoring

import (
	"sort"
	"time"

	"github.com/snaphunt/snaphunt/internal/model"
)

// Service computes submission scores and ranked results. Scores are an
// additive blend of accuracy and speed: similarity plus seconds remaining in
// the turn at submission time. No further weighting is applied.
type Service struct{}

// New creates a new ScoringService
func New() *Service {
	return &Service{}
}

// SubmissionScore returns the remaining whole seconds at submission and the
// total score. Both inputs are clamped to be non-negative.
func (s *Service) SubmissionScore(similarity int, turnDuration, elapsed time.Duration) (remainingSeconds, total int) {
	if similarity < 0 {
		similarity = 0
	}
	remaining := turnDuration - elapsed
	if remaining < 0 {
		remaining = 0
	}
	remainingSeconds = int(remaining / time.Second)
	return remainingSeconds, similarity + remainingSeconds
}

// RankSubmissions orders submissions by total score descending, in place.
// Equal scores keep their submission order.
func (s *Service) RankSubmissions(submissions []model.Submission) {
	sort.SliceStable(submissions, func(i, j int) bool {
		return submissions[i].TotalScore > submissions[j].TotalScore
	})
}

// RankedPlayer is one leaderboard entry
type RankedPlayer struct {
	Rank        int
	PlayerID    model.PlayerID
	DisplayName string
	Score       int
}

// Leaderboard ranks the room's hunters by cumulative score descending.
// Standard competition ranking: tied scores share a rank, and the next
// distinct score skips past the tie (100, 100, 90 ranks as 1, 1, 3).
// The gamemaster is excluded.
func (s *Service) Leaderboard(room *model.Room) []RankedPlayer {
	hunters := room.Hunters()
	sort.SliceStable(hunters, func(i, j int) bool {
		return hunters[i].Score > hunters[j].Score
	})

	ranked := make([]RankedPlayer, len(hunters))
	for i, m := range hunters {
		rank := i + 1
		if i > 0 && m.Score == hunters[i-1].Score {
			rank = ranked[i-1].Rank
		}
		ranked[i] = RankedPlayer{
			Rank:        rank,
			PlayerID:    m.Player.ID,
			DisplayName: m.Player.DisplayName,
			Score:       m.Score,
		}
	}
	return ranked
}

// RoundResult is one entry of a round's results
type RoundResult struct {
	Rank             int
	PlayerID         model.PlayerID
	DisplayName      string
	Similarity       int
	RemainingSeconds int
	TotalScore       int
}

// RoundResults holds a completed round's outcome: submitters ranked by total
// score, and hunters who never submitted listed separately at score zero.
type RoundResults struct {
	Ranked       []RoundResult
	DidNotSubmit []RoundResult
}

// ResultsForRound builds the results view for a round within its room
func (s *Service) ResultsForRound(room *model.Room, round *model.Round) RoundResults {
	submissions := make([]model.Submission, len(round.Submissions))
	copy(submissions, round.Submissions)
	s.RankSubmissions(submissions)

	results := RoundResults{
		Ranked:       make([]RoundResult, len(submissions)),
		DidNotSubmit: []RoundResult{},
	}

	for i, sub := range submissions {
		rank := i + 1
		if i > 0 && sub.TotalScore == submissions[i-1].TotalScore {
			rank = results.Ranked[i-1].Rank
		}
		entry := RoundResult{
			Rank:             rank,
			PlayerID:         sub.PlayerID,
			Similarity:       sub.Similarity,
			RemainingSeconds: sub.RemainingSeconds,
			TotalScore:       sub.TotalScore,
		}
		if m := room.GetMember(sub.PlayerID); m != nil {
			entry.DisplayName = m.Player.DisplayName
		}
		results.Ranked[i] = entry
	}

	for _, m := range room.Members {
		if m.Player.ID == round.GamemasterID {
			continue
		}
		if round.SubmissionFor(m.Player.ID) != nil {
			continue
		}
		results.DidNotSubmit = append(results.DidNotSubmit, RoundResult{
			PlayerID:    m.Player.ID,
			DisplayName: m.Player.DisplayName,
		})
	}

	return results
}
