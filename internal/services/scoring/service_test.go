package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/snaphunt/snaphunt/internal/model"
)

func TestSubmissionScore(t *testing.T) {
	s := New()

	remaining, total := s.SubmissionScore(80, 60*time.Second, 45*time.Second)
	assert.Equal(t, 15, remaining)
	assert.Equal(t, 95, total)
}

func TestSubmissionScoreExpiredTurn(t *testing.T) {
	s := New()

	// Elapsed past the turn duration clamps remaining to zero
	remaining, total := s.SubmissionScore(70, 60*time.Second, 90*time.Second)
	assert.Equal(t, 0, remaining)
	assert.Equal(t, 70, total)
}

func TestSubmissionScoreNegativeSimilarityClamped(t *testing.T) {
	s := New()

	remaining, total := s.SubmissionScore(-5, 60*time.Second, 30*time.Second)
	assert.Equal(t, 30, remaining)
	assert.Equal(t, 30, total)
}

func roomWithScores(scores map[string]int) *model.Room {
	room := &model.Room{HostID: "gm"}
	room.Members = append(room.Members, model.RoomMember{
		Player: model.Player{ID: "gm", DisplayName: "GM"},
		Role:   model.RoleGamemaster,
		Score:  999,
	})
	// Deterministic member order
	for _, id := range []string{"a", "b", "c", "d"} {
		score, ok := scores[id]
		if !ok {
			continue
		}
		room.Members = append(room.Members, model.RoomMember{
			Player: model.Player{ID: model.PlayerID(id), DisplayName: id},
			Role:   model.RoleHunter,
			Score:  score,
		})
	}
	return room
}

func TestLeaderboardCompetitionRanking(t *testing.T) {
	s := New()
	room := roomWithScores(map[string]int{"a": 100, "b": 100, "c": 90, "d": 80})

	ranked := s.Leaderboard(room)
	assert.Len(t, ranked, 4)

	assert.Equal(t, []int{1, 1, 3, 4}, []int{ranked[0].Rank, ranked[1].Rank, ranked[2].Rank, ranked[3].Rank})
	assert.Equal(t, 100, ranked[0].Score)
	assert.Equal(t, 90, ranked[2].Score)
}

func TestLeaderboardExcludesGamemaster(t *testing.T) {
	s := New()
	room := roomWithScores(map[string]int{"a": 10})

	ranked := s.Leaderboard(room)
	assert.Len(t, ranked, 1)
	assert.Equal(t, model.PlayerID("a"), ranked[0].PlayerID)
}

func TestResultsForRound(t *testing.T) {
	s := New()
	room := roomWithScores(map[string]int{"a": 0, "b": 0, "c": 0})

	round := &model.Round{
		GamemasterID: "gm",
		Submissions: []model.Submission{
			{PlayerID: "b", Similarity: 70, RemainingSeconds: 10, TotalScore: 80},
			{PlayerID: "a", Similarity: 90, RemainingSeconds: 50, TotalScore: 140},
		},
	}

	results := s.ResultsForRound(room, round)

	assert.Len(t, results.Ranked, 2)
	assert.Equal(t, model.PlayerID("a"), results.Ranked[0].PlayerID)
	assert.Equal(t, 1, results.Ranked[0].Rank)
	assert.Equal(t, model.PlayerID("b"), results.Ranked[1].PlayerID)
	assert.Equal(t, 2, results.Ranked[1].Rank)

	// Hunter c never submitted; listed separately at zero
	assert.Len(t, results.DidNotSubmit, 1)
	assert.Equal(t, model.PlayerID("c"), results.DidNotSubmit[0].PlayerID)
	assert.Equal(t, 0, results.DidNotSubmit[0].TotalScore)
}

func TestResultsForRoundTiedSubmissions(t *testing.T) {
	s := New()
	room := roomWithScores(map[string]int{"a": 0, "b": 0, "c": 0})

	round := &model.Round{
		GamemasterID: "gm",
		Submissions: []model.Submission{
			{PlayerID: "a", TotalScore: 80},
			{PlayerID: "b", TotalScore: 80},
			{PlayerID: "c", TotalScore: 60},
		},
	}

	results := s.ResultsForRound(room, round)
	assert.Equal(t, 1, results.Ranked[0].Rank)
	assert.Equal(t, 1, results.Ranked[1].Rank)
	assert.Equal(t, 3, results.Ranked[2].Rank)
}
