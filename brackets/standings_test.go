package brackets

import (
	"testing"

	"github.com/beachpoint/tournament-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func groupOf(ids ...int) []*models.Participation {
	group := make([]*models.Participation, len(ids))
	for i, id := range ids {
		group[i] = &models.Participation{PlayerID: id}
	}
	return group
}

func scored(fixtures [3]models.Confrontation, scores [3][2]int) []models.Confrontation {
	out := make([]models.Confrontation, 3)
	for i := range fixtures {
		out[i] = fixtures[i]
		out[i].ScoreA = intPtr(scores[i][0])
		out[i].ScoreB = intPtr(scores[i][1])
	}
	return out
}

// Players seated [A,B,C,D] with scores 6-2, 6-3, 6-1: A wins all three,
// then D, B, C separate on net points.
func TestComputeStandingsScenario(t *testing.T) {
	group := groupOf(1, 2, 3, 4)
	confrontations := scored(GroupConfrontations([4]int{1, 2, 3, 4}), [3][2]int{{6, 2}, {6, 3}, {6, 1}})

	ComputeStandings(group, confrontations)

	order := []int{group[0].PlayerID, group[1].PlayerID, group[2].PlayerID, group[3].PlayerID}
	assert.Equal(t, []int{1, 4, 2, 3}, order)

	a := group[0]
	require.Equal(t, 3, a.Wins)
	assert.Equal(t, 18, a.PointsFor)
	assert.Equal(t, 6, a.PointsAgainst)
	assert.Equal(t, 12, a.Net)
	assert.Equal(t, 1, a.GroupPosition)

	d := group[1]
	assert.Equal(t, 1, d.Wins)
	assert.Equal(t, -2, d.Net)
	assert.Equal(t, 2, d.GroupPosition)

	b := group[2]
	assert.Equal(t, 1, b.Wins)
	assert.Equal(t, -4, b.Net)

	c := group[3]
	assert.Equal(t, 1, c.Wins)
	assert.Equal(t, 9, c.PointsFor)
	assert.Equal(t, 15, c.PointsAgainst)
	assert.Equal(t, -6, c.Net)
	assert.Equal(t, 4, c.GroupPosition)
}

func TestComputeStandingsIdempotent(t *testing.T) {
	group := groupOf(1, 2, 3, 4)
	confrontations := scored(GroupConfrontations([4]int{1, 2, 3, 4}), [3][2]int{{7, 5}, {4, 6}, {6, 3}})

	ComputeStandings(group, confrontations)
	first := make([]int, 4)
	for i, p := range group {
		first[i] = p.PlayerID
	}

	ComputeStandings(group, confrontations)
	second := make([]int, 4)
	for i, p := range group {
		second[i] = p.PlayerID
	}
	assert.Equal(t, first, second)
}

// Equal records keep their seated order across recomputation.
func TestComputeStandingsStableOnTies(t *testing.T) {
	group := groupOf(1, 2, 3, 4)
	// 6-4, 4-6, 6-4: players 1, 2 and 4 all finish on 2 wins and +2 net.
	confrontations := scored(GroupConfrontations([4]int{1, 2, 3, 4}), [3][2]int{{6, 4}, {4, 6}, {6, 4}})

	ComputeStandings(group, confrontations)
	order := []int{group[0].PlayerID, group[1].PlayerID, group[2].PlayerID, group[3].PlayerID}

	for i := 0; i < 5; i++ {
		ComputeStandings(group, confrontations)
	}
	again := []int{group[0].PlayerID, group[1].PlayerID, group[2].PlayerID, group[3].PlayerID}
	assert.Equal(t, order, again)
}

func TestComputeStandingsPendingScoresIgnored(t *testing.T) {
	group := groupOf(1, 2, 3, 4)
	fixtures := GroupConfrontations([4]int{1, 2, 3, 4})
	confrontations := []models.Confrontation{fixtures[0], fixtures[1], fixtures[2]}
	confrontations[0].ScoreA = intPtr(6)
	confrontations[0].ScoreB = intPtr(2)

	ComputeStandings(group, confrontations)

	assert.Equal(t, 1, group[0].Wins)
	assert.Equal(t, 6, group[0].PointsFor)
	// Players of the pending confrontations have no record beyond the first.
	total := 0
	for _, p := range group {
		total += p.Wins
	}
	assert.Equal(t, 2, total)
}
