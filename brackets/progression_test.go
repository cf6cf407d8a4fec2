package brackets

import (
	"fmt"
	"testing"

	"github.com/beachpoint/tournament-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rankedList(prefix string, base, n int) []*models.Participation {
	list := make([]*models.Participation, n)
	for i := range list {
		list[i] = &models.Participation{
			PlayerID:   base + i,
			PlayerName: fmt.Sprintf("%s%d", prefix, i),
		}
	}
	return list
}

func recordedGame(phase models.Phase, game, scoreA, scoreB int) models.BracketMatch {
	return models.BracketMatch{
		Phase:      phase,
		GameNumber: game,
		ScoreA:     intPtr(scoreA),
		ScoreB:     intPtr(scoreB),
	}
}

func TestBuildBracketShapes(t *testing.T) {
	shapes := map[models.TournamentMode][3]int{
		models.Mode16: {0, 2, 1},
		models.Mode20: {1, 2, 1},
		models.Mode24: {2, 2, 1},
		models.Mode28: {3, 2, 1},
		models.Mode32: {4, 2, 1},
	}
	for mode, want := range shapes {
		t.Run(mode.String(), func(t *testing.T) {
			firsts := rankedList("first", 100, mode.Groups())
			seconds := rankedList("second", 200, mode.Groups())

			bracket, err := BuildBracket(mode, firsts, seconds, nil)
			require.NoError(t, err)

			counts := map[models.Phase]int{}
			for _, m := range bracket.Matches {
				counts[m.Phase]++
			}
			assert.Equal(t, want[0], counts[models.PhaseQuarterfinal])
			assert.Equal(t, want[1], counts[models.PhaseSemifinal])
			assert.Equal(t, want[2], counts[models.PhaseFinal])
		})
	}
}

func TestBuildBracketInsufficientPlayers(t *testing.T) {
	firsts := rankedList("first", 100, 4)
	seconds := rankedList("second", 200, 4)

	_, err := BuildBracket(models.Mode20, firsts, seconds, nil)
	assert.ErrorIs(t, err, ErrInsufficientPlayers)
}

func TestBuildBracketSeeding28(t *testing.T) {
	firsts := rankedList("first", 100, 7)
	seconds := rankedList("second", 200, 7)

	bracket, err := BuildBracket(models.Mode28, firsts, seconds, nil)
	require.NoError(t, err)

	g1, err := bracket.Match(1)
	require.NoError(t, err)
	require.NotNil(t, g1.TeamA)
	require.NotNil(t, g1.TeamB)
	assert.Equal(t, []int{106, 200}, []int{g1.TeamA[0].PlayerID, g1.TeamA[1].PlayerID})
	assert.Equal(t, []int{201, 202}, []int{g1.TeamB[0].PlayerID, g1.TeamB[1].PlayerID})

	g2, err := bracket.Match(2)
	require.NoError(t, err)
	assert.Equal(t, []int{102, 103}, []int{g2.TeamA[0].PlayerID, g2.TeamA[1].PlayerID})
	assert.Equal(t, []int{205, 206}, []int{g2.TeamB[0].PlayerID, g2.TeamB[1].PlayerID})

	g3, err := bracket.Match(3)
	require.NoError(t, err)
	assert.Equal(t, []int{104, 105}, []int{g3.TeamA[0].PlayerID, g3.TeamA[1].PlayerID})
	assert.Equal(t, []int{203, 204}, []int{g3.TeamB[0].PlayerID, g3.TeamB[1].PlayerID})
}

// Re-running the seeder on identical rankings reproduces identical pairings.
func TestBuildBracketDeterministic(t *testing.T) {
	firsts := rankedList("first", 100, 8)
	seconds := rankedList("second", 200, 8)

	a, err := BuildBracket(models.Mode32, firsts, seconds, nil)
	require.NoError(t, err)
	b, err := BuildBracket(models.Mode32, firsts, seconds, nil)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestBracketStageVisibility(t *testing.T) {
	firsts := rankedList("first", 100, 5)
	seconds := rankedList("second", 200, 5)

	// No quarterfinal result: both semifinals stay hidden, even game 3
	// whose teams come straight from the rankings.
	bracket, err := BuildBracket(models.Mode20, firsts, seconds, nil)
	require.NoError(t, err)
	for _, game := range []int{2, 3, 4} {
		m, err := bracket.Match(game)
		require.NoError(t, err)
		assert.Nil(t, m.TeamA, "game %d should be hidden", game)
		assert.Nil(t, m.TeamB, "game %d should be hidden", game)
	}
	assert.False(t, bracket.StageReady(models.PhaseSemifinal))

	// Quarterfinal decided: semifinals appear, the final stays hidden.
	recorded := []models.BracketMatch{recordedGame(models.PhaseQuarterfinal, 1, 6, 3)}
	bracket, err = BuildBracket(models.Mode20, firsts, seconds, recorded)
	require.NoError(t, err)

	g2, _ := bracket.Match(2)
	require.NotNil(t, g2.TeamB)
	// Team A of the quarterfinal won, so its pair advances.
	assert.Equal(t, []int{201, 202}, []int{g2.TeamB[0].PlayerID, g2.TeamB[1].PlayerID})

	g4, _ := bracket.Match(4)
	assert.Nil(t, g4.TeamA)

	// Both semifinals decided: the final pairing derives from the winners.
	recorded = append(recorded,
		recordedGame(models.PhaseSemifinal, 2, 2, 6),
		recordedGame(models.PhaseSemifinal, 3, 6, 4),
	)
	bracket, err = BuildBracket(models.Mode20, firsts, seconds, recorded)
	require.NoError(t, err)

	final := bracket.Final()
	require.NotNil(t, final)
	require.NotNil(t, final.TeamA)
	require.NotNil(t, final.TeamB)
	assert.Equal(t, []int{201, 202}, []int{final.TeamA[0].PlayerID, final.TeamA[1].PlayerID})
	assert.Equal(t, []int{102, 103}, []int{final.TeamB[0].PlayerID, final.TeamB[1].PlayerID})
}

func TestMatchDecided(t *testing.T) {
	m := &Match{ScoreA: intPtr(5), ScoreB: intPtr(5)}
	assert.False(t, m.Decided())
	m.ScoreB = intPtr(3)
	assert.True(t, m.Decided())
	assert.False(t, (&Match{}).Decided())
}

func TestSeatForPhantom(t *testing.T) {
	list := rankedList("first", 100, 2)
	seat := seatFor(list, 5)
	assert.True(t, seat.Phantom)
	assert.Equal(t, PhantomName, seat.Name)
	assert.Zero(t, seat.PlayerID)

	real := seatFor(list, 1)
	assert.False(t, real.Phantom)
	assert.Equal(t, 101, real.PlayerID)
}

// 28 players end to end: 7 groups play out, the winners and runners-up rank
// across groups, and the bracket runs through to a champion.
func TestTwentyEightPlayerRun(t *testing.T) {
	mode := models.Mode28
	players := playerNames(mode.Players())
	groups, err := ComposeGroups(players, nil, mode)
	require.NoError(t, err)
	require.Len(t, groups, 7)

	var firsts, seconds []*models.Participation
	id := 1
	for groupIndex, group := range groups {
		parts := make([]*models.Participation, 4)
		ids := [4]int{}
		for seat, name := range group {
			parts[seat] = &models.Participation{PlayerID: id, PlayerName: name, GroupIndex: groupIndex}
			ids[seat] = id
			id++
		}
		// Seat order decides every match: scores 6-(seat diff) keep it simple.
		confrontations := scored(GroupConfrontations(ids), [3][2]int{{6, 2}, {6, 3}, {6, 1}})
		ComputeStandings(parts, confrontations)

		assert.Equal(t, 1, parts[0].GroupPosition)
		firsts = append(firsts, parts[0])
		seconds = append(seconds, parts[1])
	}

	firsts = RankAcrossGroups(firsts)
	seconds = RankAcrossGroups(seconds)

	bracket, err := BuildBracket(mode, firsts, seconds, nil)
	require.NoError(t, err)
	require.Len(t, bracket.Matches, 6)

	// Decide every game in order; team A always wins.
	var recorded []models.BracketMatch
	for _, game := range []int{1, 2, 3, 4, 5, 6} {
		m, err := bracket.Match(game)
		require.NoError(t, err)
		recorded = append(recorded, recordedGame(m.Phase, game, 6, 4))
		bracket, err = BuildBracket(mode, firsts, seconds, recorded)
		require.NoError(t, err)
	}

	final := bracket.Final()
	require.True(t, final.Decided())
	winner := final.Winner()
	require.NotNil(t, winner)

	points, err := PhasePoints(bracket)
	require.NoError(t, err)
	assert.Equal(t, PointsChampion, points[winner[0].PlayerID])
	assert.Equal(t, PointsChampion, points[winner[1].PlayerID])
}
