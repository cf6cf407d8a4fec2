package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTournamentModes(t *testing.T) {
	cases := []struct {
		mode    TournamentMode
		players int
		groups  int
	}{
		{Mode16, 16, 4},
		{Mode20, 20, 5},
		{Mode24, 24, 6},
		{Mode28, 28, 7},
		{Mode32, 32, 8},
	}
	for _, tc := range cases {
		assert.True(t, tc.mode.Valid())
		assert.Equal(t, tc.players, tc.mode.Players())
		assert.Equal(t, tc.groups, tc.mode.Groups())

		parsed, err := ParseTournamentMode(tc.players)
		require.NoError(t, err)
		assert.Equal(t, tc.mode, parsed)
	}
}

func TestParseTournamentModeRejectsUnknownCounts(t *testing.T) {
	for _, players := range []int{0, 4, 12, 18, 36} {
		_, err := ParseTournamentMode(players)
		assert.Error(t, err, "player count %d", players)
	}
	assert.False(t, TournamentMode(12).Valid())
}

func TestConfrontationDecided(t *testing.T) {
	six, five := 6, 5
	c := Confrontation{}
	assert.False(t, c.Decided())
	assert.True(t, c.Pending())

	c.ScoreA, c.ScoreB = &six, &five
	assert.True(t, c.Decided())
	assert.False(t, c.Pending())

	c.ScoreB = &six
	assert.False(t, c.Decided(), "equal scores never count as decided")
}

func TestBracketMatchWinners(t *testing.T) {
	seven, five := 7, 5
	m := BracketMatch{
		PlayerA1ID: 1, PlayerA2ID: 2,
		PlayerB1ID: 3, PlayerB2ID: 4,
		ScoreA: &seven, ScoreB: &five,
	}
	require.True(t, m.Decided())
	assert.Equal(t, [2]int{1, 2}, m.WinnerIDs())
	assert.Equal(t, [2]int{3, 4}, m.LoserIDs())

	m.ScoreA, m.ScoreB = &five, &seven
	assert.Equal(t, [2]int{3, 4}, m.WinnerIDs())
}
