package brackets

import (
	"sort"

	"github.com/beachpoint/tournament-system/models"
)

// ComputeStandings recalculates a group's records from its decided
// confrontations and orders the group in place. Records are reset first, so
// the computation is idempotent over the stored scores. The sort is stable
// by (wins desc, net desc): participations tied on both keys keep their
// seated order, which keeps positions stable across recomputation.
// Positions are written 1-based.
func ComputeStandings(group []*models.Participation, confrontations []models.Confrontation) {
	for _, p := range group {
		p.Wins = 0
		p.PointsFor = 0
		p.PointsAgainst = 0
		p.Net = 0
	}

	for _, c := range confrontations {
		if c.ScoreA == nil || c.ScoreB == nil {
			continue
		}
		scoreA, scoreB := *c.ScoreA, *c.ScoreB
		for _, p := range group {
			forPts, againstPts := scoreA, scoreB
			switch c.TeamOf(p.PlayerID) {
			case 'B':
				forPts, againstPts = scoreB, scoreA
			case 0:
				continue
			}
			p.PointsFor += forPts
			p.PointsAgainst += againstPts
			if forPts > againstPts {
				p.Wins++
			}
		}
	}

	for _, p := range group {
		p.Net = p.PointsFor - p.PointsAgainst
	}

	sort.SliceStable(group, func(i, j int) bool {
		return betterRecord(group[i], group[j])
	})
	for i, p := range group {
		p.GroupPosition = i + 1
	}
}

// betterRecord is the comparator shared by group standings and the
// cross-group ranking of firsts and seconds: wins descending, then net
// descending.
func betterRecord(a, b *models.Participation) bool {
	if a.Wins != b.Wins {
		return a.Wins > b.Wins
	}
	return a.Net > b.Net
}

// RankAcrossGroups stable-sorts participations of the same group position
// (all firsts, or all seconds) into a cross-group ranking using the
// standings comparator. The input slice is not modified.
func RankAcrossGroups(participations []*models.Participation) []*models.Participation {
	ranked := make([]*models.Participation, len(participations))
	copy(ranked, participations)
	sort.SliceStable(ranked, func(i, j int) bool {
		return betterRecord(ranked[i], ranked[j])
	})
	return ranked
}
