package brackets

import "github.com/beachpoint/tournament-system/models"

// GroupConfrontations returns the three doubles pairings for a group seated
// as [p1, p2, p3, p4]:
//
//	(p1, p2) vs (p3, p4)
//	(p1, p3) vs (p2, p4)
//	(p1, p4) vs (p2, p3)
//
// Every player partners each other player once and opposes each twice.
func GroupConfrontations(playerIDs [4]int) [3]models.Confrontation {
	pairings := [3][4]int{
		{playerIDs[0], playerIDs[1], playerIDs[2], playerIDs[3]},
		{playerIDs[0], playerIDs[2], playerIDs[1], playerIDs[3]},
		{playerIDs[0], playerIDs[3], playerIDs[1], playerIDs[2]},
	}

	var confrontations [3]models.Confrontation
	for i, p := range pairings {
		confrontations[i] = models.Confrontation{
			ConfrontationIndex: i,
			PlayerA1ID:         p[0],
			PlayerA2ID:         p[1],
			PlayerB1ID:         p[2],
			PlayerB2ID:         p[3],
		}
	}
	return confrontations
}
