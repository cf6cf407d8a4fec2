package brackets

import (
	"fmt"
	"math/rand"

	"github.com/beachpoint/tournament-system/models"
)

// ComposeGroups splits the player names into groups of four for the given
// mode. Seeds, at most one per group, are placed into distinct groups in
// seed-list order; the remaining names are shuffled and fill the groups in
// order. The shuffle is the draw, so it is the only non-determinism here.
func ComposeGroups(players, seeds []string, mode models.TournamentMode) ([][]string, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(mode))
	}
	if len(players) != mode.Players() {
		return nil, fmt.Errorf("%w: got %d, mode %s expects %d",
			ErrPlayerCountMismatch, len(players), mode, mode.Players())
	}

	groupCount := mode.Groups()
	if len(seeds) > groupCount {
		return nil, fmt.Errorf("%w: %d seeds for %d groups",
			ErrSeedCountExceedsGroups, len(seeds), groupCount)
	}

	names := make(map[string]bool, len(players))
	for _, p := range players {
		names[p] = true
	}
	seeded := make(map[string]bool, len(seeds))
	for _, s := range seeds {
		if !names[s] {
			return nil, fmt.Errorf("%w: %q", ErrSeedNotInPlayers, s)
		}
		if seeded[s] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSeed, s)
		}
		seeded[s] = true
	}

	groups := make([][]string, groupCount)
	for i := range groups {
		groups[i] = make([]string, 0, 4)
	}
	for i, s := range seeds {
		groups[i] = append(groups[i], s)
	}

	pool := make([]string, 0, len(players))
	for _, p := range players {
		if !seeded[p] {
			pool = append(pool, p)
		}
	}
	rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	next := 0
	for i := range groups {
		for len(groups[i]) < 4 {
			groups[i] = append(groups[i], pool[next])
			next++
		}
	}
	return groups, nil
}
