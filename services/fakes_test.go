package services

import (
	"context"
	"strings"

	"github.com/beachpoint/tournament-system/models"
	"github.com/beachpoint/tournament-system/repositories"
)

type fakeTournamentRepo struct {
	tournaments map[int]*models.Tournament
	nextID      int
}

func newFakeTournamentRepo() *fakeTournamentRepo {
	return &fakeTournamentRepo{tournaments: map[int]*models.Tournament{}, nextID: 1}
}

func (f *fakeTournamentRepo) Create(_ context.Context, _ repositories.SQLExecutor, t *models.Tournament) error {
	for _, existing := range f.tournaments {
		if existing.Name == t.Name {
			return repositories.ErrTournamentNameConflict
		}
	}
	t.ID = f.nextID
	f.nextID++
	copied := *t
	f.tournaments[t.ID] = &copied
	return nil
}

func (f *fakeTournamentRepo) GetByID(_ context.Context, id int) (*models.Tournament, error) {
	t, ok := f.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	copied := *t
	return &copied, nil
}

func (f *fakeTournamentRepo) GetInProgress(context.Context) (*models.Tournament, error) {
	for _, t := range f.tournaments {
		if !t.Finalized {
			copied := *t
			return &copied, nil
		}
	}
	return nil, repositories.ErrNoTournamentInProgress
}

func (f *fakeTournamentRepo) List(context.Context) ([]models.Tournament, error) {
	out := make([]models.Tournament, 0, len(f.tournaments))
	for _, t := range f.tournaments {
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeTournamentRepo) SetFinalized(_ context.Context, _ repositories.SQLExecutor, id int) error {
	t, ok := f.tournaments[id]
	if !ok {
		return repositories.ErrTournamentNotFound
	}
	t.Finalized = true
	return nil
}

func (f *fakeTournamentRepo) UpdateLogoKey(_ context.Context, id int, logoKey *string) error {
	t, ok := f.tournaments[id]
	if !ok {
		return repositories.ErrTournamentNotFound
	}
	t.LogoKey = logoKey
	return nil
}

func (f *fakeTournamentRepo) Delete(_ context.Context, _ repositories.SQLExecutor, id int) error {
	if _, ok := f.tournaments[id]; !ok {
		return repositories.ErrTournamentNotFound
	}
	delete(f.tournaments, id)
	return nil
}

type fakeParticipationRepo struct {
	participations []models.Participation
	standingsCalls int
}

func (f *fakeParticipationRepo) CreateBatch(_ context.Context, _ repositories.SQLExecutor, ps []*models.Participation) error {
	for i, p := range ps {
		p.ID = len(f.participations) + i + 1
		f.participations = append(f.participations, *p)
	}
	return nil
}

func (f *fakeParticipationRepo) ListByTournament(_ context.Context, tournamentID int) ([]models.Participation, error) {
	out := make([]models.Participation, 0)
	for _, p := range f.participations {
		if p.TournamentID == tournamentID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeParticipationRepo) ListByPlayer(_ context.Context, playerID int) ([]models.Participation, error) {
	out := make([]models.Participation, 0)
	for _, p := range f.participations {
		if p.PlayerID == playerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeParticipationRepo) UpdateStandings(_ context.Context, _ repositories.SQLExecutor, p *models.Participation) error {
	f.standingsCalls++
	for i := range f.participations {
		if f.participations[i].ID == p.ID {
			f.participations[i] = *p
			return nil
		}
	}
	return repositories.ErrParticipationNotFound
}

func (f *fakeParticipationRepo) UpdatePhasePoints(_ context.Context, _ repositories.SQLExecutor, tournamentID, playerID, points int) error {
	for i := range f.participations {
		if f.participations[i].TournamentID == tournamentID && f.participations[i].PlayerID == playerID {
			f.participations[i].PhasePoints = points
			return nil
		}
	}
	return repositories.ErrParticipationNotFound
}

func (f *fakeParticipationRepo) SwapGroups(_ context.Context, _ repositories.SQLExecutor, tournamentID, playerAID, playerBID int) error {
	var a, b *models.Participation
	for i := range f.participations {
		p := &f.participations[i]
		if p.TournamentID != tournamentID {
			continue
		}
		switch p.PlayerID {
		case playerAID:
			a = p
		case playerBID:
			b = p
		}
	}
	if a == nil || b == nil {
		return repositories.ErrParticipationNotFound
	}
	a.GroupIndex, b.GroupIndex = b.GroupIndex, a.GroupIndex
	return nil
}

func (f *fakeParticipationRepo) DeleteByTournament(_ context.Context, _ repositories.SQLExecutor, tournamentID int) error {
	kept := f.participations[:0]
	for _, p := range f.participations {
		if p.TournamentID != tournamentID {
			kept = append(kept, p)
		}
	}
	f.participations = kept
	return nil
}

type fakeConfrontationRepo struct {
	confrontations []models.Confrontation
	updateCalls    int
}

func (f *fakeConfrontationRepo) CreateBatch(_ context.Context, _ repositories.SQLExecutor, cs []*models.Confrontation) error {
	for i, c := range cs {
		c.ID = len(f.confrontations) + i + 1
		f.confrontations = append(f.confrontations, *c)
	}
	return nil
}

func (f *fakeConfrontationRepo) ListByTournament(_ context.Context, tournamentID int) ([]models.Confrontation, error) {
	out := make([]models.Confrontation, 0)
	for _, c := range f.confrontations {
		if c.TournamentID == tournamentID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeConfrontationRepo) GetByGroupAndIndex(_ context.Context, tournamentID, groupIndex, confrontationIndex int) (*models.Confrontation, error) {
	for _, c := range f.confrontations {
		if c.TournamentID == tournamentID && c.GroupIndex == groupIndex && c.ConfrontationIndex == confrontationIndex {
			copied := c
			return &copied, nil
		}
	}
	return nil, repositories.ErrConfrontationNotFound
}

func (f *fakeConfrontationRepo) UpdateScores(_ context.Context, _ repositories.SQLExecutor, id, scoreA, scoreB int) error {
	f.updateCalls++
	for i := range f.confrontations {
		if f.confrontations[i].ID == id {
			a, b := scoreA, scoreB
			f.confrontations[i].ScoreA = &a
			f.confrontations[i].ScoreB = &b
			return nil
		}
	}
	return repositories.ErrConfrontationNotFound
}

func (f *fakeConfrontationRepo) ReplacePlayer(_ context.Context, _ repositories.SQLExecutor, tournamentID, groupIndex, oldPlayerID, newPlayerID int) error {
	for i := range f.confrontations {
		c := &f.confrontations[i]
		if c.TournamentID != tournamentID || c.GroupIndex != groupIndex {
			continue
		}
		for _, field := range []*int{&c.PlayerA1ID, &c.PlayerA2ID, &c.PlayerB1ID, &c.PlayerB2ID} {
			if *field == oldPlayerID {
				*field = newPlayerID
			}
		}
	}
	return nil
}

func (f *fakeConfrontationRepo) DeleteByTournament(_ context.Context, _ repositories.SQLExecutor, tournamentID int) error {
	kept := f.confrontations[:0]
	for _, c := range f.confrontations {
		if c.TournamentID != tournamentID {
			kept = append(kept, c)
		}
	}
	f.confrontations = kept
	return nil
}

type fakeBracketMatchRepo struct {
	matches []models.BracketMatch
}

func (f *fakeBracketMatchRepo) Upsert(_ context.Context, _ repositories.SQLExecutor, m *models.BracketMatch) error {
	for i := range f.matches {
		if f.matches[i].TournamentID == m.TournamentID && f.matches[i].GameNumber == m.GameNumber {
			m.ID = f.matches[i].ID
			f.matches[i] = *m
			return nil
		}
	}
	m.ID = len(f.matches) + 1
	f.matches = append(f.matches, *m)
	return nil
}

func (f *fakeBracketMatchRepo) ListByTournament(_ context.Context, tournamentID int) ([]models.BracketMatch, error) {
	out := make([]models.BracketMatch, 0)
	for _, m := range f.matches {
		if m.TournamentID == tournamentID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeBracketMatchRepo) ListByPlayer(_ context.Context, playerID int) ([]models.BracketMatch, error) {
	out := make([]models.BracketMatch, 0)
	for _, m := range f.matches {
		if m.PlayerA1ID == playerID || m.PlayerA2ID == playerID || m.PlayerB1ID == playerID || m.PlayerB2ID == playerID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeBracketMatchRepo) ListFinals(context.Context) ([]repositories.FinalRow, error) {
	return nil, nil
}

func (f *fakeBracketMatchRepo) DeleteGames(_ context.Context, _ repositories.SQLExecutor, tournamentID int, gameNumbers []int) error {
	doomed := make(map[int]bool, len(gameNumbers))
	for _, g := range gameNumbers {
		doomed[g] = true
	}
	kept := f.matches[:0]
	for _, m := range f.matches {
		if m.TournamentID != tournamentID || !doomed[m.GameNumber] {
			kept = append(kept, m)
		}
	}
	f.matches = kept
	return nil
}

func (f *fakeBracketMatchRepo) DeleteByTournament(_ context.Context, _ repositories.SQLExecutor, tournamentID int) error {
	kept := f.matches[:0]
	for _, m := range f.matches {
		if m.TournamentID != tournamentID {
			kept = append(kept, m)
		}
	}
	f.matches = kept
	return nil
}

type fakeRankingRepo struct {
	rows    []repositories.RankingRow
	results map[int][]repositories.PlayerResultRow
}

func (f *fakeRankingRepo) AggregatePoints(context.Context) ([]repositories.RankingRow, error) {
	return f.rows, nil
}

func (f *fakeRankingRepo) PlayerResults(_ context.Context, playerID int) ([]repositories.PlayerResultRow, error) {
	return f.results[playerID], nil
}

type fakePlayerRepo struct {
	players map[string]*models.Player
	nextID  int
}

func newFakePlayerRepo() *fakePlayerRepo {
	return &fakePlayerRepo{players: map[string]*models.Player{}, nextID: 1}
}

func (f *fakePlayerRepo) GetOrCreateByName(_ context.Context, _ repositories.SQLExecutor, name string) (*models.Player, error) {
	if p, ok := f.players[name]; ok {
		copied := *p
		return &copied, nil
	}
	p := &models.Player{ID: f.nextID, Name: name}
	f.nextID++
	f.players[name] = p
	copied := *p
	return &copied, nil
}

func (f *fakePlayerRepo) GetByName(_ context.Context, name string) (*models.Player, error) {
	p, ok := f.players[name]
	if !ok {
		return nil, repositories.ErrPlayerNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakePlayerRepo) SearchByName(_ context.Context, query string, limit int) ([]models.Player, error) {
	out := make([]models.Player, 0)
	for _, p := range f.players {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(query)) {
			out = append(out, *p)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakePlayerRepo) List(context.Context) ([]models.Player, error) {
	out := make([]models.Player, 0, len(f.players))
	for _, p := range f.players {
		out = append(out, *p)
	}
	return out, nil
}
