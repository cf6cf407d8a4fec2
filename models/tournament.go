package models

import (
	"fmt"
	"time"
)

// TournamentMode is the number of players drawn into the tournament.
// Every mode splits into groups of exactly four players.
type TournamentMode int

const (
	Mode16 TournamentMode = 16
	Mode20 TournamentMode = 20
	Mode24 TournamentMode = 24
	Mode28 TournamentMode = 28
	Mode32 TournamentMode = 32
)

// Modes lists the supported tournament sizes in ascending order.
var Modes = []TournamentMode{Mode16, Mode20, Mode24, Mode28, Mode32}

func (m TournamentMode) Valid() bool {
	for _, mode := range Modes {
		if m == mode {
			return true
		}
	}
	return false
}

// Players returns the expected draw size for the mode.
func (m TournamentMode) Players() int { return int(m) }

// Groups returns the number of groups of four the mode produces.
func (m TournamentMode) Groups() int { return int(m) / 4 }

func (m TournamentMode) String() string { return fmt.Sprintf("%dp", int(m)) }

// ParseTournamentMode maps a raw player count to a mode.
func ParseTournamentMode(players int) (TournamentMode, error) {
	mode := TournamentMode(players)
	if !mode.Valid() {
		return 0, fmt.Errorf("unsupported tournament size %d (expected one of 16, 20, 24, 28, 32)", players)
	}
	return mode, nil
}

// Tournament owns all groups, confrontations and bracket matches of one
// event. At most one tournament may be non-finalized at any time.
type Tournament struct {
	ID        int            `json:"id" db:"id"`
	Name      string         `json:"name" db:"name"`
	Mode      TournamentMode `json:"mode" db:"mode"`
	Finalized bool           `json:"finalized" db:"finalized"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
	LogoKey   *string        `json:"-" db:"logo_key"`
	LogoURL   *string        `json:"logo_url,omitempty" db:"-"`

	// Optional related data, populated by the service layer.
	Participations []Participation `json:"participations,omitempty" db:"-"`
	Confrontations []Confrontation `json:"confrontations,omitempty" db:"-"`
	BracketMatches []BracketMatch  `json:"bracket_matches,omitempty" db:"-"`
	Champions      []string        `json:"champions,omitempty" db:"-"`
	RunnersUp      []string        `json:"runners_up,omitempty" db:"-"`
	FinalScore     *string         `json:"final_score,omitempty" db:"-"`
}
