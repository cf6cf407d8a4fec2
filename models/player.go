package models

import "time"

// Player is a permanent identity that persists across tournaments.
// Names are unique; the same player accumulates ranking points from
// every finalized tournament they took part in.
type Player struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
