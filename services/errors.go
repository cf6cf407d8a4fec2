package services

import "errors"

var (
	ErrValidation             = errors.New("validation failed")
	ErrTournamentInProgress   = errors.New("a tournament is already in progress")
	ErrTournamentNotFound     = errors.New("tournament not found")
	ErrTournamentFinalized    = errors.New("tournament is finalized")
	ErrTournamentNotFinalized = errors.New("tournament is not finalized")
	ErrTieNotAllowed          = errors.New("tied scores are not allowed")
	ErrNegativeScore          = errors.New("scores must be non-negative")
	ErrMatchNotFound          = errors.New("match not found")
	ErrStageNotReady          = errors.New("previous stage is not decided yet")
	ErrGroupResultsExist      = errors.New("group already has recorded results")
	ErrFinalNotDecided        = errors.New("final match is not decided")
	ErrPlayerNotFound         = errors.New("player not found")
	ErrSearchTooShort         = errors.New("search term too short")
)
