package brackets

import "errors"

var (
	ErrPlayerCountMismatch    = errors.New("player count does not match tournament mode")
	ErrSeedCountExceedsGroups = errors.New("seed count exceeds number of groups")
	ErrSeedNotInPlayers       = errors.New("seed is not in the player list")
	ErrDuplicateSeed          = errors.New("seed listed more than once")
	ErrUnknownMode            = errors.New("unknown tournament mode")
	ErrInsufficientPlayers    = errors.New("not enough ranked players for the bracket template")
	ErrFinalNotDecided        = errors.New("final match is not decided")
)
