package gridplanner

import "errors"

var (
	// ErrInvalidParameter indicates an out-of-range size, radius, margin or
	// weight, a malformed obstacle, or a start/goal the robot cannot occupy.
	ErrInvalidParameter = errors.New("gridplanner: invalid parameter")
	// ErrNoPathFound indicates the search exhausted the open set before
	// reaching the goal.
	ErrNoPathFound = errors.New("gridplanner: no path found")
	// ErrBadFile indicates a map file that violates the persistence format.
	ErrBadFile = errors.New("gridplanner: bad map file")
	// ErrInternalConsistency indicates a broken parent chain during path
	// reconstruction.
	ErrInternalConsistency = errors.New("gridplanner: internal consistency fault")
	// ErrSearchLimit indicates the search hit its expansion budget.
	ErrSearchLimit = errors.New("gridplanner: search expansion limit reached")
)
