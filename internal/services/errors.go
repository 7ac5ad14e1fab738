package services

import "errors"

// Sentinel errors returned by the search engine and the planner.
var (
	// ErrUnsolvable is returned when the frontier is exhausted without reaching a goal.
	ErrUnsolvable = errors.New("search: no goal state reachable")

	// ErrInconsistentHeuristic is returned when h(pred) > h(succ) + cost on some edge,
	// or when the heuristic yields a negative or NaN value.
	ErrInconsistentHeuristic = errors.New("search: heuristic is not consistent")

	// ErrExpansionLimit is returned when the configured expansion limit is reached.
	ErrExpansionLimit = errors.New("search: expansion limit reached")

	// ErrStateNotVisited is returned by Reconstruct for states missing from the visited map.
	ErrStateNotVisited = errors.New("search: state not visited")

	// ErrInvalidSearchOptions is returned for malformed option values.
	ErrInvalidSearchOptions = errors.New("search: invalid options")
)

// ErrInvalidPlanRequest reports a malformed planning request.
var ErrInvalidPlanRequest = errors.New("invalid plan request")
