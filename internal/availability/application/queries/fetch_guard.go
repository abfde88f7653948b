package queries

import (
	"errors"
	"sync/atomic"
)

// ErrFetchSuperseded marks a fetch whose triggering view no longer matches
// current state: a newer fetch was issued before this one resolved. Callers
// suppress it silently instead of surfacing an error.
var ErrFetchSuperseded = errors.New("fetch superseded by a newer request")

// FetchGuard hands out generation tokens so that slow fetches resolving out
// of order are discarded rather than applied over newer results.
type FetchGuard struct {
	current atomic.Uint64
}

// FetchToken identifies one fetch generation.
type FetchToken struct {
	guard *FetchGuard
	gen   uint64
}

// Begin starts a new fetch generation, superseding all earlier tokens.
func (g *FetchGuard) Begin() FetchToken {
	return FetchToken{guard: g, gen: g.current.Add(1)}
}

// Superseded reports whether a newer fetch has begun since this token was
// issued. Checked before applying a fetch result.
func (t FetchToken) Superseded() bool {
	return t.guard != nil && t.guard.current.Load() != t.gen
}
