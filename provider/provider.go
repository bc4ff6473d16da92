package provider

import (
	"context"
	"errors"
)

// Provider supplies deployment output values as a key/value set.
// Keys are unique; ordering is not significant.
type Provider interface {
	FetchValues(ctx context.Context) (map[string]string, error)
}

// Sentinel errors for the two failure modes of a fetch. Both are terminal
// for the run; callers map them to distinct exit codes.
var (
	// ErrProviderUnavailable indicates the azd CLI is missing from PATH or
	// exited nonzero. The two cases are deliberately collapsed into one
	// error kind: the operator remedy (install azd / run azd provision) is
	// diagnosed from the wrapped detail, not the kind.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrProviderParse indicates the provider ran but its output was not in
	// the expected JSON or KEY=VALUE shape.
	ErrProviderParse = errors.New("provider output parse failed")
)
