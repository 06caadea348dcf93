package wfc

import (
	"errors"
	"fmt"
)

var (
	// ErrContradiction reports that some cell ran out of candidate tiles.
	// The run cannot continue; restart with another seed.
	ErrContradiction = errors.New("wfc: contradiction")

	// ErrInvariant reports broken internal bookkeeping. It is never retried.
	ErrInvariant = errors.New("wfc: invariant violation")

	// ErrStepBudget is returned by Run when maxSteps is exhausted first.
	ErrStepBudget = errors.New("wfc: step budget exhausted")
)

// ConfigError rejects a parameter before any stepping begins.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("wfc: invalid %s: %s", e.Field, e.Message)
}

func configErrorf(field, format string, args ...any) *ConfigError {
	return &ConfigError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// ContradictionError carries where and when a run failed.
type ContradictionError struct {
	X, Y int
	Step int
}

func (e *ContradictionError) Error() string {
	return fmt.Sprintf("wfc: contradiction at (%d,%d) on step %d", e.X, e.Y, e.Step)
}

func (e *ContradictionError) Unwrap() error { return ErrContradiction }
