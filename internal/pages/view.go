// Package pages renders the portal's HTML pages. Every page load runs one
// data fetch and renders the terminal state it produced.
package pages

import (
	"context"
)

// State is the phase of a page's data load.
type State int

const (
	StateLoading State = iota
	StateError
	StateEmpty
	StatePopulated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateError:
		return "error"
	case StateEmpty:
		return "empty"
	case StatePopulated:
		return "populated"
	default:
		return "unknown"
	}
}

// ListView is the outcome of loading a collection.
type ListView[T any] struct {
	State State
	Items []T
	Error string
	// Aborted is set when the request went away before the fetch returned;
	// nothing should be rendered.
	Aborted bool
}

// Loading reports whether the fetch has not resolved yet.
func (v ListView[T]) Loading() bool { return v.State == StateLoading }

// Failed reports the error state.
func (v ListView[T]) Failed() bool { return v.State == StateError }

// Empty reports a successful fetch with zero records.
func (v ListView[T]) Empty() bool { return v.State == StateEmpty }

// LoadList runs fetch once. fallback is the message used when the error
// carries no text of its own.
func LoadList[T any](ctx context.Context, fetch func(context.Context) ([]T, error), fallback string) ListView[T] {
	items, err := fetch(ctx)
	if ctx.Err() != nil {
		return ListView[T]{State: StateLoading, Aborted: true}
	}
	if err != nil {
		return ListView[T]{State: StateError, Error: errorText(err, fallback)}
	}
	if len(items) == 0 {
		return ListView[T]{State: StateEmpty}
	}
	return ListView[T]{State: StatePopulated, Items: items}
}

// MapList converts the items of a view, keeping its state.
func MapList[T, U any](v ListView[T], fn func(int, T) U) ListView[U] {
	out := ListView[U]{State: v.State, Error: v.Error, Aborted: v.Aborted}
	if v.Items != nil {
		out.Items = make([]U, len(v.Items))
		for i, item := range v.Items {
			out.Items[i] = fn(i, item)
		}
	}
	return out
}

// ValueView is the outcome of loading a single record. It has no empty state.
type ValueView[T any] struct {
	State   State
	Value   *T
	Error   string
	Aborted bool
}

// LoadValue runs fetch once.
func LoadValue[T any](ctx context.Context, fetch func(context.Context) (T, error), fallback string) ValueView[T] {
	value, err := fetch(ctx)
	if ctx.Err() != nil {
		return ValueView[T]{State: StateLoading, Aborted: true}
	}
	if err != nil {
		return ValueView[T]{State: StateError, Error: errorText(err, fallback)}
	}
	return ValueView[T]{State: StatePopulated, Value: &value}
}

func errorText(err error, fallback string) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}

// Failed reports the error state.
func (v ValueView[T]) Failed() bool { return v.State == StateError }
