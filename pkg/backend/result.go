package backend

import "context"

// Result carries either a value or the error that prevented loading it.
// Callers decide whether a failed result is surfaced or rendered empty.
type Result[T any] struct {
	Value T
	Err   error
}

// Fetch runs fn and captures its outcome
func Fetch[T any](ctx context.Context, fn func(context.Context) (T, error)) Result[T] {
	v, err := fn(ctx)
	return Result[T]{Value: v, Err: err}
}

// OK reports whether the load succeeded
func (r Result[T]) OK() bool {
	return r.Err == nil
}

// Or returns the value, or fallback when the load failed
func (r Result[T]) Or(fallback T) T {
	if r.Err != nil {
		return fallback
	}
	return r.Value
}
