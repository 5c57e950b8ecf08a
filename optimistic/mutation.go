// Package optimistic wraps remote mutating calls with speculative local
// state: apply the change immediately, then commit the server's answer or
// revert to the pre-speculation snapshot when the call fails.
//
// The package is pure client-side plumbing. It knows nothing about HTTP or
// the shape of the remote call; the only effectful boundary is the Call
// function handed to it. It never retries, and invocations for different
// entities carry no ordering guarantee between each other.
package optimistic

import (
	"context"
	"errors"
)

// ErrNoCall is returned when a Mutation has no remote call to run.
var ErrNoCall = errors.New("optimistic: mutation has no remote call")

// ErrItemNotFound is returned by the collection helpers when the target id
// is absent from the store.
var ErrItemNotFound = errors.New("optimistic: item not found")

// RemoteFunc is the single effectful boundary of a mutation.
type RemoteFunc[T, R any] func(ctx context.Context, data T) (R, error)

// Mutation runs one speculative state change against one remote call.
//
// Apply runs synchronously before the call so the local view reflects intent
// immediately. Commit runs only after the call succeeds and receives the
// authoritative result. Revert runs only when the call fails and must return
// the local state to its pre-speculation snapshot.
type Mutation[T, R any] struct {
	Call    RemoteFunc[T, R]
	Apply   func(data T)
	Commit  func(result R)
	Revert  func()
	OnError func(err error)
}

// Do executes the three phases. The local view never reports the mutation as
// succeeded before the remote call acknowledges it; on failure the state is
// reverted and the error returned.
func (m Mutation[T, R]) Do(ctx context.Context, data T) (R, error) {
	var zero R
	if m.Call == nil {
		return zero, ErrNoCall
	}

	if m.Apply != nil {
		m.Apply(data)
	}

	result, err := m.Call(ctx, data)
	if err != nil {
		if m.Revert != nil {
			m.Revert()
		}
		if m.OnError != nil {
			m.OnError(err)
		}
		return zero, err
	}

	if m.Commit != nil {
		m.Commit(result)
	}
	return result, nil
}
