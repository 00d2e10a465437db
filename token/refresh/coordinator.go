// Package refresh coordinates access-token renewal so that at most one refresh
// call is in flight at any time.
//
// A Coordinator is either idle or refreshing. The first caller to arrive while
// idle becomes the leader: it flips the state to refreshing under the lock and
// then runs the refresh. Every caller arriving while refreshing is queued and
// released, in arrival order, with the leader's result once the refresh has
// settled. Release happens only after the refresh function returned, so a
// refresh function that persists the new token before returning guarantees no
// released caller can read a stale token.
package refresh

import (
	"context"
	"sync"
	"time"
)

// Func performs one refresh and returns the new access token.
type Func func(ctx context.Context) (string, error)

type result struct {
	token string
	err   error
}

type Coordinator struct {
	timeout time.Duration

	lock       sync.Mutex
	refreshing bool
	queue      []chan result
	refreshes  int
}

// NewCoordinator returns an idle coordinator. A positive timeout bounds every
// refresh call; zero leaves it unbounded.
func NewCoordinator(timeout time.Duration) *Coordinator {
	return &Coordinator{timeout: timeout}
}

// Do returns a fresh access token, either by running fn as the leader or by
// waiting for the refresh already in flight.
//
// The leader runs fn detached from ctx's cancellation (the timeout still
// applies) because queued callers depend on its outcome. A queued caller whose
// ctx ends stops waiting and gets ctx.Err(); the refresh itself carries on.
func (c *Coordinator) Do(ctx context.Context, fn Func) (string, error) {
	c.lock.Lock()
	if c.refreshing {
		ch := make(chan result, 1)
		c.queue = append(c.queue, ch)
		c.lock.Unlock()

		select {
		case r := <-ch:
			return r.token, r.err
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	c.refreshing = true
	c.refreshes++
	c.lock.Unlock()

	token, err := c.run(ctx, fn)

	c.lock.Lock()
	queued := c.queue
	c.queue = nil
	c.refreshing = false
	c.lock.Unlock()

	for _, ch := range queued {
		ch <- result{token: token, err: err}
	}
	return token, err
}

func (c *Coordinator) run(ctx context.Context, fn Func) (string, error) {
	rctx := context.WithoutCancel(ctx)
	if c.timeout > 0 {
		var cancel context.CancelFunc
		rctx, cancel = context.WithTimeout(rctx, c.timeout)
		defer cancel()
	}
	return fn(rctx)
}

// Refreshing reports whether a refresh is in flight.
func (c *Coordinator) Refreshing() bool {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.refreshing
}

// Queued is the number of callers waiting on the refresh in flight.
func (c *Coordinator) Queued() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return len(c.queue)
}

// Refreshes counts refresh calls started since creation.
func (c *Coordinator) Refreshes() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.refreshes
}
