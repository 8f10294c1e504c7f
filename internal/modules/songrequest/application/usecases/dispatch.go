package usecases

import (
	"context"
	"time"
)

// homeCall is a unit of work marshalled onto the orchestrator's home
// goroutine. The caller blocks on done; the deadline lives in ctx.
type homeCall struct {
	ctx  context.Context
	fn   func(context.Context)
	done chan struct{}
}

func (c homeCall) execute() {
	defer close(c.done)

	// Caller may have timed out while the call sat in the channel.
	select {
	case <-c.ctx.Done():
		return
	default:
	}
	c.fn(c.ctx)
}

// do marshals fn onto the home goroutine and blocks until it completes, the
// timeout elapses, or the orchestrator stops. On timeout the caller unblocks
// with the context error and fn, if it still runs, sees a cancelled context
// on every backend call. This is the only path by
// which chat-triggered operations reach the loop, which keeps them serialized
// with ticks.
func (o *Orchestrator) do(ctx context.Context, timeout time.Duration, fn func(context.Context)) error {
	o.lifecycleMu.Lock()
	stopped := o.stopped
	running := o.running
	o.lifecycleMu.Unlock()
	if !running {
		return ErrStopped
	}

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	call := homeCall{ctx: callCtx, fn: fn, done: make(chan struct{})}

	select {
	case o.calls <- call:
	case <-callCtx.Done():
		return callCtx.Err()
	case <-stopped:
		return ErrStopped
	}

	select {
	case <-call.done:
		return nil
	case <-callCtx.Done():
		return callCtx.Err()
	case <-stopped:
		return ErrStopped
	}
}
