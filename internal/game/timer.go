package game

import (
	"context"

	"github.com/sketchwire/sketchwire/internal"
)

// =============================================================================
// ROUND RESOLUTION TIMER
// =============================================================================

// startResolveTimer arms the announcement delay that follows a resolved
// round. It is a scheduled, cancellable timer, not a blocking wait: the
// room keeps rejecting actions with the resolving flag while it runs, and
// teardown or abandonment cancels it through room.ResolveCancel. Caller
// holds the room lock; onExpire runs without it.
func (c *Coordinator) startResolveTimer(room *internal.Room, onExpire func()) {
	if room.ResolveCancel != nil {
		room.ResolveCancel()
	}
	ctx, cancel := context.WithTimeout(context.Background(), c.resolveDelay)
	room.ResolveCancel = cancel

	go func() {
		<-ctx.Done()
		if ctx.Err() == context.DeadlineExceeded {
			onExpire()
		}
	}()
}
