// Package poller drives a solving session: it polls the service for new
// solver steps, replays them into a progress.State and stops on completion,
// server error, transport failure, tick-budget exhaustion, deadline or
// cancellation.
//
// Polls are serialized. The next request is issued one interval after the
// previous response has been fully replayed, so steps are applied strictly
// in the order the service produced them and responses can never overlap.
// The poll loop goroutine is the only writer of the State; hooks run
// synchronously on that goroutine.
package poller
