package poller

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/thruflo/crosswatch/internal/logging"
	"github.com/thruflo/crosswatch/internal/progress"
)

// Defaults matching the browser client.
const (
	DefaultInterval = 100 * time.Millisecond
	DefaultMaxPolls = 200
)

var (
	// ErrTimeout is returned when the tick budget or deadline runs out
	// before the service reports completion.
	ErrTimeout = errors.New("solving timed out")
	// ErrEmptySession is returned when Run is given an empty session id.
	ErrEmptySession = errors.New("session id is required")
)

// SolveError is a failure reported by the service in a progress response.
type SolveError struct {
	Poll    int
	Message string
}

func (e *SolveError) Error() string {
	return e.Message
}

// ExitReason indicates why polling stopped.
type ExitReason int

const (
	ExitReasonUnknown     ExitReason = iota
	ExitReasonCompleted              // Service reported completion
	ExitReasonServerError            // Service reported an error
	ExitReasonFailed                 // Request or decoding failed
	ExitReasonTimeout                // Tick budget or deadline exhausted
	ExitReasonCanceled               // Context canceled by the caller
)

// String returns a human-readable description of the exit reason.
func (r ExitReason) String() string {
	switch r {
	case ExitReasonCompleted:
		return "completed"
	case ExitReasonServerError:
		return "server error"
	case ExitReasonFailed:
		return "failed"
	case ExitReasonTimeout:
		return "timed out"
	case ExitReasonCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Result contains the outcome of a polling run.
type Result struct {
	Reason ExitReason
	// Polls is the number of progress requests issued.
	Polls int
	// Steps is the number of steps replayed.
	Steps int
	State *progress.State
	// Result is the final artifact. It can be nil even on completion when
	// the service reported none.
	Result *progress.Result
	Err    error
}

// ProgressFetcher fetches the steps of a session accumulated since the
// previous call.
type ProgressFetcher interface {
	Progress(ctx context.Context, sessionID string) (*progress.Response, error)
}

// Options configures a Poller. Zero values select the defaults.
type Options struct {
	Interval time.Duration
	MaxPolls int
	// Deadline bounds the wall-clock duration of a run; zero disables it.
	Deadline time.Duration
	// StepDelay pauses after each replayed step, for live displays.
	StepDelay time.Duration
	// FinalDelay pauses after completion before the result is delivered.
	FinalDelay  time.Duration
	LogCapacity int
	Logger      *logging.Logger

	// OnPoll is called after each response is received, before replay.
	OnPoll func(poll int, resp *progress.Response)
	// OnStep is called after each step has been applied to the state.
	OnStep func(st *progress.State, step progress.Step)
	// OnComplete is called once when the service reports completion.
	OnComplete func(st *progress.State, result *progress.Result)
}

// Poller replays a session's solving feed into a State.
type Poller struct {
	fetcher ProgressFetcher
	opts    Options
	state   *progress.State
	logger  *logging.Logger
}

// New creates a Poller reading from fetcher.
func New(fetcher ProgressFetcher, opts Options) *Poller {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.MaxPolls <= 0 {
		opts.MaxPolls = DefaultMaxPolls
	}
	if opts.LogCapacity <= 0 {
		opts.LogCapacity = progress.DefaultLogCapacity
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}

	return &Poller{
		fetcher: fetcher,
		opts:    opts,
		state:   progress.NewState(opts.LogCapacity),
		logger:  logger,
	}
}

// State returns the view-model. It must only be read from hooks or after
// Run has returned.
func (p *Poller) State() *progress.State {
	return p.state
}

// Run polls sessionID until a terminal condition is met. The state is reset
// at the start of every run.
func (p *Poller) Run(ctx context.Context, sessionID string) Result {
	if sessionID == "" {
		return Result{Reason: ExitReasonFailed, State: p.state, Err: ErrEmptySession}
	}

	p.state.Reset()
	log := p.logger.With("session", sessionID)

	runCtx := ctx
	if p.opts.Deadline > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, p.opts.Deadline)
		defer cancel()
	}

	res := Result{State: p.state}
	for {
		if runCtx.Err() != nil {
			return p.interrupted(ctx, res, log)
		}

		res.Polls++
		resp, err := p.fetcher.Progress(runCtx, sessionID)
		if runCtx.Err() != nil {
			// A response that raced cancellation is dropped unreplayed.
			return p.interrupted(ctx, res, log)
		}
		if err != nil {
			log.Warn("progress request failed", "poll", res.Polls, "error", err)
			res.Reason = ExitReasonFailed
			res.Err = err
			return res
		}

		log.Debug("poll", "poll", res.Polls, "steps", len(resp.Steps), "complete", resp.Complete)
		if p.opts.OnPoll != nil {
			p.opts.OnPoll(res.Polls, resp)
		}

		if resp.Error != "" {
			log.Info("service reported error", "poll", res.Polls, "error", resp.Error)
			res.Reason = ExitReasonServerError
			res.Err = &SolveError{Poll: res.Polls, Message: resp.Error}
			return res
		}

		for _, step := range resp.Steps {
			if !step.Type.Known() {
				log.Warn("unknown step type", "type", string(step.Type))
			}
			p.state.Apply(step)
			res.Steps++
			if p.opts.OnStep != nil {
				p.opts.OnStep(p.state, step)
			}
			if p.opts.StepDelay > 0 && sleep(runCtx, p.opts.StepDelay) != nil {
				return p.interrupted(ctx, res, log)
			}
		}

		if resp.Complete {
			if resp.Result == nil {
				log.Warn("session completed without a result", "poll", res.Polls)
			}
			if p.opts.FinalDelay > 0 && sleep(runCtx, p.opts.FinalDelay) != nil {
				return p.interrupted(ctx, res, log)
			}
			res.Reason = ExitReasonCompleted
			res.Result = resp.Result
			if p.opts.OnComplete != nil {
				p.opts.OnComplete(p.state, resp.Result)
			}
			log.Info("session completed", "polls", res.Polls, "steps", res.Steps)
			return res
		}

		if res.Polls >= p.opts.MaxPolls {
			res.Reason = ExitReasonTimeout
			res.Err = fmt.Errorf("%w after %d polls; try a different combination", ErrTimeout, res.Polls)
			log.Info("tick budget exhausted", "polls", res.Polls)
			return res
		}

		if sleep(runCtx, p.opts.Interval) != nil {
			return p.interrupted(ctx, res, log)
		}
	}
}

// interrupted builds the result for a run stopped by its context. The run's
// own deadline is a timeout; anything else is the caller's cancellation.
func (p *Poller) interrupted(parent context.Context, res Result, log *logging.Logger) Result {
	if parent.Err() == nil && p.opts.Deadline > 0 {
		res.Reason = ExitReasonTimeout
		res.Err = fmt.Errorf("%w after %s; try a different combination", ErrTimeout, p.opts.Deadline)
		log.Info("deadline exceeded", "polls", res.Polls)
		return res
	}
	res.Reason = ExitReasonCanceled
	res.Err = parent.Err()
	log.Debug("polling canceled", "polls", res.Polls)
	return res
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
