// Package monitor orchestrates one waiting-list check cycle and the
// fixed-interval loop around it.
package monitor

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/JakeFAU/arin-waitlist-watcher/internal/state"
	"github.com/JakeFAU/arin-waitlist-watcher/internal/waitlist"
)

// RowFetcher returns the visible text of every table row on the source page.
type RowFetcher interface {
	FetchRows(ctx context.Context) ([]string, error)
}

// Notifier delivers one subject/body message per cycle.
type Notifier interface {
	Send(ctx context.Context, subject, body string) error
}

// OutcomeKind classifies a finished cycle.
type OutcomeKind int

// Cycle outcomes, in exit-code order.
const (
	OutcomeFound OutcomeKind = iota
	OutcomeNotFound
	OutcomeError
)

// Outcome is the typed result of one cycle. Err is set only for
// OutcomeError; Position only for OutcomeFound.
type Outcome struct {
	Kind     OutcomeKind
	Position int
	Total    int
	Err      error
}

// ExitCode maps the outcome to the process exit status used in run-once
// mode: 0 found, 2 not found, 3 fetch/parse error.
func (o Outcome) ExitCode() int {
	switch o.Kind {
	case OutcomeNotFound:
		return 2
	case OutcomeError:
		return 3
	default:
		return 0
	}
}

// Options wires a Runner.
type Options struct {
	Fetcher       RowFetcher
	Store         *state.Store
	Notifier      Notifier
	Target        string
	SubjectPrefix string
	FormatTime    CheckTimeFormatter
	Now           func() time.Time
	Logger        *zap.Logger
}

// Runner executes check cycles. It holds no cross-cycle state of its own;
// everything durable lives in the Store.
type Runner struct {
	fetcher       RowFetcher
	store         *state.Store
	notifier      Notifier
	target        string
	subjectPrefix string
	formatTime    CheckTimeFormatter
	now           func() time.Time
	logger        *zap.Logger
}

// NewRunner validates the wiring and returns a Runner.
func NewRunner(opts Options) (*Runner, error) {
	if opts.Fetcher == nil || opts.Store == nil || opts.Notifier == nil {
		return nil, fmt.Errorf("fetcher, store and notifier are required")
	}
	if opts.Target == "" {
		return nil, fmt.Errorf("target timestamp must be set")
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.FormatTime == nil {
		opts.FormatTime = NewCheckTimeFormatter(opts.Logger)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Runner{
		fetcher:       opts.Fetcher,
		store:         opts.Store,
		notifier:      opts.Notifier,
		target:        opts.Target,
		subjectPrefix: opts.SubjectPrefix,
		formatTime:    opts.FormatTime,
		now:           opts.Now,
		logger:        opts.Logger,
	}, nil
}

// RunOnce performs one complete cycle: fetch, parse, match, notify, persist.
// Every terminal path sends exactly one notification; only a successful
// match mutates persisted state.
func (r *Runner) RunOnce(ctx context.Context) Outcome {
	r.logger.Info("Starting waiting list check", zap.String("target", r.target))
	now := r.now().UTC()
	timeChecked := r.formatTime(now)

	texts, err := r.fetcher.FetchRows(ctx)
	if err != nil {
		TotalCheckErrors.Inc()
		r.logger.Error("Check failed", zap.Error(err))
		r.notify(ctx, r.subject("ERROR"), errorBody(err, timeChecked))
		return Outcome{Kind: OutcomeError, Err: err}
	}

	rows := waitlist.ParseRows(texts)
	total := len(rows)
	r.logger.Info("Parsed data rows", zap.Int("rows", total))

	match, ok := waitlist.FindEntry(rows, r.target)
	if !ok {
		TotalChecksNotFound.Inc()
		r.logger.Warn("Entry not found in table", zap.Int("rows", total))
		r.notify(ctx, r.subject("NOT FOUND"), notFoundBody(r.target, total, timeChecked))
		return Outcome{Kind: OutcomeNotFound, Total: total}
	}

	TotalChecksFound.Inc()
	r.logger.Info("Match found",
		zap.Int("position", match.Position),
		zap.Int("total", total),
	)

	prev := r.store.Load().LastPosition
	subject := fmt.Sprintf("%s Position: %d/%d", r.subjectPrefix, match.Position, total)
	body := positionBody(match.Position, total, prev, r.target, match.MaxPrefix, match.MinPrefix, timeChecked)
	r.notify(ctx, subject, body)

	pos := match.Position
	if err := r.store.Save(state.State{LastPosition: &pos, LastCheckedUTC: now}); err != nil {
		// The notification already went out; next cycle reports fresh data.
		r.logger.Warn("Failed to save state", zap.Error(err))
	} else {
		r.logger.Info("State saved", zap.String("path", r.store.Path()))
	}

	return Outcome{Kind: OutcomeFound, Position: match.Position, Total: total}
}

// Watch repeats RunOnce with a constant sleep between cycles until the
// context is cancelled. No jitter, no backoff: the interval is the same on
// success, not-found and error.
func (r *Runner) Watch(ctx context.Context, interval time.Duration) {
	for {
		outcome := r.RunOnce(ctx)
		r.logger.Info("Cycle finished",
			zap.Int("exit_code", outcome.ExitCode()),
			zap.Duration("sleep", interval),
		)
		select {
		case <-ctx.Done():
			return
		case <-time.After(interval):
		}
	}
}

func (r *Runner) subject(suffix string) string {
	return r.subjectPrefix + " " + suffix
}

// notify dispatches the single per-cycle notification. The notifier already
// guarantees a console fallback; an error here is logged and dropped so a
// delivery problem can never change the cycle outcome.
func (r *Runner) notify(ctx context.Context, subject, body string) {
	if err := r.notifier.Send(ctx, subject, body); err != nil {
		r.logger.Error("Notification dispatch failed", zap.Error(err))
	}
}
