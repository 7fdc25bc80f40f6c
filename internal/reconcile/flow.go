package reconcile

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"roomassistant/internal/gateway"
	"roomassistant/internal/logging"
	"roomassistant/internal/notices"
	"roomassistant/internal/session"
	"roomassistant/internal/tabs"
)

// graceWindow is how long the flow waits for the backend's asynchronous
// settlement to land before re-querying. A bounded wait, not a poll loop:
// if settlement lands later than this, the snapshot stays stale until the
// next sync.
const graceWindow = 2000 * time.Millisecond

// TabSwitcher re-enters the premium flow once an upgrade is confirmed.
// *tabs.Controller satisfies it.
type TabSwitcher interface {
	SwitchTo(ctx context.Context, tab tabs.Tab) <-chan struct{}
}

// Flow runs the post-checkout confirmation sequence once per process
// start. It is best effort by design: any failure downgrades to an
// optimistic "confirmed, pending reflection" notice instead of surfacing,
// because the reconciliation race is expected to resolve shortly and must
// never block the user out of the dashboard.
type Flow struct {
	gw       gateway.Caller
	store    *session.Store
	notifier notices.Notifier
	switcher TabSwitcher
	logger   *slog.Logger
	wait     func(context.Context, time.Duration)
}

// Option customizes the flow.
type Option func(*Flow)

// WithWait overrides the grace-window wait, for tests.
func WithWait(wait func(context.Context, time.Duration)) Option {
	return func(f *Flow) {
		if wait != nil {
			f.wait = wait
		}
	}
}

// NewFlow wires a reconciliation flow. switcher may be nil when no
// dashboard is attached.
func NewFlow(gw gateway.Caller, store *session.Store, notifier notices.Notifier, switcher TabSwitcher, logger *slog.Logger, opts ...Option) *Flow {
	flow := &Flow{
		gw:       gw,
		store:    store,
		notifier: notifier,
		switcher: switcher,
		logger:   logging.NewComponentLogger(logger, "reconcile"),
		wait:     sleepContext,
	}
	for _, opt := range opts {
		opt(flow)
	}
	return flow
}

// Run consumes one confirmation. ok=false (no redirect parameters present)
// is a no-op. The resulting Session, when one is obtained, overwrites the
// persisted record wholesale.
func (f *Flow) Run(ctx context.Context, conf Confirmation, ok bool) {
	if !ok {
		return
	}

	// One correlation id spans the whole reconciliation, so the sync call's
	// gateway log lines tie back to this run.
	ctx = logging.WithCorrelationID(ctx, uuid.NewString())
	logger := logging.WithContext(ctx, f.logger)

	if !conf.Succeeded {
		f.notifier.PaymentCanceled()
		return
	}

	f.notifier.PaymentProcessing()
	f.wait(ctx, graceWindow)

	email := ""
	if sess, found, err := f.store.Load(); err == nil && found {
		email = sess.Email
	}

	env, err := f.gw.Call(ctx, "syncWithStripe", map[string]string{"email": email}, gateway.MethodPost)
	if err != nil || env.Err() != nil || env.User == nil {
		logger.Warn("checkout sync did not return a user",
			logging.String(logging.FieldEventType, "reconcile_sync_incomplete"),
			logging.Error(err),
			logging.String(logging.FieldImpact, "entitlement may lag until the next sync"))
		f.notifier.PaymentConfirmed()
		return
	}

	if err := f.store.Save(*env.User); err != nil {
		logger.Warn("persist reconciled session",
			logging.String(logging.FieldEventType, "reconcile_save_failed"),
			logging.Error(err))
		f.notifier.PaymentConfirmed()
		return
	}

	if env.User.Plan.Premium() {
		if f.switcher != nil {
			f.switcher.SwitchTo(ctx, tabs.TabRandom)
		}
		f.notifier.UpgradeCompleted()
		return
	}
	f.notifier.PaymentConfirmed()
}

func sleepContext(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
