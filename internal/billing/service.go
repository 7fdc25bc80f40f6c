// Package billing talks to the subscription side of the backend: checkout
// session creation, cancellation, settings, and on-demand plan refresh.
package billing

import (
	"context"
	"errors"
	"log/slog"

	"roomassistant/internal/gateway"
	"roomassistant/internal/logging"
	"roomassistant/internal/notices"
	"roomassistant/internal/session"
)

// ErrNotSignedIn reports a billing operation attempted without a session.
var ErrNotSignedIn = errors.New("not signed in")

// ErrNotPremium reports a cancellation attempted on a Free plan.
var ErrNotPremium = errors.New("the current plan is not Premium")

// Service drives the billing-facing operations. It never mutates the
// Session in memory only; every change goes through the store wholesale.
type Service struct {
	gw       gateway.Caller
	store    *session.Store
	notifier notices.Notifier
	logger   *slog.Logger
}

// NewService constructs a billing service.
func NewService(gw gateway.Caller, store *session.Store, notifier notices.Notifier, logger *slog.Logger) *Service {
	return &Service{
		gw:       gw,
		store:    store,
		notifier: notifier,
		logger:   logging.NewComponentLogger(logger, "billing"),
	}
}

// CreateCheckout asks the backend for a checkout URL the user completes in
// a browser. The checkout provider later redirects back with the
// confirmation parameters the reconcile flow consumes.
func (s *Service) CreateCheckout(ctx context.Context) (string, error) {
	sess, err := s.current()
	if err != nil {
		return "", err
	}

	env, err := s.gw.Call(ctx, "createCheckoutSession", map[string]string{
		"email": sess.Email,
	}, gateway.MethodPost)
	if err != nil {
		return "", err
	}
	if err := env.Err(); err != nil {
		return "", err
	}
	if env.URL == "" {
		return "", errors.New("backend returned no checkout URL")
	}
	return env.URL, nil
}

// Cancel schedules the subscription to end at the period close, then syncs
// the authoritative state. When the follow-up sync fails the pending flag
// is set manually so the UI reflects the cancellation anyway.
func (s *Service) Cancel(ctx context.Context) error {
	sess, err := s.current()
	if err != nil {
		return err
	}
	if !sess.Plan.Premium() {
		return ErrNotPremium
	}

	env, err := s.gw.Call(ctx, "cancelSubscription", map[string]string{
		"email": sess.Email,
	}, gateway.MethodPost)
	if err != nil {
		return err
	}
	if err := env.Err(); err != nil {
		return err
	}
	s.notifier.Info(env.Message)

	if _, err := s.Sync(ctx); err != nil {
		s.logger.Warn("post-cancel sync failed, flagging cancellation locally",
			logging.String(logging.FieldEventType, "cancel_sync_failed"),
			logging.Error(err))
		if _, err := s.store.Mutate(func(sess *session.Session) {
			sess.CancelAtPeriodEnd = true
		}); err != nil {
			return err
		}
	}
	return nil
}

// Sync re-queries the authoritative billing state and overwrites the
// persisted Session with the returned user object.
func (s *Service) Sync(ctx context.Context) (session.Session, error) {
	sess, err := s.current()
	if err != nil {
		return session.Session{}, err
	}

	env, err := s.gw.Call(ctx, "syncWithStripe", map[string]string{
		"email": sess.Email,
	}, gateway.MethodPost)
	if err != nil {
		return session.Session{}, err
	}
	if err := env.Err(); err != nil {
		return session.Session{}, err
	}
	if env.User == nil {
		return session.Session{}, errors.New("sync returned no user object")
	}
	if err := s.store.Save(*env.User); err != nil {
		return session.Session{}, err
	}
	s.notifier.PlanRefreshed()
	return *env.User, nil
}

// SaveSettings persists the user's price bounds and custom prompt. On
// success the three fields are patched into a re-read of the record, not
// into the value this process last saw, because reconciliation may have
// replaced the record in between.
func (s *Service) SaveSettings(ctx context.Context, priceMin, priceMax, customPrompt string) error {
	sess, err := s.current()
	if err != nil {
		return err
	}

	env, err := s.gw.Call(ctx, "updateSettings", map[string]string{
		"email":        sess.Email,
		"priceMin":     priceMin,
		"priceMax":     priceMax,
		"customPrompt": customPrompt,
	}, gateway.MethodPost)
	if err != nil {
		return err
	}
	if err := env.Err(); err != nil {
		return err
	}

	if _, err := s.store.Mutate(func(sess *session.Session) {
		sess.PriceMin = priceMin
		sess.PriceMax = priceMax
		sess.CustomPrompt = customPrompt
	}); err != nil {
		return err
	}
	s.notifier.SettingsSaved()
	return nil
}

func (s *Service) current() (session.Session, error) {
	sess, ok, err := s.store.Load()
	if err != nil {
		return session.Session{}, err
	}
	if !ok {
		return session.Session{}, ErrNotSignedIn
	}
	return sess, nil
}
