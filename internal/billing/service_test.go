package billing_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"roomassistant/internal/billing"
	"roomassistant/internal/gateway"
	"roomassistant/internal/logging"
	"roomassistant/internal/notices"
	"roomassistant/internal/session"
)

// routedCaller answers each action from a fixed table and records the
// actions seen, in order.
type routedCaller struct {
	responses map[string]func() (gateway.Envelope, error)
	actions   []string
	params    map[string]map[string]string
}

func (c *routedCaller) Call(_ context.Context, action string, params map[string]string, _ gateway.Method) (gateway.Envelope, error) {
	c.actions = append(c.actions, action)
	if c.params == nil {
		c.params = make(map[string]map[string]string)
	}
	c.params[action] = params
	if handler, ok := c.responses[action]; ok {
		return handler()
	}
	return gateway.Envelope{Success: true}, nil
}

func ok(env gateway.Envelope) func() (gateway.Envelope, error) {
	return func() (gateway.Envelope, error) { return env, nil }
}

func fail(err error) func() (gateway.Envelope, error) {
	return func() (gateway.Envelope, error) { return gateway.Envelope{}, err }
}

func newStore(t *testing.T, sess *session.Session) *session.Store {
	t.Helper()
	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"), logging.NewNop())
	if sess != nil {
		if err := store.Save(*sess); err != nil {
			t.Fatal(err)
		}
	}
	return store
}

func TestCreateCheckoutRequiresSession(t *testing.T) {
	svc := billing.NewService(&routedCaller{}, newStore(t, nil), notices.NewNop(), logging.NewNop())
	if _, err := svc.CreateCheckout(context.Background()); !errors.Is(err, billing.ErrNotSignedIn) {
		t.Fatalf("expected ErrNotSignedIn, got %v", err)
	}
}

func TestCreateCheckoutReturnsURL(t *testing.T) {
	caller := &routedCaller{responses: map[string]func() (gateway.Envelope, error){
		"createCheckoutSession": ok(gateway.Envelope{Success: true, URL: "https://checkout.stripe.com/pay/cs_123"}),
	}}
	store := newStore(t, &session.Session{Email: "user@example.com", Plan: session.PlanFree})
	svc := billing.NewService(caller, store, notices.NewNop(), logging.NewNop())

	url, err := svc.CreateCheckout(context.Background())
	if err != nil {
		t.Fatalf("CreateCheckout: %v", err)
	}
	if url != "https://checkout.stripe.com/pay/cs_123" {
		t.Fatalf("url = %q", url)
	}
	if caller.params["createCheckoutSession"]["email"] != "user@example.com" {
		t.Fatalf("params = %v", caller.params)
	}
}

func TestCreateCheckoutRejectsEmptyURL(t *testing.T) {
	caller := &routedCaller{responses: map[string]func() (gateway.Envelope, error){
		"createCheckoutSession": ok(gateway.Envelope{Success: true}),
	}}
	store := newStore(t, &session.Session{Email: "user@example.com", Plan: session.PlanFree})
	svc := billing.NewService(caller, store, notices.NewNop(), logging.NewNop())

	if _, err := svc.CreateCheckout(context.Background()); err == nil {
		t.Fatal("expected error for missing URL")
	}
}

func TestCancelRequiresPremium(t *testing.T) {
	store := newStore(t, &session.Session{Email: "user@example.com", Plan: session.PlanFree})
	svc := billing.NewService(&routedCaller{}, store, notices.NewNop(), logging.NewNop())

	if err := svc.Cancel(context.Background()); !errors.Is(err, billing.ErrNotPremium) {
		t.Fatalf("expected ErrNotPremium, got %v", err)
	}
}

func TestCancelSyncsAuthoritativeState(t *testing.T) {
	caller := &routedCaller{responses: map[string]func() (gateway.Envelope, error){
		"cancelSubscription": ok(gateway.Envelope{Success: true, Message: "Cancellation scheduled."}),
		"syncWithStripe": ok(gateway.Envelope{Success: true, User: &session.Session{
			Email: "user@example.com", Plan: session.PlanPremium, CancelAtPeriodEnd: true,
		}}),
	}}
	store := newStore(t, &session.Session{Email: "user@example.com", Plan: session.PlanPremium})
	var out strings.Builder
	svc := billing.NewService(caller, store, notices.NewConsole(&out), logging.NewNop())

	if err := svc.Cancel(context.Background()); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if !strings.Contains(out.String(), "Cancellation scheduled.") {
		t.Fatalf("backend message not surfaced: %q", out.String())
	}

	sess, _, _ := store.Load()
	if !sess.CancelAtPeriodEnd {
		t.Fatalf("persisted session = %+v", sess)
	}
}

func TestCancelFlagsLocallyWhenSyncFails(t *testing.T) {
	caller := &routedCaller{responses: map[string]func() (gateway.Envelope, error){
		"cancelSubscription": ok(gateway.Envelope{Success: true, Message: "done"}),
		"syncWithStripe":     fail(errors.New("connection reset")),
	}}
	store := newStore(t, &session.Session{Email: "user@example.com", Plan: session.PlanPremium})
	svc := billing.NewService(caller, store, notices.NewNop(), logging.NewNop())

	if err := svc.Cancel(context.Background()); err != nil {
		t.Fatalf("Cancel: %v", err)
	}

	sess, _, _ := store.Load()
	if !sess.CancelAtPeriodEnd {
		t.Fatal("sync failure must still mark the cancellation locally")
	}
	if sess.Plan != session.PlanPremium {
		t.Fatalf("plan = %q", sess.Plan)
	}
}

func TestSyncOverwritesSessionWholesale(t *testing.T) {
	caller := &routedCaller{responses: map[string]func() (gateway.Envelope, error){
		"syncWithStripe": ok(gateway.Envelope{Success: true, User: &session.Session{
			Email: "user@example.com", Plan: session.PlanPremium,
		}}),
	}}
	// Stored record carries settings the backend's user object does not.
	store := newStore(t, &session.Session{
		Email: "user@example.com", Plan: session.PlanFree, PriceMin: "500", CustomPrompt: "old",
	})
	svc := billing.NewService(caller, store, notices.NewNop(), logging.NewNop())

	got, err := svc.Sync(context.Background())
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if got.Plan != session.PlanPremium {
		t.Fatalf("returned session = %+v", got)
	}

	sess, _, _ := store.Load()
	if sess.PriceMin != "" || sess.CustomPrompt != "" {
		t.Fatalf("overwrite was a merge, not a replace: %+v", sess)
	}
}

func TestSyncRejectsMissingUser(t *testing.T) {
	caller := &routedCaller{responses: map[string]func() (gateway.Envelope, error){
		"syncWithStripe": ok(gateway.Envelope{Success: true}),
	}}
	store := newStore(t, &session.Session{Email: "user@example.com", Plan: session.PlanFree})
	svc := billing.NewService(caller, store, notices.NewNop(), logging.NewNop())

	if _, err := svc.Sync(context.Background()); err == nil {
		t.Fatal("expected error for missing user object")
	}
}

func TestSaveSettingsPatchesCurrentRecord(t *testing.T) {
	caller := &routedCaller{responses: map[string]func() (gateway.Envelope, error){
		"updateSettings": ok(gateway.Envelope{Success: true}),
	}}
	store := newStore(t, &session.Session{Email: "user@example.com", Plan: session.PlanPremium})
	svc := billing.NewService(caller, store, notices.NewNop(), logging.NewNop())

	if err := svc.SaveSettings(context.Background(), "1000", "8000", "cozy tones"); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}

	params := caller.params["updateSettings"]
	if params["priceMin"] != "1000" || params["priceMax"] != "8000" || params["customPrompt"] != "cozy tones" {
		t.Fatalf("params = %v", params)
	}

	sess, _, _ := store.Load()
	if sess.PriceMin != "1000" || sess.PriceMax != "8000" || sess.CustomPrompt != "cozy tones" {
		t.Fatalf("persisted session = %+v", sess)
	}
	if sess.Plan != session.PlanPremium {
		t.Fatalf("patch clobbered plan: %+v", sess)
	}
}

func TestSaveSettingsBackendFailureLeavesRecordUntouched(t *testing.T) {
	caller := &routedCaller{responses: map[string]func() (gateway.Envelope, error){
		"updateSettings": ok(gateway.Envelope{Success: false, Message: "invalid range"}),
	}}
	store := newStore(t, &session.Session{Email: "user@example.com", Plan: session.PlanFree, PriceMin: "100"})
	svc := billing.NewService(caller, store, notices.NewNop(), logging.NewNop())

	if err := svc.SaveSettings(context.Background(), "1000", "", ""); err == nil {
		t.Fatal("expected error")
	}

	sess, _, _ := store.Load()
	if sess.PriceMin != "100" {
		t.Fatalf("record changed on failure: %+v", sess)
	}
}
