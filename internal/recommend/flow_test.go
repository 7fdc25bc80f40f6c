package recommend_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"roomassistant/internal/catalog"
	"roomassistant/internal/gateway"
	"roomassistant/internal/logging"
	"roomassistant/internal/recommend"
	"roomassistant/internal/session"
)

type stubCaller struct {
	mu     sync.Mutex
	params map[string]string
	block  chan struct{}
	env    gateway.Envelope
	err    error
}

func (c *stubCaller) Call(_ context.Context, _ string, params map[string]string, _ gateway.Method) (gateway.Envelope, error) {
	c.mu.Lock()
	c.params = params
	block := c.block
	c.mu.Unlock()
	if block != nil {
		<-block
	}
	return c.env, c.err
}

func (c *stubCaller) lastParams() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.params
}

func textEnvelope(text string) gateway.Envelope {
	data, _ := json.Marshal(text)
	return gateway.Envelope{Success: true, Data: data}
}

var testItem = catalog.Item{Code: "shop:123", Name: "Walnut Side Table"}

func TestGenerateFreePlanSendsEmptyPrompt(t *testing.T) {
	caller := &stubCaller{env: textEnvelope("A warm, handcrafted side table.")}
	flow := recommend.NewFlow(caller, logging.NewNop())

	sess := session.Session{
		Email:        "user@example.com",
		Plan:         session.PlanFree,
		CustomPrompt: "speak like a pirate",
	}
	text, err := flow.Generate(context.Background(), testItem, sess)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if text != "A warm, handcrafted side table." {
		t.Fatalf("text = %q", text)
	}

	params := caller.lastParams()
	if got, ok := params["customPrompt"]; !ok || got != "" {
		t.Fatalf("Free plan leaked custom prompt: %q (present %v)", got, ok)
	}
	if params["itemName"] != "Walnut Side Table" {
		t.Fatalf("itemName = %q", params["itemName"])
	}
}

func TestGeneratePremiumPlanSendsStoredPrompt(t *testing.T) {
	caller := &stubCaller{env: textEnvelope("ok")}
	flow := recommend.NewFlow(caller, logging.NewNop())

	sess := session.Session{
		Email:        "user@example.com",
		Plan:         session.PlanPremium,
		CustomPrompt: "focus on craftsmanship",
	}
	if _, err := flow.Generate(context.Background(), testItem, sess); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got := caller.lastParams()["customPrompt"]; got != "focus on craftsmanship" {
		t.Fatalf("customPrompt = %q", got)
	}
}

func TestGenerateRejectsReentryWhileBusy(t *testing.T) {
	block := make(chan struct{})
	caller := &stubCaller{env: textEnvelope("ok"), block: block}
	flow := recommend.NewFlow(caller, logging.NewNop())
	sess := session.Session{Email: "u@example.com", Plan: session.PlanFree}

	firstDone := make(chan error, 1)
	go func() {
		_, err := flow.Generate(context.Background(), testItem, sess)
		firstDone <- err
	}()
	deadline := time.Now().Add(2 * time.Second)
	for !flow.Busy(testItem.Code) {
		if time.Now().After(deadline) {
			t.Fatal("first generation never marked busy")
		}
		time.Sleep(time.Millisecond)
	}

	if _, err := flow.Generate(context.Background(), testItem, sess); !errors.Is(err, recommend.ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}

	close(block)
	if err := <-firstDone; err != nil {
		t.Fatalf("first Generate: %v", err)
	}

	// Busy flag cleared on completion; the next attempt runs.
	caller.mu.Lock()
	caller.block = nil
	caller.mu.Unlock()
	if _, err := flow.Generate(context.Background(), testItem, sess); err != nil {
		t.Fatalf("Generate after completion: %v", err)
	}
}

func TestGenerateClearsBusyOnFailure(t *testing.T) {
	caller := &stubCaller{err: errors.New("boom")}
	flow := recommend.NewFlow(caller, logging.NewNop())
	sess := session.Session{Email: "u@example.com", Plan: session.PlanFree}

	if _, err := flow.Generate(context.Background(), testItem, sess); err == nil {
		t.Fatal("expected error")
	}
	if flow.Busy(testItem.Code) {
		t.Fatal("busy flag stuck after failure")
	}
}

func TestGenerateRejectsEmptyText(t *testing.T) {
	caller := &stubCaller{env: textEnvelope("   ")}
	flow := recommend.NewFlow(caller, logging.NewNop())
	sess := session.Session{Email: "u@example.com", Plan: session.PlanFree}

	if _, err := flow.Generate(context.Background(), testItem, sess); err == nil {
		t.Fatal("expected error for blank text")
	}
}

func TestGenerateRequiresItemName(t *testing.T) {
	caller := &stubCaller{env: textEnvelope("ok")}
	flow := recommend.NewFlow(caller, logging.NewNop())

	_, err := flow.Generate(context.Background(), catalog.Item{Code: "x"}, session.Session{Email: "u@example.com", Plan: session.PlanFree})
	if err == nil {
		t.Fatal("expected error for nameless item")
	}
}
