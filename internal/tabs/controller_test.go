package tabs_test

import (
	"context"
	"encoding/json"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"roomassistant/internal/catalog"
	"roomassistant/internal/gateway"
	"roomassistant/internal/genres"
	"roomassistant/internal/logging"
	"roomassistant/internal/session"
	"roomassistant/internal/tabs"
)

// scriptedCaller routes each action to a handler, so one fetch can be held
// open while another completes.
type scriptedCaller struct {
	handlers map[string]func() (gateway.Envelope, error)
}

func (c *scriptedCaller) Call(_ context.Context, action string, _ map[string]string, _ gateway.Method) (gateway.Envelope, error) {
	handler, ok := c.handlers[action]
	if !ok {
		return gateway.Envelope{Success: true, Data: json.RawMessage("[]")}, nil
	}
	return handler()
}

type renderEvent struct {
	kind    string // "clear", "bundle", "error"
	tab     tabs.Tab
	bundle  catalog.Bundle
	message string
}

type spyRenderer struct {
	mu     sync.Mutex
	events []renderEvent
}

func (r *spyRenderer) Clear(tab tabs.Tab) {
	r.record(renderEvent{kind: "clear", tab: tab})
}

func (r *spyRenderer) RenderBundle(tab tabs.Tab, bundle catalog.Bundle) {
	r.record(renderEvent{kind: "bundle", tab: tab, bundle: bundle})
}

func (r *spyRenderer) RenderError(tab tabs.Tab, message string) {
	r.record(renderEvent{kind: "error", tab: tab, message: message})
}

func (r *spyRenderer) record(ev renderEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *spyRenderer) rendered() []renderEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []renderEvent
	for _, ev := range r.events {
		if ev.kind != "clear" {
			out = append(out, ev)
		}
	}
	return out
}

type fixedSelection struct {
	genreID   string
	genreName string
}

func (s fixedSelection) RankingSelection() (string, string, catalog.PriceFilter) {
	return s.genreID, s.genreName, catalog.PriceFilter{}
}

func newController(t *testing.T, caller gateway.Caller, renderer tabs.Renderer) *tabs.Controller {
	t.Helper()
	logger := logging.NewNop()
	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"), logger)
	svc := catalog.NewService(caller, logger)
	cache := genres.NewCache(caller)
	return tabs.NewController(svc, store, cache, fixedSelection{genreID: "1", genreName: "Interior"}, renderer, logger)
}

func TestSwitchToDiscardsSupersededFetch(t *testing.T) {
	release := make(chan struct{})
	caller := &scriptedCaller{handlers: map[string]func() (gateway.Envelope, error){
		"getDashboardData": func() (gateway.Envelope, error) {
			<-release
			return gateway.Envelope{Success: true, Data: json.RawMessage(`{"Slow":[{"code":"old","name":"Old","price":1}]}`)}, nil
		},
		"getRanking": func() (gateway.Envelope, error) {
			return gateway.Envelope{Success: true, Data: json.RawMessage(`[{"code":"new","name":"New","price":2}]`)}, nil
		},
	}}
	renderer := &spyRenderer{}
	controller := newController(t, caller, renderer)

	slowDone := controller.SwitchTo(context.Background(), tabs.TabRandom)
	fastDone := controller.SwitchTo(context.Background(), tabs.TabRanking)
	<-fastDone
	close(release)
	<-slowDone

	rendered := renderer.rendered()
	if len(rendered) != 1 {
		t.Fatalf("expected exactly one render, got %d: %+v", len(rendered), rendered)
	}
	if rendered[0].tab != tabs.TabRanking || rendered[0].bundle[0].Items[0].Code != "new" {
		t.Fatalf("stale fetch won: %+v", rendered[0])
	}
	if controller.Active() != tabs.TabRanking {
		t.Fatalf("active tab = %q", controller.Active())
	}
}

func TestSwitchToRendersErrorAndKeepsTab(t *testing.T) {
	caller := &scriptedCaller{handlers: map[string]func() (gateway.Envelope, error){
		"getDashboardData": func() (gateway.Envelope, error) {
			return gateway.Envelope{Success: false, Message: "please sign in again"}, nil
		},
	}}
	renderer := &spyRenderer{}
	controller := newController(t, caller, renderer)

	<-controller.SwitchTo(context.Background(), tabs.TabRandom)

	rendered := renderer.rendered()
	if len(rendered) != 1 || rendered[0].kind != "error" {
		t.Fatalf("rendered = %+v", rendered)
	}
	if rendered[0].message != "please sign in again" {
		t.Fatalf("message = %q", rendered[0].message)
	}
	if controller.Active() != tabs.TabRandom {
		t.Fatalf("failed fetch changed tab: %q", controller.Active())
	}
}

func TestSwitchToEmptyBundleRendersZeroSections(t *testing.T) {
	caller := &scriptedCaller{handlers: map[string]func() (gateway.Envelope, error){
		"getDashboardData": func() (gateway.Envelope, error) {
			return gateway.Envelope{Success: true, Data: json.RawMessage("{}")}, nil
		},
	}}
	renderer := &spyRenderer{}
	controller := newController(t, caller, renderer)

	<-controller.SwitchTo(context.Background(), tabs.TabRandom)

	rendered := renderer.rendered()
	if len(rendered) != 1 || rendered[0].kind != "bundle" {
		t.Fatalf("rendered = %+v", rendered)
	}
	if !rendered[0].bundle.Empty() {
		t.Fatalf("expected empty bundle, got %+v", rendered[0].bundle)
	}
}

func TestSwitchToSearchIssuesNoFetch(t *testing.T) {
	called := false
	caller := &scriptedCaller{handlers: map[string]func() (gateway.Envelope, error){
		"searchItems": func() (gateway.Envelope, error) {
			called = true
			return gateway.Envelope{Success: true, Data: json.RawMessage("[]")}, nil
		},
	}}
	renderer := &spyRenderer{}
	controller := newController(t, caller, renderer)

	select {
	case <-controller.SwitchTo(context.Background(), tabs.TabSearch):
	case <-time.After(time.Second):
		t.Fatal("done channel did not close")
	}
	if called {
		t.Fatal("tab switch alone must not run a search")
	}
	if len(renderer.rendered()) != 0 {
		t.Fatalf("rendered = %+v", renderer.rendered())
	}
}

func TestSubmitSearchSupersedesInFlightFetch(t *testing.T) {
	release := make(chan struct{})
	caller := &scriptedCaller{handlers: map[string]func() (gateway.Envelope, error){
		"getDashboardData": func() (gateway.Envelope, error) {
			<-release
			return gateway.Envelope{Success: true, Data: json.RawMessage(`{"Feed":[]}`)}, nil
		},
		"searchItems": func() (gateway.Envelope, error) {
			return gateway.Envelope{Success: true, Data: json.RawMessage(`[{"code":"s-1","name":"Shelf","price":3}]`)}, nil
		},
	}}
	renderer := &spyRenderer{}
	controller := newController(t, caller, renderer)

	slowDone := controller.SwitchTo(context.Background(), tabs.TabRandom)
	searchDone := controller.SubmitSearch(context.Background(), catalog.NewKeywordQuery("shelf", catalog.PriceFilter{}))
	<-searchDone
	close(release)
	<-slowDone

	rendered := renderer.rendered()
	if len(rendered) != 1 || rendered[0].tab != tabs.TabSearch {
		t.Fatalf("rendered = %+v", rendered)
	}
	if got := rendered[0].bundle[0].Label; got != `Search results for "shelf"` {
		t.Fatalf("label = %q", got)
	}
}
