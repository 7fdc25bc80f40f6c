package recommend_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"roomassistant/internal/logging"
	"roomassistant/internal/notices"
	"roomassistant/internal/recommend"
)

type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) WriteText(text string) error {
	c.text = text
	return c.err
}

type fakeBrowser struct {
	opened string
	err    error
}

func (b *fakeBrowser) Open(url string) error {
	b.opened = url
	return b.err
}

func TestMarketplaceURL(t *testing.T) {
	got := recommend.MarketplaceURL("shop:10001234")
	if !strings.HasPrefix(got, "https://room.rakuten.co.jp/mix?") {
		t.Fatalf("url = %q", got)
	}
	if !strings.Contains(got, "itemcode=shop%3A10001234") {
		t.Fatalf("item code not encoded: %q", got)
	}
	if !strings.Contains(got, "scid=we_room_upc60") {
		t.Fatalf("tracking parameter missing: %q", got)
	}
}

func TestCopyAndOpenHappyPath(t *testing.T) {
	clipboard := &fakeClipboard{}
	browser := &fakeBrowser{}
	var out strings.Builder
	var delays []time.Duration

	handoff := recommend.NewHandoff(clipboard, browser, notices.NewConsole(&out), logging.NewNop()).
		WithDelay(func(d time.Duration) { delays = append(delays, d) })

	if err := handoff.CopyAndOpen("lovely table", "https://example.com/item"); err != nil {
		t.Fatalf("CopyAndOpen: %v", err)
	}
	if clipboard.text != "lovely table" {
		t.Fatalf("clipboard = %q", clipboard.text)
	}
	if browser.opened != "https://example.com/item" {
		t.Fatalf("opened = %q", browser.opened)
	}
	if len(delays) != 1 || delays[0] != 500*time.Millisecond {
		t.Fatalf("delays = %v", delays)
	}
	if !strings.Contains(out.String(), "Copied!") {
		t.Fatalf("notice = %q", out.String())
	}
}

func TestCopyAndOpenClipboardFailureStillOpens(t *testing.T) {
	clipboard := &fakeClipboard{err: errors.New("no clipboard tool")}
	browser := &fakeBrowser{}
	var out strings.Builder
	var delays []time.Duration

	handoff := recommend.NewHandoff(clipboard, browser, notices.NewConsole(&out), logging.NewNop()).
		WithDelay(func(d time.Duration) { delays = append(delays, d) })

	if err := handoff.CopyAndOpen("text", "https://example.com/item"); err != nil {
		t.Fatalf("CopyAndOpen: %v", err)
	}
	if browser.opened != "https://example.com/item" {
		t.Fatal("clipboard failure must not block navigation")
	}
	if len(delays) != 1 || delays[0] != 1000*time.Millisecond {
		t.Fatalf("delays = %v", delays)
	}
	if !strings.Contains(out.String(), "Copy failed") {
		t.Fatalf("notice = %q", out.String())
	}
}

func TestCopyAndOpenReportsBrowserFailure(t *testing.T) {
	browser := &fakeBrowser{err: errors.New("no browser")}
	handoff := recommend.NewHandoff(&fakeClipboard{}, browser, notices.NewNop(), logging.NewNop()).
		WithDelay(func(time.Duration) {})

	if err := handoff.CopyAndOpen("text", "https://example.com/item"); err == nil {
		t.Fatal("expected navigation error")
	}
}
