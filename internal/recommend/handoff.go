package recommend

import (
	"log/slog"
	"net/url"
	"time"

	"roomassistant/internal/logging"
	"roomassistant/internal/notices"
)

const marketplaceBase = "https://room.rakuten.co.jp/mix"

// MarketplaceURL builds the external marketplace share URL for an item code.
func MarketplaceURL(code string) string {
	query := url.Values{}
	query.Set("itemcode", code)
	query.Set("scid", "we_room_upc60")
	return marketplaceBase + "?" + query.Encode()
}

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	WriteText(text string) error
}

// Browser opens a URL in the user's browser.
type Browser interface {
	Open(url string) error
}

// Handoff drives the copy-then-open step after a successful generation: the
// text lands on the clipboard, then the marketplace URL opens. A clipboard
// failure must not block the navigation; the URL still opens after a short
// fallback delay.
type Handoff struct {
	clipboard Clipboard
	browser   Browser
	notifier  notices.Notifier
	logger    *slog.Logger
	delay     func(time.Duration)
}

// NewHandoff wires the copy-and-open step.
func NewHandoff(clipboard Clipboard, browser Browser, notifier notices.Notifier, logger *slog.Logger) *Handoff {
	return &Handoff{
		clipboard: clipboard,
		browser:   browser,
		notifier:  notifier,
		logger:    logging.NewComponentLogger(logger, "recommend"),
		delay:     time.Sleep,
	}
}

// WithDelay overrides the navigation delay, for tests.
func (h *Handoff) WithDelay(delay func(time.Duration)) *Handoff {
	if delay != nil {
		h.delay = delay
	}
	return h
}

// CopyAndOpen copies text and opens targetURL. The returned error reports
// the navigation outcome only; a failed copy degrades to a notice.
func (h *Handoff) CopyAndOpen(text, targetURL string) error {
	if err := h.clipboard.WriteText(text); err != nil {
		h.logger.Warn("clipboard write failed",
			logging.String(logging.FieldEventType, "clipboard_write_failed"),
			logging.Error(err),
			logging.String(logging.FieldImpact, "text must be copied manually"))
		h.notifier.Failure("Copy failed. Please copy the text manually.")
		h.delay(1000 * time.Millisecond)
		return h.browser.Open(targetURL)
	}

	h.notifier.Info("Copied! Opening ROOM...")
	h.delay(500 * time.Millisecond)
	return h.browser.Open(targetURL)
}
