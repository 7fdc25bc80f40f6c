package recommend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"roomassistant/internal/catalog"
	"roomassistant/internal/gateway"
	"roomassistant/internal/logging"
	"roomassistant/internal/session"
)

// ErrBusy reports that a generation for the same item is already in
// flight. The triggering control stays disabled until the first one
// completes.
var ErrBusy = errors.New("recommendation already in progress for this item")

// Flow generates descriptive text for one item on demand, tracking a
// per-item busy flag so the same control cannot be re-entered mid-flight.
type Flow struct {
	gw     gateway.Caller
	logger *slog.Logger

	mu   sync.Mutex
	busy map[string]bool
}

// NewFlow constructs a recommendation flow.
func NewFlow(gw gateway.Caller, logger *slog.Logger) *Flow {
	return &Flow{
		gw:     gw,
		logger: logging.NewComponentLogger(logger, "recommend"),
		busy:   make(map[string]bool),
	}
}

// Busy reports whether a generation for the item code is in flight.
func (f *Flow) Busy(code string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.busy[code]
}

// Generate asks the backend for recommendation text for the item. The
// session's custom prompt is passed only for Premium plans; Free sessions
// always send an empty override even when the stored record carries one.
// The busy flag clears on every completion path.
func (f *Flow) Generate(ctx context.Context, item catalog.Item, sess session.Session) (string, error) {
	if strings.TrimSpace(item.Name) == "" {
		return "", errors.New("item name required")
	}

	f.mu.Lock()
	if f.busy[item.Code] {
		f.mu.Unlock()
		return "", ErrBusy
	}
	f.busy[item.Code] = true
	f.mu.Unlock()
	defer func() {
		f.mu.Lock()
		delete(f.busy, item.Code)
		f.mu.Unlock()
	}()

	prompt := ""
	if sess.Plan.Premium() {
		prompt = sess.CustomPrompt
	}

	env, err := f.gw.Call(ctx, "generateRecommendation", map[string]string{
		"itemName":     item.Name,
		"customPrompt": prompt,
	}, gateway.MethodPost)
	if err != nil {
		return "", err
	}
	if err := env.Err(); err != nil {
		return "", err
	}

	var text string
	if err := json.Unmarshal(env.Data, &text); err != nil {
		return "", fmt.Errorf("decode recommendation text: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return "", errors.New("empty recommendation text")
	}

	f.logger.Debug("recommendation generated",
		logging.String("item_code", item.Code),
		logging.Int("text_length", len(text)))
	return text, nil
}
