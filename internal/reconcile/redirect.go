package reconcile

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"
)

// Confirmation is the transient signal derived from the checkout redirect
// parameters. It is consumed once at startup and never persisted.
type Confirmation struct {
	Succeeded    bool
	HasReference bool
}

// ParseRedirect derives a pending confirmation from raw redirect query
// parameters (`success` and the presence-only `session_id`). ok is false
// when no confirmation is present, in which case reconciliation is a no-op.
// A `success=true` without a reference token is treated as absent, matching
// the checkout provider's contract.
func ParseRedirect(rawQuery string) (Confirmation, bool) {
	values, err := url.ParseQuery(strings.TrimPrefix(rawQuery, "?"))
	if err != nil {
		return Confirmation{}, false
	}

	switch values.Get("success") {
	case "true":
		if values.Get("session_id") == "" {
			return Confirmation{}, false
		}
		return Confirmation{Succeeded: true, HasReference: true}, true
	case "false":
		return Confirmation{Succeeded: false}, true
	default:
		return Confirmation{}, false
	}
}

// ConsumeHandoff reads the redirect handoff file and deletes it, so a
// repeated startup cannot observe the same confirmation twice. The file
// holds the redirect URL (or bare query string) the checkout provider sent
// the user back with. The delete happens whether or not the content parses;
// a malformed handoff must not survive to the next startup either.
func ConsumeHandoff(path string) (Confirmation, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Confirmation{}, false, nil
		}
		return Confirmation{}, false, fmt.Errorf("read handoff: %w", err)
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Confirmation{}, false, fmt.Errorf("clear handoff: %w", err)
	}

	raw := strings.TrimSpace(string(data))
	if idx := strings.IndexByte(raw, '?'); idx >= 0 {
		raw = raw[idx+1:]
	}
	conf, ok := ParseRedirect(raw)
	return conf, ok, nil
}
