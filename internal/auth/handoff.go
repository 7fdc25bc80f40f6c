package auth

import (
	"context"
	"sync"
)

// CredentialHandoff models the identity widget's callback as a one-shot
// asynchronous exchange: the widget resolves it with an opaque credential
// token, exactly once per sign-in attempt; later resolutions are dropped.
type CredentialHandoff struct {
	once sync.Once
	ch   chan string
}

// NewCredentialHandoff prepares a handoff for one sign-in attempt.
func NewCredentialHandoff() *CredentialHandoff {
	return &CredentialHandoff{ch: make(chan string, 1)}
}

// Resolve delivers the credential. Only the first call wins; the return
// value reports whether this call was the one that resolved the handoff.
func (h *CredentialHandoff) Resolve(credential string) bool {
	delivered := false
	h.once.Do(func() {
		h.ch <- credential
		delivered = true
	})
	return delivered
}

// Await blocks until the credential arrives or the context ends.
func (h *CredentialHandoff) Await(ctx context.Context) (string, error) {
	select {
	case credential := <-h.ch:
		return credential, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
