// Package notices is the user-facing notice surface, the terminal analogue
// of the dashboard's toast messages. Flows call semantic methods; wiring
// code that has no user attached gets a noop implementation.
package notices

import (
	"fmt"
	"io"
	"strings"
)

// Notifier receives short user-facing notices emitted by flows.
type Notifier interface {
	PaymentProcessing()
	PaymentConfirmed()
	PaymentCanceled()
	UpgradeCompleted()
	SettingsSaved()
	PlanRefreshed()
	Info(message string)
	Failure(message string)
}

// NewConsole returns a Notifier writing one notice per line to w.
func NewConsole(w io.Writer) Notifier {
	return &consoleNotifier{w: w}
}

// NewNop returns a Notifier that discards everything.
func NewNop() Notifier { return nopNotifier{} }

type consoleNotifier struct {
	w io.Writer
}

func (c *consoleNotifier) PaymentProcessing() {
	c.Info("Processing your payment. This may take a moment...")
}

func (c *consoleNotifier) PaymentConfirmed() {
	c.Info("Payment confirmed. Your plan will be reflected shortly.")
}

func (c *consoleNotifier) PaymentCanceled() {
	c.Info("Checkout was canceled.")
}

func (c *consoleNotifier) UpgradeCompleted() {
	c.Info("Upgrade to Premium is complete!")
}

func (c *consoleNotifier) SettingsSaved() {
	c.Info("Settings saved.")
}

func (c *consoleNotifier) PlanRefreshed() {
	c.Info("Plan information refreshed.")
}

func (c *consoleNotifier) Info(message string) {
	if strings.TrimSpace(message) == "" {
		return
	}
	fmt.Fprintln(c.w, message)
}

func (c *consoleNotifier) Failure(message string) {
	if strings.TrimSpace(message) == "" {
		return
	}
	// Backend messages may carry embedded newlines meant as line breaks.
	fmt.Fprintln(c.w, "Error: "+message)
}

type nopNotifier struct{}

func (nopNotifier) PaymentProcessing() {}
func (nopNotifier) PaymentConfirmed()  {}
func (nopNotifier) PaymentCanceled()   {}
func (nopNotifier) UpgradeCompleted()  {}
func (nopNotifier) SettingsSaved()     {}
func (nopNotifier) PlanRefreshed()     {}
func (nopNotifier) Info(string)        {}
func (nopNotifier) Failure(string)     {}
