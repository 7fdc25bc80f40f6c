// Package reconcile resolves the eventual consistency between the persisted
// entitlement snapshot and the external billing system after a
// redirect-based checkout.
package reconcile
