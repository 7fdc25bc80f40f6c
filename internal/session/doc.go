// Package session owns the persisted snapshot of the signed-in user and
// plan entitlement. The store is pure get/set/clear with no network access;
// refreshing the snapshot from the backend is the callers' business.
package session
