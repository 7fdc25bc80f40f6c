// Package tabs is the state machine selecting among the mutually exclusive
// dashboard views and owning the in-flight fetch of the active one.
package tabs
