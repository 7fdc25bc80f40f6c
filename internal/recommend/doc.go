// Package recommend generates per-item descriptive text through the
// gateway and drives the copy-to-clipboard marketplace handoff.
package recommend
