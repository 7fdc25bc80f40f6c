// Package catalog fetches and models the item data shown on the dashboard:
// the sectioned home feed, per-genre rankings, and keyword/URL search.
package catalog
