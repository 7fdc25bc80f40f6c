package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Item is one catalog entry. Field names follow the backend payload; an
// item has no identity beyond its code.
type Item struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
	Price    int64  `json:"price"`
	URL      string `json:"url"`
	ShopName string `json:"shopName"`
}

// Section is one labeled group of items within a display bundle.
type Section struct {
	Label string
	Items []Item
}

// Bundle is the render payload for a tab: labeled sections in the order the
// backend emitted them. An empty bundle is a valid result, not an error.
type Bundle []Section

// Empty reports whether the bundle renders zero sections.
func (b Bundle) Empty() bool { return len(b) == 0 }

// SingleSection wraps one item list under a label, the shape ranking and
// search responses are displayed in.
func SingleSection(label string, items []Item) Bundle {
	return Bundle{{Label: label, Items: items}}
}

// DecodeBundle parses a JSON object of label -> item list while preserving
// the object's key order, so sections render in the order the backend built
// them. Standard map decoding would shuffle them.
func DecodeBundle(data json.RawMessage) (Bundle, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("decode bundle: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("decode bundle: expected object, got %v", tok)
	}

	var bundle Bundle
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decode bundle: %w", err)
		}
		label, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("decode bundle: expected section label, got %v", tok)
		}
		var items []Item
		if err := dec.Decode(&items); err != nil {
			return nil, fmt.Errorf("decode bundle section %q: %w", label, err)
		}
		bundle = append(bundle, Section{Label: label, Items: items})
	}
	return bundle, nil
}

// DecodeItems parses a bare JSON item list, the payload shape of ranking
// and search responses.
func DecodeItems(data json.RawMessage) ([]Item, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	var items []Item
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	return items, nil
}
