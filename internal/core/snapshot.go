package core

import (
	"encoding/json"
	"fmt"
)

// EncodeItems serializes the item list for the key-value store: a JSON
// array of item records under a single key, the same shape the mobile
// clients persist.
func EncodeItems(items []Item) (string, error) {
	b, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encode items: %w", err)
	}
	return string(b), nil
}

// DecodeItems parses a persisted item list. An empty payload decodes to an
// empty list, not an error.
func DecodeItems(data string) ([]Item, error) {
	if data == "" {
		return nil, nil
	}
	var items []Item
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	return items, nil
}
