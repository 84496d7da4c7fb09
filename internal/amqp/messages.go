package amqp

import (
	"encoding/json"
	"time"
)

// ItemsChangedMessage announces that the persisted item list changed.
// It carries only the storage key and a revision counter; consumers (the
// widget renderer, the sheets exporter) fetch the current list from the
// store themselves, so a stale or duplicate message is harmless.
type ItemsChangedMessage struct {
	Key       string    `json:"key"`
	Revision  int64     `json:"revision"`
	Timestamp time.Time `json:"timestamp"`
}

func NewItemsChangedMessage(key string, revision int64) *ItemsChangedMessage {
	return &ItemsChangedMessage{
		Key:       key,
		Revision:  revision,
		Timestamp: time.Now(),
	}
}

func (m *ItemsChangedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ItemsChangedMessageFromJSON(data []byte) (*ItemsChangedMessage, error) {
	var m ItemsChangedMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
