package ingest

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/angelmondragon/storefront-insights/pkg/enums"
)

// Envelope is the canonical commerce-event Pub/Sub envelope published by the
// platform connector.
type Envelope struct {
	EventID    string                  `json:"event_id"`
	EventType  enums.CommerceEventType `json:"event_type"`
	OccurredAt time.Time               `json:"occurred_at"`
	Payload    json.RawMessage         `json:"payload"`
}

// PayloadMap converts the raw payload to a map for keyed access.
func (e Envelope) PayloadMap() (map[string]any, error) {
	if len(bytes.TrimSpace(e.Payload)) == 0 {
		return map[string]any{}, nil
	}
	var out map[string]any
	if err := json.Unmarshal(e.Payload, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = map[string]any{}
	}
	return out, nil
}
