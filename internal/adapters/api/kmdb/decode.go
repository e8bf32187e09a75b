package kmdb

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// flexID accepts ids encoded either as JSON strings or numbers.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*f = ""
		return nil
	}

	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*f = flexID(strings.TrimSpace(s))
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return fmt.Errorf("id must be a string or a number: %w", err)
	}
	*f = flexID(n.String())
	return nil
}

// listEnvelope decodes list bodies sent either as a bare array or wrapped in
// {"data": [...]}.
type listEnvelope[T any] struct {
	Items []T
}

func (l *listEnvelope[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return json.Unmarshal(trimmed, &l.Items)
	}

	var wrapped struct {
		Data  []T `json:"data"`
		Items []T `json:"items"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return err
	}
	if wrapped.Data != nil {
		l.Items = wrapped.Data
	} else {
		l.Items = wrapped.Items
	}
	return nil
}

type favoriteItem struct {
	id flexID
}

func (f *favoriteItem) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return f.id.UnmarshalJSON(trimmed)
	}

	var record favoritePayload
	if err := json.Unmarshal(trimmed, &record); err != nil {
		return err
	}
	if record.AssetID != "" {
		f.id = record.AssetID
	} else {
		f.id = record.ID
	}
	return nil
}
