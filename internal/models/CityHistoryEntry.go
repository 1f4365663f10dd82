package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// CityHistoryEntry is a previously searched city.
type CityHistoryEntry struct {
	ID   string `json:"id" example:"9b2f4c1e-3f0a-4d7e-9a53-0c8f6e2b7d11"`
	Name string `json:"name" example:"London"`
}

// UnmarshalJSON accepts a numeric id as well as a string one. Numeric ids are
// kept in their decimal text form.
func (e *CityHistoryEntry) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID   json.RawMessage `json:"id"`
		Name string          `json:"name"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	id := bytes.TrimSpace(raw.ID)
	switch {
	case len(id) == 0 || bytes.Equal(id, []byte("null")):
		e.ID = ""
	case id[0] == '"':
		if err := json.Unmarshal(id, &e.ID); err != nil {
			return err
		}
	default:
		var n json.Number
		if err := json.Unmarshal(id, &n); err != nil {
			return fmt.Errorf("history entry id must be a string or a number: %w", err)
		}
		e.ID = n.String()
	}

	e.Name = raw.Name
	return nil
}
