package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringSet represents a set of labels (categories, tags, coupon restrictions)
// persisted as a JSONB array.
type StringSet []string

// Value marshals the set into JSON for Postgres.
func (s StringSet) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	buf, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// Scan decodes JSONB into the set.
func (s *StringSet) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("string set: unsupported scan type %T", value)
	}

	var result StringSet
	if err := json.Unmarshal(raw, &result); err != nil {
		return err
	}
	*s = result
	return nil
}

// Contains reports whether the set holds the given label.
func (s StringSet) Contains(label string) bool {
	for _, candidate := range s {
		if candidate == label {
			return true
		}
	}
	return false
}
