package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// StringSlice stores a []string as a JSON column.
type StringSlice []string

func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	return string(b), err
}

func (s *StringSlice) Scan(value interface{}) error {
	return scanJSON(value, s)
}

// UintMap stores a map[uint]int as a JSON column (quiz answers:
// questionID -> chosen option index).
type UintMap map[uint]int

func (m UintMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	return string(b), err
}

func (m *UintMap) Scan(value interface{}) error {
	return scanJSON(value, m)
}

func scanJSON(value interface{}, dst interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return errors.New("unsupported JSON column type")
	}
}
