package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// ID is an opaque stable identifier for pages, navigation items and groups.
// Exports carry identifiers either as JSON numbers or as JSON strings, so ID
// accepts both forms and always marshals back to a string.
type ID string

// UnmarshalJSON decodes a JSON string or number into the identifier.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("identifier must be a string or a number: %w", err)
	}
	*id = ID(canonicalNumber(n))
	return nil
}

// canonicalNumber renders integral numbers such as 1.0 or 1e2 in plain
// decimal form so they match the same identifier written as an integer.
func canonicalNumber(n json.Number) string {
	if i, err := n.Int64(); err == nil {
		return strconv.FormatInt(i, 10)
	}
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || math.Abs(f) >= math.MaxInt64 {
		return n.String()
	}
	return strconv.FormatInt(int64(f), 10)
}

// String returns the identifier as a plain string.
func (id ID) String() string {
	return string(id)
}
