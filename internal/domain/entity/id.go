package entity

import (
	"bytes"
	"encoding/json"
	"strings"
)

// ID is an identifier issued by the temple backend. The backend sends
// numeric ids for some records and string ids for others.
type ID string

func (id ID) String() string {
	return string(id)
}

// IsZero reports whether id is empty
func (id ID) IsZero() bool {
	return strings.TrimSpace(string(id)) == ""
}

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
		*id = ID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}
