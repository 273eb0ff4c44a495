package dto

import (
	"encoding/json"
	"strings"
)

// JSONMessage handles the server's error message field, which is a
// plain string for most errors and an array of strings for validation
// failures.
type JSONMessage struct {
	Text string
}

// UnmarshalJSON accepts both `"msg"` and `["msg1", "msg2"]`.
func (jm *JSONMessage) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		jm.Text = s
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	jm.Text = strings.Join(list, "; ")
	return nil
}

// JSONError represents the server's error envelope.
type JSONError struct {
	Message    JSONMessage `json:"message"`
	Error      string      `json:"error"`
	StatusCode int         `json:"statusCode"`
}
