package timing

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Envelope is the wrapper every successful response body uses.
type Envelope[T any] struct {
	Data T `json:"data"`
}

// unwrap decodes an enveloped body and returns its payload. The payload is
// not validated: a body without "data" yields the zero value of T.
func unwrap[T any](body []byte) (T, error) {
	var env Envelope[T]
	if len(bytes.TrimSpace(body)) == 0 {
		return env.Data, nil
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return env.Data, fmt.Errorf("failed to parse response: %w", err)
	}
	return env.Data, nil
}
