package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Response is the envelope every gateway endpoint answers with. The
// gateway reports its own status in the body; the transport-level status
// code is not authoritative. StatusCode is a pointer so that an absent
// field is distinguishable from zero, and Metadata is left raw for the
// caller to shape.
type Response struct {
	StatusCode *int            `json:"status_code"`
	Metadata   json.RawMessage `json:"metadata"`
}

var jsonNull = []byte("null")

// StatusIs reports whether the gateway included a status_code equal to code.
func (r *Response) StatusIs(code int) bool {
	return r.StatusCode != nil && *r.StatusCode == code
}

// HasMetadata reports whether the gateway included a non-null metadata field.
func (r *Response) HasMetadata() bool {
	return len(r.Metadata) > 0 && !bytes.Equal(r.Metadata, jsonNull)
}

func parseResponse(body []byte) (*Response, error) {
	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode gateway response: %w", err)
	}
	return &resp, nil
}
