package httputil

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/matzehuels/stepgraph/pkg/errors"
)

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 4 << 10

// CheckResponse returns nil for 2xx responses. Other statuses become
// UPSTREAM_ERROR values, wrapped with [RetryableError] for 429 and 5xx.
// The body is read but not closed.
func CheckResponse(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	msg := upstreamMessage(resp.Body)
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	err := errors.New(errors.ErrCodeUpstream, "upstream returned %d: %s", resp.StatusCode, msg)
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return Retryable(err)
	}
	return err
}

// upstreamMessage extracts {"error": "..."} or {"detail": "..."} from an
// error body, falling back to the trimmed text.
func upstreamMessage(r io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(r, maxErrorBody))
	var body struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	if json.Unmarshal(raw, &body) == nil {
		if body.Error != "" {
			return body.Error
		}
		if body.Detail != "" {
			return body.Detail
		}
	}
	return strings.TrimSpace(string(raw))
}
