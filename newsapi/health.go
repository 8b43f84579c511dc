package newsapi

import (
	"context"
	"net/http"
)

// CheckReachable verifies the endpoint accepts connections without spending
// API quota. Any HTTP status counts as reachable; only transport failures
// do not.
func (c *Client) CheckReachable(ctx context.Context) error {
	if c == nil {
		return &Error{Kind: ErrorKindTransport, Message: "client is nil"}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.endpoint, nil)
	if err != nil {
		return &Error{Kind: ErrorKindTransport, Message: "build request", Cause: err}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return &Error{Kind: ErrorKindTransport, Cause: err}
	}
	defer resp.Body.Close()

	return nil
}
