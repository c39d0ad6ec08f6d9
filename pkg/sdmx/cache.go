package sdmx

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// cachedResponse is the stored form of a Response.
type cachedResponse struct {
	URL        string      `json:"url"`
	StatusCode int         `json:"status_code"`
	Header     http.Header `json:"header,omitempty"`
	Body       []byte      `json:"body"`
}

func (c *Client) cachedResponse(key string) (*Response, bool, error) {
	payload, hit, err := c.cache.GetResponse(key)
	if err != nil {
		return nil, false, fmt.Errorf("response cache get: %w", err)
	}
	if !hit {
		return nil, false, nil
	}
	var entry cachedResponse
	if err := json.Unmarshal(payload, &entry); err != nil {
		return nil, false, fmt.Errorf("decode cached response: %w", err)
	}
	return &Response{
		URL:        entry.URL,
		StatusCode: entry.StatusCode,
		Header:     entry.Header,
		Body:       entry.Body,
	}, true, nil
}

// storeResponse caches a successful response. A failed store is logged, not
// surfaced, since the caller already has the response.
func (c *Client) storeResponse(key string, resp *Response) {
	payload, err := json.Marshal(cachedResponse{
		URL:        resp.URL,
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       resp.Body,
	})
	if err != nil {
		c.log.Warnw("encode response for cache failed", "cache_key", key, "error", err)
		return
	}
	if err := c.cache.PutResponse(key, payload); err != nil {
		c.log.Warnw("response cache put failed", "cache_key", key, "error", err)
	}
}
