package sdmx

import (
	"errors"
	"net/http"
)

// Response is the result of a single request: the exact URL that was hit, the
// HTTP status, and the raw body. The body is never interpreted here; parsing
// belongs to an external MessageParser. Non-2xx statuses are delivered as
// data for the caller to inspect, not raised as errors.
type Response struct {
	URL        string
	StatusCode int
	Header     http.Header
	Body       []byte
}

// OK reports whether the status code is in the 2xx range.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Parse hands the raw body to the given parser.
func (r *Response) Parse(p MessageParser) (Message, error) {
	if p == nil {
		return nil, errors.New("sdmx: nil message parser")
	}
	return p.Parse(r.Body)
}

// Message is an SDMX message produced by an external parser. Its concrete
// shape is owned by the parsing library, not by this client.
type Message any

// MessageParser turns a raw SDMX body (XML or JSON) into a Message.
type MessageParser interface {
	Parse(body []byte) (Message, error)
}

// footerCarrier is implemented by parsed messages whose footer references
// follow-up URLs, as Eurostat does for large datasets.
type footerCarrier interface {
	FooterURLs() []string
}
