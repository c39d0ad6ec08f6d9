package sdmx

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dbnomics/widukind-sdmx/pkg/httpclient"
)

// Package sdmx is a client for the Widukind / DB.nomics SDMX REST API:
// it resolves the API endpoint, constructs resource URLs, and dispatches
// single GET requests, leaving message parsing to an external collaborator.

const defaultHTTPTimeout = 30 * time.Second

// FooterPolicy controls the follow-up on footer URLs found in parsed
// messages: up to Attempts requests, waiting Wait before each one. It only
// applies when the client has a MessageParser configured.
type FooterPolicy struct {
	Wait     time.Duration
	Attempts int
}

// DefaultFooterPolicy matches the conventional Eurostat large-dataset behavior.
var DefaultFooterPolicy = FooterPolicy{Wait: 30 * time.Second, Attempts: 3}

// Cache replays previously fetched responses for requests carrying a cache key.
type Cache interface {
	GetResponse(key string) ([]byte, bool, error)
	PutResponse(key string, payload []byte) error
}

// Client issues SDMX REST requests for a single agency. It is immutable after
// construction and safe for concurrent use when its transport is.
type Client struct {
	agency  Agency
	baseURL string
	http    httpclient.Client
	log     *zap.SugaredLogger
	cache   Cache
	parser  MessageParser
	footer  FooterPolicy
}

type options struct {
	baseURL   string
	registry  *Registry
	http      httpclient.Client
	log       *zap.SugaredLogger
	cache     Cache
	parser    MessageParser
	footer    FooterPolicy
	footerSet bool
}

// Option customizes client construction.
type Option func(*options)

// WithBaseURL overrides the API base URL, taking precedence over WIDUKIND_API_URL.
func WithBaseURL(baseURL string) Option {
	return func(o *options) { o.baseURL = baseURL }
}

// WithRegistry replaces the built-in agency registry.
func WithRegistry(reg *Registry) Option {
	return func(o *options) { o.registry = reg }
}

// WithHTTPClient injects the transport. Callers needing bounded latency set
// their timeout here.
func WithHTTPClient(client httpclient.Client) Option {
	return func(o *options) { o.http = client }
}

// WithLogger attaches a logger for request tracing.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(o *options) { o.log = log }
}

// WithCache enables opt-in response caching for requests that set a CacheKey.
func WithCache(cache Cache) Option {
	return func(o *options) { o.cache = cache }
}

// WithParser attaches the external SDMX message parser, enabling Response
// parsing helpers and footer follow-up.
func WithParser(p MessageParser) Option {
	return func(o *options) { o.parser = p }
}

// WithFooterPolicy tunes footer follow-up. A zero Attempts disables it.
func WithFooterPolicy(policy FooterPolicy) Option {
	return func(o *options) {
		o.footer = policy
		o.footerSet = true
	}
}

// New builds a client for the given agency. The base URL is resolved once:
// explicit option, else WIDUKIND_API_URL, else the built-in default. Agencies
// registered with their own endpoint (e.g. ESTAT) keep it; unknown agencies
// are accepted as-is and bound to the resolved base URL.
func New(agencyID string, opts ...Option) (*Client, error) {
	agencyID = strings.TrimSpace(agencyID)
	if agencyID == "" {
		return nil, fmt.Errorf("%w: agency must not be empty", ErrInvalidArgument)
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	baseURL, err := ResolveBaseURL(o.baseURL)
	if err != nil {
		return nil, err
	}

	registry := o.registry
	if registry == nil {
		registry = DefaultRegistry()
	}
	agency, ok := registry.ByID(agencyID)
	if !ok {
		agency = Agency{ID: agencyID}
	}
	if agency.URL != "" {
		if err := validateBaseURL(agency.URL); err != nil {
			return nil, err
		}
		baseURL = strings.TrimRight(agency.URL, "/")
	}

	httpClient := o.http
	if httpClient == nil {
		httpClient = httpclient.NewRestyClient(defaultHTTPTimeout)
	}
	log := o.log
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	footer := DefaultFooterPolicy
	if o.footerSet {
		footer = o.footer
	}

	return &Client{
		agency:  agency,
		baseURL: baseURL,
		http:    httpClient,
		log:     log,
		cache:   o.cache,
		parser:  o.parser,
		footer:  footer,
	}, nil
}

// Request describes one SDMX query. Resource is required; ID and Key are
// appended to the URL only when present. Params and Headers override the
// defaults derived from the resource type and agency. CacheKey opts the
// request into the client's cache; ToFile tees the raw body to a file.
type Request struct {
	Resource ResourceType
	ID       string
	Key      Key
	Params   map[string]string
	Headers  map[string]string
	CacheKey string
	ToFile   string
}

// Agency returns the agency this client is bound to.
func (c *Client) Agency() Agency { return c.agency }

// BaseURL returns the resolved API base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// BuildURL constructs the request URL without any network call:
// {base}/{resource_type}/{agency}[/{resource_id}][/{key}], joining only the
// non-empty segments.
func (c *Client) BuildURL(req Request) (string, error) {
	if !req.Resource.Valid() {
		return "", fmt.Errorf("%w: resource type %q must be one of %v", ErrInvalidArgument, req.Resource, ResourceTypes())
	}
	if err := req.Key.validate(); err != nil {
		return "", err
	}

	parts := []string{c.baseURL, string(req.Resource), c.agency.ID}
	if req.ID != "" {
		parts = append(parts, req.ID)
	}
	if !req.Key.IsZero() {
		parts = append(parts, req.Key.String())
	}
	return strings.Join(parts, "/"), nil
}

// Get issues a single GET for the request and returns the raw response.
// Non-2xx statuses are returned as data; only transport failures and
// pre-flight validation produce errors. There are no retries.
func (c *Client) Get(ctx context.Context, req Request) (*Response, error) {
	if req.CacheKey != "" && c.cache != nil {
		resp, hit, err := c.cachedResponse(req.CacheKey)
		if err != nil {
			return nil, err
		}
		if hit {
			c.log.Debugw("response cache hit", "cache_key", req.CacheKey, "url", resp.URL)
			return resp, nil
		}
	}

	u, err := c.BuildURL(req)
	if err != nil {
		return nil, err
	}

	resp, err := c.fetch(ctx, u, c.queryParams(req), c.requestHeaders(req), req.ToFile)
	if err != nil {
		return nil, err
	}

	if followed, ok := c.followFooter(ctx, resp, req); ok {
		resp = followed
	}

	if req.CacheKey != "" && c.cache != nil && resp.OK() {
		c.storeResponse(req.CacheKey, resp)
	}
	return resp, nil
}

// GetURL fetches a pre-fabricated URL, bypassing URL construction entirely.
func (c *Client) GetURL(ctx context.Context, rawURL string, headers map[string]string) (*Response, error) {
	return c.fetch(ctx, rawURL, nil, headers, "")
}

func (c *Client) fetch(ctx context.Context, url string, query, headers map[string]string, toFile string) (*Response, error) {
	c.log.Infow("requesting resource", "url", url)

	httpResp, err := c.http.Get(ctx, url, query, headers)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %v", ErrTransport, url, err)
	}

	raw := httpResp.Body()
	if toFile != "" {
		if err := writeBodyFile(toFile, raw); err != nil {
			return nil, err
		}
	}
	body, err := unzipBody(raw)
	if err != nil {
		return nil, err
	}

	return &Response{
		URL:        url,
		StatusCode: httpResp.StatusCode(),
		Header:     httpResp.Header(),
		Body:       body,
	}, nil
}

// queryParams merges caller params with the conventional SDMX defaults:
// structure queries for a specific id resolve all references, category
// schemes resolve parents and siblings.
func (c *Client) queryParams(req Request) map[string]string {
	params := make(map[string]string, len(req.Params)+1)
	for k, v := range req.Params {
		params[k] = v
	}
	if _, ok := params["references"]; !ok {
		switch {
		case (req.Resource == ResourceDataflow || req.Resource == ResourceDataStructure) && req.ID != "":
			params["references"] = "all"
		case req.Resource == ResourceCategoryScheme:
			params["references"] = "parentsandsiblings"
		}
	}
	if len(params) == 0 {
		return nil
	}
	return params
}

// requestHeaders returns the caller's headers, or the agency's per-resource
// defaults when the caller supplies none.
func (c *Client) requestHeaders(req Request) map[string]string {
	if len(req.Headers) > 0 {
		return req.Headers
	}
	return c.agency.DefaultHeaders(req.Resource)
}

// followFooter re-requests the first footer URL of a parsed message, waiting
// between attempts. Returns the follow-up response and true on success.
func (c *Client) followFooter(ctx context.Context, resp *Response, req Request) (*Response, bool) {
	if c.parser == nil || c.footer.Attempts <= 0 || !resp.OK() {
		return nil, false
	}
	msg, err := c.parser.Parse(resp.Body)
	if err != nil {
		return nil, false
	}
	carrier, ok := msg.(footerCarrier)
	if !ok {
		return nil, false
	}
	urls := carrier.FooterURLs()
	if len(urls) == 0 {
		return nil, false
	}

	target := urls[0]
	c.log.Infow("footer URL found, following", "url", target, "attempts", c.footer.Attempts, "wait", c.footer.Wait)

	for attempt := 1; attempt <= c.footer.Attempts; attempt++ {
		timer := time.NewTimer(c.footer.Wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, false
		case <-timer.C:
		}

		followed, err := c.fetch(ctx, target, nil, req.Headers, req.ToFile)
		if err != nil {
			c.log.Warnw("footer follow-up attempt failed", "attempt", attempt, "error", err)
			continue
		}
		return followed, true
	}
	return nil, false
}
