package dovetale

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"dovetale/pkg/config"
	errs "dovetale/pkg/errors"
	"dovetale/pkg/logger"
)

// ParamPlacement controls where GET parameters are encoded
type ParamPlacement int

const (
	// ParamsInQuery encodes GET parameters into the query string
	ParamsInQuery ParamPlacement = iota
	// ParamsInBody sends GET parameters as a form-encoded request body
	ParamsInBody
)

func (p ParamPlacement) String() string {
	if p == ParamsInBody {
		return "body"
	}
	return "query"
}

// Client represents an authenticated Dovetale API client.
// A Client is only ever returned after a successful token exchange and is
// safe for concurrent use.
type Client struct {
	clientID     string
	clientSecret string

	baseURL   string
	authURL   string
	scope     string
	placement ParamPlacement

	httpClient *http.Client
	rest       *resty.Client
	token      *oauth2.Token
	logger     logger.Logger
}

type options struct {
	baseURL    string
	authURL    string
	scope      string
	userAgent  string
	timeout    time.Duration
	placement  ParamPlacement
	httpClient *http.Client
	logger     logger.Logger
}

// Option configures a Client at construction
type Option func(*options)

// WithBaseURL overrides the data API root, e.g. a staging host
func WithBaseURL(baseURL string) Option {
	return func(o *options) { o.baseURL = baseURL }
}

// WithAuthURL overrides the token endpoint
func WithAuthURL(authURL string) Option {
	return func(o *options) { o.authURL = authURL }
}

// WithScope overrides the requested OAuth scope
func WithScope(scope string) Option {
	return func(o *options) { o.scope = scope }
}

// WithHTTPClient sets the underlying HTTP client used for every request
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

// WithTimeout bounds each HTTP request
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithLogger sets the logger for request logging
func WithLogger(l logger.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithUserAgent sets the User-Agent header on data requests
func WithUserAgent(ua string) Option {
	return func(o *options) { o.userAgent = ua }
}

// WithParamPlacement selects how GET parameters are sent
func WithParamPlacement(p ParamPlacement) Option {
	return func(o *options) { o.placement = p }
}

// FromConfig translates connection settings into client options.
// Credentials are not included.
func FromConfig(cfg config.DovetaleConfig) []Option {
	var opts []Option
	if cfg.BaseURL != "" {
		opts = append(opts, WithBaseURL(cfg.BaseURL))
	}
	if cfg.AuthURL != "" {
		opts = append(opts, WithAuthURL(cfg.AuthURL))
	}
	if cfg.Scope != "" {
		opts = append(opts, WithScope(cfg.Scope))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, WithTimeout(cfg.Timeout))
	}
	if cfg.UserAgent != "" {
		opts = append(opts, WithUserAgent(cfg.UserAgent))
	}
	if cfg.GetParamsInBody {
		opts = append(opts, WithParamPlacement(ParamsInBody))
	}
	return opts
}

// NewClient creates a Dovetale client and exchanges the credentials for an
// access token. No client is returned if the exchange fails.
func NewClient(ctx context.Context, clientID, clientSecret string, opts ...Option) (*Client, error) {
	if clientID == "" {
		return nil, errs.MissingParameter("client_id")
	}
	if clientSecret == "" {
		return nil, errs.MissingParameter("client_secret")
	}

	o := options{
		baseURL:   BaseURL,
		authURL:   AuthURL,
		scope:     Scope,
		userAgent: UserAgent,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if o.logger == nil {
		o.logger = logger.GetLogger()
	}

	hc := o.httpClient
	if hc == nil {
		hc = &http.Client{}
	}
	if o.timeout > 0 {
		// copy so a shared caller client is left untouched
		clone := *hc
		clone.Timeout = o.timeout
		hc = &clone
	}

	c := &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		baseURL:      withTrailingSlash(o.baseURL),
		authURL:      o.authURL,
		scope:        o.scope,
		placement:    o.placement,
		httpClient:   hc,
		logger:       o.logger.WithField("component", "dovetale"),
	}

	c.rest = resty.NewWithClient(hc).
		SetLogger(restyLogger{log: c.logger}).
		SetHeader("User-Agent", o.userAgent).
		SetHeader("Accept", "application/json")
	if c.placement == ParamsInBody {
		c.rest.SetAllowGetMethodPayload(true)
	}

	if err := c.authorize(ctx); err != nil {
		return nil, err
	}

	return c, nil
}

// authorize performs the client-credentials exchange
func (c *Client) authorize(ctx context.Context) error {
	cc := &clientcredentials.Config{
		ClientID:     c.clientID,
		ClientSecret: c.clientSecret,
		TokenURL:     c.authURL,
		AuthStyle:    oauth2.AuthStyleInParams,
	}
	if c.scope != "" {
		cc.Scopes = []string{c.scope}
	}

	// the token endpoint answers 200 on success; anything else is a refusal
	tokenClient := *c.httpClient
	tokenClient.Transport = tokenStatusTransport{base: c.httpClient.Transport}

	start := time.Now()
	tok, err := cc.Token(context.WithValue(ctx, oauth2.HTTPClient, &tokenClient))
	if err != nil {
		c.logger.ErrorWithFields("token exchange failed", map[string]interface{}{
			"auth_url": c.authURL,
			"duration": time.Since(start),
			"error":    err.Error(),
		})
		return errs.AuthenticationFailed(err)
	}
	if tok.AccessToken == "" {
		return errs.AuthenticationFailed(nil)
	}

	c.token = tok
	c.logger.DebugWithFields("obtained access token", map[string]interface{}{
		"token_type": tok.Type(),
		"expiry":     tok.Expiry,
		"duration":   time.Since(start),
	})
	return nil
}

// tokenStatusTransport fails token responses whose status is not 200
type tokenStatusTransport struct {
	base http.RoundTripper
}

func (t tokenStatusTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}

	res, err := base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		res.Body.Close()
		return nil, fmt.Errorf("token endpoint returned %d: %s", res.StatusCode, strings.TrimSpace(string(body)))
	}
	return res, nil
}

// Token returns a copy of the access token obtained at construction
func (c *Client) Token() oauth2.Token {
	return *c.token
}

// BaseURL returns the data API root the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ParamPlacement reports how GET parameters are sent
func (c *Client) ParamPlacement() ParamPlacement {
	return c.placement
}

func withTrailingSlash(s string) string {
	if strings.HasSuffix(s, "/") {
		return s
	}
	return s + "/"
}

// restyLogger routes resty's internal messages into the client logger
type restyLogger struct {
	log logger.Logger
}

func (r restyLogger) Errorf(format string, v ...interface{}) {
	r.log.Error(fmt.Sprintf(format, v...))
}

func (r restyLogger) Warnf(format string, v ...interface{}) {
	r.log.Warn(fmt.Sprintf(format, v...))
}

func (r restyLogger) Debugf(format string, v ...interface{}) {
	r.log.Debug(fmt.Sprintf(format, v...))
}
