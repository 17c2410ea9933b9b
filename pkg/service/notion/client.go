package notion

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/jomei/notionapi"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskreg/pkg/domain/model"
	"github.com/secmon-lab/riskreg/pkg/utils/logging"
)

// client implements Service interface
type client struct {
	databaseID string
	httpClient *http.Client
}

// Option configures the Notion service
type Option func(*client)

// WithDatabaseID sets the risk database
func WithDatabaseID(id string) Option {
	return func(c *client) {
		c.databaseID = id
	}
}

// WithHTTPClient sets the HTTP client used for every call
func WithHTTPClient(hc *http.Client) Option {
	return func(c *client) {
		c.httpClient = hc
	}
}

// New creates a new Notion service. Tokens are supplied per call, so no
// credential is needed here.
func New(opts ...Option) (Service, error) {
	c := &client{
		databaseID: DefaultDatabaseID,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = http.DefaultClient
	}
	if c.databaseID == "" {
		return nil, goerr.New("Notion database ID is required")
	}
	id, err := model.ParseNotionID(c.databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid Notion database ID", goerr.V("databaseID", c.databaseID))
	}
	c.databaseID = id

	return c, nil
}

// statusRecorder keeps the status code of the last response of one call
type statusRecorder struct {
	base   http.RoundTripper
	status int
}

func (r *statusRecorder) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := r.base.RoundTrip(req)
	if resp != nil {
		r.status = resp.StatusCode
	}
	return resp, err
}

// api builds a client bound to the caller's token. WithRetry(1) makes the
// first 429 final, so a failed call is reported once and the user retries.
func (c *client) api(token string) (*notionapi.Client, *statusRecorder) {
	base := c.httpClient.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	rec := &statusRecorder{base: base}

	hc := *c.httpClient
	hc.Transport = rec

	return notionapi.NewClient(
		notionapi.Token(token),
		notionapi.WithHTTPClient(&hc),
		notionapi.WithRetry(1),
	), rec
}

// QueryRisks retrieves one page of records from the risk database
func (c *client) QueryRisks(ctx context.Context, token string, req model.PageRequest) (*model.RiskPage, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	logging.From(ctx).Debug("querying risk database",
		"databaseID", c.databaseID,
		"cursor", req.Cursor,
		"pageSize", req.PageSize,
	)

	api, rec := c.api(token)
	resp, err := api.Database.Query(ctx, notionapi.DatabaseID(c.databaseID), &notionapi.DatabaseQueryRequest{
		StartCursor: notionapi.Cursor(req.Cursor),
		PageSize:    req.PageSize,
	})
	if err != nil {
		return nil, wrapAPIError(err, rec.status, "failed to query risk database",
			goerr.V("databaseID", c.databaseID),
			goerr.V("cursor", req.Cursor),
		)
	}

	page := &model.RiskPage{
		Items:   make([]*model.RiskRecord, 0, len(resp.Results)),
		HasMore: resp.HasMore,
	}
	for i := range resp.Results {
		page.Items = append(page.Items, toRecord(&resp.Results[i]))
	}
	if resp.HasMore {
		page.NextCursor = model.PageCursor(resp.NextCursor)
	}

	return page, nil
}

// GetRisk retrieves a single risk page
func (c *client) GetRisk(ctx context.Context, token string, pageID string) (*model.RiskRecord, error) {
	id, err := model.ParseNotionID(pageID)
	if err != nil {
		return nil, err
	}

	api, rec := c.api(token)
	page, err := api.Page.Get(ctx, notionapi.PageID(id))
	if err != nil {
		return nil, wrapAPIError(err, rec.status, "failed to get risk page", goerr.V("pageID", id))
	}

	return toRecord(page), nil
}

// CreateRisk creates a page in the risk database
func (c *client) CreateRisk(ctx context.Context, token string, record *model.RiskRecord, emoji string) (*model.RiskRecord, error) {
	api, rec := c.api(token)
	page, err := api.Page.Create(ctx, c.BuildPayload(record, emoji))
	if err != nil {
		return nil, wrapAPIError(err, rec.status, "failed to create risk page",
			goerr.V("databaseID", c.databaseID),
			goerr.V("name", record.Name),
		)
	}

	logging.From(ctx).Info("risk created", "pageID", page.ID.String(), "name", record.Name)
	return toRecord(page), nil
}

// BuildPayload returns the create request for record in the configured database
func (c *client) BuildPayload(record *model.RiskRecord, emoji string) *notionapi.PageCreateRequest {
	return buildPayload(c.databaseID, record, emoji)
}

// wrapAPIError classifies a notionapi error. Transport failures become
// ErrNetwork; everything else the API returned becomes ErrUpstream with the
// upstream message, or the status text of the last response when the body
// carried no usable message.
func wrapAPIError(err error, status int, msg string, options ...goerr.Option) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		options = append(options, goerr.V(model.MessageKey, "network error: "+err.Error()))
		return goerr.Wrap(errors.Join(model.ErrNetwork, err), msg, options...)
	}

	message := err.Error()
	var apiErr *notionapi.Error
	var rateErr *notionapi.RateLimitedError
	switch {
	case errors.As(err, &apiErr):
		message = apiErr.Message
		if message == "" {
			message = http.StatusText(apiErr.Status)
		}
		options = append(options, goerr.V(model.StatusKey, apiErr.Status), goerr.V("code", apiErr.Code))
	case errors.As(err, &rateErr):
		message = http.StatusText(http.StatusTooManyRequests)
		options = append(options, goerr.V(model.StatusKey, http.StatusTooManyRequests))
	case status >= http.StatusBadRequest:
		// error body was not Notion's JSON error object
		message = http.StatusText(status)
		options = append(options, goerr.V(model.StatusKey, status))
	}

	options = append(options, goerr.V(model.MessageKey, message))
	return goerr.Wrap(errors.Join(model.ErrUpstream, err), msg, options...)
}
