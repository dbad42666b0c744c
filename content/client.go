package content

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/tidwall/gjson"

	"github.com/keepnetlabs/agentic-ally-agent-sub012/observe"
	"github.com/keepnetlabs/agentic-ally-agent-sub012/reqctx"
	"github.com/keepnetlabs/agentic-ally-agent-sub012/resilience"
	"github.com/keepnetlabs/agentic-ally-agent-sub012/transport"
)

// BindingName is the runtime binding the handlers prefer when the request
// context carries one.
const BindingName = "platform"

// Template is a training template as served by the platform.
type Template struct {
	ID       string
	Name     string
	Language string
}

// Item is a piece of training content to upload.
type Item struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Language string `json:"language"`
	Body     string `json:"body"`
}

// Campaign describes an enrollment request.
type Campaign struct {
	ContentID string   `json:"contentId"`
	UserIDs   []string `json:"userIds"`
	StartAt   string   `json:"startAt,omitempty"`
}

// Enrollment is the platform's answer to an enrollment request.
type Enrollment struct {
	ID     string
	Status string
}

// Client composes the execution core into content operations.
type Client struct {
	router *transport.Router
	exec   *resilience.Executor
	logger observe.Logger
}

// NewClient creates a content client. logger may be nil.
func NewClient(router *transport.Router, exec *resilience.Executor, logger observe.Logger) *Client {
	if logger == nil {
		logger = observe.NopLogger()
	}
	return &Client{router: router, exec: exec, logger: logger}
}

// FetchTemplate fetches a training template by id.
func (c *Client) FetchTemplate(ctx context.Context, id string) (*Template, error) {
	raw, err := c.call(ctx, "content.fetch-template", "/templates/get", map[string]any{
		"id": id,
	})
	if err != nil {
		return nil, err
	}

	data := gjson.GetBytes(raw, "data")
	return &Template{
		ID:       data.Get("id").String(),
		Name:     data.Get("name").String(),
		Language: data.Get("language").String(),
	}, nil
}

// Upload uploads a content item and returns its platform id.
func (c *Client) Upload(ctx context.Context, item Item) (string, error) {
	raw, err := c.call(ctx, "content.upload", "/content/upload", map[string]any{
		"companyId": reqctx.CompanyIDFromContext(ctx),
		"content":   item,
	})
	if err != nil {
		return "", err
	}

	id := gjson.GetBytes(raw, "data.id").String()
	c.logger.Info(ctx, "content uploaded",
		observe.Field{Key: "content_id", Value: id},
		observe.Field{Key: "name", Value: item.Name},
	)
	return id, nil
}

// Assign assigns content to users and returns how many assignments the
// platform accepted.
func (c *Client) Assign(ctx context.Context, contentID string, userIDs []string) (int, error) {
	raw, err := c.call(ctx, "content.assign", "/content/assign", map[string]any{
		"companyId": reqctx.CompanyIDFromContext(ctx),
		"contentId": contentID,
		"userIds":   userIDs,
	})
	if err != nil {
		return 0, err
	}
	return int(gjson.GetBytes(raw, "data.assigned").Int()), nil
}

// Enroll enrolls users into a training campaign.
func (c *Client) Enroll(ctx context.Context, campaign Campaign) (*Enrollment, error) {
	raw, err := c.call(ctx, "content.enroll", "/campaigns/enroll", map[string]any{
		"companyId": reqctx.CompanyIDFromContext(ctx),
		"campaign":  campaign,
	})
	if err != nil {
		return nil, err
	}

	data := gjson.GetBytes(raw, "data")
	return &Enrollment{
		ID:     data.Get("id").String(),
		Status: data.Get("status").String(),
	}, nil
}

// call delivers one payload under the shared executor. The error a caller
// sees is whatever the final attempt produced.
//
// A timed-out attempt keeps running after the executor has moved on, so
// each attempt publishes into a guarded slot tagged with its sequence
// number: a late write from an abandoned attempt never replaces the result
// of the attempt the executor actually returned.
func (c *Client) call(ctx context.Context, op, endpoint string, payload any) (json.RawMessage, error) {
	target := c.target(ctx, endpoint, payload)

	var (
		mu        sync.Mutex
		raw       json.RawMessage
		started   int
		published int
	)
	run := func(ctx context.Context) error {
		mu.Lock()
		started++
		seq := started
		mu.Unlock()

		res, err := c.router.Call(ctx, target)
		if err != nil {
			return err
		}

		mu.Lock()
		if seq > published {
			raw, published = res, seq
		}
		mu.Unlock()
		return nil
	}

	var err error
	if c.exec != nil {
		err = c.exec.Execute(ctx, op, run)
	} else {
		err = run(ctx)
	}
	if err != nil {
		return nil, err
	}

	mu.Lock()
	defer mu.Unlock()
	return raw, nil
}

// target builds the delivery from the ambient request state. A bound
// platform handle wins over the fallback URL; the router enforces that
// exactly one is used.
func (c *Client) target(ctx context.Context, endpoint string, payload any) transport.Target {
	rc := reqctx.Current(ctx)

	t := transport.Target{
		FallbackURL: rc.BaseURL,
		Endpoint:    endpoint,
		Payload:     payload,
		Token:       rc.Token,
	}
	if handle, ok := reqctx.BindingFromContext(ctx, BindingName); ok {
		if binding, ok := handle.(transport.Binding); ok {
			t.Binding = binding
		}
	}
	return t
}
