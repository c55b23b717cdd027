// file:artkv/servs/s_art/art_nats/client.go
package art_nats

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/nats-io/nats.go"
)

// ErrRemote wraps an error reported by the responder.
var ErrRemote = errors.New("art_nats: remote error")

// Client calls a Responder.
type Client struct {
	nc      *nats.Conn
	prefix  string
	timeout time.Duration
}

// NewClient returns a client for the responder on prefix.
func NewClient(nc *nats.Conn, prefix string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Client{nc: nc, prefix: prefix, timeout: timeout}
}

// Get returns the value stored under key.
func (c *Client) Get(ctx context.Context, key []byte) ([]byte, bool, error) {
	resp, err := c.call(ctx, SubjectGet, Request{Key: key})
	return resp.Value, resp.Found, err
}

// Put stores value and returns the replaced value.
func (c *Client) Put(ctx context.Context, key, value []byte) ([]byte, bool, error) {
	resp, err := c.call(ctx, SubjectPut, Request{Key: key, Value: value})
	return resp.Value, resp.Replaced, err
}

// Delete removes key.
func (c *Client) Delete(ctx context.Context, key []byte) ([]byte, bool, error) {
	resp, err := c.call(ctx, SubjectDel, Request{Key: key})
	return resp.Value, resp.Found, err
}

// Len returns the number of keys.
func (c *Client) Len(ctx context.Context) (int, error) {
	resp, err := c.call(ctx, SubjectLen, Request{})
	return resp.Len, err
}

// call wraps nats request with context and the default timeout.
func (c *Client) call(ctx context.Context, subject string, req Request) (Response, error) {
	var resp Response
	data, err := json.Marshal(req)
	if err != nil {
		return resp, err
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	msg, err := c.nc.RequestWithContext(ctx, c.prefix+"."+subject, data)
	if err != nil {
		return resp, err
	}
	if err := json.Unmarshal(msg.Data, &resp); err != nil {
		return resp, err
	}
	if resp.Error != "" {
		return resp, errors.Join(ErrRemote, errors.New(resp.Error))
	}
	return resp, nil
}
