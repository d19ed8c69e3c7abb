// internal/bus/nats.go
package bus

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
)

// Client is a thin JSON publisher over NATS. A nil *Client is valid and
// drops every publish, so the service runs unchanged without a broker.
type Client struct{ nc *nats.Conn }

func Connect(url string) (*Client, error) {
	nc, err := nats.Connect(url,
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.Timeout(5*time.Second),
	)
	if err != nil {
		return nil, err
	}
	return &Client{nc: nc}, nil
}

func (c *Client) Close() {
	if c != nil && c.nc != nil {
		_ = c.nc.Drain()
	}
}

func (c *Client) Conn() *nats.Conn {
	if c == nil {
		return nil
	}
	return c.nc
}

func (c *Client) PublishJSON(subject string, v any) error {
	if c == nil || c.nc == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.nc.Publish(subject, b)
}

// QueueSubscribeJSON delivers each message on the subject to exactly one
// member of the queue group. The handler context carries the given timeout.
func (c *Client) QueueSubscribeJSON(subject, queue string, timeout time.Duration, handler func(ctx context.Context, data []byte)) (*nats.Subscription, error) {
	return c.nc.QueueSubscribe(subject, queue, func(msg *nats.Msg) {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		handler(ctx, msg.Data)
	})
}
