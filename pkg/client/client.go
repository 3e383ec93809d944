// Package client performs request/response exchanges with attribute
// services over a unix or tcp socket.
//
// Each Send opens its own connection, writes one encoded record, reads until
// the service closes the stream and decodes what came back. Nothing is
// shared between calls, so a Client may be used from many goroutines.
package client

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"time"

	"github.com/mtattr/mtattr/pkg/attr"
)

// Config selects the wire format and the service to talk to.
//
// Exactly one of Path and Inet should be set. Path wins if both are.
type Config struct {
	// Codec is "0", "64" or "plain". Anything else means "plain".
	Codec string `json:"codec,omitempty"`
	// Path is a unix domain socket.
	Path string `json:"path,omitempty"`
	// Inet is a host:port network address. Port may be a service name.
	Inet string `json:"inet,omitempty"`
}

// Dialer opens the transport connection. *net.Dialer implements it.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// Client sends records to one service using one codec.
type Client struct {
	codec   attr.Codec
	network string
	address string

	dialer    Dialer
	log       *slog.Logger
	halfClose bool
	strict    bool
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger. By default nothing is logged.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// WithDialer replaces the default *net.Dialer.
func WithDialer(d Dialer) Option {
	return func(c *Client) {
		c.dialer = d
	}
}

// WithHalfClose shuts down the write side of the connection once the
// request is written, for services that read their input to EOF.
func WithHalfClose() Option {
	return func(c *Client) {
		c.halfClose = true
	}
}

// Strict makes Send return decode errors. By default a malformed response is
// logged and whatever could be recovered from it is returned.
func Strict() Option {
	return func(c *Client) {
		c.strict = true
	}
}

// New creates a client. It never fails: a missing target is reported by
// Send, and an unknown codec name falls back to attr.DefaultCodec.
func New(cfg Config, opts ...Option) *Client {
	c := &Client{
		codec:  attr.Lookup(cfg.Codec),
		dialer: &net.Dialer{},
		log:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}

	switch {
	case cfg.Path != "":
		c.network, c.address = "unix", cfg.Path
	case cfg.Inet != "":
		c.network, c.address = "tcp", cfg.Inet
	}

	if _, ok := attr.ByName(cfg.Codec); !ok && cfg.Codec != "" {
		c.log.Debug("unknown codec, using default", "codec", cfg.Codec, "default", attr.DefaultCodec)
	}
	return c
}

// Codec returns the selected codec.
func (c *Client) Codec() attr.Codec {
	return c.codec
}

// Encode returns the wire form of rec without doing any I/O.
func (c *Client) Encode(rec attr.Record) []byte {
	return c.codec.Encode(rec)
}

// Decode parses wire data without doing any I/O.
func (c *Client) Decode(data []byte) ([]attr.Record, error) {
	return c.codec.Decode(data)
}

// Send sends rec and returns every attribute of the response, all records
// flattened into one in the order received.
func (c *Client) Send(ctx context.Context, rec attr.Record) (attr.Record, error) {
	sections, err := c.SendSections(ctx, rec)
	if sections == nil {
		return nil, err
	}
	return attr.Flatten(sections), err
}

// SendSections is Send without the flattening: one record per section of the
// response.
//
// ctx bounds the whole exchange. Without a deadline or cancellation a service
// that never closes the connection blocks the call forever.
func (c *Client) SendSections(ctx context.Context, rec attr.Record) ([]attr.Record, error) {
	if c.address == "" {
		return nil, ErrNoTarget
	}

	log := c.log.With("network", c.network, "address", c.address, "codec", c.codec.Name())

	conn, err := c.dialer.DialContext(ctx, c.network, c.address)
	if err != nil {
		return nil, &ConnectionError{Network: c.network, Address: c.address, Err: err}
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}
	// Unblock a pending read or write when ctx is cancelled.
	stop := context.AfterFunc(ctx, func() {
		conn.SetDeadline(time.Unix(1, 0))
	})
	defer stop()

	log.Debug("sending request", "request", rec)
	if _, err := conn.Write(c.codec.Encode(rec)); err != nil {
		return nil, ioError(ctx, "write", err)
	}
	if c.halfClose {
		if cw, ok := conn.(interface{ CloseWrite() error }); ok {
			if err := cw.CloseWrite(); err != nil {
				return nil, ioError(ctx, "write", err)
			}
		}
	}

	resp, err := io.ReadAll(conn)
	if err != nil {
		return nil, ioError(ctx, "read", err)
	}

	sections, err := c.codec.Decode(resp)
	log.Debug("received response", "bytes", len(resp), "records", len(sections))
	if err != nil {
		if c.strict {
			return sections, err
		}
		log.Warn("malformed response", "error", err)
	}
	if sections == nil {
		sections = []attr.Record{}
	}
	return sections, nil
}

// ioError wraps err, attributing it to ctx when ctx caused it.
func ioError(ctx context.Context, op string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		err = fmt.Errorf("%w: %w", ctxErr, err)
	}
	return &IOError{Op: op, Err: err}
}
