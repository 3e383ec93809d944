// Package server is the service side of the attribute protocol: it reads one
// request record per connection, hands it to a Handler and writes the reply
// before closing the connection.
//
// It exists to exercise clients (in tests and with `mtattr serve`); it is
// not a hardened network daemon.
package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"github.com/mtattr/mtattr/pkg/attr"
)

// Handler answers one request.
type Handler interface {
	ServeAttr(ctx context.Context, req attr.Record) (attr.Record, error)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, req attr.Record) (attr.Record, error)

func (f HandlerFunc) ServeAttr(ctx context.Context, req attr.Record) (attr.Record, error) {
	return f(ctx, req)
}

// Echo replies with the request itself.
var Echo = HandlerFunc(func(_ context.Context, req attr.Record) (attr.Record, error) {
	return req, nil
})

// Server serves one codec on any number of listeners.
type Server struct {
	log     *slog.Logger
	codec   attr.Codec
	handler Handler
	wg      sync.WaitGroup
}

// New creates a Server. It does not listen; call Serve.
func New(log *slog.Logger, codec attr.Codec, h Handler) *Server {
	return &Server{
		log:     log,
		codec:   codec,
		handler: h,
	}
}

// Listen opens a listener, removing a stale unix socket first.
func Listen(network, address string) (net.Listener, error) {
	if network == "unix" {
		_ = os.Remove(address)
	}
	return net.Listen(network, address)
}

// Serve accepts connections on l until ctx is cancelled, then closes l,
// waits for in-flight connections and returns ctx.Err().
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	stop := context.AfterFunc(ctx, func() {
		l.Close()
	})
	defer stop()

	for {
		conn, err := l.Accept()
		if err != nil {
			if ctx.Err() != nil {
				s.wg.Wait()
				return ctx.Err()
			}
			if errors.Is(err, net.ErrClosed) {
				s.wg.Wait()
				return err
			}
			s.log.Warn("unable to accept connection", "error", err)
			continue
		}
		s.wg.Go(func() {
			s.handle(ctx, conn)
		})
	}
}

func (s *Server) handle(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	stop := context.AfterFunc(ctx, func() {
		conn.SetDeadline(time.Unix(1, 0))
	})
	defer stop()

	log := s.log.With("remote", remoteAddr(conn), "codec", s.codec.Name())

	req, err := attr.NewDecoder(conn, s.codec).Decode()
	switch {
	case errors.Is(err, io.EOF):
		log.Debug("connection closed before request")
		return
	case errors.Is(err, attr.ErrMalformed):
		log.Warn("malformed request", "error", err)
	case err != nil:
		log.Warn("unable to read request", "error", err)
		return
	}

	resp, err := s.handler.ServeAttr(ctx, req)
	if err != nil {
		log.Warn("handler failed", "error", err)
		return
	}
	log.Debug("handled request", "request", req, "response", resp)

	if err := attr.NewEncoder(conn, s.codec).Encode(resp); err != nil {
		log.Warn("unable to write response", "error", err)
	}
}

func remoteAddr(conn net.Conn) string {
	if a := conn.RemoteAddr(); a != nil {
		return a.String()
	}
	return ""
}
