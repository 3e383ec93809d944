package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mtattr/mtattr/pkg/attr"
	"github.com/mtattr/mtattr/pkg/server"
)

// ServeCmd runs a test service. With no reply attributes it echoes requests.
type ServeCmd struct {
	Codec string   `short:"f" placeholder:"FORMAT" help:"Wire format: 0, 64 or plain (default plain)."`
	Path  string   `short:"p" xor:"listen" required:"" help:"Unix socket to listen on."`
	Inet  string   `short:"i" xor:"listen" required:"" placeholder:"HOST:PORT" help:"Network address to listen on."`
	Reply []string `short:"r" help:"Reply attribute as name=value; repeatable."`
}

func (c *ServeCmd) Run(log *slog.Logger) error {
	network, address := "unix", c.Path
	if c.Path == "" {
		network, address = "tcp", c.Inet
	}

	h, err := c.handler()
	if err != nil {
		return err
	}

	l, err := server.Listen(network, address)
	if err != nil {
		return fmt.Errorf("unable to listen on %s %s: %w", network, address, err)
	}
	log.Info("serving", "network", network, "address", l.Addr().String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = server.New(log, codec(log, c.Codec), h).Serve(ctx, l)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (c *ServeCmd) handler() (server.Handler, error) {
	if len(c.Reply) == 0 {
		return server.Echo, nil
	}
	reply, err := parseAttrs(c.Reply)
	if err != nil {
		return nil, err
	}
	return server.HandlerFunc(func(context.Context, attr.Record) (attr.Record, error) {
		return reply, nil
	}), nil
}
