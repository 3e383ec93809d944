package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/mtattr/mtattr/pkg/client"
)

// SendCmd sends one record and prints the reply.
type SendCmd struct {
	Target   targetFlags   `embed:""`
	Timeout  time.Duration `short:"t" help:"Give up after this long (0 waits forever)."`
	Strict   bool          `help:"Fail on a malformed reply instead of printing what could be read."`
	Template string        `short:"T" help:"Mustache template to render the reply with, e.g. '{{action}}'."`

	Attrs []string `arg:"" optional:"" help:"Request attributes as name=value."`
}

func (c *SendCmd) Run(log *slog.Logger, s *stdio) error {
	rec, err := parseAttrs(c.Attrs)
	if err != nil {
		return err
	}
	cfg, err := c.Target.clientConfig()
	if err != nil {
		return err
	}
	codec(log, cfg.Codec)

	opts := []client.Option{client.WithLogger(log)}
	if c.Strict {
		opts = append(opts, client.Strict())
	}
	cl := client.New(cfg, opts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	resp, err := cl.Send(ctx, rec)
	if err != nil {
		return err
	}
	log.Info("received reply", "attributes", len(resp))

	if c.Template != "" {
		out, err := renderTemplate(c.Template, resp)
		if err != nil {
			return fmt.Errorf("unable to render template: %w", err)
		}
		_, err = fmt.Fprintln(s.out, out)
		return err
	}
	return printRecord(s.out, resp)
}
