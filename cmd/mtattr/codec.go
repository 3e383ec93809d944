package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mtattr/mtattr/pkg/attr"
)

// EncodeCmd prints the wire form of a record.
type EncodeCmd struct {
	Codec string   `short:"f" placeholder:"FORMAT" help:"Wire format: 0, 64 or plain (default plain)."`
	Attrs []string `arg:"" optional:"" help:"Attributes as name=value."`
}

func (c *EncodeCmd) Run(log *slog.Logger, s *stdio) error {
	rec, err := parseAttrs(c.Attrs)
	if err != nil {
		return err
	}
	return attr.NewEncoder(s.out, codec(log, c.Codec)).Encode(rec)
}

// DecodeCmd prints every record found on stdin, separated by blank lines.
type DecodeCmd struct {
	Codec  string `short:"f" placeholder:"FORMAT" help:"Wire format: 0, 64 or plain (default plain)."`
	Strict bool   `help:"Fail on malformed input instead of printing what could be read."`
}

func (c *DecodeCmd) Run(log *slog.Logger, s *stdio) error {
	data, err := io.ReadAll(s.in)
	if err != nil {
		return fmt.Errorf("unable to read input: %w", err)
	}

	sections, err := codec(log, c.Codec).Decode(data)
	if err != nil {
		if c.Strict || !errors.Is(err, attr.ErrMalformed) {
			return err
		}
		log.Warn("malformed input", "error", err)
	}

	for i, rec := range sections {
		if i > 0 {
			if _, err := fmt.Fprintln(s.out); err != nil {
				return err
			}
		}
		if err := printRecord(s.out, rec); err != nil {
			return err
		}
	}
	return nil
}
