package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/lmittmann/tint"
)

// CLI is the mtattr command line.
type CLI struct {
	Verbose int `short:"v" type:"counter" help:"Increase verbosity (-v info, -vv debug)."`

	Send   SendCmd   `cmd:"" help:"Send one record to a service and print the reply."`
	Encode EncodeCmd `cmd:"" help:"Write the wire form of a record to stdout."`
	Decode DecodeCmd `cmd:"" help:"Read wire data from stdin and print the records."`
	Serve  ServeCmd  `cmd:"" help:"Run a test service answering every request."`
}

// stdio carries the streams commands read from and print to.
type stdio struct {
	in  io.Reader
	out io.Writer
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("mtattr"),
		kong.Description("Exchange attribute records with mail-transfer-agent services."),
		kong.UsageOnError(),
	)

	logger := newLogger(os.Stderr, cli.Verbose)
	err := ctx.Run(logger, &stdio{in: os.Stdin, out: os.Stdout})
	ctx.FatalIfErrorf(err)
}

func newLogger(w io.Writer, verbosity int) *slog.Logger {
	level := slog.LevelWarn
	switch verbosity {
	case 0:
	case 1:
		level = slog.LevelInfo
	default:
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05",
	}))
}
