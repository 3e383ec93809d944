package main

import (
	"fmt"
	"log/slog"

	"github.com/mtattr/mtattr/pkg/attr"
	"github.com/mtattr/mtattr/pkg/client"
	"github.com/mtattr/mtattr/pkg/config"
)

// targetFlags select the codec and service. Flags override the config file.
type targetFlags struct {
	Config string `short:"c" type:"existingfile" help:"Client config file (YAML, JSON or CUE) with codec, path and inet."`
	Codec  string `short:"f" placeholder:"FORMAT" help:"Wire format: 0, 64 or plain (default plain)."`
	Path   string `short:"p" xor:"target" help:"Unix socket of the service."`
	Inet   string `short:"i" xor:"target" placeholder:"HOST:PORT" help:"Network address of the service."`
}

func (f targetFlags) clientConfig() (client.Config, error) {
	var cfg client.Config
	if f.Config != "" {
		loaded, err := config.Load[client.Config](f.Config)
		if err != nil {
			return client.Config{}, fmt.Errorf("unable to load %s: %w", f.Config, err)
		}
		cfg = *loaded
	}

	if f.Codec != "" {
		cfg.Codec = f.Codec
	}
	switch {
	case f.Path != "":
		cfg.Path, cfg.Inet = f.Path, ""
	case f.Inet != "":
		cfg.Path, cfg.Inet = "", f.Inet
	}
	return cfg, nil
}

// codec resolves a codec name leniently, warning when it had to fall back.
func codec(log *slog.Logger, name string) attr.Codec {
	if _, ok := attr.ByName(name); !ok && name != "" {
		log.Warn("unknown codec, using default", "codec", name, "default", attr.DefaultCodec)
	}
	return attr.Lookup(name)
}
