package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/lmittmann/tint"
	"github.com/mtattr/mtattr/pkg/attr"
	"github.com/mtattr/mtattr/pkg/server"
	"github.com/stretchr/testify/require"
)

func TestParseAttrs(t *testing.T) {
	rec, err := parseAttrs([]string{"request=smtpd_access_policy", "expr=a=b", "empty="})
	require.NoError(t, err)
	require.Equal(t, attr.Record{
		{Name: "request", Value: "smtpd_access_policy"},
		{Name: "expr", Value: "a=b"},
		{Name: "empty", Value: ""},
	}, rec)

	_, err = parseAttrs([]string{"novalue"})
	require.Error(t, err)
}

func TestRenderTemplate(t *testing.T) {
	rec := attr.Record{{Name: "action", Value: "DUNNO"}, {Name: "rcpt", Value: "a"}, {Name: "rcpt", Value: "b"}}

	out, err := renderTemplate("{{action}} {{rcpt}}", rec)
	require.NoError(t, err)
	require.Equal(t, "DUNNO a", out)

	out, err = renderTemplate("{{#attrs}}{{name}}:{{value}};{{/attrs}}", rec)
	require.NoError(t, err)
	require.Equal(t, "action:DUNNO;rcpt:a;rcpt:b;", out)
}

func TestClientConfig_FlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.yaml")
	require.NoError(t, os.WriteFile(path, []byte("codec: \"64\"\npath: /run/attr.sock\n"), 0644))

	cfg, err := targetFlags{Config: path}.clientConfig()
	require.NoError(t, err)
	require.Equal(t, "64", cfg.Codec)
	require.Equal(t, "/run/attr.sock", cfg.Path)

	cfg, err = targetFlags{Config: path, Codec: "0", Inet: "localhost:10031"}.clientConfig()
	require.NoError(t, err)
	require.Equal(t, "0", cfg.Codec)
	require.Empty(t, cfg.Path)
	require.Equal(t, "localhost:10031", cfg.Inet)
}

func TestKongParse(t *testing.T) {
	var cli CLI
	parser, err := kong.New(&cli, kong.Name("mtattr"))
	require.NoError(t, err)

	_, err = parser.Parse([]string{"-v", "-v", "send", "--codec", "0", "--path", "/run/attr.sock", "a=1", "b=2"})
	require.NoError(t, err)
	require.Equal(t, 2, cli.Verbose)
	require.Equal(t, "0", cli.Send.Target.Codec)
	require.Equal(t, "/run/attr.sock", cli.Send.Target.Path)
	require.Equal(t, []string{"a=1", "b=2"}, cli.Send.Attrs)
}

func TestKongParse_PathAndInetConflict(t *testing.T) {
	var cli CLI
	parser, err := kong.New(&cli, kong.Name("mtattr"))
	require.NoError(t, err)

	_, err = parser.Parse([]string{"send", "--path", "/run/attr.sock", "--inet", "localhost:1"})
	require.Error(t, err)
}

func TestEncodeCmd(t *testing.T) {
	var out bytes.Buffer
	cmd := &EncodeCmd{Codec: "64", Attrs: []string{"foo=4", "bar=blah"}}
	require.NoError(t, cmd.Run(testLogger(t), &stdio{out: &out}))
	require.Equal(t, "Zm9v:NA==\nYmFy:YmxhaA==\n\n", out.String())
}

func TestDecodeCmd(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("foo\x004\x00\x00bar\x00blah\x00\x00")
	cmd := &DecodeCmd{Codec: "0"}
	require.NoError(t, cmd.Run(testLogger(t), &stdio{in: in, out: &out}))
	require.Equal(t, "foo=4\n\nbar=blah\n", out.String())
}

func TestDecodeCmd_Strict(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("foo=4\nbroken\n\n")

	require.NoError(t, (&DecodeCmd{}).Run(testLogger(t), &stdio{in: in, out: &out}))
	require.Equal(t, "foo=4\n", out.String())

	in = strings.NewReader("foo=4\nbroken\n\n")
	err := (&DecodeCmd{Strict: true}).Run(testLogger(t), &stdio{in: in, out: &out})
	require.ErrorIs(t, err, attr.ErrMalformed)
}

func TestSendCmd(t *testing.T) {
	socketPath := filepath.Join(t.TempDir(), "policy.sock")
	l, err := server.Listen("unix", socketPath)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	reply := attr.Record{{Name: "action", Value: "REJECT"}}
	go func() {
		done <- server.New(testLogger(t), attr.Plain, server.HandlerFunc(func(context.Context, attr.Record) (attr.Record, error) {
			return reply, nil
		})).Serve(ctx, l)
	}()
	defer func() {
		cancel()
		<-done
	}()

	var out bytes.Buffer
	cmd := &SendCmd{
		Target: targetFlags{Path: socketPath},
		Attrs:  []string{"request=smtpd_access_policy"},
	}
	require.NoError(t, cmd.Run(testLogger(t), &stdio{out: &out}))
	require.Equal(t, "action=REJECT\n", out.String())

	out.Reset()
	cmd.Template = "{{action}}"
	require.NoError(t, cmd.Run(testLogger(t), &stdio{out: &out}))
	require.Equal(t, "REJECT\n", out.String())
}

func TestServeCmd_Handler(t *testing.T) {
	h, err := (&ServeCmd{}).handler()
	require.NoError(t, err)
	resp, err := h.ServeAttr(context.Background(), attr.Record{{Name: "a", Value: "1"}})
	require.NoError(t, err)
	require.Equal(t, attr.Record{{Name: "a", Value: "1"}}, resp)

	h, err = (&ServeCmd{Reply: []string{"action=OK"}}).handler()
	require.NoError(t, err)
	resp, err = h.ServeAttr(context.Background(), attr.Record{{Name: "a", Value: "1"}})
	require.NoError(t, err)
	require.Equal(t, attr.Record{{Name: "action", Value: "OK"}}, resp)

	_, err = (&ServeCmd{Reply: []string{"bad"}}).handler()
	require.Error(t, err)
}

func testLogger(t *testing.T) *slog.Logger {
	return slog.New(tint.NewHandler(t.Output(), &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: "15:04:05",
	}))
}
