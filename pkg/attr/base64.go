package attr

import (
	"bytes"
	"encoding/base64"
	"fmt"
)

// base64Codec is the "64" format: base64(name):base64(value) lines, then an
// empty line. Any byte may appear in names and values.
type base64Codec struct{}

var b64 = base64.StdEncoding

func (base64Codec) Name() string { return "64" }

func (base64Codec) Encode(rec Record) []byte {
	n := 1
	for _, a := range rec {
		n += b64.EncodedLen(len(a.Name)) + b64.EncodedLen(len(a.Value)) + 2
	}
	buf := make([]byte, 0, n)
	for _, a := range rec {
		buf = b64.AppendEncode(buf, []byte(a.Name))
		buf = append(buf, ':')
		buf = b64.AppendEncode(buf, []byte(a.Value))
		buf = append(buf, '\n')
	}
	return append(buf, '\n')
}

func (c base64Codec) Decode(data []byte) ([]Record, error) {
	return decodeAll(c, data, parseBase64)
}

func (base64Codec) SplitSection(data []byte, atEOF bool) (int, []byte, error) {
	return splitLines(data, atEOF)
}

func parseBase64(section []byte) (Record, *MalformedError) {
	return parseLines(section, func(l []byte) (Attr, string) {
		n, v, ok := bytes.Cut(l, []byte{':'})
		if !ok {
			return Attr{}, fmt.Sprintf("line %q is not name:value", l)
		}
		name, err := b64.AppendDecode(nil, n)
		if err != nil {
			return Attr{}, fmt.Sprintf("name %q: %v", n, err)
		}
		value, err := b64.AppendDecode(nil, v)
		if err != nil {
			return Attr{}, fmt.Sprintf("value %q: %v", v, err)
		}
		return Attr{Name: string(name), Value: string(value)}, ""
	})
}
