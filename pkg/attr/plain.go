package attr

import (
	"bytes"
	"fmt"
)

// plainCodec is the "plain" format: name=value lines, then an empty line.
// Nothing is escaped.
type plainCodec struct{}

func (plainCodec) Name() string { return "plain" }

func (plainCodec) Encode(rec Record) []byte {
	n := 1
	for _, a := range rec {
		n += len(a.Name) + len(a.Value) + 2
	}
	buf := make([]byte, 0, n)
	for _, a := range rec {
		buf = append(buf, a.Name...)
		buf = append(buf, '=')
		buf = append(buf, a.Value...)
		buf = append(buf, '\n')
	}
	return append(buf, '\n')
}

func (c plainCodec) Decode(data []byte) ([]Record, error) {
	return decodeAll(c, data, parsePlain)
}

func (plainCodec) SplitSection(data []byte, atEOF bool) (int, []byte, error) {
	return splitLines(data, atEOF)
}

func parsePlain(section []byte) (Record, *MalformedError) {
	return parseLines(section, func(l []byte) (Attr, string) {
		name, value, ok := bytes.Cut(l, []byte{'='})
		if !ok {
			return Attr{}, fmt.Sprintf("attribute %q has no value", l)
		}
		return Attr{Name: string(name), Value: string(value)}, ""
	})
}
