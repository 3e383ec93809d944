package attr

import (
	"bytes"
	"fmt"
)

// nullCodec is the "0" format: name NUL value NUL per pair, then NUL.
type nullCodec struct{}

func (nullCodec) Name() string { return "0" }

func (nullCodec) Encode(rec Record) []byte {
	n := 1
	for _, a := range rec {
		n += len(a.Name) + len(a.Value) + 2
	}
	buf := make([]byte, 0, n)
	for _, a := range rec {
		buf = append(buf, a.Name...)
		buf = append(buf, 0)
		buf = append(buf, a.Value...)
		buf = append(buf, 0)
	}
	return append(buf, 0)
}

func (c nullCodec) Decode(data []byte) ([]Record, error) {
	return decodeAll(c, data, parseNull)
}

// SplitSection walks the input pair by pair. A NUL where a name should start
// is the terminator, so empty values do not end the record early.
func (nullCodec) SplitSection(data []byte, atEOF bool) (int, []byte, error) {
	i := 0
	for i < len(data) {
		if data[i] == 0 {
			return i + 1, data[:i+1], nil
		}
		// name
		n := bytes.IndexByte(data[i:], 0)
		if n < 0 {
			break
		}
		i += n + 1
		// value
		v := bytes.IndexByte(data[i:], 0)
		if v < 0 {
			break
		}
		i += v + 1
	}
	if atEOF && len(data) > 0 {
		return len(data), data, nil
	}
	return 0, nil, nil
}

func parseNull(section []byte) (Record, *MalformedError) {
	rec := Record{}
	i := 0
	for i < len(section) {
		if section[i] == 0 {
			return rec, nil
		}
		n := bytes.IndexByte(section[i:], 0)
		if n < 0 {
			return rec, &MalformedError{
				Offset: i,
				Reason: fmt.Sprintf("truncated name %q", section[i:]),
			}
		}
		name := section[i : i+n]
		j := i + n + 1
		v := bytes.IndexByte(section[j:], 0)
		if v < 0 {
			return rec, &MalformedError{
				Offset: i,
				Reason: fmt.Sprintf("attribute %q has no value", name),
			}
		}
		rec = append(rec, Attr{Name: string(name), Value: string(section[j : j+v])})
		i = j + v + 1
	}
	return rec, &MalformedError{
		Offset: len(section),
		Reason: "record is not terminated",
	}
}
