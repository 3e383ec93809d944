package attr

import "sort"

// DefaultCodec is the format used when a codec name is missing or not
// recognized. Falling back instead of failing is deliberate: peers and
// configuration files in the wild are sloppy about the name.
const DefaultCodec = "plain"

// Codec is one wire format. Implementations are stateless and safe for
// concurrent use.
type Codec interface {
	// Name returns the configuration name: "0", "64" or "plain".
	Name() string

	// Encode returns the wire form of rec, including the record terminator.
	Encode(rec Record) []byte

	// Decode parses every record in data. Empty input yields no records.
	// On malformed input the recoverable records are returned along with a
	// *MalformedError.
	Decode(data []byte) ([]Record, error)

	// SplitSection is a bufio.SplitFunc returning one raw record, terminator
	// included, per token. At EOF a trailing unterminated fragment is
	// returned as a final token.
	SplitSection(data []byte, atEOF bool) (advance int, token []byte, err error)
}

// The three supported formats.
var (
	Null   Codec = nullCodec{}
	Base64 Codec = base64Codec{}
	Plain  Codec = plainCodec{}
)

var codecs = map[string]Codec{
	"0":     Null,
	"64":    Base64,
	"plain": Plain,
}

// ByName returns the codec registered under name.
func ByName(name string) (Codec, bool) {
	c, ok := codecs[name]
	return c, ok
}

// Lookup returns the codec registered under name, or the DefaultCodec when
// name is empty or unknown.
func Lookup(name string) Codec {
	if c, ok := codecs[name]; ok {
		return c
	}
	return codecs[DefaultCodec]
}

// Names returns the supported codec names in sorted order.
func Names() []string {
	names := make([]string, 0, len(codecs))
	for n := range codecs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// parseFunc parses one raw record as produced by a SplitSection. Offsets in
// the returned error are relative to the start of section.
type parseFunc func(section []byte) (Record, *MalformedError)

// decodeAll walks data record by record. The first problem is reported,
// every record is kept.
func decodeAll(c Codec, data []byte, parse parseFunc) ([]Record, error) {
	var (
		sections []Record
		first    *MalformedError
	)
	for off := 0; off < len(data); {
		advance, token, _ := c.SplitSection(data[off:], true)
		if advance <= 0 {
			break
		}
		rec, merr := parse(token)
		if merr != nil && first == nil {
			merr.Codec = c.Name()
			merr.Section = len(sections)
			merr.Offset += off
			first = merr
		}
		sections = append(sections, rec)
		off += advance
	}
	if first != nil {
		return sections, first
	}
	return sections, nil
}
