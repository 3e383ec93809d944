package attr

import (
	"bufio"
	"errors"
	"io"
)

// Encoder writes records to an io.Writer.
//
// Writes are unbuffered; each Encode is a single Write of the whole record.
type Encoder struct {
	w     io.Writer
	codec Codec
}

// NewEncoder creates an encoder writing codec's format to w.
func NewEncoder(w io.Writer, codec Codec) *Encoder {
	return &Encoder{w: w, codec: codec}
}

// Encode writes rec and its terminator.
func (e *Encoder) Encode(rec Record) error {
	_, err := e.w.Write(e.codec.Encode(rec))
	return err
}

// Decoder reads records from an io.Reader, one per call.
//
// The decoder buffers internally and may read past the end of the record it
// returns; do not share the underlying reader with other consumers.
type Decoder struct {
	s       *bufio.Scanner
	codec   Codec
	section int
	offset  int // Track position for error reporting
}

// NewDecoder creates a decoder reading codec's format from r.
//
// Example:
//
//	dec := attr.NewDecoder(conn, attr.Null, attr.MaxSize(64*1024))
func NewDecoder(r io.Reader, codec Codec, opts ...Option) *Decoder {
	cfg := &config{
		maxSize: defaultMaxSize,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, min(4096, cfg.maxSize)), cfg.maxSize)
	s.Split(codec.SplitSection)

	return &Decoder{
		s:     s,
		codec: codec,
	}
}

// Decode reads the next record.
//
// Returns io.EOF when the stream ends. Like Codec.Decode, a malformed record
// is still returned, together with a *MalformedError.
func (d *Decoder) Decode() (Record, error) {
	if !d.s.Scan() {
		if err := d.s.Err(); err != nil {
			if errors.Is(err, bufio.ErrTooLong) {
				return nil, ErrTooLarge
			}
			return nil, err
		}
		return nil, io.EOF
	}

	raw := d.s.Bytes()
	sections, err := d.codec.Decode(raw)
	var merr *MalformedError
	if errors.As(err, &merr) {
		merr.Section += d.section
		merr.Offset += d.offset
	}
	d.section++
	d.offset += len(raw)

	if len(sections) == 0 {
		return Record{}, err
	}
	return sections[0], err
}
