// Package attr implements the attribute record formats used to talk to
// mail-transfer-agent internal services.
//
// A record is an ordered list of name/value pairs. Three wire formats are
// supported, selected by name:
//
//	"0"      name NUL value NUL ... NUL
//	"64"     base64(name) ':' base64(value) '\n' ... '\n'
//	"plain"  name '=' value '\n' ... '\n'
//
// In every format the record ends where the pair separator appears twice in
// a row, so several records can be concatenated in one stream.
//
// # Examples
//
// The record [("foo","4"), ("bar","blah")] encodes as:
//
//	"0"      "foo\x004\x00bar\x00blah\x00\x00"
//	"64"     "Zm9v:NA==\nYmFy:YmxhaA==\n\n"
//	"plain"  "foo=4\nbar=blah\n\n"
//
// # Basic Usage
//
// One-shot encoding and decoding:
//
//	rec, _ := attr.Pairs("request", "smtpd_access_policy", "sender", "a@example.com")
//	wire := attr.Plain.Encode(rec)
//	sections, err := attr.Plain.Decode(wire)
//
// Streaming, one record per call:
//
//	enc := attr.NewEncoder(conn, attr.Base64)
//	enc.Encode(rec)
//
//	dec := attr.NewDecoder(conn, attr.Base64)
//	rec, err := dec.Decode() // io.EOF at end of stream
//
// # Lenient Decoding
//
// Decoding is best-effort. Malformed input never aborts a decode: the
// recoverable records are always returned, together with a *MalformedError
// describing the first problem found. What is recovered depends on the
// format:
//
//   - "0" and "plain": a name without a value is dropped and the rest of
//     the record is kept.
//   - "64": lines that are not name:value pairs of valid base64 are skipped.
//   - all formats: a final record that was never terminated is returned as
//     it stands.
//
// Callers that talk to peers they trust may treat ErrMalformed as a
// warning.
//
// # Known Constraints
//
// Only "64" escapes its content. In "plain" a name containing '=' or a
// name or value containing '\n' corrupts the record; in "0" a NUL does the
// same and an empty name reads as the end of the record.
package attr
