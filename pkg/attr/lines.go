package attr

import "bytes"

// splitLines is the SplitSection shared by the newline formats: a record
// ends at the first empty line.
func splitLines(data []byte, atEOF bool) (int, []byte, error) {
	i := 0
	for i < len(data) {
		if data[i] == '\n' {
			return i + 1, data[:i+1], nil
		}
		n := bytes.IndexByte(data[i:], '\n')
		if n < 0 {
			break
		}
		i += n + 1
	}
	if atEOF && len(data) > 0 {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// parseLines runs line over each line of a newline-format record. A line
// that fails is dropped and only the first failure is reported.
func parseLines(section []byte, line func(l []byte) (Attr, string)) (Record, *MalformedError) {
	rec := Record{}
	var first *MalformedError
	i := 0
	for i < len(section) {
		n := bytes.IndexByte(section[i:], '\n')
		if n < 0 {
			n = len(section) - i
		}
		if n == 0 {
			return rec, first
		}
		a, reason := line(section[i : i+n])
		if reason == "" {
			rec = append(rec, a)
		} else if first == nil {
			first = &MalformedError{Offset: i, Reason: reason}
		}
		i += n + 1
	}
	if first == nil {
		first = &MalformedError{
			Offset: len(section),
			Reason: "record is not terminated",
		}
	}
	return rec, first
}
