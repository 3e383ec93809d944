package attr

import "log/slog"

// Attr is a single name/value pair. Both are byte strings and need not be
// valid UTF-8.
type Attr struct {
	Name  string
	Value string
}

// Record is an ordered list of attributes. Names may repeat.
type Record []Attr

// Pairs builds a record from an interleaved name, value, name, value... list.
func Pairs(kv ...string) (Record, error) {
	if len(kv)%2 != 0 {
		return nil, ErrOddPairs
	}
	rec := make(Record, 0, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		rec = append(rec, Attr{Name: kv[i], Value: kv[i+1]})
	}
	return rec, nil
}

// Flatten returns the record as an interleaved name/value list, the inverse
// of Pairs.
func (r Record) Flatten() []string {
	out := make([]string, 0, 2*len(r))
	for _, a := range r {
		out = append(out, a.Name, a.Value)
	}
	return out
}

// Get returns the value of the first attribute called name.
func (r Record) Get(name string) (string, bool) {
	for _, a := range r {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// LogValue renders the record as a slog group so it can be passed directly
// as a log attribute.
func (r Record) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(r))
	for _, a := range r {
		attrs = append(attrs, slog.String(a.Name, a.Value))
	}
	return slog.GroupValue(attrs...)
}

// Flatten concatenates decoded records, in order, into one record.
func Flatten(sections []Record) Record {
	out := Record{}
	for _, s := range sections {
		out = append(out, s...)
	}
	return out
}
