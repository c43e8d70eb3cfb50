package types

// Document is the provider's JSON response body, kept as an untyped tree.
// Numbers are decoded as json.Number so they re-encode byte-for-byte.
type Document map[string]any

// Clone returns a deep copy of d. Nested objects and arrays are copied;
// scalar leaves are immutable and shared.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[k] = cloneValue(e)
		}
		return m
	case Document:
		return t.Clone()
	case []any:
		s := make([]any, len(t))
		for i, e := range t {
			s[i] = cloneValue(e)
		}
		return s
	default:
		return v
	}
}
