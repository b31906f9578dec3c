package shopify

import "encoding/json"

// Record is one resource object as returned by the Admin API or the fixture
// provider. Live records come straight out of JSON decoding, so numeric values
// may be float64, int or json.Number; the accessors coerce.
type Record map[string]any

type Records []Record

// Int returns the named field as an int64, or 0 when absent or non-numeric.
func (r Record) Int(key string) int64 {
	switch v := r[key].(type) {
	case int:
		return int64(v)
	case int64:
		return v
	case float64:
		return int64(v)
	case json.Number:
		n, _ := v.Int64()
		return n
	default:
		return 0
	}
}

// Float returns the named field as a float64, or 0 when absent or non-numeric.
func (r Record) Float(key string) float64 {
	switch v := r[key].(type) {
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case float64:
		return v
	case json.Number:
		f, _ := v.Float64()
		return f
	default:
		return 0
	}
}

// Str returns the named field as a string, or "" when absent.
func (r Record) Str(key string) string {
	s, _ := r[key].(string)
	return s
}

// List returns a nested list of records, such as an order's line_items.
func (r Record) List(key string) Records {
	switch v := r[key].(type) {
	case Records:
		return v
	case []Record:
		return v
	case []any:
		out := make(Records, 0, len(v))
		for _, item := range v {
			if m, ok := item.(map[string]any); ok {
				out = append(out, Record(m))
			}
		}
		return out
	default:
		return nil
	}
}
