package crm

import (
	"github.com/marvalsa/Integration-Web-Site/core/utils"
)

// Record is one row returned by the CRM. Keys are the API field names,
// including dotted lookups such as "Ciudad.id". Values keep the shapes the
// JSON decoder produced (json.Number for numerics, see Client).
type Record map[string]any

// Has reports whether the field is present and non-nil.
func (r Record) Has(key string) bool {
	v, ok := r[key]
	return ok && v != nil
}

// String returns the field as a string, or "" when absent.
// Numeric identifiers are normalized to their canonical decimal form, so the
// same key compares equal no matter whether a page returned it as a number or
// a string.
func (r Record) String(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	return utils.ToString(v)
}

// Int returns the field as an int, falling back to 0 on absent or
// unparseable values.
func (r Record) Int(key string) int {
	v, ok := r[key]
	if !ok || v == nil {
		return 0
	}
	return utils.ToInt(v)
}

// Float returns the field as a float64, falling back to 0 on absent or
// unparseable values. NaN never escapes.
func (r Record) Float(key string) float64 {
	v, ok := r[key]
	if !ok || v == nil {
		return 0
	}
	return utils.ToFloat(v)
}

// Bool returns the field as a bool, defaulting to false.
func (r Record) Bool(key string) bool {
	v, ok := r[key]
	if !ok || v == nil {
		return false
	}
	return utils.ToBool(v)
}

// ID returns the record's natural key normalized to a string.
func (r Record) ID() string {
	return r.String("id")
}

// Child returns a nested object field as a Record, or nil when the field is
// absent or not an object. Lookup fields arrive this way ({"id": ..., "name": ...}).
func (r Record) Child(key string) Record {
	v, ok := r[key]
	if !ok {
		return nil
	}
	if m, ok := v.(map[string]any); ok {
		return Record(m)
	}
	return nil
}

// List returns an array field as a slice of Records, skipping elements that
// are not objects. Absent fields yield an empty slice.
func (r Record) List(key string) []Record {
	v, ok := r[key]
	if !ok {
		return nil
	}
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]Record, 0, len(arr))
	for _, el := range arr {
		if m, ok := el.(map[string]any); ok {
			out = append(out, Record(m))
		}
	}
	return out
}

// MaxInt returns the maximum integer over an array field, clamped at 0.
// Scalar values degrade to Int. Multi-select CRM fields (e.g. room counts)
// arrive as arrays of strings.
func (r Record) MaxInt(key string) int {
	v, ok := r[key]
	if !ok || v == nil {
		return 0
	}
	arr, ok := v.([]any)
	if !ok {
		return r.Int(key)
	}
	max := 0
	for _, el := range arr {
		if n := utils.ToInt(el); n > max {
			max = n
		}
	}
	return max
}
