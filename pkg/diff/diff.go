// Package diff computes minimal key-level differences between two flat
// objects and normalizes them into a JSON-safe shape.
//
// Values held by an Object are expected to be diffable: strings, numbers,
// booleans, time.Time (or *time.Time), nil, or slices of those.
package diff

import (
	"reflect"
	"time"
)

// ISOTimeLayout renders instants the way ISO-8601 timestamps are stored in
// audit payloads: UTC with millisecond precision.
const ISOTimeLayout = "2006-01-02T15:04:05.000Z"

// Object is a flat mapping of field names to diffable values.
type Object map[string]any

// Result holds both sides of a diff restricted to the changed keys.
type Result struct {
	Before Object
	After  Object
}

// Keys returns the keys changed by the diff.
func (r Result) Keys() []string {
	keys := make([]string, 0, len(r.After))
	for key := range r.After {
		keys = append(keys, key)
	}
	return keys
}

// Empty reports whether no key changed.
func (r Result) Empty() bool {
	return len(r.Before) == 0 && len(r.After) == 0
}

// Diff compares before and after key by key and returns both objects
// restricted to the keys whose values are not deeply equal. A key missing
// from one side always counts as changed and is reported as nil on the side
// that lacks it, so both halves of the result share the same key set.
func Diff(before, after Object) Result {
	result := Result{Before: Object{}, After: Object{}}

	for key := range union(before, after) {
		beforeValue, inBefore := before[key]
		afterValue, inAfter := after[key]

		if inBefore && inAfter && Equal(beforeValue, afterValue) {
			continue
		}

		result.Before[key] = beforeValue
		result.After[key] = afterValue
	}

	return result
}

// Equal reports whether two diffable values are structurally equal. No
// coercion happens across types: "1" and 1 differ, as do int(1) and
// float64(1). Slices are compared element-wise and instants with time.Equal.
func Equal(a, b any) bool {
	if isNil(a) || isNil(b) {
		return isNil(a) && isNil(b)
	}

	if ta, ok := asTime(a); ok {
		tb, ok := asTime(b)
		return ok && ta.Equal(tb)
	}
	if _, ok := asTime(b); ok {
		return false
	}

	va := reflect.ValueOf(a)
	vb := reflect.ValueOf(b)

	if va.Kind() == reflect.Pointer || vb.Kind() == reflect.Pointer {
		return Equal(deref(va), deref(vb))
	}

	switch {
	case isList(va) && isList(vb):
		if va.Len() != vb.Len() {
			return false
		}
		for i := 0; i < va.Len(); i++ {
			if !Equal(va.Index(i).Interface(), vb.Index(i).Interface()) {
				return false
			}
		}
		return true
	case va.Kind() == reflect.Map && vb.Kind() == reflect.Map:
		if va.Type().Key() != vb.Type().Key() || va.Len() != vb.Len() {
			return false
		}
		iter := va.MapRange()
		for iter.Next() {
			other := vb.MapIndex(iter.Key())
			if !other.IsValid() || !Equal(iter.Value().Interface(), other.Interface()) {
				return false
			}
		}
		return true
	}

	return va.Type() == vb.Type() && reflect.DeepEqual(a, b)
}

// Normalize returns a copy of obj where every top-level time value is
// replaced by its ISO-8601 string. A nil object normalizes to nil.
func Normalize(obj Object) Object {
	if obj == nil {
		return nil
	}

	normalized := make(Object, len(obj))
	for key, value := range obj {
		switch v := value.(type) {
		case time.Time:
			normalized[key] = FormatTime(v)
		case *time.Time:
			if v == nil {
				normalized[key] = nil
				continue
			}
			normalized[key] = FormatTime(*v)
		default:
			normalized[key] = value
		}
	}
	return normalized
}

// FormatTime renders t using ISOTimeLayout.
func FormatTime(t time.Time) string {
	return t.UTC().Format(ISOTimeLayout)
}

func union(a, b Object) map[string]struct{} {
	keys := make(map[string]struct{}, len(a)+len(b))
	for key := range a {
		keys[key] = struct{}{}
	}
	for key := range b {
		keys[key] = struct{}{}
	}
	return keys
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func asTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, true
	}
	return time.Time{}, false
}

func deref(v reflect.Value) any {
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	return v.Interface()
}

func isList(v reflect.Value) bool {
	return v.Kind() == reflect.Slice || v.Kind() == reflect.Array
}
