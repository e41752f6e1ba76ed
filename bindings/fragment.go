package bindings

import (
	"reflect"

	"github.com/go-openapi/spec"
)

// set stores v under key unless v is the zero value of its type.
func (f Fragment) set(key string, v any) {
	if v == nil {
		return
	}
	rv := reflect.ValueOf(v)
	if rv.IsZero() || ((rv.Kind() == reflect.Slice || rv.Kind() == reflect.Map) && rv.Len() == 0) {
		return
	}
	f[key] = v
}

// withVersion returns f stamped with the binding version, or false when f
// carries nothing else.
func (f Fragment) withVersion(version string) (Fragment, bool) {
	if len(f) == 0 {
		return nil, false
	}
	f["bindingVersion"] = version
	return f, true
}

// stringObject returns an object schema whose properties are strings.
func stringObject(names []string) *spec.Schema {
	if len(names) == 0 {
		return nil
	}
	s := new(spec.Schema).Typed("object", "")
	for _, n := range names {
		s.SetProperty(n, *spec.StringProperty())
	}
	return s
}

// enumString returns a string schema restricted to a single value.
func enumString(v string) *spec.Schema {
	if v == "" {
		return nil
	}
	return spec.StringProperty().WithEnum(v)
}
