package sdmx

import (
	"fmt"
	"strings"
)

// Dimension is a single dimension-code/value pair of a series key.
// An empty Value is a wildcard and encodes as an empty URL segment.
type Dimension struct {
	Code  string
	Value string
}

// Key selects series from a dataset by dimension values. Dimensions are
// encoded positionally, dot-joined, in insertion order. A dimension left out
// of the key is not encoded at all; callers wanting an explicit wildcard
// segment add the dimension with an empty value.
type Key struct {
	dims []Dimension
	raw  string
}

// KeyFromString wraps an already-encoded REST key such as "A.00.INDICE".
// The string is used verbatim as the key path segment.
func KeyFromString(s string) Key {
	return Key{raw: strings.TrimSpace(s)}
}

// With returns a copy of the key with the dimension set, preserving insertion
// order. Setting an already-present code replaces its value in place.
func (k Key) With(code, value string) Key {
	dims := make([]Dimension, len(k.dims), len(k.dims)+1)
	copy(dims, k.dims)

	for i := range dims {
		if dims[i].Code == code {
			dims[i].Value = value
			return Key{dims: dims}
		}
	}
	return Key{dims: append(dims, Dimension{Code: code, Value: value})}
}

// Wildcard returns a copy of the key with the dimension explicitly wildcarded.
func (k Key) Wildcard(code string) Key {
	return k.With(code, "")
}

// Dimensions returns the dimensions in insertion order.
func (k Key) Dimensions() []Dimension {
	out := make([]Dimension, len(k.dims))
	copy(out, k.dims)
	return out
}

// IsZero reports whether the key selects nothing, i.e. contributes no URL segment.
func (k Key) IsZero() bool {
	return k.raw == "" && len(k.dims) == 0
}

// String encodes the key for the request path.
func (k Key) String() string {
	if k.raw != "" {
		return k.raw
	}
	values := make([]string, len(k.dims))
	for i, d := range k.dims {
		values[i] = d.Value
	}
	return strings.Join(values, ".")
}

// validate rejects dimension values that would corrupt the request path.
func (k Key) validate() error {
	if k.raw != "" {
		if strings.ContainsAny(k.raw, "/?#") {
			return errInvalidKey(k.raw)
		}
		return nil
	}
	for _, d := range k.dims {
		if strings.ContainsAny(d.Value, "./?#") {
			return errInvalidKey(d.Code + "=" + d.Value)
		}
	}
	return nil
}

func errInvalidKey(detail string) error {
	return fmt.Errorf("%w: malformed key segment %q", ErrInvalidArgument, detail)
}
