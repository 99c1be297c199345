package endpoint

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// DefaultKey is the single slot used by endpoints without a Resolver.
const DefaultKey = "__default__"

// DefaultResolver ignores its parameters and returns DefaultKey.
func DefaultResolver(Params) Key {
	return DefaultKey
}

// ParamResolver returns a Resolver that uses the value of one parameter as
// the key, e.g. ParamResolver("id").
func ParamResolver(name string) Resolver {
	return func(params Params) Key {
		return params[name]
	}
}

// compositeKey is the normalized form of a non-comparable key. Being its own
// type, it never equals a string a Resolver returns.
type compositeKey string

// normalizeKey makes k usable as a map key. Comparable values are returned
// unchanged, so int(1) and int64(1) stay distinct keys. Slices, maps and
// other non-comparable values are replaced by a compositeKey holding their
// JSON encoding (map keys sorted), giving value equality instead of identity.
func normalizeKey(k Key) Key {
	if k == nil {
		return nil
	}
	v := reflect.ValueOf(k)
	if v.Comparable() {
		return k
	}
	b, err := json.Marshal(k)
	if err != nil {
		return compositeKey(fmt.Sprintf("%#v", k))
	}
	return compositeKey(b)
}
