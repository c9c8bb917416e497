package serializer

import "reflect"

// isNil reports whether v is nil or an interface holding a nil pointer
func isNil(v DataSerializable) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Ptr && rv.IsNil()
}

// StringPtr returns a pointer to a copy of s. Useful for nullable string fields
func StringPtr(s string) *string {
	return &s
}
