// Copyright © 2025 The failtrace authors

package inspect

import "reflect"

// Attr performs a static attribute lookup on v.  Only direct, side-effect
// free access is allowed: exported struct fields (through any number of
// pointers) and entries of string-keyed maps.  Methods and computed
// accessors are never invoked, so resolving an attribute can not run
// arbitrary code.
func Attr(v interface{}, name string) (interface{}, bool) {
	if v == nil || name == "" {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Struct:
		field := rv.FieldByName(name)
		if !field.IsValid() || !field.CanInterface() {
			return nil, false
		}
		return field.Interface(), true
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		elem := rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()))
		if !elem.IsValid() {
			return nil, false
		}
		return elem.Interface(), true
	}
	return nil, false
}
