// Package reflector resolves stable, human readable names for Go types.
// Names are cached per reflect.Type since they are computed on every
// dispatch and metrics observation.
package reflector

import (
	"reflect"
	"sync"
)

// NilName is reported for the dynamic type of a nil interface value.
const NilName = "<nil>"

var names sync.Map // reflect.Type -> string

// NameOf returns the name of the dynamic type of x.
func NameOf(x any) string {
	return NameForType(reflect.TypeOf(x))
}

// NameFor returns the name of type parameter T.
func NameFor[T any]() string {
	return NameForType(reflect.TypeFor[T]())
}

// NameForType returns "pkg/path.Type" for named types, "*" + elem name for
// pointers and the reflect notation for everything else ("int", "[]string").
func NameForType(t reflect.Type) string {
	if t == nil {
		return NilName
	}
	if n, ok := names.Load(t); ok {
		return n.(string)
	}
	n, _ := names.LoadOrStore(t, buildName(t))
	return n.(string)
}

func buildName(t reflect.Type) string {
	if t.Kind() == reflect.Pointer {
		return "*" + NameForType(t.Elem())
	}
	if t.Name() == "" || t.PkgPath() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}
