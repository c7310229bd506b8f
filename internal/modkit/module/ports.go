package module

import "reflect"

// PortSet marks the bundles modules hand back from Ports. The concrete port
// types belong to the module that declares them
type PortSet = any

// PortsOf digs an implementation of T out of m's port bundle. The bundle may
// be the port itself, a struct carrying ports in exported fields, or a
// pointer to one. ok is false when nothing matches
func PortsOf[T any](m Module) (T, bool) {
	var zero T
	bundle := m.Ports()
	if bundle == nil {
		return zero, false
	}
	if hit, ok := bundle.(T); ok {
		return hit, true
	}

	rv := reflect.ValueOf(bundle)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return zero, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return zero, false
	}
	for i := 0; i < rv.NumField(); i++ {
		fv := rv.Field(i)
		if !fv.CanInterface() {
			continue
		}
		if hit, ok := fv.Interface().(T); ok {
			return hit, true
		}
	}
	return zero, false
}

// MustPortsOf panics when the port is missing, naming the module
func MustPortsOf[T any](m Module) T {
	hit, ok := PortsOf[T](m)
	if !ok {
		panic("module: " + m.Name() + " exposes no port of the requested type")
	}
	return hit
}
