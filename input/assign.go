package input

import (
	"math"
	"reflect"
)

// assign stores v to dst. Numbers are converted to any numeric kind if the value fits.
func (n *node) assign(dst, v reflect.Value) error {
	if !v.IsValid() {
		dst.Set(reflect.Zero(dst.Type()))
		return nil
	}

	dt := dst.Type()
	if v.Type().AssignableTo(dt) {
		dst.Set(v)
		return nil
	}

	switch {
	case isInt(v.Kind()):
		return n.assignInt(dst, v, v.Int())
	case isUint(v.Kind()):
		return n.assignUint(dst, v, v.Uint())
	case isFloat(v.Kind()):
		if isFloat(dst.Kind()) {
			if dst.OverflowFloat(v.Float()) {
				return n.overflow(dst, v)
			}
			dst.SetFloat(v.Float())
			return nil
		}
	}

	if v.Kind() == dst.Kind() && v.Type().ConvertibleTo(dt) {
		dst.Set(v.Convert(dt))
		return nil
	}

	return bindError(n, "cannot store %s to %s", v.Type(), dt)
}

func (n *node) assignInt(dst, v reflect.Value, i int64) error {
	switch {
	case isInt(dst.Kind()):
		if dst.OverflowInt(i) {
			return n.overflow(dst, v)
		}
		dst.SetInt(i)
	case isUint(dst.Kind()):
		if i < 0 || dst.OverflowUint(uint64(i)) {
			return n.overflow(dst, v)
		}
		dst.SetUint(uint64(i))
	case isFloat(dst.Kind()):
		dst.SetFloat(float64(i))
	default:
		return bindError(n, "cannot store %s to %s", v.Type(), dst.Type())
	}
	return nil
}

func (n *node) assignUint(dst, v reflect.Value, u uint64) error {
	switch {
	case isInt(dst.Kind()):
		if u > math.MaxInt64 || dst.OverflowInt(int64(u)) {
			return n.overflow(dst, v)
		}
		dst.SetInt(int64(u))
	case isUint(dst.Kind()):
		if dst.OverflowUint(u) {
			return n.overflow(dst, v)
		}
		dst.SetUint(u)
	case isFloat(dst.Kind()):
		dst.SetFloat(float64(u))
	default:
		return bindError(n, "cannot store %s to %s", v.Type(), dst.Type())
	}
	return nil
}

func (n *node) overflow(dst, v reflect.Value) error {
	return bindError(n, "value %v does not fit in %s", v.Interface(), dst.Type())
}

func isInt(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Int64
}

func isUint(k reflect.Kind) bool {
	return k >= reflect.Uint && k <= reflect.Uintptr
}

func isFloat(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}
