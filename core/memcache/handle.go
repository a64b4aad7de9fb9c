package memcache

import (
	"fmt"

	"github.com/codewandler/memcache-go/core/reflector"
)

// Handle is a shared, immutable, type-erased wrapper around a cached value.
// Any number of callers may hold the same Handle concurrently; the wrapped
// value is never mutated in place. To change a value, put a new one.
type Handle struct {
	value any
	ti    reflector.TypeInfo
}

// NewHandle wraps v in a Handle, capturing its dynamic type.
func NewHandle(v any) *Handle {
	return &Handle{value: v, ti: reflector.TypeInfoOf(v)}
}

// Value returns the wrapped value without a type check.
func (h *Handle) Value() any { return h.value }

// TypeName returns the fully qualified name of the wrapped value's type.
func (h *Handle) TypeName() string { return h.ti.Name }

// As extracts the value wrapped by h as type T. It returns ErrInvalidCast
// when the dynamic type of the stored value is not T.
func As[T any](h *Handle) (T, error) {
	v, ok := h.value.(T)
	if !ok {
		return v, fmt.Errorf("%w: have %s, want %s",
			ErrInvalidCast, h.ti.Name, reflector.TypeInfoFor[T]().Name)
	}
	return v, nil
}
