package channel

// Iso wraps a value certified to carry no aliases held by anyone but the
// wrapper's owner. Transferring the value out is destructive: Take hands it
// over exactly once and invalidates the wrapper, so a moved-from value
// cannot be used again by mistake.
type Iso[T any] struct {
	val   T
	taken bool
}

// Wrap takes ownership of v. The caller must retain no references to v's
// content after the call.
func Wrap[T any](v T) Iso[T] {
	return Iso[T]{val: v}
}

// Take moves the value out, leaving the wrapper spent. Taking twice is a
// programming error and panics.
func (iso *Iso[T]) Take() T {
	v := iso.Value()

	var zero T
	iso.val = zero
	iso.taken = true

	return v
}

// Value returns the wrapped value without consuming it. Panics if the value
// has already been taken.
func (iso *Iso[T]) Value() T {
	if iso.taken {
		panic("channel: use of spent isolated value")
	}

	return iso.val
}

// Valid reports whether the wrapper still holds its value.
func (iso *Iso[T]) Valid() bool {
	return !iso.taken
}
