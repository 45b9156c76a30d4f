package limb

// Fallible pairs a value with an error flag. The flag records that the value
// lost information (overflow, truncation); it never carries anything else.
//
// Once set, the flag stays set: Veto and Combine only ever OR into it.
type Fallible[T any] struct {
	Value T
	Error bool
}

// Success wraps v with a clear error flag.
func Success[T any](v T) Fallible[T] { return Fallible[T]{Value: v} }

// Failure wraps v with the error flag set.
func Failure[T any](v T) Fallible[T] { return Fallible[T]{Value: v, Error: true} }

// Veto sets the error flag when err is true.
func (f Fallible[T]) Veto(err bool) Fallible[T] {
	f.Error = f.Error || err
	return f
}

// Optional returns the value and whether it is error free.
func (f Fallible[T]) Optional() (T, bool) {
	return f.Value, !f.Error
}

// Unwrap returns err when the flag is set, letting the caller pick the error.
func (f Fallible[T]) Unwrap(err error) (T, error) {
	if f.Error {
		return f.Value, err
	}
	return f.Value, nil
}

// Combine keeps the value of b and ORs the error flags of a and b.
func Combine[T, U any](a Fallible[T], b Fallible[U]) Fallible[U] {
	return b.Veto(a.Error)
}
