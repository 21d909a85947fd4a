package pkg

// Option is a functional option that returns a modified copy of T.
type Option[T any] func(T) T

// Make returns the zero value of T with each of the given options applied in
// order.
func Make[T any](opts ...Option[T]) T {
	var t T

	return Wrap(t, opts...)
}

// Wrap applies each of the given options to t in order and returns the
// result. Nil options are skipped.
func Wrap[T any](t T, opts ...Option[T]) T {
	for _, opt := range opts {
		if opt != nil {
			t = opt(t)
		}
	}

	return t
}
