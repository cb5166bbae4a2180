package errs

// Result holds the outcome of a fallible call: a value or an opaque error.
//
//	data, err := errs.Try(os.ReadFile(path)).Context("cannot read %s", path).Get()
type Result[T any] struct {
	val T
	err error
}

// Contexter is the capability of attaching an annotated layer to a failed
// computation.
type Contexter[T any] interface {
	Context(format string, args ...any) Result[T]
	WithContext(msg func() string) Result[T]
}

var _ Contexter[struct{}] = Result[struct{}]{}

// Try captures the two results of a fallible call.
func Try[T any](val T, err error) Result[T] {
	return Result[T]{val: val, err: err}
}

// Ok wraps a successful value.
func Ok[T any](val T) Result[T] {
	return Result[T]{val: val}
}

// Fail wraps an error.
func Fail[T any](err error) Result[T] {
	return Result[T]{err: err}
}

// Context wraps the error, if any, with an annotated layer for the calling
// line. Successful results are returned unchanged and nothing is formatted.
func (r Result[T]) Context(format string, args ...any) Result[T] {
	if r.err == nil {
		return r
	}
	r.err = WrapDepth(1, r.err, format, args...)
	return r
}

// WithContext is Context with a lazily built message.
func (r Result[T]) WithContext(msg func() string) Result[T] {
	if r.err == nil {
		return r
	}
	r.err = WrapDepth(1, r.err, "%s", msg())
	return r
}

// Get returns the value and error.
func (r Result[T]) Get() (T, error) {
	return r.val, r.err
}

func (r Result[T]) Err() error {
	return r.err
}

func (r Result[T]) Ok() bool {
	return r.err == nil
}

// Must returns the value and panics with the error if the result failed.
func (r Result[T]) Must() T {
	if r.err != nil {
		panic(r.err)
	}
	return r.val
}
