package errs

// Annotate returns "<file>:<line>: <message>" for the line calling it.
func Annotate(format string, args ...any) string {
	return AnnotateDepth(1, format, args...)
}

// AnnotateDepth is Annotate attributed to the caller depth frames above the
// caller of AnnotateDepth.
func AnnotateDepth(depth int, format string, args ...any) string {
	return annotation(Caller(depth+1), message(format, args...))
}

// New creates an error whose text is the annotated message.
func New(format string, args ...any) error {
	return NewDepth(1, format, args...)
}

// NewDepth is New attributed to the caller depth frames above its caller.
func NewDepth(depth int, format string, args ...any) error {
	loc := Caller(depth + 1)
	return &SourceError{
		File: loc.File,
		Line: loc.Line,
		Msg:  message(format, args...),
	}
}

// Wrap captures the current stack frame and wraps the error with an annotated
// context layer. A nil err yields nil.
func Wrap(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return WrapDepth(1, err, format, args...)
}

// WrapDepth is Wrap attributed to the caller depth frames above its caller.
func WrapDepth(depth int, err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	loc := Caller(depth + 1)
	return &SourceError{
		File: loc.File,
		Line: loc.Line,
		Msg:  message(format, args...),
		Err:  err,
	}
}

// WrapFunc is Wrap with a message built only when err is non-nil.
func WrapFunc(err error, msg func() string) error {
	if err == nil {
		return nil
	}
	loc := Caller(1)
	return &SourceError{
		File: loc.File,
		Line: loc.Line,
		Msg:  msg(),
		Err:  err,
	}
}
