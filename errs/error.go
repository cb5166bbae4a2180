// Package errs annotates errors with the file and line of the call site that
// created or wrapped them.
//
// The position is captured by the runtime at the call boundary, so helpers
// layered on top of errs must use the ...Depth variants to attribute the
// annotation to their own caller:
//
//	f, err := os.Open(path)
//	if err != nil {
//		return errs.Wrap(err, "cannot open file %s", path)
//	}
package errs

import (
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"strconv"
	"sync/atomic"
)

// PathStyle selects how the file component of a Location is rendered.
type PathStyle int32

const (
	// ShortPath keeps only the base name of the source file.
	ShortPath PathStyle = iota
	// FullPath keeps the path reported by the runtime.
	FullPath
)

var pathStyle atomic.Int32

// SetPathStyle changes the file rendering of positions captured from now on.
func SetPathStyle(style PathStyle) {
	pathStyle.Store(int32(style))
}

// CurrentPathStyle returns the style in effect.
func CurrentPathStyle() PathStyle {
	return PathStyle(pathStyle.Load())
}

// Location is a source position.
type Location struct {
	File string
	Line int
}

func (l Location) String() string {
	return l.File + ":" + strconv.Itoa(l.Line)
}

// Caller returns the position of the caller skip frames above the function
// calling Caller. Caller(0) is the line that called Caller.
func Caller(skip int) Location {
	// 1 skips the stack frame of Caller itself.
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return Location{File: "unknown", Line: 0}
	}
	if CurrentPathStyle() == ShortPath {
		file = filepath.Base(file)
	}
	return Location{File: file, Line: line}
}

// SourceError wraps an error with file and line context.
type SourceError struct {
	File string
	Line int
	Msg  string
	Err  error
}

// Location returns the position the error was annotated at.
func (e *SourceError) Location() Location {
	return Location{File: e.File, Line: e.Line}
}

// Annotation returns the layer's own message without its cause.
func (e *SourceError) Annotation() string {
	return annotation(e.Location(), e.Msg)
}

// Error implements the error interface.
func (e *SourceError) Error() string {
	// Format: file.go:32: message: original error message
	if e.Err == nil {
		return e.Annotation()
	}
	return e.Annotation() + ": " + e.Err.Error()
}

// Unwrap allows standard errors.Is/As checks to work on the underlying error.
func (e *SourceError) Unwrap() error {
	return e.Err
}

// Cause lets github.com/pkg/errors.Cause walk through annotated layers.
func (e *SourceError) Cause() error {
	return e.Err
}

// Format prints the full cause report for %+v. Every other verb formats
// Error() as a string, keeping flags, width and precision.
func (e *SourceError) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		_, _ = io.WriteString(s, Report(e))
		return
	}
	if verb != 'q' {
		verb = 's'
	}
	_, _ = fmt.Fprintf(s, fmt.FormatString(s, verb), e.Error())
}

func annotation(loc Location, msg string) string {
	if msg == "" {
		return loc.String()
	}
	return loc.String() + ": " + msg
}

func message(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}
