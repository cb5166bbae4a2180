package errs

import (
	"errors"
	"fmt"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"go.uber.org/multierr"
)

type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

type layer struct {
	msg   string
	stack pkgerrors.StackTrace
}

// rawLayers flattens err into its layers, outermost first, keeping layers
// that have no message of their own. Combined errors are expanded
// depth-first.
func rawLayers(err error) []layer {
	var out []layer

	var walk func(error)
	walk = func(err error) {
		for err != nil {
			if group, ok := err.(interface{ Unwrap() []error }); ok {
				for _, e := range group.Unwrap() {
					walk(e)
				}
				return
			}
			if group := multierr.Errors(err); len(group) > 1 {
				for _, e := range group {
					walk(e)
				}
				return
			}

			cause := errors.Unwrap(err)
			l := layer{msg: ownMessage(err, cause)}
			if st, ok := err.(stackTracer); ok {
				l.stack = st.StackTrace()
			}
			out = append(out, l)
			err = cause
		}
	}
	walk(err)

	return out
}

// compact drops the layers without a message. A stack found on a dropped
// layer is carried to the next kept one.
func compact(ls []layer) []layer {
	var (
		out     []layer
		pending pkgerrors.StackTrace
	)
	for _, l := range ls {
		if pending == nil {
			pending = l.stack
		}
		if l.msg != "" {
			out = append(out, layer{msg: l.msg, stack: pending})
			pending = nil
		}
	}
	return out
}

func messages(ls []layer) []string {
	if len(ls) == 0 {
		return nil
	}
	out := make([]string, len(ls))
	for i, l := range ls {
		out[i] = l.msg
	}
	return out
}

func ownMessage(err, cause error) string {
	if se, ok := err.(*SourceError); ok {
		return se.Annotation()
	}
	msg := err.Error()
	if cause == nil {
		return msg
	}
	c := cause.Error()
	if msg == c {
		return ""
	}
	return strings.TrimSuffix(msg, ": "+c)
}

// Chain returns the own message of every layer of err, outermost first.
// Layers without a message of their own are skipped.
func Chain(err error) []string {
	return messages(compact(rawLayers(err)))
}

// Backtrace returns the causes of err. The outermost layer is dropped before
// layers without a message are, so a stack-only wrapper hides nothing below
// it.
func Backtrace(err error) []string {
	raw := rawLayers(err)
	if len(raw) < 2 {
		return nil
	}
	return messages(compact(raw[1:]))
}

// Root returns the innermost error reachable through single-cause links.
func Root(err error) error {
	for err != nil {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
	return nil
}

// Locations returns the positions of every annotated layer, outermost first.
func Locations(err error) []Location {
	var out []Location
	for err != nil {
		var se *SourceError
		if !errors.As(err, &se) {
			break
		}
		out = append(out, se.Location())
		err = se.Err
	}
	return out
}

// Report renders err followed by its numbered causes.
func Report(err error) string {
	ls := compact(rawLayers(err))
	if len(ls) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(ls[0].msg)
	writeStack(&b, ls[0].stack, "")
	if len(ls) == 1 {
		return b.String()
	}

	b.WriteString("\n\nCaused by:")
	for i, l := range ls[1:] {
		if len(ls) == 2 {
			fmt.Fprintf(&b, "\n    %s", l.msg)
		} else {
			fmt.Fprintf(&b, "\n    %d: %s", i, l.msg)
		}
		writeStack(&b, l.stack, "        ")
	}
	return b.String()
}

func writeStack(b *strings.Builder, st pkgerrors.StackTrace, indent string) {
	for _, f := range st {
		text, _ := f.MarshalText()
		fmt.Fprintf(b, "\n%s  at %s", indent, text)
	}
}
