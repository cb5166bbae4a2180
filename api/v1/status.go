package errlog_v1

import (
	"errors"
	"strings"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/winter-loo/errlog/errs"
)

type grpcStatus interface {
	GRPCStatus() *status.Status
}

// CodedError attaches a gRPC code to an error so a server can return it
// without losing the annotated chain.
type CodedError struct {
	Code codes.Code
	Err  error
}

// WithCode tags err with code. A nil err yields nil.
func WithCode(err error, code codes.Code) error {
	if err == nil {
		return nil
	}
	return &CodedError{Code: code, Err: err}
}

func (e *CodedError) Error() string {
	return e.Err.Error()
}

func (e *CodedError) Unwrap() error {
	return e.Err
}

// GRPCStatus lets status.FromError convert the error, chain included.
func (e *CodedError) GRPCStatus() *status.Status {
	return Status(e)
}

// Status converts err into a status whose DebugInfo detail carries the cause
// chain and the annotated locations.
func Status(err error) *status.Status {
	if err == nil {
		return status.New(codes.OK, "")
	}

	st := status.New(codeOf(err), err.Error())

	var locs []string
	for _, l := range errs.Locations(err) {
		locs = append(locs, l.String())
	}
	d := &errdetails.DebugInfo{
		StackEntries: errs.Chain(err),
		Detail:       strings.Join(locs, ", "),
	}
	std, werr := st.WithDetails(d)
	if werr != nil {
		return st
	}
	return std
}

// ChainFromStatus returns the chain recorded by Status, or nil.
func ChainFromStatus(st *status.Status) []string {
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.DebugInfo); ok {
			return info.GetStackEntries()
		}
	}
	return nil
}

func codeOf(err error) codes.Code {
	for ; err != nil; err = errors.Unwrap(err) {
		switch e := err.(type) {
		case *CodedError:
			return e.Code
		case grpcStatus:
			return e.GRPCStatus().Code()
		}
	}
	return codes.Unknown
}
