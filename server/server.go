// Package server carries annotated errors across gRPC handlers: failures are
// logged with their cause chain and returned to clients as statuses whose
// DebugInfo detail keeps that chain.
package server

import (
	"context"

	grpc_middleware "github.com/grpc-ecosystem/go-grpc-middleware"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	api "github.com/winter-loo/errlog/api/v1"
	"github.com/winter-loo/errlog/errs"
	"github.com/winter-loo/errlog/log"
)

// RequestIDHeader is the incoming metadata key copied into the log context.
const RequestIDHeader = "x-request-id"

// NewGRPCServer returns a server whose handlers' errors go through the
// interceptors of this package.
func NewGRPCServer(lg *log.Logger, opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts,
		grpc.StreamInterceptor(grpc_middleware.ChainStreamServer(
			StreamServerInterceptor(lg),
		)),
		grpc.UnaryInterceptor(grpc_middleware.ChainUnaryServer(
			UnaryServerInterceptor(lg),
		)),
	)
	return grpc.NewServer(opts...)
}

func UnaryServerInterceptor(lg *log.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		ctx = withRequestID(ctx)
		resp, err := handler(ctx, req)
		return resp, convert(ctx, lg, info.FullMethod, err)
	}
}

func StreamServerInterceptor(lg *log.Logger) grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		wrapped := grpc_middleware.WrapServerStream(ss)
		wrapped.WrappedContext = withRequestID(ss.Context())
		err := handler(srv, wrapped)
		return convert(wrapped.WrappedContext, lg, info.FullMethod, err)
	}
}

func withRequestID(ctx context.Context) context.Context {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ctx
	}
	if ids := md.Get(RequestIDHeader); len(ids) > 0 {
		return log.WithReqID(ctx, ids[0])
	}
	return ctx
}

// convert logs err and turns it into a status error. Statuses built by the
// handler itself pass through untouched.
func convert(ctx context.Context, lg *log.Logger, method string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(interface{ GRPCStatus() *status.Status }); ok && len(errs.Locations(err)) == 0 {
		return err
	}

	lg.WithContext(ctx).
		With(zap.String("method", method), zap.Strings("chain", errs.Chain(err))).
		Errorf("%s failed", method)

	return api.Status(err).Err()
}
