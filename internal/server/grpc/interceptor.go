package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gophschedule/internal/common"
	"github.com/dmitrijs2005/gophschedule/internal/kvpb"
	"github.com/dmitrijs2005/gophschedule/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const writerKey ctxKey = "writer"

// writeMethods need an access token.
var writeMethods = map[string]bool{
	kvpb.SetDataMethod:  true,
	kvpb.SetBatchMethod: true,
}

// WriterFromContext returns the address bound by the token interceptor.
func WriterFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(writerKey).(string)
	return v, ok && v != ""
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {

	if writeMethods[info.FullMethod] {

		var accessToken string
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			values := md.Get(common.AccessTokenHeaderName)
			if len(values) > 0 {
				accessToken = values[0]
			}
		}
		if len(accessToken) == 0 {
			return nil, status.Error(codes.Unauthenticated, "missing token")
		}

		address, err := auth.AddressFromToken(accessToken, s.jwtSecret)
		if err != nil {
			if errors.Is(err, common.ErrTokenExpired) {
				return nil, status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error())
			}
			return nil, status.Error(codes.Unauthenticated, "invalid token")
		}

		if s.login.Owner != "" && !equalAddress(s.login.Owner, address) {
			return nil, status.Error(codes.PermissionDenied, "not the owner")
		}

		ctx = context.WithValue(ctx, writerKey, address)

	}

	return handler(ctx, req)
}
