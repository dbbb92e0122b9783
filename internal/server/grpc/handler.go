package grpc

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/gophschedule/internal/common"
	"github.com/dmitrijs2005/gophschedule/internal/kv"
	"github.com/dmitrijs2005/gophschedule/internal/kvpb"
	"github.com/dmitrijs2005/gophschedule/internal/server/auth"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// attributedStore records which address wrote each key.
type attributedStore interface {
	SetDataAs(ctx context.Context, writer, key string, value []byte) error
	SetBatchAs(ctx context.Context, writer string, entries []kv.Entry) error
}

func equalAddress(a, b string) bool {
	return strings.EqualFold(a, b)
}

func (s *GRPCServer) IsAvailable(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.BoolValue, error) {
	ok, err := s.store.IsAvailable(ctx)
	if err != nil {
		s.logger.Warn(ctx, "availability check failed", "error", err)
		return wrapperspb.Bool(false), nil
	}
	return wrapperspb.Bool(ok), nil
}

func (s *GRPCServer) GetData(ctx context.Context, req *wrapperspb.StringValue) (*wrapperspb.BytesValue, error) {
	key := req.GetValue()
	if key == "" {
		return nil, status.Error(codes.InvalidArgument, "missing key")
	}

	b, err := s.store.GetData(ctx, key)
	if err != nil {
		s.logger.Error(ctx, "get failed", "key", key, "error", err)
		return nil, status.Error(codes.Internal, "internal error")
	}
	return wrapperspb.Bytes(b), nil
}

func (s *GRPCServer) SetData(ctx context.Context, req *kvpb.Entry) (*emptypb.Empty, error) {
	writer, ok := WriterFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "unauthorized")
	}

	e, err := kvpb.ParseSetData(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	if as, ok := s.store.(attributedStore); ok {
		err = as.SetDataAs(ctx, writer, e.Key, e.Value)
	} else {
		err = s.store.SetData(ctx, e.Key, e.Value)
	}
	if err != nil {
		s.logger.Error(ctx, "set failed", "key", e.Key, "writer", writer, "error", err)
		return nil, status.Error(codes.Internal, "internal error")
	}

	s.logger.Debug(ctx, "set", "key", e.Key, "writer", writer, "bytes", len(e.Value))
	return &emptypb.Empty{}, nil
}

// SetBatch commits all entries atomically when the backend supports it and
// is refused otherwise.
func (s *GRPCServer) SetBatch(ctx context.Context, req *kvpb.SetBatchRequest) (*emptypb.Empty, error) {
	writer, ok := WriterFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "unauthorized")
	}

	entries, err := kvpb.ParseSetBatch(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	switch st := s.store.(type) {
	case attributedStore:
		err = st.SetBatchAs(ctx, writer, entries)
	case kv.BatchWriter:
		err = st.SetBatch(ctx, entries)
	default:
		return nil, status.Error(codes.Unimplemented, "batch writes not supported by this backend")
	}
	if err != nil {
		s.logger.Error(ctx, "batch set failed", "entries", len(entries), "writer", writer, "error", err)
		return nil, status.Error(codes.Internal, "internal error")
	}

	return &emptypb.Empty{}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *kvpb.SignedLogin) (*wrapperspb.StringValue, error) {
	lr, err := kvpb.ParseLogin(req)
	if err != nil {
		s.observeLogin("bad_request")
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	address, err := s.login.Verify(lr, s.now())
	if err != nil {
		s.logger.Info(ctx, "login refused", "address", lr.Address, "error", err)
		switch {
		case errors.Is(err, common.ErrorUnauthorized):
			s.observeLogin("not_owner")
			return nil, status.Error(codes.PermissionDenied, "not the owner")
		case errors.Is(err, common.ErrLoginExpired):
			s.observeLogin("expired")
		default:
			s.observeLogin("bad_signature")
		}
		return nil, status.Error(codes.Unauthenticated, "unauthorized")
	}

	token, err := auth.GenerateToken(address, s.jwtSecret, s.tokenTTL)
	if err != nil {
		s.logger.Error(ctx, "token generation failed", "error", err)
		return nil, status.Error(codes.Internal, "internal error")
	}

	s.observeLogin("ok")
	s.logger.Info(ctx, "Logged in", "address", address)
	return wrapperspb.String(token), nil
}

func (s *GRPCServer) observeLogin(outcome string) {
	if s.metrics != nil {
		s.metrics.ObserveLogin(outcome)
	}
}
