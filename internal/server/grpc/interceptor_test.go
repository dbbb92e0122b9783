package grpc

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophschedule/internal/common"
	"github.com/dmitrijs2005/gophschedule/internal/kv/memory"
	"github.com/dmitrijs2005/gophschedule/internal/kvpb"
	"github.com/dmitrijs2005/gophschedule/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func tokenCtx(token string) context.Context {
	md := metadata.New(map[string]string{common.AccessTokenHeaderName: token})
	return metadata.NewIncomingContext(context.Background(), md)
}

func TestInterceptor_ReadMethods_AllowWithoutToken(t *testing.T) {
	s := newServer(memory.New())

	for _, m := range []string{kvpb.GetDataMethod, kvpb.IsAvailableMethod, kvpb.LoginMethod} {
		info := &grpc.UnaryServerInfo{FullMethod: m}
		handlerCalled := false
		h := func(ctx context.Context, req interface{}) (interface{}, error) {
			handlerCalled = true
			return "ok", nil
		}

		resp, err := s.accessTokenInterceptor(context.Background(), nil, info, h)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", m, err)
		}
		if !handlerCalled || resp != "ok" {
			t.Fatalf("%s: handler not called", m)
		}
	}
}

func TestInterceptor_SetData_MissingToken(t *testing.T) {
	s := newServer(memory.New())
	info := &grpc.UnaryServerInfo{FullMethod: kvpb.SetDataMethod}

	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		t.Fatal("handler should not be called when token missing")
		return nil, nil
	}

	_, err := s.accessTokenInterceptor(context.Background(), nil, info, h)
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated, got %v", status.Code(err))
	}
	if status.Convert(err).Message() != "missing token" {
		t.Fatalf("expected 'missing token', got %q", status.Convert(err).Message())
	}
}

func TestInterceptor_SetBatch_InvalidToken(t *testing.T) {
	s := newServer(memory.New())
	info := &grpc.UnaryServerInfo{FullMethod: kvpb.SetBatchMethod}

	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		t.Fatal("handler should not be called for invalid token")
		return nil, nil
	}

	_, err := s.accessTokenInterceptor(tokenCtx("not-a-valid-jwt"), nil, info, h)
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated, got %v", status.Code(err))
	}
}

func TestInterceptor_ExpiredToken(t *testing.T) {
	s := newServer(memory.New())
	token, err := auth.GenerateToken(testWriter, []byte("k"), -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	info := &grpc.UnaryServerInfo{FullMethod: kvpb.SetDataMethod}
	_, err = s.accessTokenInterceptor(tokenCtx(token), nil, info, func(ctx context.Context, req interface{}) (interface{}, error) {
		return nil, nil
	})
	if status.Convert(err).Message() != common.ErrTokenExpired.Error() {
		t.Fatalf("expected expiry message, got %v", err)
	}
}

func TestInterceptor_ValidToken_SetsWriter(t *testing.T) {
	s := newServer(memory.New())

	token, err := auth.GenerateToken(testWriter, []byte("k"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	info := &grpc.UnaryServerInfo{FullMethod: kvpb.SetDataMethod}

	var got string
	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		got, _ = WriterFromContext(ctx)
		return "ok", nil
	}

	resp, err := s.accessTokenInterceptor(tokenCtx(token), nil, info, h)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp != "ok" {
		t.Fatalf("unexpected handler resp: %v", resp)
	}
	if got != testWriter {
		t.Fatalf("writer not propagated in context: got %v want %v", got, testWriter)
	}
}

func TestInterceptor_OwnerOnly(t *testing.T) {
	s := newServer(memory.New())
	s.login.Owner = "0x00000000000000000000000000000000000000bb"

	token, err := auth.GenerateToken(testWriter, []byte("k"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	info := &grpc.UnaryServerInfo{FullMethod: kvpb.SetDataMethod}
	_, err = s.accessTokenInterceptor(tokenCtx(token), nil, info, func(ctx context.Context, req interface{}) (interface{}, error) {
		t.Fatal("handler should not be called for a foreign writer")
		return nil, nil
	})
	if status.Code(err) != codes.PermissionDenied {
		t.Fatalf("expected PermissionDenied, got %v", status.Code(err))
	}
}
