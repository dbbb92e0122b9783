package client

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophschedule/internal/common"
	"github.com/dmitrijs2005/gophschedule/internal/kv"
	"github.com/dmitrijs2005/gophschedule/internal/kvpb"
	"github.com/dmitrijs2005/gophschedule/internal/wallet"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      kvpb.KeyValueStoreClient
	now         func() time.Time

	mu          sync.Mutex
	accessToken string
	credential  Credential
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) token() (string, Credential) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken, s.credential
}

// accessTokenInterceptor attaches the access token and, when the server
// reports it expired, logs in again once and retries.
func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {

	token, cred := s.token()
	if token == "" || method == kvpb.LoginMethod {
		return invoker(ctx, method, req, reply, cc, opts...)
	}

	err := invoker(withAccessToken(ctx, token), method, req, reply, cc, opts...)
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok || st.Code() != codes.Unauthenticated || st.Message() != common.ErrTokenExpired.Error() {
		return err
	}
	if cred == nil {
		return err
	}

	// token expired, logging in again
	if err := s.login(ctx, cred); err != nil {
		return err
	}
	token, _ = s.token()
	return invoker(withAccessToken(ctx, token), method, req, reply, cc, opts...)
}

// NewGRPCClient connects to the KeyValueStore service at endpointURL.
func NewGRPCClient(endpointURL string) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, now: time.Now}

	conn, err := grpc.NewClient(c.endpointURL,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor))
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = kvpb.NewKeyValueStoreClient(conn)
	return c, nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) IsAvailable(ctx context.Context) (bool, error) {
	resp, err := s.client.IsAvailable(ctx, &emptypb.Empty{})
	if err != nil {
		return false, s.mapError(err)
	}
	return resp.GetValue(), nil
}

func (s *GRPCClient) GetData(ctx context.Context, key string) ([]byte, error) {
	resp, err := s.client.GetData(ctx, wrapperspb.String(key))
	if err != nil {
		return nil, s.mapError(err)
	}
	if resp.GetValue() == nil {
		return []byte{}, nil
	}
	return resp.GetValue(), nil
}

// Login signs a login message with cred and keeps the issued access token.
// The returned Writer uses that token; an expired token triggers one more
// signed login.
func (s *GRPCClient) Login(ctx context.Context, cred Credential) (*Writer, error) {
	if err := s.login(ctx, cred); err != nil {
		return nil, err
	}
	return &Writer{c: s}, nil
}

func (s *GRPCClient) login(ctx context.Context, cred Credential) error {
	address := strings.ToLower(cred.Address())
	issuedAt := s.now().Unix()

	sig, err := cred.Sign(ctx, wallet.LoginMessage(address, issuedAt))
	if err != nil {
		if errors.Is(err, common.ErrCredentialDeclined) {
			return err
		}
		return fmt.Errorf("%w: %w", common.ErrCredentialDeclined, err)
	}

	req := kvpb.LoginRequest{
		Address:   address,
		PublicKey: cred.PublicKey(),
		IssuedAt:  issuedAt,
		Signature: sig,
	}
	resp, err := s.client.Login(ctx, req.Message())
	if err != nil {
		return s.mapError(err)
	}

	s.mu.Lock()
	s.accessToken = resp.GetValue()
	s.credential = cred
	s.mu.Unlock()

	return nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("%w: %s", common.ErrorUnauthorized, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return fmt.Errorf("%w: %s", common.ErrUnavailable, st.Message())
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}

// Writer is the authenticated access mode of a GRPCClient.
type Writer struct {
	c *GRPCClient
}

func (w *Writer) SetData(ctx context.Context, key string, value []byte) error {
	if _, err := w.c.client.SetData(ctx, kvpb.NewSetData(key, value)); err != nil {
		return w.c.mapError(err)
	}
	return nil
}

// SetBatch commits entries together. Servers whose backend cannot do that
// answer Unimplemented, and the entries are then written one by one.
func (w *Writer) SetBatch(ctx context.Context, entries []kv.Entry) error {
	_, err := w.c.client.SetBatch(ctx, kvpb.NewSetBatch(entries))
	if status.Code(err) == codes.Unimplemented {
		for _, e := range entries {
			if err := w.SetData(ctx, e.Key, e.Value); err != nil {
				return err
			}
		}
		return nil
	}
	if err != nil {
		return w.c.mapError(err)
	}
	return nil
}
