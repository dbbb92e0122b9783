// Package kvpb describes the KeyValueStore gRPC service declared in kv.proto.
// The stubs here follow the layout protoc-gen-go-grpc produces; request
// messages are dynamic messages over File, so no generated code is needed.
package kvpb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const ServiceName = "gophschedule.kv.KeyValueStore"

const (
	IsAvailableMethod = "/" + ServiceName + "/IsAvailable"
	GetDataMethod     = "/" + ServiceName + "/GetData"
	SetDataMethod     = "/" + ServiceName + "/SetData"
	SetBatchMethod    = "/" + ServiceName + "/SetBatch"
	LoginMethod       = "/" + ServiceName + "/Login"
)

// KeyValueStoreServer is implemented by the server side.
type KeyValueStoreServer interface {
	IsAvailable(ctx context.Context, in *emptypb.Empty) (*wrapperspb.BoolValue, error)
	GetData(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.BytesValue, error)
	SetData(ctx context.Context, in *Entry) (*emptypb.Empty, error)
	SetBatch(ctx context.Context, in *SetBatchRequest) (*emptypb.Empty, error)
	Login(ctx context.Context, in *SignedLogin) (*wrapperspb.StringValue, error)
}

func unary[Req, Res any](fullMethod string, call func(KeyValueStoreServer, context.Context, *Req) (*Res, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(KeyValueStoreServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(KeyValueStoreServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*KeyValueStoreServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "IsAvailable", Handler: unary(IsAvailableMethod, KeyValueStoreServer.IsAvailable)},
		{MethodName: "GetData", Handler: unary(GetDataMethod, KeyValueStoreServer.GetData)},
		{MethodName: "SetData", Handler: unary(SetDataMethod, KeyValueStoreServer.SetData)},
		{MethodName: "SetBatch", Handler: unary(SetBatchMethod, KeyValueStoreServer.SetBatch)},
		{MethodName: "Login", Handler: unary(LoginMethod, KeyValueStoreServer.Login)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: ProtoFile,
}

func RegisterKeyValueStoreServer(s grpc.ServiceRegistrar, srv KeyValueStoreServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// KeyValueStoreClient is the client side of the service.
type KeyValueStoreClient interface {
	IsAvailable(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error)
	GetData(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
	SetData(ctx context.Context, in *Entry, opts ...grpc.CallOption) (*emptypb.Empty, error)
	SetBatch(ctx context.Context, in *SetBatchRequest, opts ...grpc.CallOption) (*emptypb.Empty, error)
	Login(ctx context.Context, in *SignedLogin, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
}

type keyValueStoreClient struct {
	cc grpc.ClientConnInterface
}

func NewKeyValueStoreClient(cc grpc.ClientConnInterface) KeyValueStoreClient {
	return &keyValueStoreClient{cc: cc}
}

func invoke[Res any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Res, error) {
	out := new(Res)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *keyValueStoreClient) IsAvailable(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error) {
	return invoke[wrapperspb.BoolValue](ctx, c.cc, IsAvailableMethod, in, opts)
}

func (c *keyValueStoreClient) GetData(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	return invoke[wrapperspb.BytesValue](ctx, c.cc, GetDataMethod, in, opts)
}

func (c *keyValueStoreClient) SetData(ctx context.Context, in *Entry, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, SetDataMethod, in, opts)
}

func (c *keyValueStoreClient) SetBatch(ctx context.Context, in *SetBatchRequest, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, SetBatchMethod, in, opts)
}

func (c *keyValueStoreClient) Login(ctx context.Context, in *SignedLogin, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	return invoke[wrapperspb.StringValue](ctx, c.cc, LoginMethod, in, opts)
}
