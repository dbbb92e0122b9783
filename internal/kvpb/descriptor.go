package kvpb

import (
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	_ "google.golang.org/protobuf/types/known/emptypb"
	_ "google.golang.org/protobuf/types/known/wrapperspb"
)

// ProtoFile is the path kv.proto is known by in descriptors.
const ProtoFile = "gophschedule/kv.proto"

// File describes kv.proto. It is kept in step with that file by hand; the
// descriptor tests check the two agree on the service surface.
var File = buildFile()

var (
	entryDesc   = File.Messages().ByName("Entry")
	entryKey    = entryDesc.Fields().ByName("key")
	entryValue  = entryDesc.Fields().ByName("value")
	batchDesc   = File.Messages().ByName("SetBatchRequest")
	batchItems  = batchDesc.Fields().ByName("entries")
	loginDesc   = File.Messages().ByName("SignedLogin")
	loginAddr   = loginDesc.Fields().ByName("address")
	loginPub    = loginDesc.Fields().ByName("public_key")
	loginIssued = loginDesc.Fields().ByName("issued_at")
	loginSig    = loginDesc.Fields().ByName("signature")
)

func scalar(name string, num int32, typ descriptorpb.FieldDescriptorProto_Type) *descriptorpb.FieldDescriptorProto {
	return &descriptorpb.FieldDescriptorProto{
		Name:     proto.String(name),
		Number:   proto.Int32(num),
		Label:    descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
		Type:     typ.Enum(),
	}
}

func method(name, in, out string) *descriptorpb.MethodDescriptorProto {
	return &descriptorpb.MethodDescriptorProto{
		Name:       proto.String(name),
		InputType:  proto.String(in),
		OutputType: proto.String(out),
	}
}

func buildFile() protoreflect.FileDescriptor {
	const (
		bytesT  = descriptorpb.FieldDescriptorProto_TYPE_BYTES
		stringT = descriptorpb.FieldDescriptorProto_TYPE_STRING
		int64T  = descriptorpb.FieldDescriptorProto_TYPE_INT64
	)

	entries := &descriptorpb.FieldDescriptorProto{
		Name:     proto.String("entries"),
		Number:   proto.Int32(1),
		Label:    descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum(),
		Type:     descriptorpb.FieldDescriptorProto_TYPE_MESSAGE.Enum(),
		TypeName: proto.String(".gophschedule.kv.Entry"),
	}

	fdp := &descriptorpb.FileDescriptorProto{
		Name:       proto.String(ProtoFile),
		Package:    proto.String("gophschedule.kv"),
		Syntax:     proto.String("proto3"),
		Dependency: []string{"google/protobuf/empty.proto", "google/protobuf/wrappers.proto"},
		Options: &descriptorpb.FileOptions{
			GoPackage: proto.String("github.com/dmitrijs2005/gophschedule/internal/kvpb"),
		},
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name:  proto.String("Entry"),
				Field: []*descriptorpb.FieldDescriptorProto{scalar("key", 1, stringT), scalar("value", 2, bytesT)},
			},
			{
				Name:  proto.String("SetBatchRequest"),
				Field: []*descriptorpb.FieldDescriptorProto{entries},
			},
			{
				Name: proto.String("SignedLogin"),
				Field: []*descriptorpb.FieldDescriptorProto{
					scalar("address", 1, stringT),
					scalar("public_key", 2, bytesT),
					scalar("issued_at", 3, int64T),
					scalar("signature", 4, bytesT),
				},
			},
		},
		Service: []*descriptorpb.ServiceDescriptorProto{{
			Name: proto.String("KeyValueStore"),
			Method: []*descriptorpb.MethodDescriptorProto{
				method("IsAvailable", ".google.protobuf.Empty", ".google.protobuf.BoolValue"),
				method("GetData", ".google.protobuf.StringValue", ".google.protobuf.BytesValue"),
				method("SetData", ".gophschedule.kv.Entry", ".google.protobuf.Empty"),
				method("SetBatch", ".gophschedule.kv.SetBatchRequest", ".google.protobuf.Empty"),
				method("Login", ".gophschedule.kv.SignedLogin", ".google.protobuf.StringValue"),
			},
		}},
	}

	fd, err := protodesc.NewFile(fdp, protoregistry.GlobalFiles)
	if err != nil {
		panic("kvpb: " + err.Error())
	}
	return fd
}
