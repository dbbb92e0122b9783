package kvpb

import (
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/reflect/protoreflect"
)

func localName(d protoreflect.Descriptor) string {
	return strings.TrimPrefix(string(d.FullName()), string(File.Package())+".")
}

func TestServiceDesc_MatchesDescriptor(t *testing.T) {
	svc := File.Services().ByName("KeyValueStore")
	require.NotNil(t, svc)
	assert.Equal(t, ServiceName, string(svc.FullName()))
	assert.Equal(t, ProtoFile, ServiceDesc.Metadata)

	methods := svc.Methods()
	require.Len(t, ServiceDesc.Methods, methods.Len())
	for i, m := range ServiceDesc.Methods {
		assert.Equal(t, string(methods.Get(i).Name()), m.MethodName)
	}

	assert.Equal(t, "/"+ServiceName+"/SetData", SetDataMethod)
	assert.Equal(t, "/"+ServiceName+"/Login", LoginMethod)
}

func TestDescriptor_MatchesProtoFile(t *testing.T) {
	raw, err := os.ReadFile("kv.proto")
	require.NoError(t, err)
	src := strings.Join(strings.Fields(string(raw)), " ")

	assert.Contains(t, src, fmt.Sprintf("package %s;", File.Package()))

	msgs := File.Messages()
	for i := range msgs.Len() {
		md := msgs.Get(i)
		assert.Contains(t, src, fmt.Sprintf("message %s {", md.Name()))
		for j := range md.Fields().Len() {
			fd := md.Fields().Get(j)
			typ := fd.Kind().String()
			if fd.Kind() == protoreflect.MessageKind {
				typ = localName(fd.Message())
			}
			if fd.IsList() {
				typ = "repeated " + typ
			}
			assert.Contains(t, src, fmt.Sprintf("%s %s = %d;", typ, fd.Name(), fd.Number()))
		}
	}

	methods := File.Services().ByName("KeyValueStore").Methods()
	for i := range methods.Len() {
		m := methods.Get(i)
		assert.Contains(t, src, fmt.Sprintf("rpc %s(%s) returns (%s);", m.Name(), localName(m.Input()), localName(m.Output())))
	}
}

func TestMessages_UseDescriptor(t *testing.T) {
	assert.Equal(t, entryDesc, new(Entry).ProtoReflect().Descriptor())
	assert.Equal(t, batchDesc, new(SetBatchRequest).ProtoReflect().Descriptor())
	assert.Equal(t, loginDesc, new(SignedLogin).ProtoReflect().Descriptor())
}
