package kvpb

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophschedule/internal/kv"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"
)

var ErrBadRequest = errors.New("bad request")

// The request types below are backed by messages of File. The zero value is
// ready to use, so gRPC can decode into new(T).

// Entry is the Entry message of kv.proto.
type Entry struct {
	m *dynamicpb.Message
}

func (x *Entry) ProtoReflect() protoreflect.Message {
	if x.m == nil {
		x.m = dynamicpb.NewMessage(entryDesc)
	}
	return x.m
}

// SetBatchRequest is the SetBatchRequest message of kv.proto.
type SetBatchRequest struct {
	m *dynamicpb.Message
}

func (x *SetBatchRequest) ProtoReflect() protoreflect.Message {
	if x.m == nil {
		x.m = dynamicpb.NewMessage(batchDesc)
	}
	return x.m
}

// SignedLogin is the SignedLogin message of kv.proto.
type SignedLogin struct {
	m *dynamicpb.Message
}

func (x *SignedLogin) ProtoReflect() protoreflect.Message {
	if x.m == nil {
		x.m = dynamicpb.NewMessage(loginDesc)
	}
	return x.m
}

func setEntry(m protoreflect.Message, e kv.Entry) {
	m.Set(entryKey, protoreflect.ValueOfString(e.Key))
	m.Set(entryValue, protoreflect.ValueOfBytes(e.Value))
}

func readEntry(m protoreflect.Message) (kv.Entry, error) {
	key := m.Get(entryKey).String()
	if key == "" {
		return kv.Entry{}, fmt.Errorf("%w: missing key", ErrBadRequest)
	}
	return kv.Entry{Key: key, Value: bytes.Clone(m.Get(entryValue).Bytes())}, nil
}

// NewSetData builds a SetData request.
func NewSetData(key string, value []byte) *Entry {
	x := new(Entry)
	setEntry(x.ProtoReflect(), kv.Entry{Key: key, Value: value})
	return x
}

// ParseSetData reads a SetData request.
func ParseSetData(x *Entry) (kv.Entry, error) {
	if x == nil {
		return kv.Entry{}, fmt.Errorf("%w: empty entry", ErrBadRequest)
	}
	return readEntry(x.ProtoReflect())
}

// NewSetBatch builds a SetBatch request.
func NewSetBatch(entries []kv.Entry) *SetBatchRequest {
	x := new(SetBatchRequest)
	list := x.ProtoReflect().Mutable(batchItems).List()
	for _, e := range entries {
		el := list.NewElement()
		setEntry(el.Message(), e)
		list.Append(el)
	}
	return x
}

// ParseSetBatch reads a SetBatch request. A batch with no entries is refused.
func ParseSetBatch(x *SetBatchRequest) ([]kv.Entry, error) {
	if x == nil {
		return nil, fmt.Errorf("%w: missing entries", ErrBadRequest)
	}
	list := x.ProtoReflect().Get(batchItems).List()
	if list.Len() == 0 {
		return nil, fmt.Errorf("%w: missing entries", ErrBadRequest)
	}
	entries := make([]kv.Entry, 0, list.Len())
	for i := range list.Len() {
		e, err := readEntry(list.Get(i).Message())
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// LoginRequest carries a wallet-signed login message.
type LoginRequest struct {
	Address   string
	PublicKey []byte
	IssuedAt  int64
	Signature []byte
}

// Message encodes r as a Login request.
func (r LoginRequest) Message() *SignedLogin {
	x := new(SignedLogin)
	m := x.ProtoReflect()
	m.Set(loginAddr, protoreflect.ValueOfString(r.Address))
	m.Set(loginPub, protoreflect.ValueOfBytes(r.PublicKey))
	m.Set(loginIssued, protoreflect.ValueOfInt64(r.IssuedAt))
	m.Set(loginSig, protoreflect.ValueOfBytes(r.Signature))
	return x
}

// ParseLogin reads a Login request.
func ParseLogin(x *SignedLogin) (LoginRequest, error) {
	if x == nil {
		return LoginRequest{}, fmt.Errorf("%w: empty login", ErrBadRequest)
	}
	m := x.ProtoReflect()

	r := LoginRequest{
		Address:   m.Get(loginAddr).String(),
		PublicKey: bytes.Clone(m.Get(loginPub).Bytes()),
		IssuedAt:  m.Get(loginIssued).Int(),
		Signature: bytes.Clone(m.Get(loginSig).Bytes()),
	}
	switch {
	case r.Address == "":
		return LoginRequest{}, fmt.Errorf("%w: missing address", ErrBadRequest)
	case len(r.PublicKey) == 0:
		return LoginRequest{}, fmt.Errorf("%w: public key", ErrBadRequest)
	case len(r.Signature) == 0:
		return LoginRequest{}, fmt.Errorf("%w: signature", ErrBadRequest)
	case r.IssuedAt <= 0:
		return LoginRequest{}, fmt.Errorf("%w: issued_at", ErrBadRequest)
	}
	return r, nil
}
