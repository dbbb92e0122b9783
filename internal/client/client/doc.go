// Package client opens the remote store used by the schedule client.
//
// The store is reached either through the KeyValueStore gRPC service
// (GRPCClient) or directly through one of the kv backends. In both cases the
// returned Backend starts read-only: a kv.Writer is handed out only by
// Backend.Authorize, which needs the owner's wallet credential. Over gRPC that
// means a signed login exchanged for an access token.
//
// gRPC status codes are mapped to the sentinels in internal/common, so callers
// match with errors.Is: common.ErrUnavailable, common.ErrorUnauthorized.
package client
