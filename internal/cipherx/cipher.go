// Package cipherx is the boundary around the pluggable encryption scheme used
// for the sensitive numeric fields of a schedule record.
//
// The real homomorphic scheme lives outside this module. TaggedCipher is the
// placeholder encoding: it marks its output with a recognizable prefix so that
// Decode can tell ciphertext apart from legacy plaintext values.
package cipherx

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/gophschedule/internal/common"
)

// Prefix tags every value produced by TaggedCipher.
const Prefix = "FHE-"

// Cipher encodes and decodes integer values. Implementations must be
// deterministic, side-effect free and safe for concurrent use, and must
// satisfy Decode(Encode(v)) == v for every non-negative v.
type Cipher interface {
	Encode(v int64) string
	Decode(s string) (int64, error)
}

// TaggedCipher is a stateless Cipher: Prefix + base64(decimal(v)).
type TaggedCipher struct{}

// NewTaggedCipher returns the default Cipher.
func NewTaggedCipher() TaggedCipher {
	return TaggedCipher{}
}

func (TaggedCipher) Encode(v int64) string {
	return Prefix + base64.StdEncoding.EncodeToString([]byte(strconv.FormatInt(v, 10)))
}

// Decode reverses Encode. Untagged input is accepted as a legacy plaintext
// decimal. Anything else yields common.ErrMalformedCiphertext.
func (TaggedCipher) Decode(s string) (int64, error) {
	raw, tagged := strings.CutPrefix(s, Prefix)
	if tagged {
		b, err := base64.StdEncoding.DecodeString(raw)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", common.ErrMalformedCiphertext, err)
		}
		raw = string(b)
	}

	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", common.ErrMalformedCiphertext, s)
	}
	return v, nil
}

// IsTagged reports whether s carries the ciphertext prefix.
func IsTagged(s string) bool {
	return strings.HasPrefix(s, Prefix)
}
