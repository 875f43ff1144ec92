package codec

import (
	"encoding/base64"
	"strings"

	"github.com/brentlemons/aws-lambda-events/wire"
)

// Bytes is the binary blob codec: base64 text on the wire, raw bytes in
// canonical form. Producers are not uniform about padding, so Decode
// accepts canonical, missing, or partial padding by padding the input to a
// multiple of four before decoding. Encode always emits canonical padded
// base64.
type Bytes struct{}

var _ Codec[[]byte] = Bytes{}

func (Bytes) Decode(v wire.Value) ([]byte, error) {
	if v.Kind() != wire.String {
		return nil, typeMismatch("base64 string", v)
	}
	s := strings.TrimRight(v.Str(), string(base64.StdPadding))
	if len(s)%4 == 1 {
		return nil, invalidEncoding("base64", "invalid length")
	}
	if rem := len(s) % 4; rem != 0 {
		s += strings.Repeat(string(base64.StdPadding), 4-rem)
	}
	out, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, invalidEncoding("base64", err.Error())
	}
	return out, nil
}

func (Bytes) Encode(b []byte) (wire.Value, error) {
	return wire.StringValue(base64.StdEncoding.EncodeToString(b)), nil
}
