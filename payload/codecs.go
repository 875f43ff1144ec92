package payload

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
	"google.golang.org/protobuf/proto"
)

// JSON is the default record codec.
//
// Encode leaves HTML-significant characters unescaped: record fields carry
// pre-signed URLs, object keys and ARNs, and rewriting "&" as "&"
// would corrupt them for consumers that compare strings byte-wise. Decode
// into untyped targets keeps numbers textual (json.Number), so long
// numerals survive a generic unwrap with their digits intact.
type JSON struct{}

var _ Codec = JSON{}

func (JSON) Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func (JSON) Decode(data []byte, target any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(target)
}

func (JSON) ContentType() string { return "application/json" }

// MsgPack trades JSON's readability for size, for fanning decoded records
// out over internal queues. Optional fields and header multi-maps carry
// their tri-state and shape through their msgpack hooks, so a record
// survives the binary detour with the same presence information it decoded
// with.
type MsgPack struct{}

var _ Codec = MsgPack{}

func (MsgPack) Encode(v any) ([]byte, error) { return msgpack.Marshal(v) }

func (MsgPack) Decode(data []byte, target any) error { return msgpack.Unmarshal(data, target) }

func (MsgPack) ContentType() string { return "application/msgpack" }

// Proto serves callers that project decoded records into their own
// proto.Message types before fan-out. The value itself must implement
// proto.Message; records in this module do not.
type Proto struct{}

var _ Codec = Proto{}

func (Proto) Encode(v any) ([]byte, error) {
	msg, ok := v.(proto.Message)
	if !ok {
		return nil, fmt.Errorf("%T does not implement proto.Message", v)
	}
	return proto.Marshal(msg)
}

func (Proto) Decode(data []byte, target any) error {
	msg, ok := target.(proto.Message)
	if !ok {
		return fmt.Errorf("%T does not implement proto.Message", target)
	}
	return proto.Unmarshal(data, msg)
}

func (Proto) ContentType() string { return "application/protobuf" }
