// Package payload re-serializes decoded event records for downstream
// consumers, keyed by MIME content type.
//
// These codecs operate on canonical typed records, not on the original wire
// documents: wire-exact re-encoding belongs to each event package's Encode.
// Use this package at the point where a decoded record leaves the process —
// an Envelope, a queue message, a cache entry — and the consumer names the
// format by content type.
//
// Lookup normalizes the content type before matching, so a transport header
// like "Application/JSON; charset=utf-8" resolves to the same codec as
// "application/json". Unknown types fail with ErrUnknownContentType rather
// than falling back silently; a consumer that cannot name its format should
// not receive bytes in a guessed one.
package payload

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrUnknownContentType is returned by Lookup when no codec is registered
// for the requested content type.
var ErrUnknownContentType = errors.New("no codec for content type")

// Codec re-serializes decoded records for one content type.
// Implementations must be stateless and safe for concurrent use.
type Codec interface {
	// Encode serializes a decoded record to bytes.
	Encode(v any) ([]byte, error)

	// Decode deserializes bytes into target, which must be a pointer.
	Decode(data []byte, target any) error

	// ContentType returns the canonical MIME type, e.g. "application/json".
	ContentType() string
}

var (
	mu     sync.RWMutex
	codecs = map[string]Codec{
		JSON{}.ContentType():    JSON{},
		MsgPack{}.ContentType(): MsgPack{},
		Proto{}.ContentType():   Proto{},
	}
)

// Register adds or replaces the codec for its content type. Registered
// codecs are visible to every subsequent Lookup, including unwrapping of
// envelopes built elsewhere.
func Register(c Codec) {
	mu.Lock()
	defer mu.Unlock()
	codecs[mediaType(c.ContentType())] = c
}

// Lookup resolves the codec for contentType. Media-type parameters and
// casing are ignored during matching.
func Lookup(contentType string) (Codec, error) {
	mu.RLock()
	defer mu.RUnlock()
	c, ok := codecs[mediaType(contentType)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownContentType, contentType)
	}
	return c, nil
}

// Default returns the codec used when no content type was negotiated (JSON).
func Default() Codec { return JSON{} }

// mediaType reduces a Content-Type header value to its bare media type:
// parameters stripped, case folded, whitespace trimmed.
func mediaType(contentType string) string {
	base, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(base))
}
