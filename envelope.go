package events

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/brentlemons/aws-lambda-events/payload"
)

// Envelope carries a decoded event through downstream systems together with
// routing metadata. The payload is stored serialized; ContentType names the
// payload codec used.
type Envelope struct {
	ID          string            `json:"id"`
	Family      string            `json:"family"`
	ContentType string            `json:"content_type"`
	Payload     []byte            `json:"payload"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

// Wrap serializes event with the payload codec registered for contentType
// and wraps it in a new Envelope with a fresh ID.
func Wrap(family, contentType string, event any) (Envelope, error) {
	codec, err := payload.Lookup(contentType)
	if err != nil {
		return Envelope{}, err
	}
	data, err := codec.Encode(event)
	if err != nil {
		return Envelope{}, fmt.Errorf("encode %s payload: %w", family, err)
	}
	return Envelope{
		ID:          uuid.NewString(),
		Family:      family,
		ContentType: contentType,
		Payload:     data,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// Unwrap deserializes the envelope's payload into target using the codec
// named by ContentType. target must be a pointer.
func (e Envelope) Unwrap(target any) error {
	codec, err := payload.Lookup(e.ContentType)
	if err != nil {
		return err
	}
	if err := codec.Decode(e.Payload, target); err != nil {
		return fmt.Errorf("decode %s payload: %w", e.Family, err)
	}
	return nil
}

// WithMetadata returns a copy of the envelope with the key set. The
// original's metadata map is not mutated.
func (e Envelope) WithMetadata(key, value string) Envelope {
	md := make(map[string]string, len(e.Metadata)+1)
	for k, v := range e.Metadata {
		md[k] = v
	}
	md[key] = value
	e.Metadata = md
	return e
}
