// Package dynamodb provides typed records for DynamoDB stream events: the
// change records a table's stream delivers to event consumers.
//
// Stream records carry item images as maps of AttributeValue, the
// descriptor-tagged dynamic value DynamoDB uses on the wire. Numbers inside
// attributes are string-encoded and stay textual in canonical form so no
// precision is lost in transit.
package dynamodb

import (
	"time"

	"github.com/brentlemons/aws-lambda-events/codec"
	"github.com/brentlemons/aws-lambda-events/record"
)

// EventSource is the eventSource value DynamoDB stamps on every record.
const EventSource = "aws:dynamodb"

// Event is a stream delivery: one or more change records.
type Event struct {
	Records []EventRecord `json:"Records" msgpack:"Records"`
}

// EventRecord is a single change record.
type EventRecord struct {
	EventID        string                   `json:"eventID" msgpack:"eventID"`
	EventName      string                   `json:"eventName" msgpack:"eventName"`
	EventVersion   string                   `json:"eventVersion" msgpack:"eventVersion"`
	EventSource    string                   `json:"eventSource" msgpack:"eventSource"`
	AWSRegion      string                   `json:"awsRegion" msgpack:"awsRegion"`
	Change         StreamRecord             `json:"dynamodb" msgpack:"dynamodb"`
	EventSourceArn codec.Optional[string]   `json:"eventSourceARN" msgpack:"eventSourceARN"`
	UserIdentity   codec.Optional[Identity] `json:"userIdentity" msgpack:"userIdentity"`
}

// Identity appears on records written by TTL deletions and similar
// service-initiated changes.
type Identity struct {
	PrincipalID string `json:"principalId" msgpack:"principalId"`
	Type        string `json:"type" msgpack:"type"`
}

// StreamRecord is the change itself. ApproximateCreationDateTime is
// epoch-seconds on the wire; SequenceNumber is an opaque ordering token
// passed through verbatim.
type StreamRecord struct {
	ApproximateCreationDateTime codec.Optional[time.Time]                 `json:"ApproximateCreationDateTime" msgpack:"ApproximateCreationDateTime"`
	Keys                        map[string]AttributeValue                 `json:"Keys" msgpack:"Keys"`
	NewImage                    codec.Optional[map[string]AttributeValue] `json:"NewImage" msgpack:"NewImage"`
	OldImage                    codec.Optional[map[string]AttributeValue] `json:"OldImage" msgpack:"OldImage"`
	SequenceNumber              string                                    `json:"SequenceNumber" msgpack:"SequenceNumber"`
	SizeBytes                   int64                                     `json:"SizeBytes" msgpack:"SizeBytes"`
	StreamViewType              string                                    `json:"StreamViewType" msgpack:"StreamViewType"`
}

var attributeMap = codec.Map[AttributeValue](attributeCodec{})

var identitySchema = record.New[Identity]("dynamodb.Identity",
	record.Required("principalId", codec.String{},
		func(r *Identity) string { return r.PrincipalID },
		func(r *Identity, v string) { r.PrincipalID = v },
	),
	record.Required("type", codec.String{},
		func(r *Identity) string { return r.Type },
		func(r *Identity, v string) { r.Type = v },
	),
)

var streamRecordSchema = record.New[StreamRecord]("dynamodb.StreamRecord",
	record.Opt("ApproximateCreationDateTime", codec.Time{Form: codec.EpochSeconds},
		func(r *StreamRecord) codec.Optional[time.Time] { return r.ApproximateCreationDateTime },
		func(r *StreamRecord, v codec.Optional[time.Time]) { r.ApproximateCreationDateTime = v },
	),
	record.Required("Keys", attributeMap,
		func(r *StreamRecord) map[string]AttributeValue { return r.Keys },
		func(r *StreamRecord, v map[string]AttributeValue) { r.Keys = v },
	),
	record.Opt("NewImage", attributeMap,
		func(r *StreamRecord) codec.Optional[map[string]AttributeValue] { return r.NewImage },
		func(r *StreamRecord, v codec.Optional[map[string]AttributeValue]) { r.NewImage = v },
	),
	record.Opt("OldImage", attributeMap,
		func(r *StreamRecord) codec.Optional[map[string]AttributeValue] { return r.OldImage },
		func(r *StreamRecord, v codec.Optional[map[string]AttributeValue]) { r.OldImage = v },
	),
	record.Required("SequenceNumber", codec.String{},
		func(r *StreamRecord) string { return r.SequenceNumber },
		func(r *StreamRecord, v string) { r.SequenceNumber = v },
	),
	record.Required("SizeBytes", codec.Int64{},
		func(r *StreamRecord) int64 { return r.SizeBytes },
		func(r *StreamRecord, v int64) { r.SizeBytes = v },
	),
	record.Required("StreamViewType", codec.String{},
		func(r *StreamRecord) string { return r.StreamViewType },
		func(r *StreamRecord, v string) { r.StreamViewType = v },
	),
)

var eventRecordSchema = record.New[EventRecord]("dynamodb.EventRecord",
	record.Required("eventID", codec.String{},
		func(r *EventRecord) string { return r.EventID },
		func(r *EventRecord, v string) { r.EventID = v },
	),
	record.Required("eventName", codec.String{},
		func(r *EventRecord) string { return r.EventName },
		func(r *EventRecord, v string) { r.EventName = v },
	),
	record.Required("eventVersion", codec.String{},
		func(r *EventRecord) string { return r.EventVersion },
		func(r *EventRecord, v string) { r.EventVersion = v },
	),
	record.Required("eventSource", codec.String{},
		func(r *EventRecord) string { return r.EventSource },
		func(r *EventRecord, v string) { r.EventSource = v },
	),
	record.Required("awsRegion", codec.String{},
		func(r *EventRecord) string { return r.AWSRegion },
		func(r *EventRecord, v string) { r.AWSRegion = v },
	),
	record.Required("dynamodb", streamRecordSchema,
		func(r *EventRecord) StreamRecord { return r.Change },
		func(r *EventRecord, v StreamRecord) { r.Change = v },
	),
	record.Opt("eventSourceARN", codec.String{},
		func(r *EventRecord) codec.Optional[string] { return r.EventSourceArn },
		func(r *EventRecord, v codec.Optional[string]) { r.EventSourceArn = v },
	),
	record.Opt("userIdentity", identitySchema,
		func(r *EventRecord) codec.Optional[Identity] { return r.UserIdentity },
		func(r *EventRecord, v codec.Optional[Identity]) { r.UserIdentity = v },
	),
)

var eventSchema = record.New[Event]("dynamodb.Event",
	record.Required("Records", codec.List[EventRecord](eventRecordSchema),
		func(r *Event) []EventRecord { return r.Records },
		func(r *Event, v []EventRecord) { r.Records = v },
	),
)

// Schema returns the event schema for introspection and harness use.
func Schema() *record.Schema[Event] { return eventSchema }

// Decode parses a stream delivery payload into an Event.
func Decode(data []byte) (Event, error) { return eventSchema.DecodeJSON(data) }

// Encode serializes the event back to its wire form.
func Encode(e Event) ([]byte, error) { return eventSchema.EncodeJSON(e) }
