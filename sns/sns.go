// Package sns provides typed records for SNS topic notification envelopes
// as delivered to event consumers. SNS keys are leading-capital throughout,
// unlike most other event families; the casing is part of the contract.
package sns

import (
	"time"

	"github.com/brentlemons/aws-lambda-events/codec"
	"github.com/brentlemons/aws-lambda-events/record"
)

// EventSource is the EventSource value SNS stamps on every record.
const EventSource = "aws:sns"

// Event is a topic notification delivery.
type Event struct {
	Records []EventRecord `json:"Records" msgpack:"Records"`
}

// EventRecord wraps one notification.
type EventRecord struct {
	EventVersion         string `json:"EventVersion" msgpack:"EventVersion"`
	EventSubscriptionArn string `json:"EventSubscriptionArn" msgpack:"EventSubscriptionArn"`
	EventSource          string `json:"EventSource" msgpack:"EventSource"`
	SNS                  Entity `json:"Sns" msgpack:"Sns"`
}

// Entity is the notification itself. Subject is explicitly null when the
// publisher set none, which is distinct from the key being absent.
// Signature is the base64-encoded message signature, carried as raw bytes.
type Entity struct {
	Type              string                      `json:"Type" msgpack:"Type"`
	MessageID         string                      `json:"MessageId" msgpack:"MessageId"`
	TopicArn          string                      `json:"TopicArn" msgpack:"TopicArn"`
	Subject           codec.Optional[string]      `json:"Subject" msgpack:"Subject"`
	Message           string                      `json:"Message" msgpack:"Message"`
	Timestamp         time.Time                   `json:"Timestamp" msgpack:"Timestamp"`
	SignatureVersion  string                      `json:"SignatureVersion" msgpack:"SignatureVersion"`
	Signature         []byte                      `json:"Signature" msgpack:"Signature"`
	SigningCertURL    string                      `json:"SigningCertUrl" msgpack:"SigningCertUrl"`
	UnsubscribeURL    string                      `json:"UnsubscribeUrl" msgpack:"UnsubscribeUrl"`
	MessageAttributes map[string]MessageAttribute `json:"MessageAttributes,omitempty" msgpack:"MessageAttributes,omitempty"`
}

// MessageAttribute is one typed attribute attached by the publisher. Binary
// attribute values arrive base64-encoded inside Value; they are passed
// through verbatim because Type, not the codec layer, declares how to read
// them.
type MessageAttribute struct {
	Type  string `json:"Type" msgpack:"Type"`
	Value string `json:"Value" msgpack:"Value"`
}

var messageAttributeSchema = record.New[MessageAttribute]("sns.MessageAttribute",
	record.Required("Type", codec.String{},
		func(r *MessageAttribute) string { return r.Type },
		func(r *MessageAttribute, v string) { r.Type = v },
	),
	record.Required("Value", codec.String{},
		func(r *MessageAttribute) string { return r.Value },
		func(r *MessageAttribute, v string) { r.Value = v },
	),
)

var entitySchema = record.New[Entity]("sns.Entity",
	record.Required("Type", codec.String{},
		func(r *Entity) string { return r.Type },
		func(r *Entity, v string) { r.Type = v },
	),
	record.Required("MessageId", codec.String{},
		func(r *Entity) string { return r.MessageID },
		func(r *Entity, v string) { r.MessageID = v },
	),
	record.Required("TopicArn", codec.String{},
		func(r *Entity) string { return r.TopicArn },
		func(r *Entity, v string) { r.TopicArn = v },
	),
	record.Opt("Subject", codec.String{},
		func(r *Entity) codec.Optional[string] { return r.Subject },
		func(r *Entity, v codec.Optional[string]) { r.Subject = v },
	),
	record.Required("Message", codec.String{},
		func(r *Entity) string { return r.Message },
		func(r *Entity, v string) { r.Message = v },
	),
	record.Required("Timestamp", codec.Time{Form: codec.RFC3339Milli},
		func(r *Entity) time.Time { return r.Timestamp },
		func(r *Entity, v time.Time) { r.Timestamp = v },
	),
	record.Required("SignatureVersion", codec.String{},
		func(r *Entity) string { return r.SignatureVersion },
		func(r *Entity, v string) { r.SignatureVersion = v },
	),
	record.Required("Signature", codec.Bytes{},
		func(r *Entity) []byte { return r.Signature },
		func(r *Entity, v []byte) { r.Signature = v },
	),
	record.Required("SigningCertUrl", codec.String{},
		func(r *Entity) string { return r.SigningCertURL },
		func(r *Entity, v string) { r.SigningCertURL = v },
	),
	record.Required("UnsubscribeUrl", codec.String{},
		func(r *Entity) string { return r.UnsubscribeURL },
		func(r *Entity, v string) { r.UnsubscribeURL = v },
	),
	record.Required("MessageAttributes", codec.Map[MessageAttribute](messageAttributeSchema),
		func(r *Entity) map[string]MessageAttribute { return r.MessageAttributes },
		func(r *Entity, v map[string]MessageAttribute) { r.MessageAttributes = v },
	),
)

var eventRecordSchema = record.New[EventRecord]("sns.EventRecord",
	record.Required("EventVersion", codec.String{},
		func(r *EventRecord) string { return r.EventVersion },
		func(r *EventRecord, v string) { r.EventVersion = v },
	),
	record.Required("EventSubscriptionArn", codec.String{},
		func(r *EventRecord) string { return r.EventSubscriptionArn },
		func(r *EventRecord, v string) { r.EventSubscriptionArn = v },
	),
	record.Required("EventSource", codec.String{},
		func(r *EventRecord) string { return r.EventSource },
		func(r *EventRecord, v string) { r.EventSource = v },
	),
	record.Required("Sns", entitySchema,
		func(r *EventRecord) Entity { return r.SNS },
		func(r *EventRecord, v Entity) { r.SNS = v },
	),
)

var eventSchema = record.New[Event]("sns.Event",
	record.Required("Records", codec.List[EventRecord](eventRecordSchema),
		func(r *Event) []EventRecord { return r.Records },
		func(r *Event, v []EventRecord) { r.Records = v },
	),
)

// Schema returns the event schema for introspection and harness use.
func Schema() *record.Schema[Event] { return eventSchema }

// Decode parses a notification payload into an Event.
func Decode(data []byte) (Event, error) { return eventSchema.DecodeJSON(data) }

// Encode serializes the event back to its wire form.
func Encode(e Event) ([]byte, error) { return eventSchema.EncodeJSON(e) }
