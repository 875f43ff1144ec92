// Package sqs provides typed records for SQS queue message events.
package sqs

import (
	"github.com/brentlemons/aws-lambda-events/codec"
	"github.com/brentlemons/aws-lambda-events/record"
)

// EventSource is the eventSource value SQS stamps on every record.
const EventSource = "aws:sqs"

// Event is a queue delivery: a batch of messages.
type Event struct {
	Records []Message `json:"Records" msgpack:"Records"`
}

// Message is one queue message. Attributes are queue-level system
// attributes (string-to-string); MessageAttributes are the typed attributes
// the sender attached.
type Message struct {
	MessageID              string                      `json:"messageId" msgpack:"messageId"`
	ReceiptHandle          string                      `json:"receiptHandle" msgpack:"receiptHandle"`
	Body                   string                      `json:"body" msgpack:"body"`
	Attributes             map[string]string           `json:"attributes" msgpack:"attributes"`
	MessageAttributes      map[string]MessageAttribute `json:"messageAttributes" msgpack:"messageAttributes"`
	MD5OfBody              string                      `json:"md5OfBody" msgpack:"md5OfBody"`
	MD5OfMessageAttributes codec.Optional[string]      `json:"md5OfMessageAttributes" msgpack:"md5OfMessageAttributes"`
	EventSource            string                      `json:"eventSource" msgpack:"eventSource"`
	EventSourceARN         string                      `json:"eventSourceARN" msgpack:"eventSourceARN"`
	AWSRegion              string                      `json:"awsRegion" msgpack:"awsRegion"`
}

// MessageAttribute is a sender-attached attribute. Binary values arrive
// base64-encoded and are carried as raw bytes.
type MessageAttribute struct {
	StringValue      codec.Optional[string] `json:"stringValue" msgpack:"stringValue"`
	BinaryValue      codec.Optional[[]byte] `json:"binaryValue" msgpack:"binaryValue"`
	StringListValues []string               `json:"stringListValues" msgpack:"stringListValues"`
	BinaryListValues [][]byte               `json:"binaryListValues" msgpack:"binaryListValues"`
	DataType         string                 `json:"dataType" msgpack:"dataType"`
}

var messageAttributeSchema = record.New[MessageAttribute]("sqs.MessageAttribute",
	record.Opt("stringValue", codec.String{},
		func(r *MessageAttribute) codec.Optional[string] { return r.StringValue },
		func(r *MessageAttribute, v codec.Optional[string]) { r.StringValue = v },
	),
	record.Opt("binaryValue", codec.Bytes{},
		func(r *MessageAttribute) codec.Optional[[]byte] { return r.BinaryValue },
		func(r *MessageAttribute, v codec.Optional[[]byte]) { r.BinaryValue = v },
	),
	record.Required("stringListValues", codec.List[string](codec.String{}),
		func(r *MessageAttribute) []string { return r.StringListValues },
		func(r *MessageAttribute, v []string) { r.StringListValues = v },
	),
	record.Required("binaryListValues", codec.List[[]byte](codec.Bytes{}),
		func(r *MessageAttribute) [][]byte { return r.BinaryListValues },
		func(r *MessageAttribute, v [][]byte) { r.BinaryListValues = v },
	),
	record.Required("dataType", codec.String{},
		func(r *MessageAttribute) string { return r.DataType },
		func(r *MessageAttribute, v string) { r.DataType = v },
	),
)

var messageSchema = record.New[Message]("sqs.Message",
	record.Required("messageId", codec.String{},
		func(r *Message) string { return r.MessageID },
		func(r *Message, v string) { r.MessageID = v },
	),
	record.Required("receiptHandle", codec.String{},
		func(r *Message) string { return r.ReceiptHandle },
		func(r *Message, v string) { r.ReceiptHandle = v },
	),
	record.Required("body", codec.String{},
		func(r *Message) string { return r.Body },
		func(r *Message, v string) { r.Body = v },
	),
	record.Required("attributes", codec.Map[string](codec.String{}),
		func(r *Message) map[string]string { return r.Attributes },
		func(r *Message, v map[string]string) { r.Attributes = v },
	),
	record.Required("messageAttributes", codec.Map[MessageAttribute](messageAttributeSchema),
		func(r *Message) map[string]MessageAttribute { return r.MessageAttributes },
		func(r *Message, v map[string]MessageAttribute) { r.MessageAttributes = v },
	),
	record.Required("md5OfBody", codec.String{},
		func(r *Message) string { return r.MD5OfBody },
		func(r *Message, v string) { r.MD5OfBody = v },
	),
	record.Opt("md5OfMessageAttributes", codec.String{},
		func(r *Message) codec.Optional[string] { return r.MD5OfMessageAttributes },
		func(r *Message, v codec.Optional[string]) { r.MD5OfMessageAttributes = v },
	),
	record.Required("eventSource", codec.String{},
		func(r *Message) string { return r.EventSource },
		func(r *Message, v string) { r.EventSource = v },
	),
	record.Required("eventSourceARN", codec.String{},
		func(r *Message) string { return r.EventSourceARN },
		func(r *Message, v string) { r.EventSourceARN = v },
	),
	record.Required("awsRegion", codec.String{},
		func(r *Message) string { return r.AWSRegion },
		func(r *Message, v string) { r.AWSRegion = v },
	),
)

var eventSchema = record.New[Event]("sqs.Event",
	record.Required("Records", codec.List[Message](messageSchema),
		func(r *Event) []Message { return r.Records },
		func(r *Event, v []Message) { r.Records = v },
	),
)

// Schema returns the event schema for introspection and harness use.
func Schema() *record.Schema[Event] { return eventSchema }

// Decode parses a queue delivery payload into an Event.
func Decode(data []byte) (Event, error) { return eventSchema.DecodeJSON(data) }

// Encode serializes the event back to its wire form.
func Encode(e Event) ([]byte, error) { return eventSchema.EncodeJSON(e) }
