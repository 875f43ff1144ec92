// Package s3 provides typed records for S3 bucket notification events.
//
// Amazon S3 uses versions 2.1, 2.2 and 2.3 of the notification structure
// depending on the operation. The later versions add information but stay
// compatible with 2.1, so one superset schema decodes all of them and the
// version-specific fields are optional.
package s3

import (
	"time"

	"github.com/brentlemons/aws-lambda-events/codec"
	"github.com/brentlemons/aws-lambda-events/record"
)

// EventSource is the eventSource value S3 stamps on every record.
const EventSource = "aws:s3"

// Event is a bucket notification delivery: one or more records.
type Event struct {
	Records []EventRecord `json:"Records" msgpack:"Records"`
}

// EventRecord is a single notification record.
type EventRecord struct {
	EventVersion      string            `json:"eventVersion" msgpack:"eventVersion"`
	EventSource       string            `json:"eventSource" msgpack:"eventSource"`
	AWSRegion         string            `json:"awsRegion" msgpack:"awsRegion"`
	EventTime         time.Time         `json:"eventTime" msgpack:"eventTime"`
	EventName         string            `json:"eventName" msgpack:"eventName"`
	UserIdentity      Identity          `json:"userIdentity" msgpack:"userIdentity"`
	RequestParameters RequestParameters `json:"requestParameters" msgpack:"requestParameters"`
	ResponseElements  ResponseElements  `json:"responseElements" msgpack:"responseElements"`
	S3                Entity            `json:"s3" msgpack:"s3"`
}

// Identity carries the customer ID of the principal that caused the event.
type Identity struct {
	PrincipalID string `json:"principalId" msgpack:"principalId"`
}

// RequestParameters currently carries only the source IP of the request.
type RequestParameters struct {
	SourceIPAddress string `json:"sourceIPAddress" msgpack:"sourceIPAddress"`
}

// ResponseElements holds the request-tracing tokens S3 returned to the
// original request, useful when following up with support.
type ResponseElements struct {
	RequestID string `json:"x-amz-request-id" msgpack:"x-amz-request-id"`
	HostID    string `json:"x-amz-id-2" msgpack:"x-amz-id-2"`
}

// Entity groups the bucket and object the notification is about.
type Entity struct {
	SchemaVersion   string `json:"s3SchemaVersion" msgpack:"s3SchemaVersion"`
	ConfigurationID string `json:"configurationId" msgpack:"configurationId"`
	Bucket          Bucket `json:"bucket" msgpack:"bucket"`
	Object          Object `json:"object" msgpack:"object"`
}

// Bucket identifies the bucket.
type Bucket struct {
	Name          string   `json:"name" msgpack:"name"`
	OwnerIdentity Identity `json:"ownerIdentity" msgpack:"ownerIdentity"`
	ARN           string   `json:"arn" msgpack:"arn"`
}

// Object identifies the object. Size, VersionID, ETag and Sequencer are
// only present for some event types and bucket configurations; Sequencer
// is an opaque ordering token, passed through verbatim.
type Object struct {
	Key       string                 `json:"key" msgpack:"key"`
	Size      codec.Optional[int64]  `json:"size" msgpack:"size"`
	VersionID codec.Optional[string] `json:"versionId" msgpack:"versionId"`
	ETag      codec.Optional[string] `json:"eTag" msgpack:"eTag"`
	Sequencer codec.Optional[string] `json:"sequencer" msgpack:"sequencer"`
}

var identitySchema = record.New[Identity]("s3.Identity",
	record.Required("principalId", codec.String{},
		func(r *Identity) string { return r.PrincipalID },
		func(r *Identity, v string) { r.PrincipalID = v },
	),
)

var requestParametersSchema = record.New[RequestParameters]("s3.RequestParameters",
	record.Required("sourceIPAddress", codec.String{},
		func(r *RequestParameters) string { return r.SourceIPAddress },
		func(r *RequestParameters, v string) { r.SourceIPAddress = v },
	),
)

var responseElementsSchema = record.New[ResponseElements]("s3.ResponseElements",
	record.Required("x-amz-request-id", codec.String{},
		func(r *ResponseElements) string { return r.RequestID },
		func(r *ResponseElements, v string) { r.RequestID = v },
	),
	record.Required("x-amz-id-2", codec.String{},
		func(r *ResponseElements) string { return r.HostID },
		func(r *ResponseElements, v string) { r.HostID = v },
	),
)

var bucketSchema = record.New[Bucket]("s3.Bucket",
	record.Required("name", codec.String{},
		func(r *Bucket) string { return r.Name },
		func(r *Bucket, v string) { r.Name = v },
	),
	record.Required("ownerIdentity", identitySchema,
		func(r *Bucket) Identity { return r.OwnerIdentity },
		func(r *Bucket, v Identity) { r.OwnerIdentity = v },
	),
	record.Required("arn", codec.String{},
		func(r *Bucket) string { return r.ARN },
		func(r *Bucket, v string) { r.ARN = v },
	),
)

var objectSchema = record.New[Object]("s3.Object",
	record.Required("key", codec.String{},
		func(r *Object) string { return r.Key },
		func(r *Object, v string) { r.Key = v },
	),
	record.Opt("size", codec.Int64{},
		func(r *Object) codec.Optional[int64] { return r.Size },
		func(r *Object, v codec.Optional[int64]) { r.Size = v },
	),
	record.Opt("versionId", codec.String{},
		func(r *Object) codec.Optional[string] { return r.VersionID },
		func(r *Object, v codec.Optional[string]) { r.VersionID = v },
	),
	record.Opt("eTag", codec.String{},
		func(r *Object) codec.Optional[string] { return r.ETag },
		func(r *Object, v codec.Optional[string]) { r.ETag = v },
	),
	record.Opt("sequencer", codec.String{},
		func(r *Object) codec.Optional[string] { return r.Sequencer },
		func(r *Object, v codec.Optional[string]) { r.Sequencer = v },
	),
)

var entitySchema = record.New[Entity]("s3.Entity",
	record.Required("s3SchemaVersion", codec.String{},
		func(r *Entity) string { return r.SchemaVersion },
		func(r *Entity, v string) { r.SchemaVersion = v },
	),
	record.Required("configurationId", codec.String{},
		func(r *Entity) string { return r.ConfigurationID },
		func(r *Entity, v string) { r.ConfigurationID = v },
	),
	record.Required("bucket", bucketSchema,
		func(r *Entity) Bucket { return r.Bucket },
		func(r *Entity, v Bucket) { r.Bucket = v },
	),
	record.Required("object", objectSchema,
		func(r *Entity) Object { return r.Object },
		func(r *Entity, v Object) { r.Object = v },
	),
)

var eventRecordSchema = record.New[EventRecord]("s3.EventRecord",
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
	record.Required("eventTime", codec.Time{Form: codec.RFC3339Milli},
		func(r *EventRecord) time.Time { return r.EventTime },
		func(r *EventRecord, v time.Time) { r.EventTime = v },
	),
	record.Required("eventName", codec.String{},
		func(r *EventRecord) string { return r.EventName },
		func(r *EventRecord, v string) { r.EventName = v },
	),
	record.Required("userIdentity", identitySchema,
		func(r *EventRecord) Identity { return r.UserIdentity },
		func(r *EventRecord, v Identity) { r.UserIdentity = v },
	),
	record.Required("requestParameters", requestParametersSchema,
		func(r *EventRecord) RequestParameters { return r.RequestParameters },
		func(r *EventRecord, v RequestParameters) { r.RequestParameters = v },
	),
	record.Required("responseElements", responseElementsSchema,
		func(r *EventRecord) ResponseElements { return r.ResponseElements },
		func(r *EventRecord, v ResponseElements) { r.ResponseElements = v },
	),
	record.Required("s3", entitySchema,
		func(r *EventRecord) Entity { return r.S3 },
		func(r *EventRecord, v Entity) { r.S3 = v },
	),
)

var eventSchema = record.New[Event]("s3.Event",
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
