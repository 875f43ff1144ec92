// Package events decodes and re-encodes AWS event payloads with round-trip
// fidelity.
//
// Architecture, leaves first:
//   - wire models JSON documents structurally, keeping absent-vs-null and
//     number spellings intact.
//   - codec holds the reusable field codecs (tolerant timestamps,
//     string-encoded numerics, base64 blobs, delimited lists,
//     case-insensitive multi-maps) and the Optional tri-state.
//   - record turns codecs into declarative, introspectable field tables
//     with fail-fast decoding and exact re-encoding.
//   - s3, sns, sqs, apigw and dynamodb declare the typed records of each
//     event family on top of record.
//   - roundtrip verifies decode/encode fidelity against captured payloads.
//   - payload re-serializes decoded records (JSON, MessagePack, Protobuf)
//     for downstream consumers.
//
// This package ties the families together: a Dispatcher sniffs the event
// family of a raw payload and decodes it, and an Envelope carries a decoded
// record plus metadata through a payload codec.
//
// Basic example:
//
//	d := events.NewDispatcher()
//	family, event, err := d.Decode(ctx, body)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	switch e := event.(type) {
//	case s3.Event:
//	    fmt.Println("bucket:", e.Records[0].S3.Bucket.Name)
//	}
//
// Decoding performs no I/O; schemas are immutable once built and the
// dispatcher guards its family table with a read lock, so concurrent
// decodes are safe.
package events
