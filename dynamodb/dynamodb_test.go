package dynamodb

import (
	"errors"
	"testing"
	"time"

	"github.com/brentlemons/aws-lambda-events/codec"
	"github.com/brentlemons/aws-lambda-events/roundtrip"
)

func TestDecodeStreamInsert(t *testing.T) {
	samples, err := roundtrip.LoadDir("testdata")
	if err != nil {
		t.Fatal(err)
	}
	var body []byte
	for _, s := range samples {
		if s.Name == "stream-insert" {
			body = s.Body
		}
	}
	event, err := Decode(body)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	rec := event.Records[0]
	if rec.EventName != "INSERT" {
		t.Errorf("unexpected eventName %q", rec.EventName)
	}

	created, ok := rec.Change.ApproximateCreationDateTime.Get()
	if !ok {
		t.Fatal("expected ApproximateCreationDateTime to be present")
	}
	if want := time.Unix(1428537600, 0).UTC(); !created.Equal(want) {
		t.Errorf("expected creation time %v, got %v", want, created)
	}

	image, ok := rec.Change.NewImage.Get()
	if !ok {
		t.Fatal("expected NewImage to be present")
	}

	id := image["Id"]
	if id.Kind() != NumberKind {
		t.Fatalf("expected Id to be N, got %s", id.Kind())
	}
	n, err := id.Int64()
	if err != nil {
		t.Fatalf("Id.Int64: %v", err)
	}
	if n != 101 {
		t.Errorf("expected Id 101, got %d", n)
	}

	// The high-precision numeral must survive textually.
	if got := image["Price"].Number(); got != "3.14159265358979323846264338327950288419" {
		t.Errorf("price numeral was altered: %q", got)
	}

	if !image["Nothing"].IsNull() {
		t.Error("expected Nothing to be NULL")
	}
	if string(image["Thumbnail"].Binary()) != "image-bytes" {
		t.Errorf("binary attribute did not decode: %q", image["Thumbnail"].Binary())
	}
	dims := image["Dimensions"].Map()
	if got := dims["Height"].Number(); got != "10" {
		t.Errorf("unexpected nested Height %q", got)
	}
	variants := image["Variants"].List()
	if len(variants) != 2 || variants[0].String() != "red" || variants[1].Number() != "42" {
		t.Errorf("unexpected Variants %v", variants)
	}
}

func TestAttributeInt64Overflow(t *testing.T) {
	av := NewNumber("92233720368547758080") // 10 * MaxInt64
	_, err := av.Int64()
	if err == nil {
		t.Fatal("expected overflow error")
	}
	if !errors.Is(err, codec.ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
	// The textual numeral is still intact.
	if av.Number() != "92233720368547758080" {
		t.Errorf("numeral was altered: %q", av.Number())
	}
}

func TestAttributeRejectsNonFiniteNumerals(t *testing.T) {
	for _, numeral := range []string{"Inf", "+Inf", "-Inf", "Infinity", "NaN", "nan", "0x1p-2"} {
		var av AttributeValue
		err := av.UnmarshalJSON([]byte(`{"N":"` + numeral + `"}`))
		if err == nil {
			t.Errorf("numeral %q accepted, want error", numeral)
			continue
		}
		if !errors.Is(err, codec.ErrInvalidEncoding) {
			t.Errorf("numeral %q: expected ErrInvalidEncoding, got %v", numeral, err)
		}
	}

	// Scientific notation and signs stay legal.
	for _, numeral := range []string{"1e5", "-2.5E-3", "+7"} {
		var av AttributeValue
		if err := av.UnmarshalJSON([]byte(`{"N":"` + numeral + `"}`)); err != nil {
			t.Errorf("numeral %q rejected: %v", numeral, err)
		}
	}
}

func TestAttributeUnknownDescriptor(t *testing.T) {
	_, err := Decode([]byte(`{"Records":[{
		"eventID":"1","eventName":"INSERT","eventVersion":"1.0",
		"eventSource":"aws:dynamodb","awsRegion":"us-east-1",
		"dynamodb":{
			"Keys":{"Id":{"X":"boom"}},
			"SequenceNumber":"1","SizeBytes":1,"StreamViewType":"KEYS_ONLY"
		}}]}`))
	if err == nil {
		t.Fatal("expected decode to fail on unknown descriptor")
	}
	if !errors.Is(err, codec.ErrInvalidEncoding) {
		t.Errorf("expected ErrInvalidEncoding, got %v", err)
	}
}

func TestRoundTripSamples(t *testing.T) {
	samples, err := roundtrip.LoadDir("testdata")
	if err != nil {
		t.Fatal(err)
	}
	for _, sample := range samples {
		t.Run(sample.Name, func(t *testing.T) {
			if err := roundtrip.Check(Schema(), sample); err != nil {
				t.Error(err)
			}
		})
	}
}
