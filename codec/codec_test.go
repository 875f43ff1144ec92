package codec

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/brentlemons/aws-lambda-events/wire"
)

func mustParse(t *testing.T, body string) wire.Value {
	t.Helper()
	v, err := wire.Parse([]byte(body))
	if err != nil {
		t.Fatalf("parse %q: %v", body, err)
	}
	return v
}

func mustMarshal(t *testing.T, v wire.Value) string {
	t.Helper()
	out, err := wire.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(out)
}

func TestStringCodec(t *testing.T) {
	got, err := String{}.Decode(wire.StringValue("hello"))
	if err != nil || got != "hello" {
		t.Errorf("Decode = (%q, %v)", got, err)
	}
	if _, err := (String{}).Decode(wire.NumberValue("1")); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("number input: err = %v, want ErrTypeMismatch", err)
	}
}

func TestInt64Codec(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    int64
		wantErr error
	}{
		{"simple", `42`, 42, nil},
		{"negative", `-7`, -7, nil},
		{"max", `9223372036854775807`, 1<<63 - 1, nil},
		{"overflow", `9223372036854775808`, 0, ErrOutOfRange},
		{"fractional", `1.5`, 0, ErrTypeMismatch},
		{"string input", `"42"`, 0, ErrTypeMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Int64{}.Decode(mustParse(t, tt.in))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("Decode = (%d, %v), want %d", got, err, tt.want)
			}
		})
	}
}

func TestStringIntRoundTrip(t *testing.T) {
	n, err := StringInt{}.Decode(wire.StringValue("1024"))
	if err != nil || n != 1024 {
		t.Fatalf("Decode = (%d, %v)", n, err)
	}
	v, err := StringInt{}.Encode(n)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if v.Kind() != wire.String || v.Str() != "1024" {
		t.Errorf("Encode produced %v %q, want string \"1024\"", v.Kind(), v.Str())
	}
}

func TestStringIntErrors(t *testing.T) {
	if _, err := (StringInt{}).Decode(wire.StringValue("99999999999999999999")); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("overflow: err = %v, want ErrOutOfRange", err)
	}
	if _, err := (StringInt{Bits: 32}).Decode(wire.StringValue("4294967296")); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("32-bit overflow: err = %v, want ErrOutOfRange", err)
	}
	if _, err := (StringInt{}).Decode(wire.StringValue("12abc")); !errors.Is(err, ErrInvalidEncoding) {
		t.Errorf("garbage: err = %v, want ErrInvalidEncoding", err)
	}
	if _, err := (StringInt{}).Decode(wire.NumberValue("12")); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("bare number: err = %v, want ErrTypeMismatch", err)
	}
	if _, err := (StringInt{Bits: 32}).Encode(1 << 40); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("encode overflow: err = %v, want ErrOutOfRange", err)
	}
}

func TestStringFloat(t *testing.T) {
	f, err := StringFloat{}.Decode(wire.StringValue("3.5"))
	if err != nil || f != 3.5 {
		t.Fatalf("Decode = (%v, %v)", f, err)
	}
	v, err := StringFloat{}.Encode(3.5)
	if err != nil || v.Str() != "3.5" {
		t.Errorf("Encode = (%q, %v)", v.Str(), err)
	}
}

func TestBytesDecodePaddingVariants(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"canonical", "SGVsbG8=", "Hello"},
		{"missing padding", "SGVsbG8", "Hello"},
		{"no padding needed", "SGVsbG8h", "Hello!"},
		{"two byte canonical", "SGk=", "Hi"},
		{"two byte unpadded", "SGk", "Hi"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Bytes{}.Decode(wire.StringValue(tt.in))
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Decode = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBytesErrors(t *testing.T) {
	if _, err := (Bytes{}).Decode(wire.StringValue("SGVsb")); !errors.Is(err, ErrInvalidEncoding) {
		t.Errorf("impossible length: err = %v, want ErrInvalidEncoding", err)
	}
	if _, err := (Bytes{}).Decode(wire.StringValue("!!!!")); !errors.Is(err, ErrInvalidEncoding) {
		t.Errorf("bad alphabet: err = %v, want ErrInvalidEncoding", err)
	}
	if _, err := (Bytes{}).Decode(wire.NumberValue("1")); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("non-string: err = %v, want ErrTypeMismatch", err)
	}
}

func TestBytesEncodeCanonical(t *testing.T) {
	v, err := Bytes{}.Encode([]byte("Hello"))
	if err != nil || v.Str() != "SGVsbG8=" {
		t.Errorf("Encode = (%q, %v), want SGVsbG8=", v.Str(), err)
	}
}

func TestTimeDecodeForms(t *testing.T) {
	epoch := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		form TimeForm
		in   string
		want time.Time
	}{
		{"rfc3339 millis", RFC3339Milli, `"1970-01-01T00:00:00.000Z"`, epoch},
		{"rfc3339 seconds", RFC3339, `"2024-06-01T12:30:00Z"`, time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)},
		{"offset normalized to utc", RFC3339, `"2024-06-01T14:30:00+02:00"`, time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)},
		{"epoch seconds integer", EpochSeconds, `1717245000`, time.Unix(1717245000, 0).UTC()},
		{"epoch seconds fractional", EpochSeconds, `1.5`, time.Unix(1, 500000000).UTC()},
		{"epoch millis", EpochMillis, `1717245000123`, time.UnixMilli(1717245000123).UTC()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Time{Form: tt.form}.Decode(mustParse(t, tt.in))
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Decode = %v, want %v", got, tt.want)
			}
			if got.Location() != time.UTC {
				t.Errorf("decoded time not UTC: %v", got.Location())
			}
		})
	}
}

func TestTimeEncodeDeclaredForm(t *testing.T) {
	ts := time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)
	tests := []struct {
		name string
		form TimeForm
		want string
	}{
		{"rfc3339 millis", RFC3339Milli, `"2024-06-01T12:30:00.000Z"`},
		{"rfc3339", RFC3339, `"2024-06-01T12:30:00Z"`},
		{"epoch seconds", EpochSeconds, `1717245000`},
		{"epoch millis", EpochMillis, `1717245000000`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Time{Form: tt.form}.Encode(ts)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			if got := mustMarshal(t, v); got != tt.want {
				t.Errorf("Encode = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestTimeDecodeToleratesEitherShape(t *testing.T) {
	// A field declared as epoch still accepts an ISO string, and vice versa;
	// only Encode is pinned to the declared form.
	c := Time{Form: EpochSeconds}
	got, err := c.Decode(wire.StringValue("2024-06-01T12:30:00Z"))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	v, err := c.Encode(got)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if v.Kind() != wire.Number || string(v.Num()) != "1717245000" {
		t.Errorf("re-encode = %v %q, want number 1717245000", v.Kind(), v.Num())
	}
}

func TestTimeErrors(t *testing.T) {
	if _, err := (Time{}).Decode(wire.StringValue("yesterday")); !errors.Is(err, ErrInvalidEncoding) {
		t.Errorf("garbage string: err = %v, want ErrInvalidEncoding", err)
	}
	if _, err := (Time{}).Decode(wire.BoolValue(true)); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("bool input: err = %v, want ErrTypeMismatch", err)
	}
}

func TestStringListDecode(t *testing.T) {
	tests := []struct {
		name  string
		codec StringList
		in    string
		want  []string
	}{
		{"empty string is empty list", StringList{}, "", []string{}},
		{"single", StringList{}, "a", []string{"a"}},
		{"empties preserved", StringList{}, "a,b,,c", []string{"a", "b", "", "c"}},
		{"empties dropped", StringList{DropEmpty: true}, "a,b,,c", []string{"a", "b", "c"}},
		{"elements trimmed", StringList{}, " a , b ", []string{"a", "b"}},
		{"custom separator", StringList{Sep: ";"}, "a;b", []string{"a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.codec.Decode(wire.StringValue(tt.in))
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Decode mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestListCodecWrapsElementErrors(t *testing.T) {
	c := List[int64](Int64{})
	_, err := c.Decode(mustParse(t, `[1, "two", 3]`))
	if !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("err = %v, want wrapped ErrTypeMismatch", err)
	}
	var ce *Error
	if !errors.As(err, &ce) {
		t.Errorf("err does not carry *Error: %v", err)
	}
}

func TestMapCodecSortsEncodedKeys(t *testing.T) {
	c := Map[string](String{})
	v, err := c.Encode(map[string]string{"z": "1", "a": "2"})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if got := mustMarshal(t, v); got != `{"a":"2","z":"1"}` {
		t.Errorf("Encode = %s", got)
	}
}

func TestOptionalStates(t *testing.T) {
	var absent Optional[string]
	if !absent.IsAbsent() || absent.IsNull() {
		t.Error("zero Optional is not absent")
	}
	if _, ok := absent.Get(); ok {
		t.Error("absent Optional reported a value")
	}

	null := Null[string]()
	if !null.IsNull() || null.IsAbsent() {
		t.Error("Null() state wrong")
	}

	some := Some("v")
	if got, ok := some.Get(); !ok || got != "v" {
		t.Errorf("Some.Get = (%q, %v)", got, ok)
	}
	if some.IsAbsent() || some.IsNull() {
		t.Error("Some reported empty state")
	}

	if absent.Or("def") != "def" || null.Or("def") != "def" || some.Or("def") != "v" {
		t.Error("Or defaults wrong")
	}
}

func TestMultiMapCaseInsensitiveLookup(t *testing.T) {
	m, err := MultiMap{}.Decode(mustParse(t, `{"X-Request-Id": "1"}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got := m.Get("x-request-id"); len(got) != 1 || got[0] != "1" {
		t.Errorf("folded lookup = %v", got)
	}
	if got := m.Get("X-REQUEST-ID"); len(got) != 1 || got[0] != "1" {
		t.Errorf("upper lookup = %v", got)
	}
	if m.First("X-Request-Id") != "1" {
		t.Error("original casing lookup failed")
	}
}

func TestMultiMapShapePreserved(t *testing.T) {
	body := `{"Content-Type":"application/json","Set-Cookie":["a=1","b=2"],"X-Empty":[]}`
	m, err := MultiMap{}.Decode(mustParse(t, body))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	v, err := MultiMap{}.Encode(m)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if got := mustMarshal(t, v); got != body {
		t.Errorf("shape not preserved:\n got %s\nwant %s", got, body)
	}
}

func TestMultiMapScalarAndArrayEquivalentForLookup(t *testing.T) {
	scalar, err := MultiMap{}.Decode(mustParse(t, `{"X-Id":"1"}`))
	if err != nil {
		t.Fatalf("Decode scalar: %v", err)
	}
	array, err := MultiMap{}.Decode(mustParse(t, `{"x-id":["1"]}`))
	if err != nil {
		t.Fatalf("Decode array: %v", err)
	}
	if diff := cmp.Diff(scalar.Get("X-ID"), array.Get("X-ID")); diff != "" {
		t.Errorf("lookup differs between shapes:\n%s", diff)
	}
}

func TestMultiMapRejectsBadMember(t *testing.T) {
	decode := func(body string) error {
		_, err := (MultiMap{}).Decode(mustParse(t, body))
		return err
	}

	err := decode(`{"X-Count": 1}`)
	if !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("number member: err = %v, want ErrTypeMismatch", err)
	}
	if !strings.Contains(err.Error(), `"X-Count"`) {
		t.Errorf("error does not name the offending key: %v", err)
	}

	err = decode(`{"Set-Cookie": ["a", 1]}`)
	if !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("mixed array: err = %v, want ErrTypeMismatch", err)
	}
	if !strings.Contains(err.Error(), `"Set-Cookie"`) {
		t.Errorf("error does not name the offending key: %v", err)
	}
}

func TestValuesAddAndSet(t *testing.T) {
	var m Values
	m.Add("Accept", "text/html")
	m.Add("accept", "application/json")
	if got := m.Get("Accept"); len(got) != 2 {
		t.Fatalf("Get = %v, want two values", got)
	}
	if m.Keys()[0] != "Accept" {
		t.Errorf("first-seen casing lost: %v", m.Keys())
	}

	m.Set("Accept", "only")
	if got := m.Get("accept"); len(got) != 1 || got[0] != "only" {
		t.Errorf("Set did not replace: %v", got)
	}
}
