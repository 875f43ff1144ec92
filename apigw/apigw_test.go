package apigw

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/brentlemons/aws-lambda-events/roundtrip"
)

func readSample(t *testing.T, name string) roundtrip.Sample {
	t.Helper()
	body, err := os.ReadFile(filepath.Join("testdata", name+".json"))
	if err != nil {
		t.Fatal(err)
	}
	return roundtrip.Sample{Name: name, Body: body}
}

func TestDecodeProxyRequest(t *testing.T) {
	sample := readSample(t, "proxy-request")
	req, err := DecodeRequest(sample.Body)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if req.HTTPMethod != "POST" {
		t.Errorf("unexpected httpMethod %q", req.HTTPMethod)
	}
	headers, ok := req.Headers.Get()
	if !ok {
		t.Fatal("expected headers to be present")
	}
	// Lookup is case-insensitive regardless of the sent casing.
	if got := headers.First("content-type"); got != "application/json" {
		t.Errorf("expected content-type lookup to succeed, got %q", got)
	}
	if got := headers.First("HOST"); got != "wt6mne2s9k.execute-api.us-west-2.amazonaws.com" {
		t.Errorf("unexpected Host %q", got)
	}

	mv, _ := req.MultiValueQueryStringParameters.Get()
	if got := mv["name"]; len(got) != 2 || got[0] != "me" || got[1] != "you" {
		t.Errorf("unexpected multiValueQueryStringParameters %v", mv)
	}

	identity := req.RequestContext.Identity
	if identity.SourceIP != "192.0.2.44" {
		t.Errorf("unexpected sourceIp %q", identity.SourceIP)
	}
	if !identity.Caller.IsNull() {
		t.Error("expected caller to be explicit null")
	}

	epoch, ok := req.RequestContext.RequestTimeEpoch.Get()
	if !ok {
		t.Fatal("expected requestTimeEpoch to be present")
	}
	if want := time.UnixMilli(1428582896000).UTC(); !epoch.Equal(want) {
		t.Errorf("expected requestTimeEpoch %v, got %v", want, epoch)
	}

	if req.IsBase64Encoded.Or(true) {
		t.Error("expected isBase64Encoded false")
	}
}

func TestNullParametersStayNull(t *testing.T) {
	sample := readSample(t, "proxy-request-null-body")
	req, err := DecodeRequest(sample.Body)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !req.QueryStringParameters.IsNull() {
		t.Error("expected queryStringParameters to be explicit null")
	}
	if !req.Body.IsNull() {
		t.Error("expected body to be explicit null")
	}
	if req.RequestContext.Protocol.IsNull() || !req.RequestContext.Protocol.IsAbsent() {
		t.Error("expected protocol to be absent, not null")
	}
}

func TestRoundTripRequests(t *testing.T) {
	for _, name := range []string{"proxy-request", "proxy-request-null-body"} {
		sample := readSample(t, name)
		t.Run(name, func(t *testing.T) {
			if err := roundtrip.Check(RequestSchema(), sample); err != nil {
				t.Error(err)
			}
		})
	}
}

func TestRoundTripResponse(t *testing.T) {
	sample := readSample(t, "proxy-response")
	if err := roundtrip.Check(ResponseSchema(), sample); err != nil {
		t.Error(err)
	}
}

func TestHeaderShapePreserved(t *testing.T) {
	sample := readSample(t, "proxy-response")
	resp, err := DecodeResponse(sample.Body)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	out, err := EncodeResponse(resp)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	// headers came as scalars, multiValueHeaders as arrays; both shapes must
	// survive the trip.
	if want := `"Content-Type":"application/json"`; !strings.Contains(string(out), want) {
		t.Errorf("scalar header shape lost:\n%s", out)
	}
	if want := `"Set-Cookie":["a=1; Path=/","b=2; Path=/"]`; !strings.Contains(string(out), want) {
		t.Errorf("array header shape lost:\n%s", out)
	}
}
