package codec

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/brentlemons/aws-lambda-events/wire"
)

// TimeForm declares the wire form a timestamp field encodes to. Different
// fields of the same event may require different forms for the same
// canonical time.Time, so the form belongs to the field contract, never
// inferred from the decoded value.
type TimeForm uint8

const (
	// RFC3339Milli is an ISO-8601 UTC string with millisecond precision,
	// e.g. "1970-01-01T00:00:00.000Z". The common form for notification
	// timestamps.
	RFC3339Milli TimeForm = iota
	// RFC3339 is an ISO-8601 UTC string with second precision.
	RFC3339
	// EpochSeconds is a bare number of seconds since the Unix epoch.
	// Fractional input is accepted; whole-second values encode without a
	// fraction.
	EpochSeconds
	// EpochMillis is a bare number of milliseconds since the Unix epoch.
	EpochMillis
)

func (f TimeForm) String() string {
	switch f {
	case RFC3339Milli:
		return "rfc3339-millis"
	case RFC3339:
		return "rfc3339"
	case EpochSeconds:
		return "epoch-seconds"
	case EpochMillis:
		return "epoch-millis"
	}
	return "unknown"
}

const rfc3339MilliLayout = "2006-01-02T15:04:05.000Z07:00"

// Time is the tolerant timestamp codec. Decode accepts ISO-8601 date-time
// strings with an explicit UTC or numeric offset, and numeric epoch values
// interpreted per the declared Form. The canonical value is always
// normalized to UTC. Encode emits exactly the declared Form.
type Time struct {
	Form TimeForm
}

var _ Codec[time.Time] = Time{}

func (c Time) Decode(v wire.Value) (time.Time, error) {
	switch v.Kind() {
	case wire.String:
		t, err := time.Parse(time.RFC3339Nano, v.Str())
		if err != nil {
			return time.Time{}, invalidEncoding("timestamp", err.Error())
		}
		return t.UTC(), nil
	case wire.Number:
		return c.decodeEpoch(v.Num())
	}
	return time.Time{}, typeMismatch("timestamp string or epoch number", v)
}

func (c Time) decodeEpoch(n json.Number) (time.Time, error) {
	// Integer fast path keeps full precision.
	if !strings.ContainsAny(n.String(), ".eE") {
		i, err := n.Int64()
		if err != nil {
			return time.Time{}, outOfRange(n.String(), "epoch timestamp")
		}
		if c.Form == EpochMillis {
			return time.UnixMilli(i).UTC(), nil
		}
		return time.Unix(i, 0).UTC(), nil
	}
	f, err := n.Float64()
	if err != nil {
		return time.Time{}, invalidEncoding("epoch timestamp", err.Error())
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return time.Time{}, invalidEncoding("epoch timestamp", "not finite")
	}
	if c.Form == EpochMillis {
		f /= 1000
	}
	sec, frac := math.Modf(f)
	return time.Unix(int64(sec), int64(frac*1e9)).UTC(), nil
}

func (c Time) Encode(t time.Time) (wire.Value, error) {
	t = t.UTC()
	switch c.Form {
	case RFC3339:
		return wire.StringValue(t.Format(time.RFC3339)), nil
	case EpochSeconds:
		if t.Nanosecond() == 0 {
			return wire.NumberValue(json.Number(strconv.FormatInt(t.Unix(), 10))), nil
		}
		f := float64(t.UnixNano()) / 1e9
		return wire.NumberValue(json.Number(strconv.FormatFloat(f, 'f', -1, 64))), nil
	case EpochMillis:
		return wire.NumberValue(json.Number(strconv.FormatInt(t.UnixMilli(), 10))), nil
	default:
		return wire.StringValue(t.Format(rfc3339MilliLayout)), nil
	}
}
