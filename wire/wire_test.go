package wire

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParsePreservesMemberOrder(t *testing.T) {
	v, err := Parse([]byte(`{"z": 1, "a": 2, "m": 3}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got := v.Object().Keys()
	want := []string{"z", "a", "m"}
	if len(got) != len(want) {
		t.Fatalf("Keys = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Keys = %v, want %v", got, want)
		}
	}
}

func TestParsePreservesNumberText(t *testing.T) {
	tests := []string{
		"1",
		"1.0",
		"1e3",
		"-0",
		"3.14159265358979323846264338327950288419",
		"9223372036854775808",
	}
	for _, num := range tests {
		t.Run(num, func(t *testing.T) {
			v, err := Parse([]byte(num))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if string(v.Num()) != num {
				t.Errorf("Num = %q, want %q", v.Num(), num)
			}
			out, err := Marshal(v)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			if string(out) != num {
				t.Errorf("Marshal = %q, want %q", out, num)
			}
		})
	}
}

func TestParseRejectsTrailingData(t *testing.T) {
	_, err := Parse([]byte(`{"a": 1} {"b": 2}`))
	if !errors.Is(err, ErrTrailingData) {
		t.Errorf("err = %v, want ErrTrailingData", err)
	}
}

func TestParseTruncated(t *testing.T) {
	for _, body := range []string{`{"a":`, `[1, 2`, `"unterminated`, ``} {
		if _, err := Parse([]byte(body)); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", body)
		}
	}
}

func TestGetDistinguishesAbsentFromNull(t *testing.T) {
	v, err := Parse([]byte(`{"present": null}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	obj := v.Object()

	got, ok := obj.Get("present")
	if !ok {
		t.Fatal("present key reported absent")
	}
	if !got.IsNull() {
		t.Errorf("present value kind = %v, want null", got.Kind())
	}

	if _, ok := obj.Get("missing"); ok {
		t.Error("missing key reported present")
	}
}

func TestSetReplacesInPlace(t *testing.T) {
	o := NewObj().
		Set("a", NumberValue("1")).
		Set("b", NumberValue("2")).
		Set("a", NumberValue("3"))

	if o.Len() != 2 {
		t.Fatalf("Len = %d, want 2", o.Len())
	}
	if o.Keys()[0] != "a" {
		t.Errorf("replaced key moved: keys = %v", o.Keys())
	}
	got, _ := o.Get("a")
	if string(got.Num()) != "3" {
		t.Errorf("a = %v, want 3", got.Num())
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	body := `{"name":"obj","items":[1,"two",true,null],"nested":{"x":1.5},"empty":[],"none":{}}`
	v, err := Parse([]byte(body))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	out, err := Marshal(v)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(out) != body {
		t.Errorf("round trip changed document:\n got %s\nwant %s", out, body)
	}
}

func TestMarshalEscapesStrings(t *testing.T) {
	out, err := Marshal(StringValue("line\n\"quoted\""))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var back string
	if err := json.Unmarshal(out, &back); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if back != "line\n\"quoted\"" {
		t.Errorf("string mangled: %q", back)
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"identical objects", `{"a":1}`, `{"a":1}`, true},
		{"member order ignored", `{"a":1,"b":2}`, `{"b":2,"a":1}`, true},
		{"array order significant", `[1,2]`, `[2,1]`, false},
		{"number spellings equal by value", `1e3`, `1000`, true},
		{"number value differs", `1`, `2`, false},
		{"huge numbers compare textually", `9223372036854775808`, `9223372036854775808`, true},
		{"null vs absent", `{"a":null}`, `{}`, false},
		{"kind mismatch", `"1"`, `1`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := Parse([]byte(tt.a))
			if err != nil {
				t.Fatalf("Parse a: %v", err)
			}
			b, err := Parse([]byte(tt.b))
			if err != nil {
				t.Fatalf("Parse b: %v", err)
			}
			if got := Equal(a, b); got != tt.want {
				t.Errorf("Equal(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestZeroValueIsNull(t *testing.T) {
	var v Value
	if !v.IsNull() {
		t.Error("zero Value is not null")
	}
	if v.Str() != "" || v.Bool() || v.Array() != nil || v.Object() != nil {
		t.Error("zero Value accessors leaked payloads")
	}
}

func TestSortedObj(t *testing.T) {
	o := NewObj().
		Set("c", NumberValue("3")).
		Set("a", NumberValue("1")).
		Set("b", NumberValue("2"))

	sorted := SortedObj(o)
	keys := sorted.Keys()
	if keys[0] != "a" || keys[1] != "b" || keys[2] != "c" {
		t.Errorf("sorted keys = %v", keys)
	}
	// original untouched
	if o.Keys()[0] != "c" {
		t.Errorf("SortedObj mutated its input: %v", o.Keys())
	}
}
