// Package roundtrip verifies decode/encode fidelity of record schemas
// against captured wire payloads.
//
// For each sample the harness asserts three things: the sample decodes, the
// re-encoded document is structurally equal to the input (object member
// order ignored, declared-lossy drops excluded), and one decode/encode
// cycle is a fixed point.
package roundtrip

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/go-cmp/cmp"

	"github.com/brentlemons/aws-lambda-events/record"
)

// Sample is one captured wire payload for a known record type.
type Sample struct {
	Name string
	Body []byte
}

// LoadDir reads every .json file under dir (typically a testdata directory)
// as a Sample, named by file stem.
func LoadDir(dir string) ([]Sample, error) {
	var samples []Sample
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".json") {
			return nil
		}
		body, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		samples = append(samples, Sample{
			Name: strings.TrimSuffix(d.Name(), ".json"),
			Body: body,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("roundtrip: load %s: %w", dir, err)
	}
	return samples, nil
}

// Option configures a check.
type Option func(*config)

type config struct {
	ignored map[string]bool
}

// WithIgnoredKeys excludes object keys (matched by name at any depth) from
// the structural comparison. Use it for keys a schema intentionally does
// not declare, i.e. the documented unknown-field drop.
func WithIgnoredKeys(keys ...string) Option {
	return func(c *config) {
		if c.ignored == nil {
			c.ignored = make(map[string]bool, len(keys))
		}
		for _, k := range keys {
			c.ignored[k] = true
		}
	}
}

// Check runs the round-trip assertions for one sample against a schema.
// A nil return means all three properties held.
func Check[R any](s *record.Schema[R], sample Sample, opts ...Option) error {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	decoded, err := s.DecodeJSON(sample.Body)
	if err != nil {
		return fmt.Errorf("roundtrip %s/%s: decode: %w", s.Name(), sample.Name, err)
	}

	encoded, err := s.EncodeJSON(decoded)
	if err != nil {
		return fmt.Errorf("roundtrip %s/%s: encode: %w", s.Name(), sample.Name, err)
	}

	want, err := structural(sample.Body, cfg.ignored)
	if err != nil {
		return fmt.Errorf("roundtrip %s/%s: sample is not valid JSON: %w", s.Name(), sample.Name, err)
	}
	got, err := structural(encoded, cfg.ignored)
	if err != nil {
		return fmt.Errorf("roundtrip %s/%s: encoded output is not valid JSON: %w", s.Name(), sample.Name, err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		return fmt.Errorf("roundtrip %s/%s: wire mismatch (-sample +encoded):\n%s", s.Name(), sample.Name, diff)
	}

	again, err := s.DecodeJSON(encoded)
	if err != nil {
		return fmt.Errorf("roundtrip %s/%s: re-decode: %w", s.Name(), sample.Name, err)
	}
	encodedAgain, err := s.EncodeJSON(again)
	if err != nil {
		return fmt.Errorf("roundtrip %s/%s: re-encode: %w", s.Name(), sample.Name, err)
	}
	if !bytes.Equal(encoded, encodedAgain) {
		return fmt.Errorf("roundtrip %s/%s: decode/encode is not a fixed point", s.Name(), sample.Name)
	}
	return nil
}

// structural parses JSON into generic values for comparison, with numbers
// kept textual and ignored keys pruned.
func structural(data []byte, ignored map[string]bool) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return prune(v, ignored), nil
}

func prune(v any, ignored map[string]bool) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			if ignored[k] {
				continue
			}
			out[k] = prune(item, ignored)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = prune(item, ignored)
		}
		return out
	default:
		return v
	}
}
