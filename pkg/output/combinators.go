/*
Copyright 2024 The Crossplane Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/crossplane/crossplane-runtime/pkg/errors"
)

// Error strings.
const (
	errConcatNotArray      = "concat: lifted value is not an array"
	errInterpolateNotArray = "interpolate: lifted value is not an array"
	errJSONParseNotString  = "jsonParse: value is not a string"
)

// All lifts a list of inputs into a single Output of an array, joining
// their knownness, secrecy and dependency metadata per §4.3.
func All(inputs ...any) (*Output, error) {
	return Lift(append([]any(nil), inputs...))
}

// AllMap lifts a map of named inputs into a single Output of a record,
// the record-shaped counterpart to All.
func AllMap(inputs map[string]any) (*Output, error) {
	return Lift(inputs)
}

// Concat lifts inputs and joins their string representations once every
// one of them is known, the way a template literal built from several
// Outputs would.
func Concat(inputs ...any) (*Output, error) {
	lifted, err := All(inputs...)
	if err != nil {
		return nil, err
	}
	return lifted.Apply(func(v any) (any, error) {
		arr, ok := v.([]any)
		if !ok {
			return nil, errors.Errorf(errConcatNotArray)
		}
		var sb strings.Builder
		for _, e := range arr {
			sb.WriteString(stringify(e))
		}
		return sb.String(), nil
	}), nil
}

// Interpolate lifts inputs and substitutes their resolved values into a
// fmt.Sprintf-style format string once every input is known.
func Interpolate(format string, inputs ...any) (*Output, error) {
	lifted, err := All(inputs...)
	if err != nil {
		return nil, err
	}
	return lifted.Apply(func(v any) (any, error) {
		arr, ok := v.([]any)
		if !ok {
			return nil, errors.Errorf(errInterpolateNotArray)
		}
		return fmt.Sprintf(format, arr...), nil
	}), nil
}

func stringify(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}

// jsonOptions configures JSONStringify and JSONParse.
type jsonOptions struct {
	indent   string
	replacer func(key string, value any) any
	reviver  func(key string, value any) any
}

// A JSONOption customizes JSONStringify or JSONParse.
type JSONOption func(*jsonOptions)

// WithIndent pretty-prints JSONStringify's output using prefix-free indent
// as the per-level indentation string.
func WithIndent(indent string) JSONOption {
	return func(o *jsonOptions) { o.indent = indent }
}

// WithReplacer transforms every (key, value) pair of a record, and every
// (index, value) pair of an array (index rendered as its decimal string),
// bottom-up before JSONStringify marshals the result.
func WithReplacer(f func(key string, value any) any) JSONOption {
	return func(o *jsonOptions) { o.replacer = f }
}

// WithReviver transforms every (key, value) pair of a parsed record or
// array the same way WithReplacer does, bottom-up after JSONParse
// unmarshals its input.
func WithReviver(f func(key string, value any) any) JSONOption {
	return func(o *jsonOptions) { o.reviver = f }
}

// JSONStringify lifts x and serializes its resolved value to a JSON string
// once known.
func JSONStringify(x any, opts ...JSONOption) (*Output, error) {
	cfg := &jsonOptions{}
	for _, opt := range opts {
		opt(cfg)
	}

	lifted, err := Lift(x)
	if err != nil {
		return nil, err
	}
	return lifted.Apply(func(v any) (any, error) {
		if cfg.replacer != nil {
			v = walkJSON(v, cfg.replacer)
		}
		var b []byte
		var err error
		if cfg.indent != "" {
			b, err = json.MarshalIndent(v, "", cfg.indent)
		} else {
			b, err = json.Marshal(v)
		}
		if err != nil {
			return nil, err
		}
		return string(b), nil
	}), nil
}

// JSONParse lifts x (expected to resolve to a string) and deserializes it
// into a record/array/scalar value once known.
func JSONParse(x any, opts ...JSONOption) (*Output, error) {
	cfg := &jsonOptions{}
	for _, opt := range opts {
		opt(cfg)
	}

	lifted, err := Lift(x)
	if err != nil {
		return nil, err
	}
	return lifted.Apply(func(v any) (any, error) {
		s, ok := v.(string)
		if !ok {
			return nil, errors.Errorf(errJSONParseNotString)
		}
		var parsed any
		if err := json.Unmarshal([]byte(s), &parsed); err != nil {
			return nil, err
		}
		if cfg.reviver != nil {
			parsed = walkJSON(parsed, cfg.reviver)
		}
		return parsed, nil
	}), nil
}

// walkJSON applies f to every (key, value) pair of a decoded JSON tree,
// bottom-up: children are transformed before their parent is.
func walkJSON(v any, f func(key string, value any) any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = f(k, walkJSON(e, f))
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = f(fmt.Sprintf("%d", i), walkJSON(e, f))
		}
		return out
	default:
		return v
	}
}

// Secret lifts x and forces its secrecy flag to true, regardless of what
// it would otherwise resolve to.
func Secret(x any) (*Output, error) {
	o, err := Lift(x)
	if err != nil {
		return nil, err
	}
	return withSecret(o, true), nil
}

// Unsecret lifts x and forces its secrecy flag to false. The underlying
// value is unchanged; callers are responsible for not leaking it
// carelessly once it is marked non-secret.
func Unsecret(x any) (*Output, error) {
	o, err := Lift(x)
	if err != nil {
		return nil, err
	}
	return withSecret(o, false), nil
}

// IsSecret lifts x and reports its secrecy flag.
func IsSecret(x any) (bool, error) {
	o, err := Lift(x)
	if err != nil {
		return false, err
	}
	return o.IsSecret()
}

func withSecret(o *Output, secret bool) *Output {
	out := newPending()
	go func() {
		v, err := o.rawValue()
		if err != nil {
			out.value.Reject(err)
			return
		}
		out.value.Resolve(v)
	}()
	go func() {
		k, err := o.IsKnown()
		if err != nil {
			out.known.Reject(err)
			return
		}
		out.known.Resolve(k)
	}()
	out.secret.Resolve(secret)
	go func() {
		d, err := o.Deps()
		if err != nil {
			out.deps.Reject(err)
			return
		}
		out.deps.Resolve(d)
	}()
	go func() {
		a, err := o.AllDeps()
		if err != nil {
			out.allDeps.Reject(err)
			return
		}
		out.allDeps.Resolve(a)
	}()
	return out
}
