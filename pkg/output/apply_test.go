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
	"errors"
	"testing"

	"github.com/crossplane/xoutput/internal/phase"
)

func TestApplyKnownSource(t *testing.T) {
	src := New(2, true, false)
	out := src.Apply(func(v any) (any, error) {
		return v.(int) * 21, nil
	})

	v, err := out.Value()
	if err != nil {
		t.Fatalf("Value(): %v", err)
	}
	if v != 42 {
		t.Errorf("Value(): got %v, want 42", v)
	}
	known, err := out.IsKnown()
	if err != nil || !known {
		t.Errorf("IsKnown(): got (%v, %v), want (true, nil)", known, err)
	}
}

func TestApplyUnknownSourceDuringPreview(t *testing.T) {
	phase.SetDryRun(true)
	defer phase.SetDryRun(false)

	called := false
	src := New(nil, false, false)
	out := src.Apply(func(any) (any, error) {
		called = true
		return "unreachable", nil
	})

	known, err := out.IsKnown()
	if err != nil || known {
		t.Errorf("IsKnown(): got (%v, %v), want (false, nil)", known, err)
	}
	if called {
		t.Error("Apply invoked f during a dry run over an unknown source")
	}
}

func TestApplyUnknownSourceDuringNonDryRunStillInvokes(t *testing.T) {
	phase.SetDryRun(false)

	called := false
	src := New("placeholder", false, false)
	out := src.Apply(func(v any) (any, error) {
		called = true
		return v, nil
	})

	known, err := out.IsKnown()
	if err != nil || known {
		t.Errorf("IsKnown(): got (%v, %v), want (false, nil)", known, err)
	}
	if !called {
		t.Error("Apply should invoke f outside a dry run even over an unknown source")
	}
	// The public value stays hidden even though f ran.
	v, err := out.Value()
	if err != nil || v != nil {
		t.Errorf("Value(): got (%v, %v), want (nil, nil)", v, err)
	}
}

func TestApplySecrecyAsymmetry(t *testing.T) {
	phase.SetDryRun(false)

	cases := []struct {
		name       string
		srcKnown   bool
		srcSecret  bool
		fnSecret   bool
		wantSecret bool
	}{
		{"known source, known secret fn result", true, false, true, true},
		{"secret source always propagates", true, true, false, true},
		{"unknown source ignores fn secrecy", false, false, true, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			src := New("v", tc.srcKnown, tc.srcSecret)
			out := src.Apply(func(any) (any, error) {
				return New("inner", true, tc.fnSecret), nil
			})

			secret, err := out.IsSecret()
			if err != nil {
				t.Fatalf("IsSecret(): %v", err)
			}
			if secret != tc.wantSecret {
				t.Errorf("IsSecret(): got %v, want %v", secret, tc.wantSecret)
			}
		})
	}
}

func TestApplyPropagatesFunctionError(t *testing.T) {
	wantErr := errors.New("transform failed")
	src := New("v", true, false)
	out := src.Apply(func(any) (any, error) {
		return nil, wantErr
	})

	_, err := out.Value()
	if !errors.Is(err, wantErr) {
		t.Fatalf("Value(): got %v, want %v", err, wantErr)
	}
}

func TestApplyDepsNeverChange(t *testing.T) {
	src := New("v", true, false, "bucket")
	out := src.Apply(func(any) (any, error) {
		return New("other", true, false, "queue"), nil
	})

	deps, err := out.Deps()
	if err != nil {
		t.Fatalf("Deps(): %v", err)
	}
	if !deps.Has("bucket") || deps.Has("queue") {
		t.Errorf("Deps(): got %v, want only bucket", deps)
	}

	allDeps, err := out.AllDeps()
	if err != nil {
		t.Fatalf("AllDeps(): %v", err)
	}
	if !allDeps.Has("bucket") || !allDeps.Has("queue") {
		t.Errorf("AllDeps(): got %v, want bucket and queue", allDeps)
	}
}
