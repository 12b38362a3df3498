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

import "testing"

func TestDeferredResolvesLater(t *testing.T) {
	d := NewDeferred()
	placeholder := d.Output()

	done := make(chan struct{})
	var got any
	var gotErr error
	go func() {
		got, gotErr = placeholder.Value()
		close(done)
	}()

	if err := d.Resolve(New("resolved-later", true, false)); err != nil {
		t.Fatalf("Resolve(): %v", err)
	}
	<-done

	if gotErr != nil {
		t.Fatalf("Value(): %v", gotErr)
	}
	if got != "resolved-later" {
		t.Errorf("Value(): got %v, want resolved-later", got)
	}
}

func TestDeferredDoubleResolveRejected(t *testing.T) {
	d := NewDeferred()
	if err := d.Resolve(New("first", true, false)); err != nil {
		t.Fatalf("first Resolve(): %v", err)
	}
	if err := d.Resolve(New("second", true, false)); err == nil {
		t.Fatal("second Resolve(): expected an error, got nil")
	}

	v, err := d.Output().Value()
	if err != nil {
		t.Fatalf("Value(): %v", err)
	}
	if v != "first" {
		t.Errorf("Value(): got %v, want first (the second Resolve must not win)", v)
	}
}

func TestDeferredBreaksCycleBetweenTwoResources(t *testing.T) {
	// Resource a needs b's identifier before b exists: a reads it through
	// b's Deferred, and a's own Output is published through a Deferred too,
	// so a can be wired up before b's source is supplied.
	aRef := NewDeferred()
	bRef := NewDeferred()

	aID := bRef.Output().Apply(func(v any) (any, error) {
		return "a-depends-on-" + v.(string), nil
	})
	bID := New("b-id", true, false)

	if err := aRef.Resolve(aID); err != nil {
		t.Fatalf("aRef.Resolve(): %v", err)
	}
	if err := bRef.Resolve(bID); err != nil {
		t.Fatalf("bRef.Resolve(): %v", err)
	}

	v, err := aRef.Output().Value()
	if err != nil {
		t.Fatalf("Value(): %v", err)
	}
	if v != "a-depends-on-b-id" {
		t.Errorf("Value(): got %v, want a-depends-on-b-id", v)
	}
}
