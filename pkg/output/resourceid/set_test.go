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

package resourceid

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestUnion(t *testing.T) {
	a := NewSet("a", "b")
	b := NewSet("b", "c")

	got := a.Union(b).List()
	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })

	want := []ID{"a", "b", "c"}
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("Union(): -want, +got:\n%s", diff)
	}

	// a and b must be unmodified.
	if len(a) != 2 || len(b) != 2 {
		t.Errorf("Union() mutated an input set: a=%v b=%v", a, b)
	}
}

func TestHas(t *testing.T) {
	s := NewSet("a")
	if !s.Has("a") {
		t.Error("Has(a): got false, want true")
	}
	if s.Has("z") {
		t.Error("Has(z): got true, want false")
	}
}

func TestUnionOfEmptySets(t *testing.T) {
	var a Set
	got := a.Union(NewSet()).List()
	if len(got) != 0 {
		t.Errorf("Union() of empty sets: got %v, want empty", got)
	}
}
