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
)

func TestStringPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("String(): expected a panic, got none")
		}
	}()
	_ = New("v", true, false).String()
}

func TestMustString(t *testing.T) {
	o := New(42, true, false)
	if got := o.MustString(); got != "42" {
		t.Errorf("MustString(): got %q, want %q", got, "42")
	}
}

func TestMustStringPanicsOnError(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("MustString(): expected a panic, got none")
		}
	}()
	wantErr := errors.New("boom")
	o := newPending()
	go o.value.Reject(wantErr)
	go o.known.Reject(wantErr)
	_ = o.MustString()
}
