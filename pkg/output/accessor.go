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

// Get projects a field out of this Output's record value. Languages with
// dynamic property interception let o.field read as an Output without a
// method call; Go has no such hook, so Get is the explicit equivalent. It
// is built on Apply, so every rule about knownness, secrecy and invocation
// during a non-dry-run over an unknown source applies identically.
//
// A missing field, or a value that is not a record at all, resolves to
// nil rather than erroring — the same optional-chaining semantics as
// v?.[k], which yields null/undefined rather than throwing.
func (o *Output) Get(key string) *Output {
	return o.Apply(func(v any) (any, error) {
		rec, ok := v.(map[string]any)
		if !ok {
			return nil, nil
		}
		return rec[key], nil
	})
}

// At projects an element out of this Output's array value, mirroring Get
// for the array half of the Input union. An out-of-range index, or a
// value that is not an array at all, resolves to nil for the same reason
// a missing field does in Get.
func (o *Output) At(index int) *Output {
	return o.Apply(func(v any) (any, error) {
		arr, ok := v.([]any)
		if !ok || index < 0 || index >= len(arr) {
			return nil, nil
		}
		return arr[index], nil
	})
}
