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

// unknownSentinel is the concrete type behind UNKNOWN. It carries no data;
// its only job is to give UNKNOWN a distinct, comparable identity so that
// equality against it is by identity, never by structural value.
type unknownSentinel struct{}

// UNKNOWN marks a position in a materialized structure whose value will
// only be determined in a later phase. It is the only value that means
// "not yet known" inside a resolved structure; everywhere else, absent
// knownness is communicated through IsKnown returning false.
var UNKNOWN any = &unknownSentinel{}

// containsUnknown walks a resolved value graph — []any, map[string]any and
// plain scalars — and reports whether UNKNOWN appears anywhere in it. It is
// called after a lifting constructor's pending-resolution stage finishes,
// since UNKNOWN can only be observed once every pending part has settled.
func containsUnknown(v any) bool {
	if v == UNKNOWN {
		return true
	}
	switch t := v.(type) {
	case []any:
		for _, e := range t {
			if containsUnknown(e) {
				return true
			}
		}
	case map[string]any:
		for _, e := range t {
			if containsUnknown(e) {
				return true
			}
		}
	}
	return false
}
