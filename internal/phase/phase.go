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

// Package phase tracks the single process-wide flag the Output algebra
// consumes from its environment: whether the current run is a dry-run
// (preview) or a real apply. It is the only shared mutable state in the
// module, so it is backed by an atomic rather than a bare bool.
package phase

import "sync/atomic"

var dryRun atomic.Bool

// SetDryRun sets the current phase. Production code calls this once per
// run, before any Output is constructed or applied; tests may flip it
// freely between assertions.
func SetDryRun(v bool) {
	dryRun.Store(v)
}

// IsDryRun reports the current phase. Apply reads this at the moment a
// source Output's knownness resolves, not when the Apply call is made, so
// the observable branching always reflects the flag value in effect when
// the source settles.
func IsDryRun() bool {
	return dryRun.Load()
}
