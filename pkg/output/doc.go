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

// Package output implements the deferred-value algebra a composition
// runtime uses to propagate values that are still being computed by an
// external resource provider. An Output carries a lazily-resolved value
// together with three pieces of metadata that travel with it: whether the
// value will be known during the current phase (preview vs apply), whether
// it must be treated as secret, and the set of resources that produced it.
//
// Composite inputs are represented the way encoding/json represents
// arbitrary JSON: []any for arrays and map[string]any for records. This
// keeps the cycle-detection and join logic tractable while covering the
// same recursive shape the algebra needs to lift.
package output
