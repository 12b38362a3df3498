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
	"fmt"

	"github.com/crossplane/crossplane-runtime/pkg/errors"

	"github.com/crossplane/xoutput/internal/promise"
	"github.com/crossplane/xoutput/pkg/output/resourceid"
)

// Error strings.
const (
	errSourceKnown   = "cannot determine whether source is known"
	errSourceSecret  = "cannot determine whether source is secret"
	errSourceDeps    = "cannot determine source dependencies"
	errSourceAllDeps = "cannot determine source transitive dependencies"
	errSourceValue   = "cannot determine source value"

	errToString = "Output does not support automatic conversion to string; use Apply or Interpolate instead"
)

// OutputLike is implemented by anything that should be treated as an
// Output during lifting, including an Output produced by a different
// version of this package. Detection is structural — by this interface's
// method set — rather than by concrete type, which is what lets Outputs
// cross module/version boundaries and still be recognized.
type OutputLike interface {
	// XOutputBrand is this package's stable brand marker. Its only purpose
	// is to make OutputLike distinctive enough that an unrelated type is
	// unlikely to implement it by accident.
	XOutputBrand() bool

	Deps() (resourceid.Set, error)
	AllDeps() (resourceid.Set, error)
	IsKnown() (bool, error)
	IsSecret() (bool, error)
	Value() (any, error)
}

// An Output is a lazy, asynchronous container for a value that may still
// be computed by an external provider, together with knownness, secrecy
// and resource-dependency metadata. All five fields are lazy: reading one
// blocks the caller until it settles. An Output is immutable once
// constructed; every derivation (Apply, a combinator, a lifted accessor)
// produces a new Output.
type Output struct {
	value   *promise.Promise[any]
	known   *promise.Promise[bool]
	secret  *promise.Promise[bool]
	deps    *promise.Promise[resourceid.Set]
	allDeps *promise.Promise[resourceid.Set]
}

// New constructs an Output directly from a value and the given knownness,
// secrecy and deps, skipping the lifting constructor's recursive walk; the
// value is not inspected for UNKNOWN. This is how a resource provider's SDK
// would seed the first Output for a field it just resolved.
func New(value any, known, secret bool, deps ...resourceid.ID) *Output {
	depSet := resourceid.NewSet(deps...)
	return &Output{
		value:   promise.Resolved(value),
		known:   promise.Resolved(known),
		secret:  promise.Resolved(secret),
		deps:    promise.Resolved(depSet),
		allDeps: promise.Resolved(depSet),
	}
}

func newPending() *Output {
	return &Output{
		value:   promise.New[any](),
		known:   promise.New[bool](),
		secret:  promise.New[bool](),
		deps:    promise.New[resourceid.Set](),
		allDeps: promise.New[resourceid.Set](),
	}
}

// XOutputBrand implements OutputLike.
func (o *Output) XOutputBrand() bool { return true }

// Deps returns the set of resources whose construction directly produced
// or contributed to this Output's value.
func (o *Output) Deps() (resourceid.Set, error) {
	s, err := o.deps.Get()
	return s, errors.Wrap(err, errSourceDeps)
}

// AllDeps returns the transitive closure of Deps: every resource reachable
// through this Output and any Output it was derived from.
func (o *Output) AllDeps() (resourceid.Set, error) {
	s, err := o.allDeps.Get()
	return s, errors.Wrap(err, errSourceAllDeps)
}

// IsKnown reports whether this Output's value will be materialized in the
// current phase.
func (o *Output) IsKnown() (bool, error) {
	k, err := o.known.Get()
	return k, errors.Wrap(err, errSourceKnown)
}

// IsSecret reports whether this Output's value must be treated as
// confidential.
func (o *Output) IsSecret() (bool, error) {
	s, err := o.secret.Get()
	return s, errors.Wrap(err, errSourceSecret)
}

// Value returns this Output's resolved value. If IsKnown resolves to
// false, the logical observable value is undefined and Value returns nil,
// even if a physical value was computed internally (see Apply).
func (o *Output) Value() (any, error) {
	known, err := o.known.Get()
	if err != nil {
		return nil, errors.Wrap(err, errSourceKnown)
	}
	v, err := o.value.Get()
	if err != nil {
		return nil, errors.Wrap(err, errSourceValue)
	}
	if !known {
		return nil, nil
	}
	return v, nil
}

// rawValue returns the physical value regardless of knownness. Apply uses
// this so that a function invoked for its side effects during a
// non-dry-run run on an unknown source still has something to operate on,
// and so that any dependencies it surfaces are preserved in allDeps even
// though the public value stays hidden.
func (o *Output) rawValue() (any, error) {
	v, err := o.value.Get()
	return v, errors.Wrap(err, errSourceValue)
}

// String intentionally panics with a message pointing at Apply and
// Interpolate, so a deferred value is never rendered as if it were text.
// A direct call fails loudly; fmt's %v and %s verbs recover the panic and
// write that message into the formatted text in place of a value.
func (o *Output) String() string {
	panic(errToString)
}

// MustString is the explicit, deliberately-named escape hatch String()
// refuses to be: it blocks for this Output's value and formats it with
// fmt.Sprintf("%v", ...), for tests and CLI rendering where the caller
// knows stringification is safe. It panics if Value returns an error.
func (o *Output) MustString() string {
	v, err := o.Value()
	if err != nil {
		panic(err)
	}
	return fmt.Sprintf("%v", v)
}
