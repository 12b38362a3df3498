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
	"sync"

	"github.com/crossplane/crossplane-runtime/pkg/errors"
)

// Error strings.
const errAlreadyResolved = "deferred output has already been resolved"

// A Deferred is a placeholder Output whose source is supplied later,
// letting two composition-function resources reference each other's
// Outputs without either one needing to exist first. Construct one with
// NewDeferred, hand its Output to whichever resource needs to read it now,
// and call Resolve once the real source is available.
type Deferred struct {
	out *Output

	mu       sync.Mutex
	resolved bool
}

// NewDeferred creates an unresolved Deferred. Its Output blocks every
// reader until Resolve is called.
func NewDeferred() *Deferred {
	return &Deferred{out: newPending()}
}

// Output returns the placeholder Output. It can be embedded into other
// structures and lifted immediately; every field on it blocks until
// Resolve supplies a source.
func (d *Deferred) Output() *Output {
	return d.out
}

// Resolve supplies the real source for this Deferred's Output, wiring all
// five of its fields from src. Resolve may only be called once; a second
// call returns an error without disturbing the first resolution.
func (d *Deferred) Resolve(src *Output) error {
	d.mu.Lock()
	if d.resolved {
		d.mu.Unlock()
		return errors.Errorf(errAlreadyResolved)
	}
	d.resolved = true
	d.mu.Unlock()

	go chain(d.out.value, src.rawValue)
	go chain(d.out.known, src.IsKnown)
	go chain(d.out.secret, src.IsSecret)
	go chain(d.out.deps, src.Deps)
	go chain(d.out.allDeps, src.AllDeps)
	return nil
}

// chain resolves a promise-shaped field from a getter, used to fan a
// Deferred's five fields out from its eventual source concurrently.
func chain[T any](p interface {
	Resolve(T)
	Reject(error)
}, get func() (T, error)) {
	v, err := get()
	if err != nil {
		p.Reject(err)
		return
	}
	p.Resolve(v)
}
